package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medreminder/internal/recurrence"
	"github.com/medreminder/internal/service"
)

// GetDaySummary 返回某天的角标统计
func (a *API) GetDaySummary(c *gin.Context) {
	date, tab, ok := a.calendarQuery(c)
	if !ok {
		return
	}
	summary, err := a.calendar.DaySummary(date, tab)
	if err != nil {
		a.respondServiceError(c, err, "failed to summarize day")
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetWeekSummary 返回周视图（周一开始）
func (a *API) GetWeekSummary(c *gin.Context) {
	date, tab, ok := a.calendarQuery(c)
	if !ok {
		return
	}
	week, err := a.calendar.WeekSummary(date, tab)
	if err != nil {
		a.respondServiceError(c, err, "failed to summarize week")
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": week})
}

// GetMonthSummary 返回月视图，缺省为所选日期所在月份
func (a *API) GetMonthSummary(c *gin.Context) {
	tab, err := service.ParseTab(c.Query("tab"))
	if err != nil {
		a.respondServiceError(c, err, "failed to summarize month")
		return
	}

	year, month := 0, 0
	if rawYear, rawMonth := c.Query("year"), c.Query("month"); rawYear != "" || rawMonth != "" {
		if year, err = strconv.Atoi(rawYear); err != nil {
			respondError(c, http.StatusBadRequest, "invalid year")
			return
		}
		if month, err = strconv.Atoi(rawMonth); err != nil {
			respondError(c, http.StatusBadRequest, "invalid month")
			return
		}
	} else {
		selected, err := a.sessions.SelectedDate()
		if err != nil {
			a.respondServiceError(c, err, "failed to summarize month")
			return
		}
		day, _ := recurrence.ParseDate(selected)
		year, month = day.Year(), int(day.Month())
	}

	summary, err := a.calendar.MonthSummary(year, month, tab)
	if err != nil {
		a.respondServiceError(c, err, "failed to summarize month")
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": summary})
}

func (a *API) calendarQuery(c *gin.Context) (string, string, bool) {
	tab, err := service.ParseTab(c.Query("tab"))
	if err != nil {
		a.respondServiceError(c, err, "invalid tab")
		return "", "", false
	}
	date, err := a.requestDate(c)
	if err != nil {
		a.respondServiceError(c, err, "failed to resolve date")
		return "", "", false
	}
	return date, tab, true
}
