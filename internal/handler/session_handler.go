package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type dateRequest struct {
	Date string `json:"date"`
}

type tabRequest struct {
	Tab string `json:"tab"`
}

// GetSelectedDate 返回最近查看的日期
func (a *API) GetSelectedDate(c *gin.Context) {
	date, err := a.sessions.SelectedDate()
	if err != nil {
		a.respondServiceError(c, err, "failed to load selected date")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "today": a.sessions.Today()})
}

// SelectDate 保存所选日期并通知各视图刷新
func (a *API) SelectDate(c *gin.Context) {
	var payload dateRequest
	if !bindJSON(c, &payload, "invalid date payload") {
		return
	}
	date, err := a.sessions.SelectDate(payload.Date)
	if err != nil {
		a.respondServiceError(c, err, "failed to select date")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date})
}

// SelectTab 切换分类
func (a *API) SelectTab(c *gin.Context) {
	var payload tabRequest
	if !bindJSON(c, &payload, "invalid tab payload") {
		return
	}
	tab, err := a.sessions.SelectTab(payload.Tab)
	if err != nil {
		a.respondServiceError(c, err, "failed to select tab")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tab": tab})
}
