package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type waterRequest struct {
	Date   string `json:"date"`
	Amount int    `json:"amount"`
}

// GetWater 返回某天的饮水进度
func (a *API) GetWater(c *gin.Context) {
	date, err := a.requestDate(c)
	if err != nil {
		a.respondServiceError(c, err, "failed to resolve date")
		return
	}
	progress, err := a.water.Progress(date)
	if err != nil {
		a.respondServiceError(c, err, "failed to load water intake")
		return
	}
	c.JSON(http.StatusOK, gin.H{"water": progress})
}

// AddWater 累加饮水量，date 缺省为所选日期，amount 缺省为默认增量
func (a *API) AddWater(c *gin.Context) {
	var payload waterRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &payload, "invalid water payload") {
			return
		}
	}
	if payload.Date == "" {
		date, err := a.sessions.SelectedDate()
		if err != nil {
			a.respondServiceError(c, err, "failed to resolve date")
			return
		}
		payload.Date = date
	}

	progress, err := a.water.Add(payload.Date, payload.Amount)
	if err != nil {
		a.respondServiceError(c, err, "failed to add water intake")
		return
	}
	c.JSON(http.StatusOK, gin.H{"water": progress})
}
