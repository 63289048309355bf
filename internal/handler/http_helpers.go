package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/medreminder/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseIntParam(c *gin.Context, key string) (int, error) {
	raw := c.Param(key)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

// respondServiceError maps service sentinel errors to HTTP status codes.
func (a *API) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMedicineNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidMedicineInput),
		errors.Is(err, service.ErrInvalidScheduleIndex),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidProfileInput),
		errors.Is(err, service.ErrInvalidWaterAmount),
		errors.Is(err, service.ErrInvalidTab):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		a.log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// requestDate 读取 ?date=，缺省时使用最近查看的日期
func (a *API) requestDate(c *gin.Context) (string, error) {
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		return date, nil
	}
	return a.sessions.SelectedDate()
}
