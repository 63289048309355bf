package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medreminder/internal/model"
	"github.com/medreminder/internal/service"
	"github.com/medreminder/internal/view"
)

type medicineRequest struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	IconType  string   `json:"iconType"`
	IconColor string   `json:"iconColor"`
	Schedules []string `json:"schedules"`
	StartDate string   `json:"startDate"`
	Duration  string   `json:"duration"`
	Frequency string   `json:"frequency"`
	Note      string   `json:"note"`
}

func (r medicineRequest) toInput() service.MedicineInput {
	return service.MedicineInput{
		Name:      r.Name,
		Type:      r.Type,
		IconType:  view.NormalizeIconType(r.IconType),
		IconColor: r.IconColor,
		Schedules: r.Schedules,
		StartDate: r.StartDate,
		Duration:  r.Duration,
		Frequency: r.Frequency,
		Note:      r.Note,
	}
}

type scheduleRequest struct {
	StartDate string `json:"startDate"`
	Duration  string `json:"duration"`
	Frequency string `json:"frequency"`
}

type schedulesRequest struct {
	Schedules []model.Schedule `json:"schedules"`
}

type toggleRequest struct {
	Date  string `json:"date"`
	Index *int   `json:"index"`
}

// ListMedicines 返回药品列表；带 date 参数时只返回当天应显示的药品
func (a *API) ListMedicines(c *gin.Context) {
	if c.Query("date") == "" {
		medicines, err := a.medicines.List()
		if err != nil {
			a.respondServiceError(c, err, "failed to list medicines")
			return
		}
		c.JSON(http.StatusOK, gin.H{"medicines": medicines})
		return
	}

	tab, err := service.ParseTab(c.Query("tab"))
	if err != nil {
		a.respondServiceError(c, err, "failed to list medicines")
		return
	}
	items, err := a.medicines.ForDate(c.Query("date"), tab)
	if err != nil {
		a.respondServiceError(c, err, "failed to list medicines")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "tab": tab, "medicines": items})
}

// GetMedicine 返回详情页数据，附带渲染后的备注
func (a *API) GetMedicine(c *gin.Context) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid medicine id")
		return
	}
	date, err := a.requestDate(c)
	if err != nil {
		a.respondServiceError(c, err, "failed to load medicine")
		return
	}

	detail, err := a.medicines.Detail(id, date, a.requestLanguage(c))
	if err != nil {
		a.respondServiceError(c, err, "failed to load medicine")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detail":   detail,
		"noteHtml": renderNote(detail.Medicine.Note),
		"iconSvg":  view.MedicineIconSVG(detail.Medicine.IconType, detail.Medicine.IconColor),
	})
}

// CreateMedicine 新建药品
func (a *API) CreateMedicine(c *gin.Context) {
	var payload medicineRequest
	if !bindJSON(c, &payload, "invalid medicine payload") {
		return
	}

	medicine, err := a.medicines.Create(payload.toInput())
	if err != nil {
		a.respondServiceError(c, err, "failed to create medicine")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"medicine": medicine})
}

// UpdateMedicineSchedule 修改开始日期、疗程与频率
func (a *API) UpdateMedicineSchedule(c *gin.Context) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid medicine id")
		return
	}
	var payload scheduleRequest
	if !bindJSON(c, &payload, "invalid schedule payload") {
		return
	}

	medicine, err := a.medicines.UpdateSchedule(id, service.ScheduleInput{
		StartDate: payload.StartDate,
		Duration:  payload.Duration,
		Frequency: payload.Frequency,
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to update schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicine": medicine})
}

// UpdateMedicineSlots 替换服药时段列表
func (a *API) UpdateMedicineSlots(c *gin.Context) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid medicine id")
		return
	}
	var payload schedulesRequest
	if !bindJSON(c, &payload, "invalid schedules payload") {
		return
	}

	medicine, err := a.medicines.UpdateSchedules(id, payload.Schedules)
	if err != nil {
		a.respondServiceError(c, err, "failed to update schedules")
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicine": medicine})
}

// DeleteMedicine 删除药品
func (a *API) DeleteMedicine(c *gin.Context) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid medicine id")
		return
	}
	if err := a.medicines.Delete(id); err != nil {
		a.respondServiceError(c, err, "failed to delete medicine")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleTaken 翻转某日某时段的服用状态
func (a *API) ToggleTaken(c *gin.Context) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid medicine id")
		return
	}
	var payload toggleRequest
	if !bindJSON(c, &payload, "invalid toggle payload") {
		return
	}
	if payload.Index == nil {
		respondError(c, http.StatusBadRequest, "index is required")
		return
	}
	if payload.Date == "" {
		if payload.Date, err = a.sessions.SelectedDate(); err != nil {
			a.respondServiceError(c, err, "failed to toggle dose")
			return
		}
	}

	medicine, err := a.medicines.ToggleTaken(id, payload.Date, *payload.Index)
	if err != nil {
		a.respondServiceError(c, err, "failed to toggle dose")
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicine": medicine})
}

// ListIcons 返回可选的药品图标
func (a *API) ListIcons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"icons": view.MedicineIconOptions(a.requestLanguage(c))})
}
