package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes 在 group 下注册全部 JSON 接口
func (a *API) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/medicines", a.ListMedicines)
	group.POST("/medicines", a.CreateMedicine)
	group.GET("/medicines/:id", a.GetMedicine)
	group.PUT("/medicines/:id/schedule", a.UpdateMedicineSchedule)
	group.PUT("/medicines/:id/schedules", a.UpdateMedicineSlots)
	group.DELETE("/medicines/:id", a.DeleteMedicine)
	group.POST("/medicines/:id/taken", a.ToggleTaken)
	group.GET("/icons", a.ListIcons)

	group.GET("/calendar/day", a.GetDaySummary)
	group.GET("/calendar/week", a.GetWeekSummary)
	group.GET("/calendar/month", a.GetMonthSummary)

	group.GET("/water", a.GetWater)
	group.POST("/water", a.AddWater)

	group.GET("/profile", a.GetProfile)
	group.PUT("/profile", a.UpdateProfile)
	group.GET("/onboarding", a.GetOnboarding)
	group.POST("/onboarding", a.CompleteOnboarding)

	group.GET("/session/date", a.GetSelectedDate)
	group.PUT("/session/date", a.SelectDate)
	group.PUT("/session/tab", a.SelectTab)
	group.GET("/session/language", a.GetLanguage)
	group.PUT("/session/language", a.SetLanguage)

	group.GET("/events", a.StreamEvents)
}
