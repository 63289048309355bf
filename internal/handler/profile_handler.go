package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medreminder/internal/model"
)

type onboardingRequest struct {
	MealTimes *model.MealTimes `json:"mealTimes"`
}

// GetProfile 返回用户资料
func (a *API) GetProfile(c *gin.Context) {
	profile, err := a.profiles.Get()
	if err != nil {
		a.respondServiceError(c, err, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile 保存用户资料
func (a *API) UpdateProfile(c *gin.Context) {
	var payload model.UserProfile
	if !bindJSON(c, &payload, "invalid profile payload") {
		return
	}

	profile, err := a.profiles.Update(payload)
	if err != nil {
		a.respondServiceError(c, err, "failed to update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetOnboarding 返回首次引导是否完成
func (a *API) GetOnboarding(c *gin.Context) {
	done, err := a.profiles.OnboardingCompleted()
	if err != nil {
		a.respondServiceError(c, err, "failed to load onboarding status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": done})
}

// CompleteOnboarding 结束首次引导；不带 mealTimes 视为跳过
func (a *API) CompleteOnboarding(c *gin.Context) {
	var payload onboardingRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &payload, "invalid onboarding payload") {
			return
		}
	}

	profile, err := a.profiles.CompleteOnboarding(payload.MealTimes)
	if err != nil {
		a.respondServiceError(c, err, "failed to complete onboarding")
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": true, "profile": profile})
}
