package service

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/model"
	"github.com/medreminder/internal/store"
)

// ErrInvalidProfileInput 在资料数据不合法时返回
var ErrInvalidProfileInput = errors.New("invalid profile input")

var mealTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ProfileService 维护用户资料与首次引导状态
type ProfileService struct {
	repo *store.Repository
	bus  events.Bus
}

// NewProfileService 构造 ProfileService
func NewProfileService(repo *store.Repository, bus events.Bus) *ProfileService {
	return &ProfileService{repo: repo, bus: bus}
}

// Get 返回已保存的资料，未保存过时返回默认资料
func (s *ProfileService) Get() (model.UserProfile, error) {
	profile, ok, err := s.repo.Profile()
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	if !ok {
		return model.DefaultProfile(), nil
	}
	return profile, nil
}

// Update 校验并保存资料，成功后发布 profileChanged
func (s *ProfileService) Update(input model.UserProfile) (model.UserProfile, error) {
	if err := validateMealTimes(input.MealTimes); err != nil {
		return model.UserProfile{}, err
	}

	profile := model.UserProfile{
		Name:      cleanText(input.Name),
		Age:       cleanText(input.Age),
		Height:    cleanText(input.Height),
		Weight:    cleanText(input.Weight),
		MealTimes: input.MealTimes,
	}
	if err := s.repo.SaveProfile(profile); err != nil {
		return model.UserProfile{}, fmt.Errorf("update profile: %w", err)
	}

	s.bus.Publish(events.TopicProfileChanged, profile)
	return profile, nil
}

// OnboardingCompleted 判断是否已完成首次引导
func (s *ProfileService) OnboardingCompleted() (bool, error) {
	done, err := s.repo.OnboardingCompleted()
	if err != nil {
		return false, fmt.Errorf("get onboarding status: %w", err)
	}
	return done, nil
}

// CompleteOnboarding 结束首次引导。
// mealTimes 非空时（“下一步”）保存三餐时间；为空时（“跳过”）只标记完成。
func (s *ProfileService) CompleteOnboarding(mealTimes *model.MealTimes) (model.UserProfile, error) {
	profile, err := s.Get()
	if err != nil {
		return model.UserProfile{}, err
	}

	if mealTimes != nil {
		if err := validateMealTimes(*mealTimes); err != nil {
			return model.UserProfile{}, err
		}
		profile.MealTimes = *mealTimes
		if err := s.repo.SaveProfile(profile); err != nil {
			return model.UserProfile{}, fmt.Errorf("save onboarding profile: %w", err)
		}
	}

	if err := s.repo.CompleteOnboarding(); err != nil {
		return model.UserProfile{}, fmt.Errorf("complete onboarding: %w", err)
	}

	if mealTimes != nil {
		s.bus.Publish(events.TopicProfileChanged, profile)
	}
	return profile, nil
}

func validateMealTimes(times model.MealTimes) error {
	fields := []struct {
		name  string
		value string
	}{
		{"breakfast", times.Breakfast},
		{"lunch", times.Lunch},
		{"dinner", times.Dinner},
	}
	for _, field := range fields {
		if !mealTimePattern.MatchString(field.value) {
			return fmt.Errorf("%w: %s time must be HH:MM", ErrInvalidProfileInput, field.name)
		}
	}
	return nil
}
