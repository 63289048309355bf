package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/model"
	"github.com/medreminder/internal/store"
)

// ErrInvalidWaterAmount 在饮水量为负数时返回
var ErrInvalidWaterAmount = errors.New("invalid water amount")

const (
	DefaultWaterGoalML      = 2000
	DefaultWaterIncrementML = 250
)

// WaterService 记录每日饮水量
type WaterService struct {
	repo      *store.Repository
	bus       events.Bus
	goal      int
	increment int
}

// WaterProgress 是某一天的饮水进度
type WaterProgress struct {
	Date       string `json:"date"`
	Intake     int    `json:"intake"`
	Goal       int    `json:"goal"`
	Percentage int    `json:"percentage"`
}

// NewWaterService 构造 WaterService，非正数的目标与增量回退为默认值
func NewWaterService(repo *store.Repository, bus events.Bus, goalML, incrementML int) *WaterService {
	if goalML <= 0 {
		goalML = DefaultWaterGoalML
	}
	if incrementML <= 0 {
		incrementML = DefaultWaterIncrementML
	}
	return &WaterService{repo: repo, bus: bus, goal: goalML, increment: incrementML}
}

// Goal 返回每日目标（毫升）
func (s *WaterService) Goal() int {
	return s.goal
}

// Add 为某天累加饮水量；amount 为 0 时使用默认增量
func (s *WaterService) Add(date string, amount int) (WaterProgress, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return WaterProgress{}, err
	}
	if amount < 0 {
		return WaterProgress{}, fmt.Errorf("%w: %d", ErrInvalidWaterAmount, amount)
	}
	if amount == 0 {
		amount = s.increment
	}

	intake, err := s.repo.UpdateWaterIntake(func(intake model.WaterIntake) error {
		intake[normalized] += amount
		return nil
	})
	if err != nil {
		return WaterProgress{}, fmt.Errorf("add water intake: %w", err)
	}

	s.bus.Publish(events.TopicWaterIntakeChanged, nil)
	return s.progress(intake, normalized), nil
}

// Progress 返回某天的饮水进度
func (s *WaterService) Progress(date string) (WaterProgress, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return WaterProgress{}, err
	}
	intake, err := s.repo.WaterIntake()
	if err != nil {
		return WaterProgress{}, fmt.Errorf("get water intake: %w", err)
	}
	return s.progress(intake, normalized), nil
}

// Intake 返回全部饮水记录
func (s *WaterService) Intake() (model.WaterIntake, error) {
	intake, err := s.repo.WaterIntake()
	if err != nil {
		return nil, fmt.Errorf("get water intake: %w", err)
	}
	return intake, nil
}

func (s *WaterService) progress(intake model.WaterIntake, date string) WaterProgress {
	amount := intake[date]
	return WaterProgress{
		Date:       date,
		Intake:     amount,
		Goal:       s.goal,
		Percentage: waterPercentage(amount, s.goal),
	}
}

func waterPercentage(intake, goal int) int {
	if goal <= 0 {
		return 0
	}
	percentage := int(math.Round(float64(intake) / float64(goal) * 100))
	if percentage > 100 {
		return 100
	}
	return percentage
}
