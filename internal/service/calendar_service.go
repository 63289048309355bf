package service

import (
	"fmt"
	"time"

	"github.com/medreminder/internal/ledger"
	"github.com/medreminder/internal/model"
	"github.com/medreminder/internal/recurrence"
	"github.com/medreminder/internal/store"
)

// CalendarService 计算日历角标：每次请求都重新统计，不做缓存
type CalendarService struct {
	repo      *store.Repository
	water     *WaterService
	evaluator recurrence.Evaluator
}

// DaySummary 是某天某分类的完成情况
type DaySummary struct {
	Date             string `json:"date"`
	TotalCount       int    `json:"totalCount"`
	CompletedCount   int    `json:"completedCount"`
	UncompletedCount int    `json:"uncompletedCount"`
	AllCompleted     bool   `json:"allCompleted"`
}

// MonthDay 是月历中的一格
type MonthDay struct {
	DaySummary
	Water WaterProgress `json:"water"`
}

// MonthSummary 是整月的统计
type MonthSummary struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Tab   string     `json:"tab"`
	Days  []MonthDay `json:"days"`
}

// NewCalendarService 构造 CalendarService
func NewCalendarService(repo *store.Repository, water *WaterService) *CalendarService {
	return &CalendarService{repo: repo, water: water, evaluator: recurrence.Canonical}
}

// Summarize 统计 medicines 在某天某分类下的服药情况
func Summarize(evaluator recurrence.Evaluator, medicines []model.Medicine, date, tab string) DaySummary {
	summary := DaySummary{Date: date}
	for _, medicine := range medicines {
		if len(medicine.Schedules) == 0 || !medicine.Type.InTab(tab) {
			continue
		}
		if !evaluator.ShouldShow(medicine, date) {
			continue
		}

		summary.TotalCount += len(medicine.Schedules)
		for _, taken := range ledger.Slots(medicine, date) {
			if taken {
				summary.CompletedCount++
			}
		}
	}

	summary.UncompletedCount = summary.TotalCount - summary.CompletedCount
	summary.AllCompleted = summary.TotalCount > 0 && summary.UncompletedCount == 0
	return summary
}

// DaySummary 返回某天的统计
func (s *CalendarService) DaySummary(date, tab string) (DaySummary, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return DaySummary{}, err
	}
	medicines, err := s.repo.Medicines()
	if err != nil {
		return DaySummary{}, fmt.Errorf("summarize day: %w", err)
	}
	return Summarize(s.evaluator, medicines, normalized, tab), nil
}

// WeekSummary 返回 anchor 所在周（周一开始）七天的统计
func (s *CalendarService) WeekSummary(anchor, tab string) ([]DaySummary, error) {
	normalized, err := normalizeDate(anchor)
	if err != nil {
		return nil, err
	}
	medicines, err := s.repo.Medicines()
	if err != nil {
		return nil, fmt.Errorf("summarize week: %w", err)
	}

	day, _ := recurrence.ParseDate(normalized)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)

	week := make([]DaySummary, 0, 7)
	for i := 0; i < 7; i++ {
		date := recurrence.FormatDate(monday.AddDate(0, 0, i))
		week = append(week, Summarize(s.evaluator, medicines, date, tab))
	}
	return week, nil
}

// MonthSummary 返回整月每天的统计与饮水进度
func (s *CalendarService) MonthSummary(year, month int, tab string) (MonthSummary, error) {
	if year < 1 || month < 1 || month > 12 {
		return MonthSummary{}, fmt.Errorf("%w: %04d-%02d", ErrInvalidDate, year, month)
	}

	medicines, err := s.repo.Medicines()
	if err != nil {
		return MonthSummary{}, fmt.Errorf("summarize month: %w", err)
	}
	intake, err := s.water.Intake()
	if err != nil {
		return MonthSummary{}, fmt.Errorf("summarize month: %w", err)
	}

	first := time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC)
	summary := MonthSummary{Year: year, Month: month, Tab: tab}
	for current := first; current.Month() == first.Month(); current = current.AddDate(0, 0, 1) {
		date := recurrence.FormatDate(current)
		summary.Days = append(summary.Days, MonthDay{
			DaySummary: Summarize(s.evaluator, medicines, date, tab),
			Water:      s.water.progress(intake, date),
		})
	}
	return summary, nil
}
