package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/model"
	"github.com/medreminder/internal/recurrence"
	"github.com/medreminder/internal/store"
)

// ErrInvalidTab 在分类标签未知时返回
var ErrInvalidTab = errors.New("invalid category tab")

// SessionService 保存界面状态：最近查看的日期与当前分类
type SessionService struct {
	repo *store.Repository
	bus  events.Bus
	now  func() time.Time
	loc  *time.Location
}

// NewSessionService 构造 SessionService，loc 决定“今天”的边界
func NewSessionService(repo *store.Repository, bus events.Bus, loc *time.Location) *SessionService {
	if loc == nil {
		loc = time.Local
	}
	return &SessionService{repo: repo, bus: bus, now: time.Now, loc: loc}
}

// Today 返回当前时区下的日期
func (s *SessionService) Today() string {
	return recurrence.FormatDate(recurrence.Today(s.now(), s.loc))
}

// SelectedDate 返回最近查看的日期，未保存或格式错误时返回今天
func (s *SessionService) SelectedDate() (string, error) {
	stored, ok, err := s.repo.SelectedDate()
	if err != nil {
		return "", fmt.Errorf("get selected date: %w", err)
	}
	if !ok {
		return s.Today(), nil
	}
	normalized, err := normalizeDate(stored)
	if err != nil {
		return s.Today(), nil
	}
	return normalized, nil
}

// SelectDate 保存日期并依次发布 dateSelected 与 forceRefresh
func (s *SessionService) SelectDate(date string) (string, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetSelectedDate(normalized); err != nil {
		return "", fmt.Errorf("select date: %w", err)
	}

	s.bus.Publish(events.TopicDateSelected, map[string]string{"date": normalized})
	s.bus.Publish(events.TopicForceRefresh, nil)
	return normalized, nil
}

// SelectTab 切换分类并通知日历与列表
func (s *SessionService) SelectTab(tab string) (string, error) {
	normalized, err := ParseTab(tab)
	if err != nil {
		return "", err
	}

	payload := map[string]string{"tab": normalized}
	s.bus.Publish(events.TopicTabChanged, payload)
	s.bus.Publish(events.TopicCategoryTabChanged, payload)
	return normalized, nil
}

// ParseTab 校验分类标签，空值回退为 medicine
func ParseTab(raw string) (string, error) {
	tab := strings.ToLower(strings.TrimSpace(raw))
	switch tab {
	case "":
		return model.TabMedicine, nil
	case model.TabMedicine, model.TabInjection, model.TabWater:
		return tab, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTab, raw)
}
