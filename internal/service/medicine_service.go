package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/ledger"
	"github.com/medreminder/internal/locale"
	"github.com/medreminder/internal/model"
	"github.com/medreminder/internal/recurrence"
	"github.com/medreminder/internal/store"
)

var (
	// ErrMedicineNotFound 在指定药品不存在时返回
	ErrMedicineNotFound = errors.New("medicine not found")
	// ErrInvalidMedicineInput 在表单数据不完整时返回
	ErrInvalidMedicineInput = errors.New("invalid medicine input")
	// ErrInvalidScheduleIndex 在时段下标越界时返回
	ErrInvalidScheduleIndex = errors.New("invalid schedule index")
)

const (
	defaultIconType      = "pill"
	defaultScheduleColor = "bg-indigo-100 text-indigo-800"
)

// MedicineService 负责药品的增删改查与服药打卡
// 所有写操作都经过 Repository 的原子更新，并在成功后发布 medicineStatusChanged
type MedicineService struct {
	repo      *store.Repository
	bus       events.Bus
	evaluator recurrence.Evaluator
}

// MedicineInput 定义新增药品时可配置的字段
type MedicineInput struct {
	Name      string
	Type      string
	IconType  string
	IconColor string
	Schedules []string
	StartDate string
	Duration  string
	Frequency string
	Note      string
}

// ScheduleInput 定义修改疗程时可配置的字段
type ScheduleInput struct {
	StartDate string
	Duration  string
	Frequency string
}

// DayMedicine 是某一天列表中的一项，附带各时段的打卡状态
type DayMedicine struct {
	model.Medicine
	Taken    []bool `json:"taken"`
	AllTaken bool   `json:"allTaken"`
}

type dayStatus struct {
	Taken    []bool `json:"taken"`
	AllTaken bool   `json:"allTaken"`
}

// MarshalJSON flattens the medicine and its day status into one object.
func (d DayMedicine) MarshalJSON() ([]byte, error) {
	medicine, err := json.Marshal(d.Medicine)
	if err != nil {
		return nil, err
	}
	status, err := json.Marshal(dayStatus{Taken: d.Taken, AllTaken: d.AllTaken})
	if err != nil {
		return nil, err
	}
	var extra map[string]json.RawMessage
	if err := json.Unmarshal(status, &extra); err != nil {
		return nil, err
	}
	return model.MergeJSONObject(medicine, extra)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (d *DayMedicine) UnmarshalJSON(data []byte) error {
	var status dayStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &d.Medicine); err != nil {
		return err
	}
	delete(d.Medicine.Extra, "taken")
	delete(d.Medicine.Extra, "allTaken")
	if len(d.Medicine.Extra) == 0 {
		d.Medicine.Extra = nil
	}
	d.Taken = status.Taken
	d.AllTaken = status.AllTaken
	return nil
}

// MedicineDetail 是详情页所需的数据
type MedicineDetail struct {
	Medicine      model.Medicine    `json:"medicine"`
	Date          string            `json:"date"`
	Visible       bool              `json:"visible"`
	Reason        recurrence.Reason `json:"reason"`
	Message       string            `json:"message,omitempty"`
	StartDate     string            `json:"startDate,omitempty"`
	EndDate       string            `json:"endDate,omitempty"`
	DurationDays  int               `json:"durationDays,omitempty"`
	NextDose      string            `json:"nextDose,omitempty"`
	DaysUntilNext int               `json:"daysUntilNext,omitempty"`
	Taken         []bool            `json:"taken"`
	Labels        DetailLabels      `json:"labels"`
}

// DetailLabels 为详情页的本地化标签
type DetailLabels struct {
	Slots     []string `json:"slots"`
	Duration  string   `json:"duration"`
	Frequency string   `json:"frequency"`
}

// NewMedicineService 构造 MedicineService，使用统一的排期判定
func NewMedicineService(repo *store.Repository, bus events.Bus) *MedicineService {
	return &MedicineService{repo: repo, bus: bus, evaluator: recurrence.Canonical}
}

// List 返回全部药品
func (s *MedicineService) List() ([]model.Medicine, error) {
	medicines, err := s.repo.Medicines()
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	return medicines, nil
}

// Get 根据 ID 获取药品
func (s *MedicineService) Get(id int) (*model.Medicine, error) {
	medicines, err := s.repo.Medicines()
	if err != nil {
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	index := indexOf(medicines, id)
	if index < 0 {
		return nil, ErrMedicineNotFound
	}
	medicine := medicines[index]
	return &medicine, nil
}

// Create 新建药品，ID 为现有最大 ID 加一
func (s *MedicineService) Create(input MedicineInput) (*model.Medicine, error) {
	medicine, err := buildMedicine(input)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.UpdateMedicines(func(list []model.Medicine) ([]model.Medicine, error) {
		maxID := 0
		for _, existing := range list {
			if existing.ID > maxID {
				maxID = existing.ID
			}
		}
		medicine.ID = maxID + 1
		return append(list, medicine), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create medicine: %w", err)
	}

	s.notify()
	return s.Get(medicine.ID)
}

func buildMedicine(input MedicineInput) (model.Medicine, error) {
	name := cleanText(input.Name)
	if name == "" {
		return model.Medicine{}, fmt.Errorf("%w: name is required", ErrInvalidMedicineInput)
	}

	medicineType, err := model.ParseMedicineType(input.Type)
	if err != nil {
		return model.Medicine{}, fmt.Errorf("%w: %v", ErrInvalidMedicineInput, err)
	}

	duration := cleanText(input.Duration)
	if duration == "" {
		return model.Medicine{}, fmt.Errorf("%w: duration is required", ErrInvalidMedicineInput)
	}
	frequency := cleanText(input.Frequency)
	if frequency == "" && !recurrence.IsOneDay(duration) {
		return model.Medicine{}, fmt.Errorf("%w: frequency is required", ErrInvalidMedicineInput)
	}

	startDate := ""
	if input.StartDate != "" {
		if startDate, err = normalizeDate(input.StartDate); err != nil {
			return model.Medicine{}, err
		}
	}

	iconType := cleanText(input.IconType)
	if iconType == "" {
		iconType = defaultIconType
	}

	schedules := make([]model.Schedule, 0, len(input.Schedules))
	seen := make(map[string]struct{}, len(input.Schedules))
	for _, raw := range input.Schedules {
		label := cleanText(raw)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		schedules = append(schedules, model.Schedule{Time: label, Color: defaultScheduleColor})
	}

	return model.Medicine{
		Name:         name,
		Type:         medicineType,
		IconType:     iconType,
		IconColor:    cleanText(input.IconColor),
		Schedules:    schedules,
		StartDate:    startDate,
		Duration:     duration,
		Frequency:    frequency,
		TakenRecords: model.TakenRecords{},
		Note:         cleanText(input.Note),
	}, nil
}

// UpdateSchedule 修改开始日期、疗程与频率
func (s *MedicineService) UpdateSchedule(id int, input ScheduleInput) (*model.Medicine, error) {
	startDate := ""
	if input.StartDate != "" {
		var err error
		if startDate, err = normalizeDate(input.StartDate); err != nil {
			return nil, err
		}
	}

	updated, err := s.mutate(id, func(medicine *model.Medicine) error {
		medicine.StartDate = startDate
		medicine.Duration = cleanText(input.Duration)
		medicine.Frequency = cleanText(input.Frequency)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update medicine schedule: %w", err)
	}
	return updated, nil
}

// UpdateSchedules 替换时段列表，并按时段 ID 重新对齐历史打卡记录
func (s *MedicineService) UpdateSchedules(id int, schedules []model.Schedule) (*model.Medicine, error) {
	next := make([]model.Schedule, 0, len(schedules))
	slotIDs := make(map[string]struct{}, len(schedules))
	for _, schedule := range schedules {
		label := cleanText(schedule.Time)
		if label == "" {
			return nil, fmt.Errorf("%w: schedule time is required", ErrInvalidMedicineInput)
		}
		color := cleanText(schedule.Color)
		if color == "" {
			color = defaultScheduleColor
		}
		slotID := cleanText(schedule.SlotID)
		if slotID != "" {
			if _, dup := slotIDs[slotID]; dup {
				return nil, fmt.Errorf("%w: duplicate slot id %q", ErrInvalidMedicineInput, slotID)
			}
			slotIDs[slotID] = struct{}{}
		}
		next = append(next, model.Schedule{Time: label, Color: color, SlotID: slotID})
	}

	updated, err := s.mutate(id, func(medicine *model.Medicine) error {
		medicine.TakenRecords = ledger.Realign(medicine.TakenRecords, medicine.Schedules, next)
		medicine.Schedules = next
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update medicine schedules: %w", err)
	}
	return updated, nil
}

// Delete 删除药品，不可恢复
func (s *MedicineService) Delete(id int) error {
	_, err := s.repo.UpdateMedicines(func(list []model.Medicine) ([]model.Medicine, error) {
		index := indexOf(list, id)
		if index < 0 {
			return nil, ErrMedicineNotFound
		}
		return append(list[:index], list[index+1:]...), nil
	})
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}

	s.notify()
	return nil
}

// ToggleTaken 翻转某日某时段的服用状态
func (s *MedicineService) ToggleTaken(id int, date string, scheduleIndex int) (*model.Medicine, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}

	updated, err := s.mutate(id, func(medicine *model.Medicine) error {
		if scheduleIndex < 0 || scheduleIndex >= len(medicine.Schedules) {
			return fmt.Errorf("%w: %d", ErrInvalidScheduleIndex, scheduleIndex)
		}
		*medicine = ledger.Toggle(*medicine, normalized, scheduleIndex)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle taken: %w", err)
	}
	return updated, nil
}

// ForDate 返回某天在指定分类下应显示的药品
func (s *MedicineService) ForDate(date, tab string) ([]DayMedicine, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}

	medicines, err := s.repo.Medicines()
	if err != nil {
		return nil, fmt.Errorf("list medicines for date: %w", err)
	}

	items := make([]DayMedicine, 0, len(medicines))
	for _, medicine := range medicines {
		if tab != "" && !medicine.Type.InTab(tab) {
			continue
		}
		if !s.evaluator.ShouldShow(medicine, normalized) {
			continue
		}

		taken := ledger.Slots(medicine, normalized)
		items = append(items, DayMedicine{
			Medicine: medicine,
			Taken:    taken,
			AllTaken: allTrue(taken),
		})
	}
	return items, nil
}

// Detail 返回详情页数据，包括排期说明与下一次服药日期
func (s *MedicineService) Detail(id int, date, language string) (*MedicineDetail, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}

	medicine, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	status := recurrence.Explain(*medicine, normalized)
	detail := &MedicineDetail{
		Medicine: *medicine,
		Date:     normalized,
		Visible:  status.Visible,
		Reason:   status.Reason,
		Taken:    ledger.Slots(*medicine, normalized),
		Labels:   localizedLabels(*medicine, language),
	}

	if window, ok := recurrence.TreatmentWindow(*medicine); ok {
		detail.StartDate = window.Start
		detail.EndDate = window.End
		if window.Finite {
			detail.DurationDays = window.Days
		}
	}

	switch status.Reason {
	case recurrence.ReasonScheduled:
		if next, ok := recurrence.NextDoseWith(s.evaluator, *medicine, normalized); ok {
			detail.NextDose = next
		}
	case recurrence.ReasonNotStarted:
		detail.Message = locale.StartsOn(language, status.StartDate)
		detail.NextDose = status.NextDose
		detail.DaysUntilNext = status.DaysUntil
	case recurrence.ReasonEnded:
		detail.Message = locale.EndedOn(language, status.EndDate)
	case recurrence.ReasonOffDay:
		detail.NextDose = status.NextDose
		detail.DaysUntilNext = status.DaysUntil
		if status.NextDose != "" {
			detail.Message = locale.NextDoseIn(language, status.DaysUntil)
		} else {
			detail.Message = locale.NoUpcomingDose(language)
		}
	}
	return detail, nil
}

func localizedLabels(medicine model.Medicine, language string) DetailLabels {
	slots := make([]string, len(medicine.Schedules))
	for i, schedule := range medicine.Schedules {
		slots[i] = locale.SlotLabel(language, schedule.Time)
	}
	return DetailLabels{
		Slots:     slots,
		Duration:  locale.DurationLabel(language, medicine.Duration),
		Frequency: locale.FrequencyLabel(language, medicine.Frequency),
	}
}

// mutate applies fn to the medicine with id inside one atomic store update.
func (s *MedicineService) mutate(id int, fn func(*model.Medicine) error) (*model.Medicine, error) {
	saved, err := s.repo.UpdateMedicines(func(list []model.Medicine) ([]model.Medicine, error) {
		index := indexOf(list, id)
		if index < 0 {
			return nil, ErrMedicineNotFound
		}
		if err := fn(&list[index]); err != nil {
			return nil, err
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}

	s.notify()
	result := saved[indexOf(saved, id)]
	return &result, nil
}

func (s *MedicineService) notify() {
	s.bus.Publish(events.TopicMedicineStatusChanged, nil)
}

func indexOf(medicines []model.Medicine, id int) int {
	for i, medicine := range medicines {
		if medicine.ID == id {
			return i
		}
	}
	return -1
}

func allTrue(flags []bool) bool {
	if len(flags) == 0 {
		return false
	}
	for _, flag := range flags {
		if !flag {
			return false
		}
	}
	return true
}
