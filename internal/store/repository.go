package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/medreminder/internal/db"
	"github.com/medreminder/internal/model"
	"github.com/rs/zerolog"
)

const onboardingDoneValue = "true"

// ErrCorruptValue 表示存储中的值无法解析；读取时按缺失处理，但拒绝在其上覆盖写入
var ErrCorruptValue = errors.New("stored value is corrupt")

// Repository 封装各个命名键的序列化与旧格式迁移，业务层不直接接触原始存储。
// Update* 方法在持有互斥锁期间完成“读-改-写”，保证并发写入不会交错。
type Repository struct {
	kv  KV
	log zerolog.Logger
	mu  sync.Mutex
}

// NewRepository 构造 Repository
func NewRepository(kv KV, logger zerolog.Logger) *Repository {
	return &Repository{kv: kv, log: logger.With().Str("component", "store").Logger()}
}

// Medicines 读取药品列表；值缺失或 JSON 损坏时返回空列表
func (r *Repository) Medicines() ([]model.Medicine, error) {
	medicines, _, err := readJSON[[]model.Medicine](r, db.KeyMedicines)
	if err != nil {
		return nil, err
	}
	if medicines == nil {
		medicines = []model.Medicine{}
	}
	return medicines, nil
}

// SaveMedicines 覆盖写入药品列表
func (r *Repository) SaveMedicines(medicines []model.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveMedicines(medicines)
}

// UpdateMedicines 以原子方式读取、修改并写回药品列表
func (r *Repository) UpdateMedicines(fn func([]model.Medicine) ([]model.Medicine, error)) ([]model.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, _, err := loadJSON[[]model.Medicine](r, db.KeyMedicines)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = []model.Medicine{}
	}
	updated, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := r.saveMedicines(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) saveMedicines(medicines []model.Medicine) error {
	if medicines == nil {
		medicines = []model.Medicine{}
	}
	for i := range medicines {
		assignSlotIDs(medicines[i].Schedules)
	}
	return r.writeJSON(db.KeyMedicines, medicines)
}

// assignSlotIDs gives every schedule without one a stable identifier.
func assignSlotIDs(schedules []model.Schedule) {
	for i := range schedules {
		if schedules[i].SlotID == "" {
			schedules[i].SlotID = uuid.NewString()
		}
	}
}

// WaterIntake 读取饮水记录
func (r *Repository) WaterIntake() (model.WaterIntake, error) {
	intake, _, err := readJSON[model.WaterIntake](r, db.KeyWaterIntake)
	if err != nil {
		return nil, err
	}
	if intake == nil {
		intake = model.WaterIntake{}
	}
	return intake, nil
}

// SaveWaterIntake 覆盖写入饮水记录
func (r *Repository) SaveWaterIntake(intake model.WaterIntake) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeJSON(db.KeyWaterIntake, intake)
}

// UpdateWaterIntake 以原子方式修改饮水记录
func (r *Repository) UpdateWaterIntake(fn func(model.WaterIntake) error) (model.WaterIntake, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	intake, _, err := loadJSON[model.WaterIntake](r, db.KeyWaterIntake)
	if err != nil {
		return nil, err
	}
	if intake == nil {
		intake = model.WaterIntake{}
	}
	if err := fn(intake); err != nil {
		return nil, err
	}
	if err := r.writeJSON(db.KeyWaterIntake, intake); err != nil {
		return nil, err
	}
	return intake, nil
}

// Profile 读取用户资料；ok 为 false 表示尚未保存过（或数据损坏）
func (r *Repository) Profile() (model.UserProfile, bool, error) {
	return readJSON[model.UserProfile](r, db.KeyUserProfile)
}

// SaveProfile 写入用户资料
func (r *Repository) SaveProfile(profile model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeJSON(db.KeyUserProfile, profile)
}

// SelectedDate 读取最近查看的日期（纯字符串）
func (r *Repository) SelectedDate() (string, bool, error) {
	raw, ok, err := r.kv.Get(db.KeySelectedDate)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", db.KeySelectedDate, err)
	}
	raw = strings.TrimSpace(raw)
	return raw, ok && raw != "", nil
}

// SetSelectedDate 保存最近查看的日期
func (r *Repository) SetSelectedDate(date string) error {
	if err := r.kv.Set(db.KeySelectedDate, date); err != nil {
		return fmt.Errorf("write %s: %w", db.KeySelectedDate, err)
	}
	return nil
}

// OnboardingCompleted 判断是否已完成引导
func (r *Repository) OnboardingCompleted() (bool, error) {
	raw, ok, err := r.kv.Get(db.KeyOnboardingCompleted)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", db.KeyOnboardingCompleted, err)
	}
	return ok && raw == onboardingDoneValue, nil
}

// CompleteOnboarding 标记引导已完成
func (r *Repository) CompleteOnboarding() error {
	if err := r.kv.Set(db.KeyOnboardingCompleted, onboardingDoneValue); err != nil {
		return fmt.Errorf("write %s: %w", db.KeyOnboardingCompleted, err)
	}
	return nil
}

// readJSON decodes the value stored under key. Missing keys and malformed
// values both yield the zero value with ok=false; malformed values are logged.
func readJSON[T any](r *Repository, key string) (T, bool, error) {
	value, ok, err := loadJSON[T](r, key)
	if errors.Is(err, ErrCorruptValue) {
		r.log.Warn().Err(err).Str("key", key).Msg("discarding malformed stored value")
		var zero T
		return zero, false, nil
	}
	return value, ok, err
}

// loadJSON is readJSON for read-modify-write paths: a malformed value is an
// ErrCorruptValue error so the caller never overwrites it.
func loadJSON[T any](r *Repository, key string) (T, bool, error) {
	var value T
	raw, ok, err := r.kv.Get(key)
	if err != nil {
		return value, false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return value, false, nil
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		var zero T
		return zero, false, fmt.Errorf("%w: %s: %v", ErrCorruptValue, key, err)
	}
	return value, true, nil
}

func (r *Repository) writeJSON(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Set(key, string(encoded)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
