package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MedicineType 是药品类别，取值为封闭集合
type MedicineType string

const (
	TypeMedicine  MedicineType = "medicine"
	TypeInjection MedicineType = "injection"
	TypeTablet    MedicineType = "tablet"
	TypeOther     MedicineType = "other"
)

// Valid 判断类别是否属于封闭集合
func (t MedicineType) Valid() bool {
	switch t {
	case TypeMedicine, TypeInjection, TypeTablet, TypeOther:
		return true
	}
	return false
}

// ParseMedicineType 将输入规范化为 MedicineType，空值回退为 medicine
func ParseMedicineType(raw string) (MedicineType, error) {
	trimmed := MedicineType(strings.ToLower(strings.TrimSpace(raw)))
	if trimmed == "" {
		return TypeMedicine, nil
	}
	if !trimmed.Valid() {
		return "", fmt.Errorf("unsupported medicine type %q", raw)
	}
	return trimmed, nil
}

// Category tabs shown by the list and calendar views.
const (
	TabMedicine  = "medicine"
	TabInjection = "injection"
	TabWater     = "water"
)

// InTab reports whether a medicine of this type belongs to the category tab.
// tablet/other are synonyms of medicine; unknown types fall back to medicine.
func (t MedicineType) InTab(tab string) bool {
	switch tab {
	case TabMedicine:
		return t != TypeInjection
	case TabInjection:
		return t == TypeInjection
	default:
		return false
	}
}

// Schedule 为单个服药时段
// Time 为自由文本标签（如 "After Breakfast" 或 "Monday"），不是时钟时间
// SlotID 为稳定标识，用于在时段被重排或删除后重新对齐历史打卡记录
type Schedule struct {
	Time   string `json:"time"`
	Color  string `json:"color,omitempty"`
	SlotID string `json:"slotId,omitempty"`
}

// Medicine 是持久化在 medicines 键下的聚合根
type Medicine struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Type         MedicineType `json:"type"`
	IconType     string       `json:"iconType,omitempty"`
	IconColor    string       `json:"iconColor,omitempty"`
	Schedules    []Schedule   `json:"schedules"`
	StartDate    string       `json:"startDate,omitempty"`
	Duration     string       `json:"duration,omitempty"`
	Frequency    string       `json:"frequency,omitempty"`
	TakenRecords TakenRecords `json:"takenRecords"`
	Note         string       `json:"note,omitempty"`

	// Extra 保存本结构未声明的字段（如旧版的 waterAmount），写回时原样保留
	Extra map[string]json.RawMessage `json:"-"`
}

// medicineFields has Medicine's layout without its JSON methods.
type medicineFields Medicine

var medicineKeys = []string{
	"id", "name", "type", "iconType", "iconColor", "schedules",
	"startDate", "duration", "frequency", "takenRecords", "note",
}

// UnmarshalJSON decodes the declared fields and keeps every other key in Extra.
func (m *Medicine) UnmarshalJSON(data []byte) error {
	var fields medicineFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range medicineKeys {
		delete(all, key)
	}
	fields.Extra = nil
	if len(all) > 0 {
		fields.Extra = all
	}
	*m = Medicine(fields)
	return nil
}

// MarshalJSON writes the declared fields followed by the preserved unknown keys.
func (m Medicine) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(medicineFields(m))
	if err != nil || len(m.Extra) == 0 {
		return encoded, err
	}
	return MergeJSONObject(encoded, m.Extra)
}

// MergeJSONObject adds extra keys to an encoded object without overriding existing ones.
func MergeJSONObject(encoded []byte, extra map[string]json.RawMessage) ([]byte, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &all); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, exists := all[key]; !exists {
			all[key] = value
		}
	}
	return json.Marshal(all)
}

// Clone returns a deep copy so callers can mutate schedules and records freely.
func (m Medicine) Clone() Medicine {
	out := m
	if m.Schedules != nil {
		out.Schedules = append([]Schedule(nil), m.Schedules...)
	}
	if m.TakenRecords != nil {
		out.TakenRecords = make(TakenRecords, len(m.TakenRecords))
		for date, day := range m.TakenRecords {
			out.TakenRecords[date] = append(TakenDay(nil), day...)
		}
	}
	if m.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(m.Extra))
		for key, value := range m.Extra {
			out.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}
	return out
}

// TakenRecords 以日期字符串（YYYY-MM-DD）为键，记录每个时段是否已服用
type TakenRecords map[string]TakenDay

// TakenDay 是某一天按时段下标对齐的打卡序列。
// 读取时兼容旧版的单个布尔值：true 迁移为 [true]，false 迁移为空序列；写入始终为数组形态。
type TakenDay []bool

// UnmarshalJSON accepts the legacy boolean shape and the slot sequence shape.
// Any other value (number, string, object) is treated as nothing taken.
func (d *TakenDay) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*d = nil
		return nil
	case bytes.Equal(trimmed, []byte("true")):
		*d = TakenDay{true}
		return nil
	case bytes.Equal(trimmed, []byte("false")):
		*d = TakenDay{}
		return nil
	}

	if len(trimmed) == 0 || trimmed[0] != '[' {
		*d = TakenDay{}
		return nil
	}

	var raw []any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("decode taken day: %w", err)
	}

	out := make(TakenDay, len(raw))
	for i, value := range raw {
		// 非布尔元素（null 等）视为未服用
		taken, _ := value.(bool)
		out[i] = taken
	}
	*d = out
	return nil
}

// MarshalJSON always writes the sequence shape.
func (d TakenDay) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]bool(d))
}

// MarshalJSON writes an empty object instead of null for medicines without records.
func (r TakenRecords) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]TakenDay(r))
}
