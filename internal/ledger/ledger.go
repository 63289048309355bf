// Package ledger records which scheduled dose slots were taken on each date.
package ledger

import (
	"github.com/medreminder/internal/model"
)

// IsTaken 返回某日某时段是否已服用；下标越界或记录不存在时为 false
func IsTaken(medicine model.Medicine, date string, scheduleIndex int) bool {
	if scheduleIndex < 0 {
		return false
	}
	day := medicine.TakenRecords[date]
	if scheduleIndex >= len(day) {
		return false
	}
	return day[scheduleIndex]
}

// Toggle 翻转某日某时段的服用状态并返回更新后的副本，入参不会被修改。
// 当日序列长度不足时以 false 补齐到 scheduleIndex+1。
func Toggle(medicine model.Medicine, date string, scheduleIndex int) model.Medicine {
	updated := medicine.Clone()
	if scheduleIndex < 0 {
		return updated
	}
	if updated.TakenRecords == nil {
		updated.TakenRecords = model.TakenRecords{}
	}

	day := updated.TakenRecords[date]
	for len(day) <= scheduleIndex {
		day = append(day, false)
	}
	day[scheduleIndex] = !day[scheduleIndex]
	updated.TakenRecords[date] = day

	return updated
}

// Completed counts the taken slots recorded for date.
func Completed(medicine model.Medicine, date string) int {
	count := 0
	for _, taken := range medicine.TakenRecords[date] {
		if taken {
			count++
		}
	}
	return count
}

// Slots returns the taken flag for each schedule slot on date.
func Slots(medicine model.Medicine, date string) []bool {
	out := make([]bool, len(medicine.Schedules))
	for i := range out {
		out[i] = IsTaken(medicine, date, i)
	}
	return out
}

// Realign rewrites every recorded day so that columns follow the new schedule
// order. Slots are matched by SlotID; columns for removed slots are dropped and
// added slots start untaken. Schedules without a SlotID on either side keep
// their positional column.
func Realign(records model.TakenRecords, previous, next []model.Schedule) model.TakenRecords {
	if records == nil {
		return nil
	}

	previousIndex := make(map[string]int, len(previous))
	for i, schedule := range previous {
		if schedule.SlotID != "" {
			previousIndex[schedule.SlotID] = i
		}
	}

	source := make([]int, len(next))
	for i, schedule := range next {
		source[i] = -1
		if schedule.SlotID != "" {
			if old, ok := previousIndex[schedule.SlotID]; ok {
				source[i] = old
			}
			continue
		}
		if i < len(previous) && previous[i].SlotID == "" {
			source[i] = i
		}
	}

	out := make(model.TakenRecords, len(records))
	for date, day := range records {
		realigned := make(model.TakenDay, len(next))
		for i, old := range source {
			if old >= 0 && old < len(day) {
				realigned[i] = day[old]
			}
		}
		out[date] = realigned
	}
	return out
}
