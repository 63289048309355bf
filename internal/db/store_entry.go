package db

import "gorm.io/gorm"

// StoreEntry 是本地键值存储中的一条记录，Value 保存原始字符串（通常为 JSON）。
type StoreEntry struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (StoreEntry) TableName() string {
	return "store_entries"
}

const (
	// KeyMedicines 保存药品数组。
	KeyMedicines = "medicines"
	// KeyWaterIntake 保存日期到饮水毫升数的映射。
	KeyWaterIntake = "waterIntake"
	// KeyUserProfile 保存用户资料。
	KeyUserProfile = "userProfile"
	// KeySelectedDate 保存最近一次查看的日期（纯字符串，非 JSON）。
	KeySelectedDate = "selectedDate"
	// KeyOnboardingCompleted 完成引导后为字符串 "true"。
	KeyOnboardingCompleted = "onboardingCompleted"
)
