// Package store persists application state as named JSON values in a local
// key-value store and exposes a typed repository over it.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/medreminder/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV 是同步的按键读写存储
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// GormKV 基于 gorm 的 store_entries 表实现 KV
type GormKV struct {
	db *gorm.DB
}

// NewGormKV 构造 GormKV
func NewGormKV(gdb *gorm.DB) *GormKV {
	return &GormKV{db: gdb}
}

// Get 读取键值，不存在时 ok 为 false
func (s *GormKV) Get(key string) (string, bool, error) {
	var entry db.StoreEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get store entry %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set 写入键值，已存在时覆盖
func (s *GormKV) Set(key, value string) error {
	entry := db.StoreEntry{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error; err != nil {
		return fmt.Errorf("set store entry %s: %w", key, err)
	}
	return nil
}

// Delete 删除键，键不存在时不报错
func (s *GormKV) Delete(key string) error {
	if err := s.db.Unscoped().Where("key = ?", key).Delete(&db.StoreEntry{}).Error; err != nil {
		return fmt.Errorf("delete store entry %s: %w", key, err)
	}
	return nil
}

// MemoryKV 是进程内的 KV 实现，用于测试与临时运行
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV 构造空的 MemoryKV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (s *MemoryKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
