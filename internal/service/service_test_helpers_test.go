package service

import (
	"sync"
	"testing"

	"github.com/medreminder/internal/db"
	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/store"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.StoreEntry{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// recorder collects every published topic in order.
type recorder struct {
	mu     sync.Mutex
	topics []string
	events []events.Event
}

func (r *recorder) handle(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, e.Topic)
	r.events = append(r.events, e)
}

func (r *recorder) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.topics...)
}

func newTestRepository(t *testing.T) (*store.Repository, *events.Hub, *recorder) {
	t.Helper()
	cleanup := setupServiceTestDB(t)
	t.Cleanup(cleanup)

	hub := events.NewHub(zerolog.Nop())
	rec := &recorder{}
	hub.SubscribeAll(rec.handle)

	return store.NewRepository(store.NewGormKV(db.DB), zerolog.Nop()), hub, rec
}
