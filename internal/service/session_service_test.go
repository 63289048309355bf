package service

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/medreminder/internal/db"
	"github.com/medreminder/internal/events"
)

func TestSessionServiceSelectedDateDefaultsToToday(t *testing.T) {
	repo, hub, _ := newTestRepository(t)
	loc := time.FixedZone("ICT", 7*60*60)
	svc := NewSessionService(repo, hub, loc)
	// 2024-03-09 20:30 UTC is already 2024-03-10 in UTC+7
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 20, 30, 0, 0, time.UTC) }

	date, err := svc.SelectedDate()
	if err != nil {
		t.Fatalf("SelectedDate returned error: %v", err)
	}
	if date != "2024-03-10" {
		t.Fatalf("expected 2024-03-10, got %s", date)
	}
}

func TestSessionServiceSelectDate(t *testing.T) {
	repo, hub, rec := newTestRepository(t)
	svc := NewSessionService(repo, hub, time.UTC)

	if _, err := svc.SelectDate("2024-02-30"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	date, err := svc.SelectDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("SelectDate returned error: %v", err)
	}
	if date != "2024-02-29" {
		t.Fatalf("unexpected normalized date %q", date)
	}
	if stored, _ := svc.SelectedDate(); stored != "2024-02-29" {
		t.Fatalf("expected stored date, got %s", stored)
	}

	want := []string{events.TopicDateSelected, events.TopicForceRefresh}
	if got := rec.Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if payload, ok := rec.events[0].Payload.(map[string]string); !ok || payload["date"] != "2024-02-29" {
		t.Fatalf("unexpected dateSelected payload: %#v", rec.events[0].Payload)
	}
}

func TestSessionServiceIgnoresCorruptStoredDate(t *testing.T) {
	repo, hub, _ := newTestRepository(t)
	svc := NewSessionService(repo, hub, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	if err := db.DB.Create(&db.StoreEntry{Key: db.KeySelectedDate, Value: "garbage"}).Error; err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	if date, _ := svc.SelectedDate(); date != "2024-06-01" {
		t.Fatalf("expected fallback to today, got %s", date)
	}
}

func TestSessionServiceSelectTab(t *testing.T) {
	repo, hub, rec := newTestRepository(t)
	svc := NewSessionService(repo, hub, time.UTC)

	tab, err := svc.SelectTab("Injection")
	if err != nil {
		t.Fatalf("SelectTab returned error: %v", err)
	}
	if tab != "injection" {
		t.Fatalf("unexpected tab %q", tab)
	}
	want := []string{events.TopicTabChanged, events.TopicCategoryTabChanged}
	if got := rec.Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := svc.SelectTab("vitamins"); !errors.Is(err, ErrInvalidTab) {
		t.Fatalf("expected ErrInvalidTab, got %v", err)
	}
	if tab, _ := ParseTab(""); tab != "medicine" {
		t.Fatalf("expected empty tab to default to medicine, got %q", tab)
	}
}
