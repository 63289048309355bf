package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medreminder/internal/db"
	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/handler"
	"github.com/medreminder/internal/router"
	"github.com/medreminder/internal/store"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const baseURL = "http://example.test"

type e2eSuite struct {
	handler http.Handler
	client  *localClient
	hub     *events.Hub
	topics  []string
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler) *localClient {
	jar, _ := cookiejar.New(nil)
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	for _, cookie := range c.jar.Cookies(req.URL) {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	c.jar.SetCookies(req.URL, resp.Cookies())
	return resp, nil
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.StoreEntry{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })

	repo := store.NewRepository(store.NewGormKV(gdb), zerolog.Nop())
	hub := events.NewHub(zerolog.Nop())
	engine := router.SetupRouter(router.Config{
		SessionSecret: "test-session-secret",
		Repository:    repo,
		Hub:           hub,
		Options: handler.Options{
			WaterGoalML:      2000,
			WaterIncrementML: 250,
			DefaultLanguage:  "vi",
			Location:         time.UTC,
		},
		Logger: zerolog.Nop(),
	})

	suite := &e2eSuite{handler: engine, client: newLocalClient(engine), hub: hub}
	hub.SubscribeAll(func(e events.Event) { suite.topics = append(suite.topics, e.Topic) })
	return suite
}

func (s *e2eSuite) request(t *testing.T, method, path string, body interface{}, expected int) map[string]json.RawMessage {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expected {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, path, expected, resp.StatusCode, raw)
	}
	if len(raw) == 0 {
		return nil
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("%s %s: failed to decode %q: %v", method, path, raw, err)
	}
	return out
}

func decodeField(t *testing.T, body map[string]json.RawMessage, key string, dst interface{}) {
	t.Helper()
	raw, ok := body[key]
	if !ok {
		t.Fatalf("response is missing %q", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("failed to decode %q: %v", key, err)
	}
}

func (s *e2eSuite) resetTopics() {
	s.topics = nil
}

func (s *e2eSuite) expectTopics(t *testing.T, want ...string) {
	t.Helper()
	if strings.Join(s.topics, ",") != strings.Join(want, ",") {
		t.Fatalf("expected events %v, got %v", want, s.topics)
	}
	s.resetTopics()
}

func TestE2E_DailyRoutine(t *testing.T) {
	s := newE2ESuite(t)

	t.Run("onboarding", s.testOnboarding)
	t.Run("medicines", s.testMedicines)
	t.Run("calendar and water", s.testCalendarAndWater)
	t.Run("language", s.testLanguage)
}

func (s *e2eSuite) testOnboarding(t *testing.T) {
	var completed bool
	decodeField(t, s.request(t, http.MethodGet, "/api/onboarding", nil, http.StatusOK), "completed", &completed)
	if completed {
		t.Fatal("fresh install should require onboarding")
	}

	s.request(t, http.MethodPost, "/api/onboarding", map[string]interface{}{
		"mealTimes": map[string]string{"breakfast": "06:30", "lunch": "11:30", "dinner": "18:00"},
	}, http.StatusOK)
	s.expectTopics(t, events.TopicProfileChanged)

	decodeField(t, s.request(t, http.MethodGet, "/api/onboarding", nil, http.StatusOK), "completed", &completed)
	if !completed {
		t.Fatal("onboarding should be completed")
	}
}

func (s *e2eSuite) testMedicines(t *testing.T) {
	s.request(t, http.MethodPost, "/api/medicines", map[string]interface{}{
		"name":      "Vitamin D",
		"schedules": []string{"After Breakfast", "After Dinner"},
		"startDate": "2024-02-01",
		"duration":  "1 Week",
		"frequency": "Every 2 days",
		"note":      "Take **with** water",
	}, http.StatusCreated)
	s.expectTopics(t, events.TopicMedicineStatusChanged)

	s.request(t, http.MethodPut, "/api/session/date", map[string]string{"date": "2024-02-03"}, http.StatusOK)
	s.expectTopics(t, events.TopicDateSelected, events.TopicForceRefresh)

	var due []struct {
		ID    int    `json:"id"`
		Taken []bool `json:"taken"`
	}
	decodeField(t, s.request(t, http.MethodGet, "/api/medicines?date=2024-02-03", nil, http.StatusOK), "medicines", &due)
	if len(due) != 1 || len(due[0].Taken) != 2 {
		t.Fatalf("expected one medicine with two slots due, got %+v", due)
	}

	decodeField(t, s.request(t, http.MethodGet, "/api/medicines?date=2024-02-04", nil, http.StatusOK), "medicines", &due)
	if len(due) != 0 {
		t.Fatalf("expected nothing due on an off day, got %+v", due)
	}
	decodeField(t, s.request(t, http.MethodGet, "/api/medicines?date=2024-02-09", nil, http.StatusOK), "medicines", &due)
	if len(due) != 0 {
		t.Fatalf("expected nothing due after the treatment ended, got %+v", due)
	}

	// 未指定日期时按所选日期打卡
	s.request(t, http.MethodPost, "/api/medicines/1/taken", map[string]interface{}{"index": 1}, http.StatusOK)
	s.expectTopics(t, events.TopicMedicineStatusChanged)
	s.request(t, http.MethodPost, "/api/medicines/1/taken", map[string]interface{}{"index": 2}, http.StatusBadRequest)
	s.expectTopics(t)

	decodeField(t, s.request(t, http.MethodGet, "/api/medicines?date=2024-02-03", nil, http.StatusOK), "medicines", &due)
	if due[0].Taken[0] || !due[0].Taken[1] {
		t.Fatalf("expected only the evening slot to be taken, got %v", due[0].Taken)
	}

	var detail struct {
		Visible bool   `json:"visible"`
		Message string `json:"message"`
		EndDate string `json:"endDate"`
	}
	body := s.request(t, http.MethodGet, "/api/medicines/1?date=2024-02-04&lang=en", nil, http.StatusOK)
	decodeField(t, body, "detail", &detail)
	if detail.Visible || detail.Message != "No dose today. Next dose is tomorrow." || detail.EndDate != "2024-02-07" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	var noteHTML string
	decodeField(t, body, "noteHtml", &noteHTML)
	if !strings.Contains(noteHTML, "<strong>with</strong>") {
		t.Fatalf("expected rendered note, got %q", noteHTML)
	}

	s.request(t, http.MethodGet, "/api/medicines/42", nil, http.StatusNotFound)
}

func (s *e2eSuite) testCalendarAndWater(t *testing.T) {
	var summary struct {
		TotalCount       int  `json:"totalCount"`
		CompletedCount   int  `json:"completedCount"`
		UncompletedCount int  `json:"uncompletedCount"`
		AllCompleted     bool `json:"allCompleted"`
	}
	decodeField(t, s.request(t, http.MethodGet, "/api/calendar/day", nil, http.StatusOK), "summary", &summary)
	if summary.TotalCount != 2 || summary.CompletedCount != 1 || summary.AllCompleted {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	s.request(t, http.MethodPost, "/api/medicines/1/taken", map[string]interface{}{"index": 0}, http.StatusOK)
	s.resetTopics()
	decodeField(t, s.request(t, http.MethodGet, "/api/calendar/day", nil, http.StatusOK), "summary", &summary)
	if !summary.AllCompleted {
		t.Fatalf("expected the day to be complete, got %+v", summary)
	}

	var water struct {
		Intake     int `json:"intake"`
		Percentage int `json:"percentage"`
	}
	for i := 0; i < 4; i++ {
		s.request(t, http.MethodPost, "/api/water", nil, http.StatusOK)
	}
	s.expectTopics(t,
		events.TopicWaterIntakeChanged,
		events.TopicWaterIntakeChanged,
		events.TopicWaterIntakeChanged,
		events.TopicWaterIntakeChanged,
	)
	decodeField(t, s.request(t, http.MethodGet, "/api/water", nil, http.StatusOK), "water", &water)
	if water.Intake != 1000 || water.Percentage != 50 {
		t.Fatalf("unexpected water progress: %+v", water)
	}

	var month struct {
		Days []struct {
			Date  string `json:"date"`
			Water struct {
				Intake int `json:"intake"`
			} `json:"water"`
		} `json:"days"`
	}
	decodeField(t, s.request(t, http.MethodGet, "/api/calendar/month", nil, http.StatusOK), "month", &month)
	if len(month.Days) != 29 || month.Days[2].Water.Intake != 1000 {
		t.Fatalf("unexpected February summary: %d days", len(month.Days))
	}
}

func (s *e2eSuite) testLanguage(t *testing.T) {
	var language string
	decodeField(t, s.request(t, http.MethodGet, "/api/session/language", nil, http.StatusOK), "language", &language)
	if language != "vi" {
		t.Fatalf("expected default language vi, got %s", language)
	}

	s.request(t, http.MethodPut, "/api/session/language", map[string]string{"language": "en-US"}, http.StatusOK)

	var detail struct {
		Message string `json:"message"`
	}
	decodeField(t, s.request(t, http.MethodGet, "/api/medicines/1?date=2024-02-01", nil, http.StatusOK), "detail", &detail)
	if detail.Message != "" {
		t.Fatalf("expected no message on a dose day, got %q", detail.Message)
	}
	decodeField(t, s.request(t, http.MethodGet, "/api/medicines/1?date=2024-02-10", nil, http.StatusOK), "detail", &detail)
	if detail.Message != "Treatment for this medicine ended on 2024-02-07" {
		t.Fatalf("expected English message from the session language, got %q", detail.Message)
	}
}
