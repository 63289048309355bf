package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/medreminder/internal/events"
)

func TestSelectedDateEndpoints(t *testing.T) {
	s := newTestServer(t)

	var resp struct {
		Date  string `json:"date"`
		Today string `json:"today"`
	}
	rr := s.do(t, http.MethodGet, "/api/session/date", nil)
	expectStatus(t, rr, http.StatusOK)
	decodeBody(t, rr, &resp)
	if resp.Date == "" || resp.Date != resp.Today {
		t.Fatalf("expected selected date to default to today, got %+v", resp)
	}

	expectStatus(t, s.do(t, http.MethodPut, "/api/session/date", map[string]string{"date": "2024-13-01"}), http.StatusBadRequest)
	expectStatus(t, s.do(t, http.MethodPut, "/api/session/date", map[string]string{"date": "2024-12-01"}), http.StatusOK)

	rr = s.do(t, http.MethodGet, "/api/session/date", nil)
	decodeBody(t, rr, &resp)
	if resp.Date != "2024-12-01" {
		t.Fatalf("expected stored date, got %s", resp.Date)
	}
}

func TestSelectTabEndpoint(t *testing.T) {
	s := newTestServer(t)

	var topics []string
	s.hub.SubscribeAll(func(e events.Event) { topics = append(topics, e.Topic) })

	expectStatus(t, s.do(t, http.MethodPut, "/api/session/tab", map[string]string{"tab": "water"}), http.StatusOK)
	expectStatus(t, s.do(t, http.MethodPut, "/api/session/tab", map[string]string{"tab": "snacks"}), http.StatusBadRequest)

	if strings.Join(topics, ",") != "tabChanged,categoryTabChanged" {
		t.Fatalf("unexpected events: %v", topics)
	}
}

func TestLanguageSessionRoundTrip(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/api/session/language", strings.NewReader(`{"language":"vi"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusOK)

	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/session/language", nil)
	req.Header.Set("Accept-Language", "en-US")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr = httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"language":"vi"`) {
		t.Fatalf("expected session language to win over Accept-Language, got %s", rr.Body.String())
	}
	if rr.Header().Get("Content-Language") != "vi-VN" {
		t.Fatalf("unexpected Content-Language %q", rr.Header().Get("Content-Language"))
	}

	rr = s.do(t, http.MethodGet, "/api/session/language", nil)
	if !strings.Contains(rr.Body.String(), `"language":"en"`) {
		t.Fatalf("expected configured default language, got %s", rr.Body.String())
	}

	expectStatus(t, s.do(t, http.MethodPut, "/api/session/language", map[string]string{"language": "fr"}), http.StatusBadRequest)
}
