// Package mealdbtest provides an in-process TheMealDB fake and a mock client
// for tests.
package mealdbtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/wesm/recipeideas/internal/mealdb"
)

// Server is an httptest-backed fake of the filter and lookup endpoints.
// Unknown ingredients and ids answer {"meals": null}, as the real API does.
type Server struct {
	*httptest.Server

	mu sync.Mutex

	// Filters maps a lowercase ingredient to its summaries.
	Filters map[string][]mealdb.MealSummary

	// Meals maps an id to its full record.
	Meals map[string]mealdb.MealDetail

	// RawBodies overrides the response body for a request path plus query,
	// e.g. "/filter.php?i=egg".
	RawBodies map[string]string

	// Status, when non-zero, is returned for every request.
	Status int

	// Requests records each path plus raw query in arrival order.
	Requests []string
}

// NewServer starts a fake server and registers its shutdown with t.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		Filters:   make(map[string][]mealdb.MealSummary),
		Meals:     make(map[string]mealdb.MealDetail),
		RawBodies: make(map[string]string),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// AddMeal registers detail for lookup and lists its summary under each ingredient.
func (s *Server) AddMeal(detail mealdb.MealDetail, ingredients ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Meals[detail.ID] = detail
	for _, ing := range ingredients {
		key := strings.ToLower(ing)
		s.Filters[key] = append(s.Filters[key], detail.Summary())
	}
}

// SetRawBody makes requests matching pathAndQuery answer body verbatim.
func (s *Server) SetRawBody(pathAndQuery, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RawBodies[pathAndQuery] = body
}

// SetStatus makes every request fail with code. Zero restores normal behavior.
func (s *Server) SetStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = code
}

// RequestLog returns a copy of the recorded requests.
func (s *Server) RequestLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.URL.Path
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.RawQuery
	}
	s.Requests = append(s.Requests, key)

	if s.Status != 0 {
		http.Error(w, http.StatusText(s.Status), s.Status)
		return
	}
	if body, ok := s.RawBodies[key]; ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
		return
	}

	value := r.URL.Query().Get("i")
	var meals any
	switch {
	case strings.HasSuffix(r.URL.Path, "/filter.php"):
		if list, ok := s.Filters[strings.ToLower(value)]; ok {
			meals = list
		}
	case strings.HasSuffix(r.URL.Path, "/lookup.php"):
		if detail, ok := s.Meals[value]; ok {
			meals = []mealdb.MealDetail{detail}
		}
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"meals": meals})
}
