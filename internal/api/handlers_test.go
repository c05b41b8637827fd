package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/wesm/recipeideas/internal/config"
	"github.com/wesm/recipeideas/internal/mealdb"
	"github.com/wesm/recipeideas/internal/mealdb/mealdbtest"
	"github.com/wesm/recipeideas/internal/recipes"
	"github.com/wesm/recipeideas/internal/testutil"
)

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestHandlePopular(t *testing.T) {
	cfg := &config.Config{Search: config.SearchConfig{Popular: []string{"chicken", "egg"}}}
	srv := newTestServer(t, cfg, newMockSource())

	w := do(srv, httptest.NewRequest("GET", "/api/v1/popular", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeJSON[PopularResponse](t, w)
	testutil.AssertStrings(t, resp.Ingredients, "chicken", "egg")
}

func TestHandlePopularEmpty(t *testing.T) {
	srv := newTestServer(t, nil, newMockSource())

	w := do(srv, httptest.NewRequest("GET", "/api/v1/popular", nil))
	if !strings.Contains(w.Body.String(), `"ingredients":[]`) {
		t.Errorf("body = %s, want empty array", w.Body.String())
	}
}

func TestHandleSearchRecipes(t *testing.T) {
	mock := newMockSource()
	srv := newTestServer(t, nil, mock)

	w := do(srv, httptest.NewRequest("GET", "/api/v1/recipes?ingredient=+Chicken+", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	resp := decodeJSON[SearchResponse](t, w)
	want := SearchResponse{
		Ingredient: "Chicken",
		Count:      2,
		Recipes: []recipes.Summary{
			{ID: "52772", Name: "Teriyaki Chicken Casserole", ThumbnailURL: "https://img.example/52772.jpg"},
			{ID: "52795", Name: "Chicken Handi", ThumbnailURL: "https://img.example/52795.jpg"},
		},
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
	testutil.AssertStrings(t, mock.FilterCalls, "Chicken")
}

func TestHandleSearchRecipesEmpty(t *testing.T) {
	srv := newTestServer(t, nil, newMockSource())

	w := do(srv, httptest.NewRequest("GET", "/api/v1/recipes?ingredient=nonexistentfood123", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	testutil.AssertContainsAll(t, w.Body.String(), `"count":0`, `"recipes":[]`)
}

func TestHandleSearchMissingIngredient(t *testing.T) {
	mock := newMockSource()
	srv := newTestServer(t, nil, mock)

	for _, target := range []string{"/api/v1/recipes", "/api/v1/recipes?ingredient=%20%20"} {
		w := do(srv, httptest.NewRequest("GET", target, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
		if resp := decodeJSON[ErrorResponse](t, w); resp.Error != "invalid_request" {
			t.Errorf("%s: error = %q, want invalid_request", target, resp.Error)
		}
	}
	if len(mock.FilterCalls) != 0 {
		t.Errorf("blank ingredient reached the source: %v", mock.FilterCalls)
	}
}

func TestHandleSearchUpstreamFailure(t *testing.T) {
	mock := newMockSource()
	mock.FilterError = &mealdb.StatusError{Endpoint: "filter.php", StatusCode: 500}
	srv := newTestServer(t, nil, mock)

	w := do(srv, httptest.NewRequest("GET", "/api/v1/recipes?ingredient=chicken", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Error != "upstream_error" || resp.Message != recipes.ReasonSearchFailed {
		t.Errorf("response = %+v", resp)
	}
}

func TestHandleGetRecipe(t *testing.T) {
	srv := newTestServer(t, nil, newMockSource())

	w := do(srv, httptest.NewRequest("GET", "/api/v1/recipes/52772", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	got := decodeJSON[recipes.Recipe](t, w)
	want := recipes.Recipe{
		Summary: recipes.Summary{
			ID:           "52772",
			Name:         "Teriyaki Chicken Casserole",
			ThumbnailURL: "https://img.example/52772.jpg",
		},
		Area:         "Japanese",
		Category:     "Chicken",
		Tags:         []string{"Meat", "Casserole"},
		Instructions: "Preheat oven to 350.",
		Ingredients:  []string{"3/4 cup soy sauce", "1/2 cup water", "brown sugar"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("recipe mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleGetRecipeEmptyLists(t *testing.T) {
	mock := newMockSource()
	mock.AddMeal(testutil.NewMealDetail("1").WithName("Bare").Build())
	srv := newTestServer(t, nil, mock)

	w := do(srv, httptest.NewRequest("GET", "/api/v1/recipes/1", nil))
	body := w.Body.String()
	testutil.AssertContainsAll(t, body, `"tags":[]`, `"ingredients":[]`)
	testutil.AssertContainsNone(t, body, `"area"`, `"source_url"`, `null`)
}

func TestHandleGetRecipeErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", nil, http.StatusNotFound, "not_found", recipes.ReasonNotFound},
		{"wrapped not found", errors.Join(errors.New("ctx"), &mealdb.NotFoundError{ID: "999"}), http.StatusNotFound, "not_found", recipes.ReasonNotFound},
		{"decode failure", &mealdb.DecodeError{Endpoint: "lookup.php", Err: errors.New("bad json")}, http.StatusBadGateway, "upstream_error", recipes.ReasonDetailFailed},
		{"network failure", errors.New("connection refused"), http.StatusBadGateway, "upstream_error", recipes.ReasonDetailFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockSource()
			if tt.err != nil {
				mock.LookupError["999"] = tt.err
			}
			srv := newTestServer(t, nil, mock)

			w := do(srv, httptest.NewRequest("GET", "/api/v1/recipes/999", nil))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeJSON[ErrorResponse](t, w)
			if resp.Error != tt.wantCode || resp.Message != tt.wantMsg {
				t.Errorf("response = %+v, want %s / %s", resp, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestErrorResponseShape(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, http.StatusBadRequest, "invalid_request", "bad input")

	var raw map[string]any
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"error": "invalid_request", "message": "bad input"}, raw); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
}

// TestServerAgainstFakeUpstream runs the router over a real client pointed at
// an in-process TheMealDB fake.
func TestServerAgainstFakeUpstream(t *testing.T) {
	upstream := mealdbtest.NewServer(t)
	upstream.AddMeal(*testutil.NewMealDetail("52963").
		WithName("Egg Fried Rice").
		WithIngredient("rice", "2 cups").
		WithIngredient("egg", "2").
		Build(), "egg", "rice")

	client, err := mealdb.New(mealdb.Config{BaseURL: upstream.URL + "/api/json/v1/1", Timeout: 5 * time.Second})
	testutil.MustNoErr(t, err, "mealdb.New")
	srv := newTestServer(t, nil, client)

	w := do(srv, httptest.NewRequest("GET", "/api/v1/recipes?ingredient=egg", nil))
	if resp := decodeJSON[SearchResponse](t, w); resp.Count != 1 || resp.Recipes[0].ID != "52963" {
		t.Fatalf("search response = %+v", resp)
	}

	w = do(srv, httptest.NewRequest("GET", "/api/v1/recipes/52963", nil))
	detail := decodeJSON[recipes.Recipe](t, w)
	testutil.AssertStrings(t, detail.Ingredients, "2 cups rice", "2 egg")

	w = do(srv, httptest.NewRequest("GET", "/api/v1/recipes/1", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}

	upstream.SetStatus(http.StatusInternalServerError)
	w = do(srv, httptest.NewRequest("GET", "/api/v1/recipes?ingredient=egg", nil))
	if w.Code != http.StatusBadGateway {
		t.Errorf("upstream 500 status = %d, want 502", w.Code)
	}

	testutil.AssertContainsAll(t, strings.Join(upstream.RequestLog(), "\n"),
		"/api/json/v1/1/filter.php?i=egg",
		"/api/json/v1/1/lookup.php?i=52963",
	)
}
