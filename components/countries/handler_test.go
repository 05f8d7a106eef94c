package countries

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type handlerResponse struct {
	Data []Option `json:"data"`
}

func testDataset() Dataset {
	return Dataset{
		Countries: []Entry{{Code: "CA", Name: "Canada"}, {Code: "NL", Name: "Netherlands"}, {Code: "US", Name: "United States"}},
		Regions: map[string][]Entry{
			"US": {{Code: "CA", Name: "California"}, {Code: "NY", Name: "New York"}},
		},
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlerResponse {
	t.Helper()
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestHandler_ListsAllowedCountries(t *testing.T) {
	h := Handler(WithDataset(testDataset()), WithAllowed("US", "CA"))

	req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := strings.TrimSpace(rec.Header().Get("Content-Type")); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	payload := decode(t, rec)
	if len(payload.Data) != 2 || payload.Data[0].Value != "CA" || payload.Data[1].Label != "United States" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestHandler_SearchAndLimitClamped(t *testing.T) {
	h := Handler(WithDataset(testDataset()), WithMaxLimit(1))

	req := httptest.NewRequest(http.MethodGet, "/api/countries?q=a&limit=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	payload := decode(t, rec)
	if len(payload.Data) != 1 || payload.Data[0].Value != "CA" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestRegionsHandler(t *testing.T) {
	h := RegionsHandler(WithDataset(testDataset()))

	req := httptest.NewRequest(http.MethodGet, "/api/regions?country=us&q=new", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	payload := decode(t, rec)
	if len(payload.Data) != 1 || payload.Data[0].Value != "NY" {
		t.Fatalf("unexpected payload: %#v", payload)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/regions?country=NL", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if payload := decode(t, rec); payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestHandler_GuardRejects(t *testing.T) {
	h := Handler(
		WithDataset(testDataset()),
		WithGuard(func(r *http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/countries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := Handler(WithDataset(testDataset()))

	req := httptest.NewRequest(http.MethodPost, "/api/countries", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}
