package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	models "github.com/AulaWare/aula-backend/pkg/db"
	"github.com/AulaWare/aula-backend/pkg/logger"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	// Initialize logger for middleware test
	logger.Init()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	api := NewAPI(db)
	mux := api.CreateMux()
	return ApplyMiddleware(mux)
}

func TestAPI_WithMiddleware(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	// Check that the request went through middleware and reached the handler
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	// Check CORS headers are present (from CORSMiddleware)
	corsHeader := w.Header().Get("Access-Control-Allow-Origin")
	if corsHeader == "" {
		t.Error("expected CORS headers to be set by middleware")
	}
}

func TestAPI_ProtectedRoutesRequireAuth(t *testing.T) {
	handler := newTestHandler(t)

	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/chat/rooms/my"},
		{http.MethodPost, "/api/chat/rooms/create"},
		{http.MethodGet, "/api/surveys?room_id=r1"},
	}
	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.target, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected status 401 without a token, got %d", route.method, route.target, w.Code)
		}
	}
}

func TestAPI_UnknownRouteFallsBack(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
