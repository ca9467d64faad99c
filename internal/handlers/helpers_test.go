package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AulaWare/aula-backend/config"
	contextkeys "github.com/AulaWare/aula-backend/internal/contextKeys"
	"github.com/AulaWare/aula-backend/internal/identity"
	"github.com/AulaWare/aula-backend/internal/store"
	models "github.com/AulaWare/aula-backend/pkg/db"
	"github.com/AulaWare/aula-backend/pkg/logger"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	logger.Init()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.Migrate(database); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return store.New(database)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.Get()
}

// authedRequest builds a request carrying a verified identity, the way the
// authentication gate hands it to handlers
func authedRequest(method, target, body, userID string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ident := &identity.Identity{
		ID:       userID,
		Email:    userID + "@aula.example",
		Metadata: map[string]any{},
	}
	ctx := context.WithValue(req.Context(), contextkeys.AuthIdentityKey, ident)
	return req.WithContext(ctx)
}
