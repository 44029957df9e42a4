package tracks

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/tmeire/typedtracks/database"
)

// TestApp is a router backed by a migrated in-memory database, for tests
// that go through the full request pipeline.
type TestApp struct {
	t      testing.TB
	router Router
	db     *sql.DB
}

type TestConfig struct {
	// Migrations are applied with goose before the app is returned.
	Migrations    fs.FS
	MigrationsDir string
}

func NewTestApp(t testing.TB, config TestConfig) *TestApp {
	t.Helper()

	db, err := database.Config{}.Open()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if config.Migrations != nil {
		if err := database.Migrate(context.Background(), db, config.Migrations, config.MigrationsDir, "up"); err != nil {
			t.Fatalf("Failed to migrate test database: %v", err)
		}
	}

	return &TestApp{
		t:      t,
		router: New(Config{}).RequestMiddleware(database.Middleware(db)),
		db:     db,
	}
}

// Module registers m on the app's router.
func (a *TestApp) Module(m Module) *TestApp {
	a.router = a.router.Module(m)
	return a
}

func (a *TestApp) Router() Router {
	return a.router
}

func (a *TestApp) DB() *sql.DB {
	return a.db
}

func (a *TestApp) PerformRequest(method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()

	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	h, err := a.router.Handler()
	if err != nil {
		a.t.Fatalf("Failed to get handler: %v", err)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func (a *TestApp) Get(path string) *httptest.ResponseRecorder {
	return a.PerformRequest(http.MethodGet, path, nil, nil)
}

func (a *TestApp) Delete(path string) *httptest.ResponseRecorder {
	return a.PerformRequest(http.MethodDelete, path, nil, nil)
}

type JSONBody map[string]any

// SendJSON performs a request with body encoded as JSON. A nil body sends
// no body at all.
func (a *TestApp) SendJSON(method, path string, body JSONBody) *httptest.ResponseRecorder {
	a.t.Helper()

	if body == nil {
		return a.PerformRequest(method, path, nil, nil)
	}

	b, err := json.Marshal(body)
	if err != nil {
		a.t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return a.PerformRequest(method, path, bytes.NewReader(b), map[string]string{
		"Content-Type": "application/json",
	})
}

func (a *TestApp) PostJSON(path string, body JSONBody) *httptest.ResponseRecorder {
	return a.SendJSON(http.MethodPost, path, body)
}

func (a *TestApp) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	return a.PerformRequest(http.MethodPost, path, strings.NewReader(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
}
