package tracks

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmeire/typedtracks/database"
)

func TestTestApp(t *testing.T) {
	migrations := fstest.MapFS{
		"sql/00001_notes.sql": &fstest.MapFile{Data: []byte(`-- +goose Up
CREATE TABLE notes (body TEXT NOT NULL);

-- +goose Down
DROP TABLE notes;
`)},
	}

	app := NewTestApp(t, TestConfig{Migrations: migrations, MigrationsDir: "sql"}).Module(func(r Router) Router {
		return r.PostFunc("/notes", "notes", "create", func(req *http.Request) (any, error) {
			body := req.FormValue("body")
			if body == "" {
				var in struct {
					Body string `json:"body"`
				}
				if err := ParseRequest(req, &in); err != nil {
					return BadRequest(err), nil
				}
				body = in.Body
			}

			db := database.FromContext(req.Context())
			if _, err := db.ExecContext(req.Context(), "INSERT INTO notes (body) VALUES (?)", body); err != nil {
				return nil, err
			}
			return CreatedResult{Location: "/notes/1", Value: body}, nil
		})
	})

	rec := app.PostForm("/notes", url.Values{"body": {"hello"}})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/notes/1", rec.Header().Get("Location"))

	rec = app.PostJSON("/notes", JSONBody{"body": "world"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var count int
	require.NoError(t, app.DB().QueryRowContext(context.Background(), "SELECT COUNT(*) FROM notes").Scan(&count))
	assert.Equal(t, 2, count)

	assert.Equal(t, http.StatusNotFound, app.Get("/missing").Code)
}
