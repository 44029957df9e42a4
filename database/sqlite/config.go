package sqlite

import (
	"database/sql"
)

type Config struct {
	Path string `json:"path" yaml:"path"`
}

// Create opens the database at Path, an in-memory database when Path is empty.
func (c Config) Create() (*sql.DB, error) {
	if c.Path == "" {
		return New(":memory:")
	}
	return New(c.Path)
}
