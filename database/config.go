package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tmeire/typedtracks/database/sqlite"
)

var ErrUnsupportedType = errors.New("unsupported database type")

type Config struct {
	Type   string        `json:"type" yaml:"type"`
	SQLite sqlite.Config `json:"sqlite" yaml:"sqlite"`
}

// Open connects to the configured database. An empty type means sqlite.
func (c Config) Open() (*sql.DB, error) {
	switch c.Type {
	case "", "sqlite":
		return c.SQLite.Create()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, c.Type)
	}
}
