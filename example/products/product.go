package products

import (
	"embed"
	"errors"

	"github.com/google/uuid"

	tracks "github.com/tmeire/typedtracks"
)

// Migrations holds the goose migrations for the products table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"

var ErrInvalidProduct = errors.New("invalid product")

type Product struct {
	ID    uuid.UUID `json:"id" xml:"id" form:"-"`
	Name  string    `json:"name" xml:"name" form:"name" validate:"required,notblank,max=200"`
	Price float64   `json:"price" xml:"price" form:"price" validate:"min=0"`
}

func (p Product) validate() error {
	if err := tracks.Validate(p); err != nil {
		return errors.Join(ErrInvalidProduct, err)
	}
	return nil
}
