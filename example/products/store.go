package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tmeire/typedtracks/database"
	"github.com/tmeire/typedtracks/otel"
)

var ErrNotFound = errors.New("product not found")

// Store persists products.
type Store struct {
	db database.Database
}

func NewStore(db database.Database) *Store {
	return &Store{db: db}
}

// conn prefers a database or transaction carried by ctx.
func (s *Store) conn(ctx context.Context) database.Database {
	return database.Conn(ctx, s.db)
}

func scanProduct(row database.Scanner) (Product, error) {
	var (
		p  Product
		id string
	)
	if err := row.Scan(&id, &p.Name, &p.Price); err != nil {
		return Product{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Product{}, fmt.Errorf("stored product has invalid id %q: %w", id, err)
	}
	p.ID = parsed
	return p, nil
}

func (s *Store) All(ctx context.Context) ([]Product, error) {
	ctx, span := otel.Tracer().Start(ctx, "products.all")
	defer span.End()

	rows, err := s.conn(ctx).QueryContext(ctx, "SELECT id, name, price FROM products ORDER BY created_at, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) Find(ctx context.Context, id uuid.UUID) (Product, error) {
	ctx, span := otel.Tracer().Start(ctx, "products.find")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id.String()))

	row := s.conn(ctx).QueryRowContext(ctx, "SELECT id, name, price FROM products WHERE id = ?", id.String())
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, err
}

// Create stores p under a new id and returns the stored product.
func (s *Store) Create(ctx context.Context, p Product) (Product, error) {
	ctx, span := otel.Tracer().Start(ctx, "products.create")
	defer span.End()

	if err := p.validate(); err != nil {
		return Product{}, err
	}

	p.ID = uuid.New()
	_, err := s.conn(ctx).ExecContext(ctx, "INSERT INTO products (id, name, price) VALUES (?, ?, ?)",
		p.ID.String(), p.Name, p.Price)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Copy stores a duplicate of the product with id, its name suffixed with
// suffix. Reading the original and writing the copy happen in one
// transaction.
func (s *Store) Copy(ctx context.Context, id uuid.UUID, suffix string) (Product, error) {
	ctx, span := otel.Tracer().Start(ctx, "products.copy")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id.String()))

	var p Product
	err := database.WithTransaction(database.WithDB(ctx, s.conn(ctx)), func(ctx context.Context) error {
		original, err := s.Find(ctx, id)
		if err != nil {
			return err
		}
		original.Name += suffix
		p, err = s.Create(ctx, original)
		return err
	})
	return p, err
}

func (s *Store) Update(ctx context.Context, p Product) (Product, error) {
	ctx, span := otel.Tracer().Start(ctx, "products.update")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", p.ID.String()))

	if err := p.validate(); err != nil {
		return Product{}, err
	}

	res, err := s.conn(ctx).ExecContext(ctx, "UPDATE products SET name = ?, price = ? WHERE id = ?",
		p.Name, p.Price, p.ID.String())
	if err != nil {
		return Product{}, err
	}
	if err := expectOne(res, p.ID); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer().Start(ctx, "products.delete")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id.String()))

	res, err := s.conn(ctx).ExecContext(ctx, "DELETE FROM products WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
