package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmeire/typedtracks/database"
	"github.com/tmeire/typedtracks/database/sqlite"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, Migrations, MigrationsDir, "up"))

	return NewStore(db)
}

func TestStoreValidates(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, Product{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = s.Create(ctx, Product{Name: "Cactus", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestStoreUnknownProduct(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := s.Find(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, Product{ID: id, Name: "Ivy"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)

	_, err = s.Copy(ctx, id, " (copy)")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCopyKeepsOriginal(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	original, err := s.Create(ctx, Product{Name: "Basil", Price: 2})
	require.NoError(t, err)

	copied, err := s.Copy(ctx, original.ID, " (copy)")
	require.NoError(t, err)
	assert.Equal(t, "Basil (copy)", copied.Name)
	assert.InDelta(t, 2.0, copied.Price, 0.0001)

	found, err := s.Find(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original, found)
}
