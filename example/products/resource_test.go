package products

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracks "github.com/tmeire/typedtracks"
)

type app struct {
	*tracks.TestApp
	store *Store
}

func newApp(t *testing.T) app {
	t.Helper()

	ta := tracks.NewTestApp(t, tracks.TestConfig{Migrations: Migrations, MigrationsDir: MigrationsDir})
	store := NewStore(ta.DB())
	return app{TestApp: ta.Module(Module(store)), store: store}
}

func (a app) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var headers map[string]string
	if body != "" {
		headers = map[string]string{"Content-Type": "application/json"}
	}
	return a.PerformRequest(method, target, strings.NewReader(body), headers)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestCreatePointsAtShow(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodPost, "/product/", `{"name":"Tulip","price":2.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	p := decode[Product](t, rec)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Tulip", p.Name)
	assert.Equal(t, "http://example.com/product/"+p.ID.String(), rec.Header().Get("Location"))

	show := a.do(t, http.MethodGet, "/product/"+p.ID.String(), "")
	require.Equal(t, http.StatusOK, show.Code)
	assert.Equal(t, p, decode[Product](t, show))
}

func TestCreateWithForm(t *testing.T) {
	a := newApp(t)

	rec := a.PostForm("/product/", url.Values{
		"name":  {"Rose"},
		"price": {"4"},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	p := decode[Product](t, rec)
	assert.Equal(t, "Rose", p.Name)
	assert.InDelta(t, 4.0, p.Price, 0.0001)
}

func TestCreateRejectsInvalidProduct(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodPost, "/product/", `{"name":"","price":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestIndexAndUpdate(t *testing.T) {
	a := newApp(t)

	p, err := a.store.Create(context.Background(), Product{Name: "Lily", Price: 3})
	require.NoError(t, err)

	rec := a.do(t, http.MethodPut, "/product/"+p.ID.String(), `{"name":"Lily","price":3.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.InDelta(t, 3.5, decode[Product](t, rec).Price, 0.0001)

	index := a.do(t, http.MethodGet, "/product/", "")
	require.Equal(t, http.StatusOK, index.Code)
	list := decode[[]Product](t, index)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
}

func TestShowUnknownProduct(t *testing.T) {
	a := newApp(t)

	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/product/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/product/not-a-uuid", "").Code)
}

func TestDestroy(t *testing.T) {
	a := newApp(t)

	p, err := a.store.Create(context.Background(), Product{Name: "Daisy", Price: 1})
	require.NoError(t, err)

	rec := a.do(t, http.MethodDelete, "/product/"+p.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodDelete, "/product/"+p.ID.String(), "").Code)
}

func TestImportUsesLiteralLocation(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodPost, "/product/import", `{"name":"Orchid","price":12}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	p := decode[Product](t, rec)
	assert.Equal(t, "/product/"+p.ID.String(), rec.Header().Get("Location"))

	rec = a.do(t, http.MethodPost, "/product/import?absolute=true", `{"name":"Orchid","price":12}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	p = decode[Product](t, rec)
	assert.Equal(t, "http://example.com/product/"+p.ID.String(), rec.Header().Get("Location"))
}

func TestCopyPointsAtNamedRoute(t *testing.T) {
	a := newApp(t)

	original, err := a.store.Create(context.Background(), Product{Name: "Fern", Price: 7})
	require.NoError(t, err)

	rec := a.do(t, http.MethodPost, "/product/"+original.ID.String()+"/copies", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	copied := decode[Product](t, rec)
	assert.NotEqual(t, original.ID, copied.ID)
	assert.Equal(t, "Fern (copy)", copied.Name)
	assert.Equal(t, "http://example.com/product/"+copied.ID.String(), rec.Header().Get("Location"))

	all, err := a.store.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodPost, "/product/"+uuid.NewString()+"/copies", "").Code)
}

func TestPriceIsTyped(t *testing.T) {
	a := newApp(t)

	p, err := a.store.Create(context.Background(), Product{Name: "Moss", Price: 0.75})
	require.NoError(t, err)

	rec := a.do(t, http.MethodGet, "/product/"+p.ID.String()+"/price", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 0.75, decode[float64](t, rec), 0.0001)

	text := a.PerformRequest(http.MethodGet, "/product/"+p.ID.String()+"/price", nil, map[string]string{"Accept": "text/plain"})
	assert.Equal(t, "text/plain; charset=utf-8", text.Header().Get("Content-Type"))
	assert.Equal(t, "0.75", text.Body.String())
}

func TestRoutesAreNamed(t *testing.T) {
	r := tracks.New(tracks.Config{}).Module(Module(NewStore(nil)))

	names := map[string]bool{}
	for _, route := range r.Routes() {
		names[route.Name] = true
	}
	for _, name := range []string{"product#index", "product#show", "product#create", "product#import", "product#copy", "product#price"} {
		assert.True(t, names[name], name)
	}
}
