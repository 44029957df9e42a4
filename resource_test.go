package tracks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Book struct {
	ID    string `json:"id" xml:"id"`
	Title string `json:"title" xml:"title"`
}

// BookResource implements the Resource interface for testing
type BookResource struct {
	BaseController
}

func (r *BookResource) Index(req *http.Request) (any, error) {
	return []Book{{ID: "1", Title: "Dune"}, {ID: "2", Title: "Emma"}}, nil
}

func (r *BookResource) New(req *http.Request) (any, error) {
	return Book{}, nil
}

func (r *BookResource) Create(req *http.Request) (any, error) {
	return CreatedAtActionResult{
		ActionName:  "show",
		RouteValues: Values(P("book_id", Int(3))),
		Value:       Book{ID: "3", Title: "Ulysses"},
	}, nil
}

func (r *BookResource) Show(req *http.Request) (any, error) {
	return Book{ID: req.PathValue("book_id"), Title: "Dune"}, nil
}

func (r *BookResource) Edit(req *http.Request) (any, error) {
	u, err := r.URLFor(req, "show", nil)
	if err != nil {
		return nil, err
	}
	return map[string]string{"back": u}, nil
}

func (r *BookResource) Update(req *http.Request) (any, error) {
	return Book{ID: req.PathValue("book_id"), Title: "Updated"}, nil
}

func (r *BookResource) Destroy(req *http.Request) (any, error) {
	return NoContent(), nil
}

func (r *BookResource) Subresources() []Resource {
	return []Resource{&ChapterResource{}}
}

type ChapterResource struct {
	BookResource
}

func (r *ChapterResource) Create(req *http.Request) (any, error) {
	// book_id comes from the current request.
	return CreatedAtRouteResult{
		RouteName:   "chapter#show",
		RouteValues: Values(P("chapter_id", Int(9))),
		Value:       map[string]string{"book": req.PathValue("book_id")},
	}, nil
}

func (r *ChapterResource) Subresources() []Resource {
	return nil
}

func TestResource(t *testing.T) {
	router := New(Config{}).Resource(&BookResource{})

	h, err := router.Handler()
	require.NoError(t, err)

	serve := func(method, target string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
		return rr
	}

	t.Run("Index Action", func(t *testing.T) {
		rr := serve(http.MethodGet, "/book/")
		assert.Equal(t, http.StatusOK, rr.Code)

		var books []Book
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &books))
		assert.Len(t, books, 2)
	})

	t.Run("Show Action", func(t *testing.T) {
		rr := serve(http.MethodGet, "/book/1")
		assert.Equal(t, http.StatusOK, rr.Code)

		var book Book
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &book))
		assert.Equal(t, "1", book.ID)
	})

	t.Run("Create points at Show", func(t *testing.T) {
		rr := serve(http.MethodPost, "/book/")
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "http://example.com/book/3", rr.Header().Get("Location"))
	})

	t.Run("Update accepts PUT and POST", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(http.MethodPut, "/book/1").Code)
		assert.Equal(t, http.StatusOK, serve(http.MethodPost, "/book/1").Code)
	})

	t.Run("Destroy Action", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, serve(http.MethodDelete, "/book/1").Code)
	})

	t.Run("Injected router builds URLs", func(t *testing.T) {
		rr := serve(http.MethodGet, "/book/7/edit")
		require.Equal(t, http.StatusOK, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "http://example.com/book/7", body["back"])
	})

	t.Run("Subresource reuses the parent id", func(t *testing.T) {
		rr := serve(http.MethodPost, "/book/7/chapter/")
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "http://example.com/book/7/chapter/9", rr.Header().Get("Location"))
	})
}

func TestResourceRoutes(t *testing.T) {
	router := New(Config{}).ResourceAtPath("/library", &BookResource{})

	var got []string
	for _, r := range router.Routes() {
		got = append(got, r.Method+" "+r.Path+" "+r.Name)
	}

	assert.Contains(t, got, "GET /library/book/ book#index")
	assert.Contains(t, got, "GET /library/book/{book_id} book#show")
	assert.Contains(t, got, "DELETE /library/book/{book_id} book#destroy")
	assert.Contains(t, got, "GET /library/book/{book_id}/chapter/{chapter_id} chapter#show")
}

func TestBaseControllerWithoutRouter(t *testing.T) {
	var bc BaseController

	_, err := bc.URLFor(httptest.NewRequest(http.MethodGet, "/", nil), "show", nil)
	assert.ErrorIs(t, err, ErrRouteNotFound)
	assert.Equal(t, "http", bc.Scheme())

	bc.Inject(New(Config{Secure: true}))
	assert.Equal(t, "https", bc.Scheme())
}
