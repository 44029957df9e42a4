package tracks

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewares_Wrap(t *testing.T) {
	t.Run("Middlewares applied first run first", func(t *testing.T) {
		var executionOrder []string

		m := func(i int) Middleware {
			return func(h http.Handler) (http.Handler, error) {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					executionOrder = append(executionOrder, fmt.Sprintf("middleware%d-before", i))
					h.ServeHTTP(w, r)
					executionOrder = append(executionOrder, fmt.Sprintf("middleware%d-after", i))
				}), nil
			}
		}

		finalHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			executionOrder = append(executionOrder, "handler")
			w.WriteHeader(http.StatusOK)
		})

		ms := middlewares{}
		ms.Apply(m(1))
		ms.Apply(m(2))

		wrappedHandler, err := ms.Wrap(finalHandler, m(3))
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		wrappedHandler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{
			"middleware1-before",
			"middleware2-before",
			"middleware3-before", // extra middlewares run last
			"handler",
			"middleware3-after",
			"middleware2-after",
			"middleware1-after",
		}, executionOrder)
	})

	t.Run("A failing middleware fails the wrap", func(t *testing.T) {
		boom := errors.New("boom")

		ms := middlewares{}
		ms.Apply(func(h http.Handler) (http.Handler, error) { return nil, boom })

		_, err := ms.Wrap(http.NotFoundHandler())
		assert.ErrorIs(t, err, boom)
	})
}

func TestRouter_FailingRequestMiddleware(t *testing.T) {
	boom := errors.New("boom")

	r := New(Config{}).
		RequestMiddleware(func(h http.Handler) (http.Handler, error) { return nil, boom }).
		GetFunc("/test", "default", "test", func(r *http.Request) (any, error) {
			return "unreachable", nil
		})

	_, err := r.Handler()
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, r.Run(t.Context()), boom)
}

func TestCatchAll(t *testing.T) {
	h, err := CatchAll(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Something went wrong: kaboom", rr.Body.String())
}
