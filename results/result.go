package results

import (
	"errors"
	"net/http"

	tracks "github.com/tmeire/typedtracks"
)

// ErrInvalidArgument is returned when a required argument is absent.
var ErrInvalidArgument = errors.New("invalid argument")

// Result is implemented by every typed result in this package.
type Result[T any] interface {
	Value() T
	StatusCode() int
	ToActionResult() tracks.ActionResult[T]

	result()
}

// Every variant must convert on its own. A variant that embeds
// LocationResult without defining ToActionResult fails to compile here.
var (
	_ Result[any] = ObjectResult[any]{}
	_ Result[any] = OkResult[any]{}
	_ Result[any] = CreatedResult[any]{}
	_ Result[any] = CreatedAtActionResult[any]{}
	_ Result[any] = CreatedAtRouteResult[any]{}
)

// body holds what every result has: one value and one status code.
type body[T any] struct {
	value      T
	statusCode int
}

func (b body[T]) Value() T {
	return b.value
}

func (b body[T]) StatusCode() int {
	return b.statusCode
}

func (body[T]) result() {}

// ObjectResult writes a value with an arbitrary status code.
type ObjectResult[T any] struct {
	body[T]
}

// NewObjectResult accepts any value, including nil or the zero value.
func NewObjectResult[T any](value T, statusCode int) ObjectResult[T] {
	return ObjectResult[T]{body[T]{value: value, statusCode: statusCode}}
}

func (o ObjectResult[T]) ToActionResult() tracks.ActionResult[T] {
	return tracks.FromResult[T](tracks.ObjectResult{
		Value:      o.value,
		StatusCode: o.statusCode,
	})
}

// OkResult writes a value with 200 OK.
type OkResult[T any] struct {
	ObjectResult[T]
}

func NewOkResult[T any](value T) OkResult[T] {
	return OkResult[T]{NewObjectResult(value, http.StatusOK)}
}
