package tracks

import (
	"fmt"
	"net/http"
)

// Result is an action outcome that still needs request-time information,
// such as reverse routing, before it can be written.
type Result interface {
	Resolve(req *http.Request, urls URLGenerator) (*Response, error)
}

// ObjectResult writes Value with StatusCode. A zero StatusCode means 200.
type ObjectResult struct {
	Value      any
	StatusCode int
}

func (o ObjectResult) Resolve(*http.Request, URLGenerator) (*Response, error) {
	status := o.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{StatusCode: status, Data: o.Value}, nil
}

// CreatedResult writes a 201 with Location set verbatim.
type CreatedResult struct {
	Location string
	Value    any
}

func (c CreatedResult) Resolve(*http.Request, URLGenerator) (*Response, error) {
	return &Response{
		StatusCode: http.StatusCreated,
		Location:   c.Location,
		Data:       c.Value,
	}, nil
}

// CreatedAtActionResult writes a 201 whose Location points to an action.
// Empty names default to the action and controller serving the request.
type CreatedAtActionResult struct {
	ActionName     string
	ControllerName string
	RouteValues    RouteValues
	Value          any
}

func (c CreatedAtActionResult) Resolve(req *http.Request, urls URLGenerator) (*Response, error) {
	if urls == nil {
		return nil, fmt.Errorf("created at action %q: no url generator", c.ActionName)
	}
	location, err := urls.Action(req, c.ActionName, c.ControllerName, c.RouteValues)
	if err != nil {
		return nil, fmt.Errorf("created at action %q: %w", c.ActionName, err)
	}
	return &Response{
		StatusCode: http.StatusCreated,
		Location:   location,
		Data:       c.Value,
	}, nil
}

// CreatedAtRouteResult writes a 201 whose Location points to a named route.
// An empty RouteName defaults to the route serving the request.
type CreatedAtRouteResult struct {
	RouteName   string
	RouteValues RouteValues
	Value       any
}

func (c CreatedAtRouteResult) Resolve(req *http.Request, urls URLGenerator) (*Response, error) {
	if urls == nil {
		return nil, fmt.Errorf("created at route %q: no url generator", c.RouteName)
	}
	location, err := urls.Route(req, c.RouteName, c.RouteValues)
	if err != nil {
		return nil, fmt.Errorf("created at route %q: %w", c.RouteName, err)
	}
	return &Response{
		StatusCode: http.StatusCreated,
		Location:   location,
		Data:       c.Value,
	}, nil
}

// ActionResult is the outcome of an action whose body is a T. It is either a
// plain value or a Result; the type parameter only exists so handlers can
// declare what they return.
type ActionResult[T any] struct {
	result Result
}

// Value wraps v as a 200 response.
func Value[T any](v T) ActionResult[T] {
	return ActionResult[T]{result: ObjectResult{Value: v, StatusCode: http.StatusOK}}
}

// FromResult wraps r. Callers are responsible for r carrying a T.
func FromResult[T any](r Result) ActionResult[T] {
	return ActionResult[T]{result: r}
}

// Result returns the wrapped Result, nil for the zero ActionResult.
func (a ActionResult[T]) Result() Result {
	return a.result
}

// Resolve resolves the wrapped result; the zero ActionResult is a 204.
func (a ActionResult[T]) Resolve(req *http.Request, urls URLGenerator) (*Response, error) {
	if a.result == nil {
		return &Response{StatusCode: http.StatusNoContent}, nil
	}
	return a.result.Resolve(req, urls)
}

// Typed adapts an action returning ActionResult[T] to an ActionFunc.
func Typed[T any](fn func(r *http.Request) (ActionResult[T], error)) ActionFunc {
	return func(r *http.Request) (any, error) {
		res, err := fn(r)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}
