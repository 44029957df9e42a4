package results

import (
	"net/http"

	tracks "github.com/tmeire/typedtracks"
)

// CreatedResult writes 201 Created with a literal Location header.
type CreatedResult[T any] struct {
	LocationResult[T]
}

func NewCreatedResult[T any](location string, value T) CreatedResult[T] {
	return CreatedResult[T]{NewLocationResult(location, value, http.StatusCreated)}
}

func (c CreatedResult[T]) ToActionResult() tracks.ActionResult[T] {
	return tracks.FromResult[T](tracks.CreatedResult{
		Location: c.location,
		Value:    c.value,
	})
}

// CreatedAtActionResult writes 201 Created with a Location header the router
// generates from an action, a controller and route values. Empty names mean
// the action or controller serving the request.
type CreatedAtActionResult[T any] struct {
	body[T]
	actionName     string
	controllerName string
	routeValues    tracks.RouteValues
}

func NewCreatedAtActionResult[T any](actionName, controllerName string, routeValues tracks.RouteValues, value T) CreatedAtActionResult[T] {
	return CreatedAtActionResult[T]{
		body:           body[T]{value: value, statusCode: http.StatusCreated},
		actionName:     actionName,
		controllerName: controllerName,
		routeValues:    cloneValues(routeValues),
	}
}

func (c CreatedAtActionResult[T]) ActionName() string {
	return c.actionName
}

func (c CreatedAtActionResult[T]) ControllerName() string {
	return c.controllerName
}

// RouteValues returns a copy of the route values, nil when none were given.
func (c CreatedAtActionResult[T]) RouteValues() tracks.RouteValues {
	return cloneValues(c.routeValues)
}

func (c CreatedAtActionResult[T]) ToActionResult() tracks.ActionResult[T] {
	return tracks.FromResult[T](tracks.CreatedAtActionResult{
		ActionName:     c.actionName,
		ControllerName: c.controllerName,
		RouteValues:    cloneValues(c.routeValues),
		Value:          c.value,
	})
}

// CreatedAtRouteResult writes 201 Created with a Location header the router
// generates from a route name and route values. An empty name means the
// route serving the request.
type CreatedAtRouteResult[T any] struct {
	body[T]
	routeName   string
	routeValues tracks.RouteValues
}

func NewCreatedAtRouteResult[T any](routeName string, routeValues tracks.RouteValues, value T) CreatedAtRouteResult[T] {
	return CreatedAtRouteResult[T]{
		body:        body[T]{value: value, statusCode: http.StatusCreated},
		routeName:   routeName,
		routeValues: cloneValues(routeValues),
	}
}

func (c CreatedAtRouteResult[T]) RouteName() string {
	return c.routeName
}

// RouteValues returns a copy of the route values, nil when none were given.
func (c CreatedAtRouteResult[T]) RouteValues() tracks.RouteValues {
	return cloneValues(c.routeValues)
}

func (c CreatedAtRouteResult[T]) ToActionResult() tracks.ActionResult[T] {
	return tracks.FromResult[T](tracks.CreatedAtRouteResult{
		RouteName:   c.routeName,
		RouteValues: cloneValues(c.routeValues),
		Value:       c.value,
	})
}

func cloneValues(rv tracks.RouteValues) tracks.RouteValues {
	if rv == nil {
		return nil
	}
	return append(make(tracks.RouteValues, 0, len(rv)), rv...)
}
