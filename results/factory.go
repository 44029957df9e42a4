package results

import (
	"fmt"
	"net/http"
	"net/url"

	tracks "github.com/tmeire/typedtracks"
)

// Ok creates a 200 OK result for value.
func Ok[T any](value T) OkResult[T] {
	return NewOkResult(value)
}

// Created creates a 201 Created result with location as the Location header.
// A Go string cannot be nil, so the empty string stands for an absent
// location and is rejected with ErrInvalidArgument. Any other string is kept
// as given.
func Created[T any](location string, value T) (CreatedResult[T], error) {
	if location == "" {
		return CreatedResult[T]{}, fmt.Errorf("%w: location is empty", ErrInvalidArgument)
	}
	return NewCreatedResult(location, value), nil
}

// CreatedURL is Created for a *url.URL. A nil location is rejected with
// ErrInvalidArgument.
func CreatedURL[T any](location *url.URL, value T) (CreatedResult[T], error) {
	l, err := NewLocationResultFromURL(location, value, http.StatusCreated)
	if err != nil {
		return CreatedResult[T]{}, err
	}
	return CreatedResult[T]{l}, nil
}

// CreatedAtAction creates a 201 Created result pointing at action on the
// current controller.
func CreatedAtAction[T any](actionName string, value T) CreatedAtActionResult[T] {
	return CreatedAtControllerAction(actionName, "", nil, value)
}

// CreatedAtActionWithValues is CreatedAtAction with route values.
func CreatedAtActionWithValues[T any](actionName string, routeValues tracks.RouteValues, value T) CreatedAtActionResult[T] {
	return CreatedAtControllerAction(actionName, "", routeValues, value)
}

// CreatedAtControllerAction creates a 201 Created result pointing at action on
// controller. Empty names and nil route values are passed on as absent.
func CreatedAtControllerAction[T any](actionName, controllerName string, routeValues tracks.RouteValues, value T) CreatedAtActionResult[T] {
	return NewCreatedAtActionResult(actionName, controllerName, routeValues, value)
}

// CreatedAtRoute creates a 201 Created result pointing at the named route.
func CreatedAtRoute[T any](routeName string, value T) CreatedAtRouteResult[T] {
	return CreatedAtRouteWithValues(routeName, nil, value)
}

// CreatedAtRouteValues creates a 201 Created result pointing at the current
// route, filled with routeValues.
func CreatedAtRouteValues[T any](routeValues tracks.RouteValues, value T) CreatedAtRouteResult[T] {
	return CreatedAtRouteWithValues("", routeValues, value)
}

// CreatedAtRouteWithValues creates a 201 Created result pointing at the named
// route, filled with routeValues.
func CreatedAtRouteWithValues[T any](routeName string, routeValues tracks.RouteValues, value T) CreatedAtRouteResult[T] {
	return NewCreatedAtRouteResult(routeName, routeValues, value)
}
