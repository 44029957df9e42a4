package results

import (
	"fmt"
	"net/url"
)

// LocationResult is the base of results that send a Location header.
//
// It has no ToActionResult method on purpose: the generic conversion would
// drop the location, so every result embedding LocationResult has to provide
// its own.
type LocationResult[T any] struct {
	body[T]
	location string
}

// NewLocationResult stores location unchanged.
func NewLocationResult[T any](location string, value T, statusCode int) LocationResult[T] {
	return LocationResult[T]{
		body:     body[T]{value: value, statusCode: statusCode},
		location: location,
	}
}

// NewLocationResultFromURL stores the escaped form of location. Absolute URLs
// are kept whole; relative ones keep only path, query and fragment. Later
// changes to location do not affect the result.
func NewLocationResultFromURL[T any](location *url.URL, value T, statusCode int) (LocationResult[T], error) {
	if location == nil {
		return LocationResult[T]{}, fmt.Errorf("%w: location is nil", ErrInvalidArgument)
	}
	return NewLocationResult(escapeLocation(location), value, statusCode), nil
}

func (l LocationResult[T]) Location() string {
	return l.location
}

func escapeLocation(u *url.URL) string {
	if u.IsAbs() {
		return u.String()
	}

	rel := url.URL{
		Path:        u.Path,
		RawPath:     u.RawPath,
		RawQuery:    u.RawQuery,
		Fragment:    u.Fragment,
		RawFragment: u.RawFragment,
	}
	return rel.String()
}
