package tracks

import "net/http"

// Response is the fully resolved outcome of an action, ready to be written.
type Response struct {
	// StatusCode is the HTTP status code to be returned
	StatusCode int
	// Location is written as the Location header when set.
	Location string
	// Data is the payload to be returned to the client
	Data any
	// Cookies is a list of cookies to be set on the response
	Cookies []*http.Cookie
}

// Resolve makes a *Response usable wherever a Result is expected.
func (r *Response) Resolve(*http.Request, URLGenerator) (*Response, error) {
	return r, nil
}

func failure(status int, message string) *Response {
	return &Response{
		StatusCode: status,
		Data: map[string]any{
			"success": false,
			"message": message,
		},
	}
}

// NoContent returns a 204 No Content response.
func NoContent() *Response {
	return &Response{StatusCode: http.StatusNoContent}
}

// BadRequest returns a 400 Bad Request response.
func BadRequest(err error) *Response {
	return failure(http.StatusBadRequest, err.Error())
}

// Unauthorized returns a 401 Unauthorized response.
func Unauthorized(message string) *Response {
	return failure(http.StatusUnauthorized, message)
}

// Forbidden returns a 403 Forbidden response.
func Forbidden(message string) *Response {
	return failure(http.StatusForbidden, message)
}

// NotFound returns a 404 Not Found response.
func NotFound(message string) *Response {
	return failure(http.StatusNotFound, message)
}

// Conflict returns a 409 Conflict response.
func Conflict(message string) *Response {
	return failure(http.StatusConflict, message)
}

// InternalServerError returns a 500 Internal Server Error response.
func InternalServerError(err error) *Response {
	return failure(http.StatusInternalServerError, err.Error())
}
