package database

import (
	"net/http"
)

// Middleware makes db available to actions through FromContext.
func Middleware(db Database) func(handler http.Handler) (http.Handler, error) {
	return func(handler http.Handler) (http.Handler, error) {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			handler.ServeHTTP(w, req.WithContext(WithDB(req.Context(), db)))
		}), nil
	}
}
