package tracks

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// CatchAll recovers panics in the wrapped handler and answers with a 500.
func CatchAll(handler http.Handler) (http.Handler, error) {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}

			slog.ErrorContext(req.Context(), "recovered from panic",
				"panic", fmt.Sprint(v),
				"path", req.URL.Path,
				"stack", string(debug.Stack()))

			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Something went wrong: %s", v)
		}()

		handler.ServeHTTP(w, req)
	}), nil
}
