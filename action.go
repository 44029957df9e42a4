package tracks

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ActionFunc handles a request. The returned value is either a *Response, a
// Result (including ActionResult[T]) or any other value, which is written as
// a 200 OK body.
type ActionFunc func(r *http.Request) (any, error)

// Action describes a route for Router.Serve.
type Action struct {
	Method      string
	Path        string
	Controller  string
	Name        string
	RouteName   string
	Func        ActionFunc
	Middlewares []Middleware
}

type action struct {
	route     Route
	impl      ActionFunc
	urls      URLGenerator
	responses metric.Int64Counter
}

func (a *action) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r = r.WithContext(withRoute(r.Context(), a.route))

	resp := a.resolve(r)
	a.write(w, r, resp)
}

func (a *action) resolve(r *http.Request) *Response {
	data, err := a.impl(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "action failed",
			"controller", a.route.Controller, "action", a.route.Action, "error", err)
		return &Response{
			StatusCode: http.StatusInternalServerError,
			Data: map[string]string{
				"message": err.Error(),
			},
		}
	}

	res, ok := data.(Result)
	if !ok {
		return &Response{
			StatusCode: http.StatusOK,
			Data:       data,
		}
	}

	resp, err := res.Resolve(r, a.urls)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to resolve action result",
			"controller", a.route.Controller, "action", a.route.Action, "error", err)
		return InternalServerError(err)
	}
	if resp == nil {
		return NoContent()
	}
	return resp
}

// write renders resp in the format the client asked for.
func (a *action) write(w http.ResponseWriter, r *http.Request, resp *Response) {
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	if a.responses != nil {
		a.responses.Add(r.Context(), 1, metric.WithAttributes(
			attribute.String("controller", a.route.Controller),
			attribute.String("action", a.route.Action),
			attribute.String("status", strconv.Itoa(status)),
		))
	}

	if resp.Location != "" {
		w.Header().Set("Location", resp.Location)
	}
	for _, c := range resp.Cookies {
		http.SetCookie(w, c)
	}

	if status == http.StatusNoContent || status == http.StatusNotModified {
		w.WriteHeader(status)
		return
	}

	var render renderer
	switch determineContentType(r) {
	case "application/xml":
		render = renderXML
	case "text/plain":
		render = renderText
	default:
		render = renderJSON
	}

	var buf bytes.Buffer
	contentType, err := render(&buf, resp.Data)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to render response", "status", status, "error", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type renderer func(buf *bytes.Buffer, data any) (string, error)

func renderJSON(buf *bytes.Buffer, data any) (string, error) {
	return "application/json; charset=utf-8", json.NewEncoder(buf).Encode(data)
}

func renderXML(buf *bytes.Buffer, data any) (string, error) {
	return "application/xml; charset=utf-8", xml.NewEncoder(buf).Encode(data)
}

func renderText(buf *bytes.Buffer, data any) (string, error) {
	switch t := data.(type) {
	case string:
		buf.WriteString(t)
	case []byte:
		buf.Write(t)
	case fmt.Stringer:
		buf.WriteString(t.String())
	case bool, int, int64, float64:
		fmt.Fprint(buf, t)
	default:
		// Complex values fall back to JSON.
		return renderJSON(buf, data)
	}
	return "text/plain; charset=utf-8", nil
}

// determineContentType picks the response format from the file extension in
// the URL path, then from the Accept header. It returns "application/json",
// "application/xml" or "text/plain"; JSON is the default.
func determineContentType(r *http.Request) string {
	if dot := strings.LastIndex(r.URL.Path, "."); dot >= 0 {
		switch strings.ToLower(r.URL.Path[dot+1:]) {
		case "json":
			return "application/json"
		case "xml":
			return "application/xml"
		case "txt":
			return "text/plain"
		}
	}

	accept := r.Header.Get("Accept")
	switch {
	case strings.Contains(accept, "application/json"):
		return "application/json"
	case strings.Contains(accept, "application/xml"), strings.Contains(accept, "text/xml"):
		return "application/xml"
	case strings.Contains(accept, "text/plain"):
		return "text/plain"
	}
	return "application/json"
}
