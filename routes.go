package tracks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
)

var (
	ErrRouteNotFound     = errors.New("no route matches")
	ErrMissingRouteValue = errors.New("missing route value")
)

// Route describes a registered action.
type Route struct {
	Method     string
	Path       string
	Controller string
	Action     string
	Name       string
}

// DefaultRouteName is the name a route gets when none is given explicitly.
func DefaultRouteName(controller, action string) string {
	return controller + "#" + action
}

type routeKey struct{}

func withRoute(ctx context.Context, r Route) context.Context {
	return context.WithValue(ctx, routeKey{}, r)
}

// RouteFromContext returns the route serving the current request.
func RouteFromContext(ctx context.Context) (Route, bool) {
	r, ok := ctx.Value(routeKey{}).(Route)
	return r, ok
}

// URLGenerator resolves controller/action or route names back into URLs.
//
// Empty names fall back to the route serving req. Values that do not fill a
// path wildcard end up in the query string.
type URLGenerator interface {
	Action(req *http.Request, action, controller string, values RouteValues) (string, error)
	Route(req *http.Request, name string, values RouteValues) (string, error)
}

type routeTable struct {
	mu     sync.RWMutex
	routes []Route
	secure bool
}

func (t *routeTable) add(r Route) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes = append(t.routes, r)
}

func (t *routeTable) all() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

func (t *routeTable) Action(req *http.Request, action, controller string, values RouteValues) (string, error) {
	if action == "" || controller == "" {
		if ambient, ok := routeFromRequest(req); ok {
			if action == "" {
				action = ambient.Action
			}
			if controller == "" {
				controller = ambient.Controller
			}
		}
	}

	candidates := t.match(func(r Route) bool {
		return controllerKey(r.Controller) == controllerKey(controller) && actionKey(r.Action) == actionKey(action)
	})
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: action %q on controller %q", ErrRouteNotFound, action, controller)
	}
	return t.generate(req, candidates, values)
}

func (t *routeTable) Route(req *http.Request, name string, values RouteValues) (string, error) {
	if name == "" {
		if ambient, ok := routeFromRequest(req); ok {
			name = ambient.Name
		}
	}

	candidates := t.match(func(r Route) bool {
		return strings.EqualFold(r.Name, name)
	})
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: route %q", ErrRouteNotFound, name)
	}
	return t.generate(req, candidates, values)
}

// match returns the routes accepted by keep, GET routes first since a
// generated location is meant to be fetched.
func (t *routeTable) match(keep func(Route) bool) []Route {
	var gets, others []Route
	for _, r := range t.all() {
		if !keep(r) {
			continue
		}
		if r.Method == http.MethodGet {
			gets = append(gets, r)
		} else {
			others = append(others, r)
		}
	}
	return append(gets, others...)
}

func (t *routeTable) generate(req *http.Request, candidates []Route, values RouteValues) (string, error) {
	var firstErr error
	for _, r := range candidates {
		u, err := t.build(req, r, values)
		if err == nil {
			return u, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}

func (t *routeTable) build(req *http.Request, r Route, values RouteValues) (string, error) {
	used := make(map[int]bool, len(values))

	lookup := func(name string) (string, bool) {
		for i, p := range values {
			if sameKey(p.Key, name) {
				used[i] = true
				// An explicit empty value clears the wildcard.
				v := p.Value.String()
				return v, !p.Value.IsZero() && v != ""
			}
		}
		// Reuse the values of the current request, e.g. a parent resource id.
		if req != nil {
			if v := req.PathValue(name); v != "" {
				return v, true
			}
		}
		return "", false
	}

	segments := strings.Split(strings.TrimSuffix(r.Path, "{$}"), "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := strings.TrimSuffix(seg[1:len(seg)-1], "...")
		v, ok := lookup(name)
		if !ok {
			return "", fmt.Errorf("%w: %q for route %s", ErrMissingRouteValue, name, r.Name)
		}
		if strings.HasSuffix(seg, "...}") {
			parts := strings.Split(v, "/")
			for j := range parts {
				parts[j] = url.PathEscape(parts[j])
			}
			segments[i] = strings.Join(parts, "/")
		} else {
			segments[i] = url.PathEscape(v)
		}
	}

	var query []string
	for i, p := range values {
		if used[i] {
			continue
		}
		query = append(query, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value.String()))
	}

	var b strings.Builder
	if req != nil && req.Host != "" {
		b.WriteString(t.scheme(req))
		b.WriteString("://")
		b.WriteString(req.Host)
	}
	b.WriteString(strings.Join(segments, "/"))
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(query, "&"))
	}
	return b.String(), nil
}

func (t *routeTable) scheme(req *http.Request) string {
	if t.secure || req.TLS != nil {
		return "https"
	}
	return "http"
}

func routeFromRequest(req *http.Request) (Route, bool) {
	if req == nil {
		return Route{}, false
	}
	return RouteFromContext(req.Context())
}

// controllerKey normalizes controller names so "Products", "products" and
// "ProductsController" all refer to the same routes.
func controllerKey(name string) string {
	name = strcase.ToSnake(name)
	name = strings.TrimSuffix(name, "_controller")
	return strings.TrimSuffix(name, "_resource")
}

func actionKey(name string) string {
	return strcase.ToSnake(name)
}
