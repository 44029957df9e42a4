package tracks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/tmeire/typedtracks/otel"
)

type Router interface {
	Secure() bool
	BaseDomain() string
	Port() int
	Config() Config
	Module(m Module) Router
	GlobalMiddleware(m Middleware) Router
	RequestMiddleware(m Middleware) Router
	Redirect(origin string, destination string) Router
	Serve(a Action) Router
	Controller(c Controller) Router
	GetFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router
	PostFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router
	PutFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router
	PatchFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router
	DeleteFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router
	Resource(r Resource, mws ...Middleware) Router
	ResourceAtPath(path string, r Resource, mws ...Middleware) Router
	HealthCheck(path string, checks ...HealthCheck) Router
	Routes() []Route
	URLs() URLGenerator
	Handler() (http.Handler, error)
	Run(ctx context.Context) error
}

type router struct {
	config             Config
	mux                *http.ServeMux
	routes             *routeTable
	globalMiddlewares  *middlewares
	requestMiddlewares *middlewares
	responses          metric.Int64Counter
}

// New creates a router for conf. Every request is traced and panics are
// recovered before they reach the client.
func New(conf Config) Router {
	responses, err := otel.ResponseCounter()
	if err != nil {
		slog.Warn("failed to create response counter", "error", err)
	}

	r := &router{
		config:             conf,
		mux:                http.NewServeMux(),
		routes:             &routeTable{secure: conf.Secure},
		globalMiddlewares:  &middlewares{},
		requestMiddlewares: &middlewares{},
		responses:          responses,
	}

	// HTTP traces for every request
	r.GlobalMiddleware(otel.Trace)

	// Catch all panics to make sure no weird output is written to the client
	r.GlobalMiddleware(CatchAll)

	return r
}

// Secure returns true if all the links on the site should use HTTPS
func (r *router) Secure() bool {
	return r.config.Secure
}

func (r *router) BaseDomain() string {
	return r.config.BaseDomain
}

func (r *router) Port() int {
	return r.config.Port
}

func (r *router) Config() Config {
	return r.config
}

func (r *router) normalize(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// serve registers a for method and urlPath and records the route so it can be
// found again by URL generation. The route is named routeName, or
// "controller#action" when routeName is empty.
func (r *router) serve(method, urlPath, controller, actionName, routeName string, a ActionFunc, mws ...Middleware) Router {
	if routeName == "" {
		routeName = DefaultRouteName(controller, actionName)
	}

	route := Route{
		Method:     method,
		Path:       r.normalize(urlPath),
		Controller: controller,
		Action:     actionName,
		Name:       routeName,
	}

	h, err := r.requestMiddlewares.Wrap(&action{
		route:     route,
		impl:      a,
		urls:      r.routes,
		responses: r.responses,
	}, mws...)
	if err != nil {
		return errRouter{err}
	}

	r.mux.Handle(method+" "+route.Path, h)
	r.routes.add(route)

	slog.Debug("registered route", "method", method, "path", route.Path, "name", routeName)
	return r
}

type Module func(Router) Router

// Module registers all the module functionality (controllers, middlewares,...) into the router.
// This is equivalent to `m(r)`, but enables chaining when setting up the router.
func (r *router) Module(m Module) Router {
	return m(r)
}

func (r *router) GlobalMiddleware(m Middleware) Router {
	r.globalMiddlewares.Apply(m)
	return r
}

func (r *router) RequestMiddleware(m Middleware) Router {
	r.requestMiddlewares.Apply(m)
	return r
}

func (r *router) Redirect(origin string, destination string) Router {
	r.mux.Handle(origin, http.RedirectHandler(destination, http.StatusMovedPermanently))
	return r
}

func (r *router) Serve(a Action) Router {
	return r.serve(a.Method, a.Path, a.Controller, a.Name, a.RouteName, a.Func, a.Middlewares...)
}

func (r *router) Controller(c Controller) Router {
	if nr, needsRouter := c.(interface {
		Inject(r Router)
	}); needsRouter {
		nr.Inject(r)
	}
	return c.Register(r)
}

// GetFunc registers a handler for HTTP GET requests to the specified path.
func (r *router) GetFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return r.serve(http.MethodGet, path, controller, action, "", a, mws...)
}

// PostFunc registers a handler for HTTP POST requests to the specified path.
func (r *router) PostFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return r.serve(http.MethodPost, path, controller, action, "", a, mws...)
}

// PutFunc registers a handler for HTTP PUT requests to the specified path.
func (r *router) PutFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return r.serve(http.MethodPut, path, controller, action, "", a, mws...)
}

// PatchFunc registers a handler for HTTP PATCH requests to the specified path.
func (r *router) PatchFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return r.serve(http.MethodPatch, path, controller, action, "", a, mws...)
}

// DeleteFunc registers a handler for HTTP DELETE requests to the specified path.
func (r *router) DeleteFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return r.serve(http.MethodDelete, path, controller, action, "", a, mws...)
}

// Resource registers the resourceful routes of rs at the root path.
//
// A resource provides CRUD-like routes including:
//
// - Index: GET /product/
// - New: GET /product/new
// - Create: POST /product/
// - Show: GET /product/{product_id}
// - Edit: GET /product/{product_id}/edit
// - Update: PUT or POST /product/{product_id}
// - Destroy: DELETE /product/{product_id}
//
// The controller name is the snake_case type name without its "Resource"
// suffix, so routes are named "product#show" and so on.
func (r *router) Resource(rs Resource, mws ...Middleware) Router {
	return r.ResourceAtPath("/", rs, mws...)
}

func (r *router) ResourceAtPath(rootPath string, rs Resource, mws ...Middleware) Router {
	// This little piece of reflection is OK since it only runs once on boot,
	// it's not a reflection penalty on every request.
	rt := reflect.TypeOf(rs)
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	name := controllerKey(rt.Name())

	if nr, needsRouter := rs.(interface {
		Inject(r Router)
	}); needsRouter {
		nr.Inject(r)
	}

	pathParam := fmt.Sprintf(`{%s_id}`, name)
	basePath := path.Join(r.normalize(rootPath), strcase.ToKebab(name))

	var nr Router = r
	nr = nr.GetFunc(basePath+"/", name, "index", rs.Index, mws...).
		GetFunc(basePath+"/new", name, "new", rs.New, mws...).
		PostFunc(basePath+"/", name, "create", rs.Create, mws...).
		GetFunc(basePath+"/"+pathParam, name, "show", rs.Show, mws...).
		GetFunc(basePath+"/"+pathParam+"/edit", name, "edit", rs.Edit, mws...).
		PutFunc(basePath+"/"+pathParam, name, "update", rs.Update, mws...).
		PostFunc(basePath+"/"+pathParam, name, "update", rs.Update, mws...).
		DeleteFunc(basePath+"/"+pathParam, name, "destroy", rs.Destroy, mws...)

	// If this resource has subresources, register these as well.
	if withSubresources, ok := rs.(interface {
		Subresources() []Resource
	}); ok {
		basePath = basePath + "/" + pathParam

		for _, sr := range withSubresources.Subresources() {
			nr = nr.ResourceAtPath(basePath, sr, mws...)
		}
	}

	return nr
}

// Routes lists every registered route in registration order.
func (r *router) Routes() []Route {
	return r.routes.all()
}

// URLs returns the generator used to resolve CreatedAtAction and
// CreatedAtRoute results.
func (r *router) URLs() URLGenerator {
	return r.routes
}

// Handler creates an HTTP handler for this router, wrapped in the global middlewares.
func (r *router) Handler() (http.Handler, error) {
	return r.globalMiddlewares.Wrap(r.mux)
}

// Run serves the router on the configured port until ctx is cancelled.
func (r *router) Run(ctx context.Context) error {
	h, err := r.Handler()
	if err != nil {
		return err
	}
	return Serve(ctx, h, r.config.Port)
}

const shutdownTimeout = 10 * time.Second

// Serve runs h on port until ctx is done, then shuts the server down
// gracefully.
func Serve(ctx context.Context, h http.Handler, port int) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: h,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "port", port)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// errRouter is returned once building the router failed; every call is a
// no-op and Handler/Run report the original error.
type errRouter struct {
	err error
}

func (e errRouter) Secure() bool { return false }
func (e errRouter) BaseDomain() string { return "" }
func (e errRouter) Port() int { return 0 }
func (e errRouter) Config() Config { return Config{} }
func (e errRouter) Module(m Module) Router { return e }
func (e errRouter) GlobalMiddleware(m Middleware) Router { return e }
func (e errRouter) RequestMiddleware(m Middleware) Router { return e }
func (e errRouter) Redirect(origin, destination string) Router { return e }
func (e errRouter) Serve(a Action) Router { return e }
func (e errRouter) Controller(c Controller) Router { return e }
func (e errRouter) GetFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return e
}
func (e errRouter) PostFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return e
}
func (e errRouter) PutFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return e
}
func (e errRouter) PatchFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return e
}
func (e errRouter) DeleteFunc(path string, controller, action string, a ActionFunc, mws ...Middleware) Router {
	return e
}
func (e errRouter) Resource(r Resource, mws ...Middleware) Router { return e }
func (e errRouter) ResourceAtPath(path string, r Resource, mws ...Middleware) Router {
	return e
}
func (e errRouter) HealthCheck(path string, checks ...HealthCheck) Router { return e }
func (e errRouter) Routes() []Route { return nil }
func (e errRouter) URLs() URLGenerator { return &routeTable{} }
func (e errRouter) Handler() (http.Handler, error) { return nil, e.err }
func (e errRouter) Run(ctx context.Context) error { return e.err }
