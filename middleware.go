package tracks

import "net/http"

// Middleware wraps a handler. It may fail while the router is being built,
// never while serving.
type Middleware func(h http.Handler) (http.Handler, error)

type middlewares struct {
	l []Middleware
}

// Apply appends m; middlewares applied first run first.
func (ms *middlewares) Apply(m Middleware) {
	ms.l = append(ms.l, m)
}

// Wrap wraps h with all applied middlewares followed by extra.
func (ms *middlewares) Wrap(h http.Handler, extra ...Middleware) (http.Handler, error) {
	all := append(append([]Middleware{}, ms.l...), extra...)

	var err error
	for i := len(all) - 1; i >= 0; i-- {
		h, err = all[i](h)
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}
