package tracks

import "net/http"

// Controller registers its own actions on a router.
type Controller interface {
	Register(r Router) Router
}

// BaseController is embedded by controllers that need the router, e.g. to
// build URLs to other actions.
type BaseController struct {
	router Router
}

func (bc *BaseController) Inject(router Router) {
	bc.router = router
}

func (bc BaseController) Scheme() string {
	if bc.router != nil && bc.router.Secure() {
		return "https"
	}
	return "http"
}

// URLFor generates the URL of action on the controller serving req.
func (bc BaseController) URLFor(req *http.Request, action string, values RouteValues) (string, error) {
	if bc.router == nil {
		return "", ErrRouteNotFound
	}
	return bc.router.URLs().Action(req, action, "", values)
}
