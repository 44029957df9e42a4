package products

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	tracks "github.com/tmeire/typedtracks"
	"github.com/tmeire/typedtracks/results"
)

const idParam = "product_id"

// ProductResource serves products at /product/.
type ProductResource struct {
	tracks.BaseController
	store *Store
}

func NewProductResource(store *Store) *ProductResource {
	return &ProductResource{store: store}
}

func (pr *ProductResource) Index(r *http.Request) (any, error) {
	products, err := pr.store.All(r.Context())
	if err != nil {
		return nil, err
	}
	return results.Ok(products).ToActionResult(), nil
}

func (pr *ProductResource) New(r *http.Request) (any, error) {
	return results.Ok(Product{}).ToActionResult(), nil
}

func (pr *ProductResource) Create(r *http.Request) (any, error) {
	input, err := tracks.Parse[Product](r)
	if err != nil {
		return tracks.BadRequest(err), nil
	}

	p, err := pr.store.Create(r.Context(), input)
	if errors.Is(err, ErrInvalidProduct) {
		return tracks.BadRequest(err), nil
	}
	if err != nil {
		return nil, err
	}
	return results.CreatedAtActionWithValues("show", showValues(p), p).ToActionResult(), nil
}

func (pr *ProductResource) Show(r *http.Request) (any, error) {
	p, resp, err := pr.find(r)
	if resp != nil || err != nil {
		return resp, err
	}
	return results.Ok(p).ToActionResult(), nil
}

func (pr *ProductResource) Edit(r *http.Request) (any, error) {
	return pr.Show(r)
}

func (pr *ProductResource) Update(r *http.Request) (any, error) {
	current, resp, err := pr.find(r)
	if resp != nil || err != nil {
		return resp, err
	}

	input, err := tracks.Parse[Product](r)
	if err != nil {
		return tracks.BadRequest(err), nil
	}
	input.ID = current.ID

	p, err := pr.store.Update(r.Context(), input)
	switch {
	case errors.Is(err, ErrInvalidProduct):
		return tracks.BadRequest(err), nil
	case errors.Is(err, ErrNotFound):
		return tracks.NotFound(err.Error()), nil
	case err != nil:
		return nil, err
	}
	return results.Ok(p).ToActionResult(), nil
}

func (pr *ProductResource) Destroy(r *http.Request) (any, error) {
	id, err := productID(r)
	if err != nil {
		return tracks.BadRequest(err), nil
	}
	err = pr.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return tracks.NotFound(err.Error()), nil
	}
	if err != nil {
		return nil, err
	}
	return tracks.NoContent(), nil
}

// Import creates a product and points at it with a location built by hand.
// With ?absolute=true the location carries the request's scheme and host.
func (pr *ProductResource) Import(r *http.Request) (tracks.ActionResult[Product], error) {
	input, err := tracks.Parse[Product](r)
	if err != nil {
		return tracks.FromResult[Product](tracks.BadRequest(err)), nil
	}

	p, err := pr.store.Create(r.Context(), input)
	if errors.Is(err, ErrInvalidProduct) {
		return tracks.FromResult[Product](tracks.BadRequest(err)), nil
	}
	if err != nil {
		return tracks.ActionResult[Product]{}, err
	}

	location := &url.URL{Path: "/product/" + p.ID.String()}
	if r.URL.Query().Get("absolute") == "true" {
		location.Scheme = pr.Scheme()
		location.Host = r.Host
	}

	created, err := results.CreatedURL(location, p)
	if err != nil {
		return tracks.ActionResult[Product]{}, err
	}
	return created.ToActionResult(), nil
}

// Copy duplicates a product and points at the copy through the named show
// route.
func (pr *ProductResource) Copy(r *http.Request) (tracks.ActionResult[Product], error) {
	id, err := productID(r)
	if err != nil {
		return tracks.FromResult[Product](tracks.BadRequest(err)), nil
	}

	p, err := pr.store.Copy(r.Context(), id, " (copy)")
	if errors.Is(err, ErrNotFound) {
		return tracks.FromResult[Product](tracks.NotFound(err.Error())), nil
	}
	if err != nil {
		return tracks.ActionResult[Product]{}, err
	}
	return results.CreatedAtRouteWithValues("product#show", showValues(p), p).ToActionResult(), nil
}

func (pr *ProductResource) Price(r *http.Request) (tracks.ActionResult[float64], error) {
	p, resp, err := pr.find(r)
	if resp != nil || err != nil {
		return tracks.FromResult[float64](resp), err
	}
	return results.Ok(p.Price).ToActionResult(), nil
}

// find loads the product named in the path. A non-nil response means the
// request cannot be served and should be returned as is.
func (pr *ProductResource) find(r *http.Request) (Product, *tracks.Response, error) {
	id, err := productID(r)
	if err != nil {
		return Product{}, tracks.BadRequest(err), nil
	}

	p, err := pr.store.Find(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return Product{}, tracks.NotFound(err.Error()), nil
	}
	if err != nil {
		return Product{}, nil, err
	}
	return p, nil, nil
}

func productID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(idParam))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid product id %q: %w", r.PathValue(idParam), err)
	}
	return id, nil
}

func showValues(p Product) tracks.RouteValues {
	return tracks.Values(tracks.P(idParam, tracks.UUID(p.ID)))
}
