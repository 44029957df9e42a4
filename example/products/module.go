package products

import (
	"time"

	tracks "github.com/tmeire/typedtracks"
)

// Imports arrive in bulk from other systems, so they are throttled per client.
var importLimit = tracks.RateLimitConfig{Requests: 60, Window: time.Minute}

// Module registers the product resource and its extra actions.
func Module(store *Store) tracks.Module {
	return func(r tracks.Router) tracks.Router {
		pr := NewProductResource(store)
		return r.Resource(pr).
			PostFunc("/product/import", "product", "import", tracks.Typed(pr.Import), tracks.RateLimit(importLimit)).
			PostFunc("/product/{product_id}/copies", "product", "copy", tracks.Typed(pr.Copy)).
			GetFunc("/product/{product_id}/price", "product", "price", tracks.Typed(pr.Price))
	}
}
