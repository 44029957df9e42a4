// Package results provides action results that carry the type of their body.
//
// A tracks action usually returns (any, error), which lets any value slip
// through. Actions registered with tracks.Typed instead declare the body they
// produce as tracks.ActionResult[T]. The types in this package convert into
// exactly that ActionResult[T] and nothing else:
//
//	func (c *Products) Create(r *http.Request) (tracks.ActionResult[Product], error) {
//		p, err := c.store.Create(r.Context(), input)
//		if err != nil {
//			return tracks.ActionResult[Product]{}, err
//		}
//		values := tracks.Values(tracks.P("product_id", tracks.UUID(p.ID)))
//		return results.CreatedAtActionWithValues("show", values, p).ToActionResult(), nil
//	}
//
// Returning results.Ok("text").ToActionResult() from the same action does not
// compile.
//
// Each result only describes the response. Writing headers, computing the
// Location of CreatedAtAction and CreatedAtRoute results through reverse
// routing and serializing the body is left to the tracks router.
//
// Results are immutable values and safe to share between goroutines.
package results
