package tracks

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
)

type routeValueKind uint8

const (
	kindString routeValueKind = iota + 1
	kindInt
	kindFloat
	kindBool
	kindUUID
)

// RouteValue is a single substitution value for URL generation. Only the
// primitive kinds reverse routing can put into a path or query string exist.
type RouteValue struct {
	kind routeValueKind
	s    string
	i    int64
	f    float64
	b    bool
	u    uuid.UUID
}

func String(s string) RouteValue { return RouteValue{kind: kindString, s: s} }
func Int(i int64) RouteValue { return RouteValue{kind: kindInt, i: i} }
func Float(f float64) RouteValue { return RouteValue{kind: kindFloat, f: f} }
func Bool(b bool) RouteValue { return RouteValue{kind: kindBool, b: b} }
func UUID(u uuid.UUID) RouteValue { return RouteValue{kind: kindUUID, u: u} }

// IsZero reports whether v was never assigned a kind.
func (v RouteValue) IsZero() bool {
	return v.kind == 0
}

// String formats the value the way it appears in a generated URL, before
// escaping.
func (v RouteValue) String() string {
	switch v.kind {
	case kindString:
		return v.s
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindUUID:
		return v.u.String()
	}
	return ""
}

// RouteParam is one key/value pair of a RouteValues list.
type RouteParam struct {
	Key   string
	Value RouteValue
}

// RouteValues is an ordered mapping of route value keys to values. A nil
// RouteValues means no route values were given.
//
// With never modifies the receiver, so a RouteValues can be shared between
// results safely.
type RouteValues []RouteParam

// Values builds a RouteValues list from pairs.
func Values(params ...RouteParam) RouteValues {
	var rv RouteValues
	for _, p := range params {
		rv = rv.With(p.Key, p.Value)
	}
	return rv
}

// P is shorthand for a RouteParam literal.
func P(key string, value RouteValue) RouteParam {
	return RouteParam{Key: key, Value: value}
}

// With returns a copy of rv with key set to value. An existing key keeps its
// position.
func (rv RouteValues) With(key string, value RouteValue) RouteValues {
	out := make(RouteValues, len(rv), len(rv)+1)
	copy(out, rv)
	for i := range out {
		if sameKey(out[i].Key, key) {
			out[i].Value = value
			return out
		}
	}
	return append(out, RouteParam{Key: key, Value: value})
}

// Get looks up key. Keys compare equal when their snake_case forms match, so
// "productId", "ProductID" and "product_id" are the same key.
func (rv RouteValues) Get(key string) (RouteValue, bool) {
	for _, p := range rv {
		if sameKey(p.Key, key) {
			return p.Value, true
		}
	}
	return RouteValue{}, false
}

// Len returns the number of keys.
func (rv RouteValues) Len() int {
	return len(rv)
}

func sameKey(a, b string) bool {
	return a == b || normalizeKey(a) == normalizeKey(b)
}

func normalizeKey(k string) string {
	return strcase.ToSnake(k)
}
