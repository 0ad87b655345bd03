// Package claims assembles the claim sets that get signed into access
// tokens: an ordered contributor pipeline produces standard (iat/exp) and
// domain (drupal.*) claims.
package claims

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimSet is a mutable collection of JWT claims. Top-level claim names map
// to string, int64, or nested ClaimSet values. Hierarchical claims such as
// drupal.email are stored as nested maps so they serialize to nested JSON
// objects.
type ClaimSet map[string]any

// New returns an empty claim set.
func New() ClaimSet {
	return ClaimSet{}
}

// Set stores a top-level claim, replacing any previous value.
func (cs ClaimSet) Set(name string, value any) {
	cs[name] = normalizeValue(value)
}

// SetPath stores a claim under a hierarchical path, creating intermediate
// objects as needed. SetPath([]string{"drupal", "email"}, v) yields
// {"drupal": {"email": v}}.
func (cs ClaimSet) SetPath(path []string, value any) {
	if len(path) == 0 {
		return
	}
	node := cs
	for _, part := range path[:len(path)-1] {
		child, ok := node[part].(ClaimSet)
		if !ok {
			child = ClaimSet{}
			node[part] = child
		}
		node = child
	}
	node[path[len(path)-1]] = normalizeValue(value)
}

// Get returns a top-level claim value.
func (cs ClaimSet) Get(name string) (any, bool) {
	v, ok := cs[name]
	return v, ok
}

// GetPath returns the claim value stored under a hierarchical path.
func (cs ClaimSet) GetPath(path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	node := cs
	for _, part := range path[:len(path)-1] {
		child, ok := node[part].(ClaimSet)
		if !ok {
			return nil, false
		}
		node = child
	}
	v, ok := node[path[len(path)-1]]
	return v, ok
}

// Merge copies every claim from other into cs. Claims from other win on
// collision, which is how later pipeline contributors take priority over
// earlier ones.
func (cs ClaimSet) Merge(other ClaimSet) {
	for name, value := range other {
		if child, ok := value.(ClaimSet); ok {
			existing, isSet := cs[name].(ClaimSet)
			if !isSet {
				existing = ClaimSet{}
				cs[name] = existing
			}
			existing.Merge(child)
			continue
		}
		cs[name] = value
	}
}

// Equal reports whether two claim sets carry the same claims and values.
func (cs ClaimSet) Equal(other ClaimSet) bool {
	if len(cs) != len(other) {
		return false
	}
	for name, value := range cs {
		otherValue, ok := other[name]
		if !ok {
			return false
		}
		left, leftIsSet := value.(ClaimSet)
		right, rightIsSet := otherValue.(ClaimSet)
		if leftIsSet != rightIsSet {
			return false
		}
		if leftIsSet {
			if !left.Equal(right) {
				return false
			}
			continue
		}
		if value != otherValue {
			return false
		}
	}
	return true
}

// ToMapClaims converts the claim set into the representation the token codec
// signs.
func (cs ClaimSet) ToMapClaims() jwt.MapClaims {
	out := jwt.MapClaims{}
	for name, value := range cs {
		if child, ok := value.(ClaimSet); ok {
			out[name] = map[string]any(child.ToMapClaims())
			continue
		}
		out[name] = value
	}
	return out
}

// FromMapClaims converts decoded claims back into a ClaimSet. JSON decoding
// turns every number into a float64; integral values are restored to int64 so
// a decoded claim set compares equal to the one that was encoded.
func FromMapClaims(mc jwt.MapClaims) ClaimSet {
	cs := ClaimSet{}
	for name, value := range mc {
		cs[name] = fromJSONValue(value)
	}
	return cs
}

func fromJSONValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		child := ClaimSet{}
		for name, nested := range v {
			child[name] = fromJSONValue(nested)
		}
		return child
	default:
		return normalizeValue(value)
	}
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
		return v
	case time.Time:
		return v.Unix()
	default:
		return value
	}
}
