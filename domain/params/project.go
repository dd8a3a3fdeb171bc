// Package params provides allow-list projection of inbound request
// payloads. Project is a pure function over plain maps and is independent
// of any request framework.
package params

// Rule is one entry of an allow-list filter. A rule either permits a
// scalar key, an array key, or a nested object with its own filter.
type Rule struct {
	Key    string
	Array  bool
	Nested Filter
}

// Filter is an ordered allow-list. An empty (or nil) filter means no
// allow-list is configured: the whole payload passes through minus the
// reserved routing-metadata keys.
type Filter []Rule

// Key permits a scalar field.
func Key(name string) Rule {
	return Rule{Key: name}
}

// Each permits an array of scalars.
func Each(name string) Rule {
	return Rule{Key: name, Array: true}
}

// Map permits a nested object, restricted to the given nested rules.
func Map(name string, nested ...Rule) Rule {
	return Rule{Key: name, Nested: Filter(nested)}
}

// EachMap permits an array of nested objects, each restricted to the
// given nested rules.
func EachMap(name string, nested ...Rule) Rule {
	return Rule{Key: name, Array: true, Nested: Filter(nested)}
}

// reservedKeys are routing-metadata fields stripped from unfiltered
// payloads.
var reservedKeys = map[string]bool{
	"action":     true,
	"controller": true,
	"format":     true,
	"commit":     true,
}

// Reserved reports whether key is a routing-metadata field.
func Reserved(key string) bool {
	return reservedKeys[key]
}

// Project extracts the allowed subset of payload.
//
// When rootKey is non-empty, projection applies to payload[rootKey]
// (which must be a map; anything else yields an empty result). With a
// non-empty filter only the allowed shape survives; without one the
// payload passes through unchanged except for reserved keys.
func Project(payload map[string]any, rootKey string, filter Filter) map[string]any {
	scope := payload
	if rootKey != "" {
		nested, ok := payload[rootKey].(map[string]any)
		if !ok {
			return map[string]any{}
		}
		scope = nested
	}

	if len(filter) == 0 {
		return passthrough(scope, rootKey == "")
	}
	return apply(scope, filter)
}

func passthrough(scope map[string]any, stripReserved bool) map[string]any {
	out := make(map[string]any, len(scope))
	for k, v := range scope {
		if stripReserved && reservedKeys[k] {
			continue
		}
		out[k] = v
	}
	return out
}

func apply(scope map[string]any, filter Filter) map[string]any {
	out := make(map[string]any, len(filter))
	for _, rule := range filter {
		v, ok := scope[rule.Key]
		if !ok {
			continue
		}
		switch {
		case rule.Array && rule.Nested != nil:
			items, ok := v.([]any)
			if !ok {
				continue
			}
			projected := make([]any, 0, len(items))
			for _, item := range items {
				if m, ok := item.(map[string]any); ok {
					projected = append(projected, apply(m, rule.Nested))
				}
			}
			out[rule.Key] = projected
		case rule.Array:
			if items, ok := v.([]any); ok {
				out[rule.Key] = items
			}
		case rule.Nested != nil:
			if m, ok := v.(map[string]any); ok {
				out[rule.Key] = apply(m, rule.Nested)
			}
		default:
			// Scalar rule: reject container values so a nested
			// object cannot smuggle through a scalar slot.
			switch v.(type) {
			case map[string]any, []any:
			default:
				out[rule.Key] = v
			}
		}
	}
	return out
}
