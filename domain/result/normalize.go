package result

// Map keys recognized when normalizing a plain map return value. A map
// containing none of these is treated as the resource itself.
const (
	keySuccess    = "success"
	keyResource   = "resource"
	keyCollection = "collection"
	keyErrors     = "errors"
	keyMessage    = "message"
	keyMeta       = "meta"
)

// Normalize adapts an arbitrary service return value into the canonical
// Result shape.
//
// Recognized inputs, in order:
//   - nil: an empty, unflagged result
//   - Result or *Result: passed through
//   - a value implementing any capability interface: each capability is
//     extracted independently
//   - map[string]any containing at least one canonical key: treated as a
//     structured result
//   - anything else: the value becomes the resource
func Normalize(v any) Result {
	switch val := v.(type) {
	case nil:
		return Result{}
	case Result:
		return val
	case *Result:
		if val == nil {
			return Result{}
		}
		return *val
	case map[string]any:
		if isStructured(val) {
			return fromMap(val)
		}
		return Result{Resource: val}
	}

	if res, ok := fromCapabilities(v); ok {
		return res
	}
	return Result{Resource: v}
}

func isStructured(m map[string]any) bool {
	for _, key := range []string{keySuccess, keyResource, keyCollection, keyErrors, keyMessage, keyMeta} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

func fromMap(m map[string]any) Result {
	var res Result
	if flag, ok := m[keySuccess].(bool); ok {
		res.Success = flag
		res.Flagged = true
	}
	if v, ok := m[keyResource]; ok {
		res.Resource = v
	}
	if v, ok := m[keyCollection]; ok {
		res.Collection = toSlice(v)
	}
	if v, ok := m[keyErrors]; ok {
		res.Errors = toFieldErrors(v)
	}
	if msg, ok := m[keyMessage].(string); ok {
		res.Message = msg
	}
	if meta, ok := m[keyMeta].(map[string]any); ok {
		res.Meta = meta
	}
	return res
}

func fromCapabilities(v any) (Result, bool) {
	var res Result
	matched := false

	if c, ok := v.(SuccessFlagger); ok {
		res.Success = c.Succeeded()
		res.Flagged = true
		matched = true
	}
	if c, ok := v.(ResourceCarrier); ok {
		res.Resource = c.Resource()
		matched = true
	}
	if c, ok := v.(CollectionCarrier); ok {
		res.Collection = c.Collection()
		matched = true
	}
	if c, ok := v.(ErrorCarrier); ok {
		res.Errors = c.ValidationErrors()
		matched = true
	}
	if c, ok := v.(MessageCarrier); ok {
		res.Message = c.Message()
		matched = true
	}
	if c, ok := v.(MetaCarrier); ok {
		res.Meta = c.Meta()
		matched = true
	}
	if c, ok := v.(PageCarrier); ok {
		res.Page = c.PageConfig()
		res.HasPage = true
		matched = true
	}

	return res, matched
}

func toSlice(v any) []any {
	switch items := v.(type) {
	case []any:
		return items
	case nil:
		return nil
	default:
		return []any{v}
	}
}

func toFieldErrors(v any) map[string][]string {
	switch errs := v.(type) {
	case map[string][]string:
		return errs
	case map[string]any:
		out := make(map[string][]string, len(errs))
		for field, val := range errs {
			switch msgs := val.(type) {
			case []string:
				out[field] = msgs
			case []any:
				for _, m := range msgs {
					if s, ok := m.(string); ok {
						out[field] = append(out[field], s)
					}
				}
			case string:
				out[field] = []string{msgs}
			}
		}
		return out
	case map[string]string:
		out := make(map[string][]string, len(errs))
		for field, msg := range errs {
			out[field] = []string{msg}
		}
		return out
	}
	return nil
}
