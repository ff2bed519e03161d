package optimization

import "encoding/json"

// RawResult is the untrusted output of a computation procedure. Every field
// is optional and loosely typed; accessors coerce what they can and report
// absence instead of failing, so a procedure can never crash the pipeline by
// omitting or malforming fields.
type RawResult map[string]interface{}

// DecodeRawResult parses a JSON document into a RawResult. Only a top-level
// failure to parse is an error; the shape of the content is not judged here.
func DecodeRawResult(data []byte) (RawResult, error) {
	var raw RawResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = RawResult{}
	}
	return raw, nil
}

// Has reports whether the named field is present, whatever its type.
func (r RawResult) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Float returns the named field coerced to float64. JSON numbers decode as
// float64; integer-typed values from in-process procedures are accepted too.
func (r RawResult) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return coerceFloat(v)
}

// List returns the named field as a generic slice.
func (r RawResult) List(key string) ([]interface{}, bool) {
	v, ok := r[key]
	if !ok {
		return nil, false
	}
	list, ok := v.([]interface{})
	return list, ok
}

// Map returns the named field as a generic mapping.
func (r RawResult) Map(key string) (map[string]interface{}, bool) {
	v, ok := r[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	return m, ok
}

// Strings returns the named field as a list of strings, skipping entries of
// any other type.
func (r RawResult) Strings(key string) []string {
	list, ok := r.List(key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, entry := range list {
		if s, ok := entry.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func coerceFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// FieldString looks up a string key in a generic mapping, returning fallback
// when the key is absent, empty, or not a string.
func FieldString(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// FieldFloat looks up a numeric key in a generic mapping.
func FieldFloat(m map[string]interface{}, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return coerceFloat(v)
}
