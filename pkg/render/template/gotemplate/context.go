package gotemplate

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// toContext turns template data into a pongo2 context. Structs are flattened
// through their JSON form so templates address fields by JSON name; functions
// pass through untouched so they stay callable.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	value, err := plain(data)
	if err != nil {
		return nil, err
	}
	m, ok := value.(map[string]any)
	if !ok {
		return pongo2.Context{"data": value}, nil
	}
	ctx := make(pongo2.Context, len(m))
	for key, v := range m {
		if key = strings.TrimSpace(key); key != "" {
			ctx[key] = v
		}
	}
	return ctx, nil
}

func plain(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case pongo2.Context:
		return plainMap(v)
	case map[string]any:
		return plainMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := plain(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case string, bool, int, int64, float64:
		return v, nil
	}
	if reflect.ValueOf(value).Kind() == reflect.Func {
		return value, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	if _, isMap := decoded.(map[string]any); isMap {
		return plain(decoded)
	}
	if _, isSlice := decoded.([]any); isSlice {
		return plain(decoded)
	}
	return decoded, nil
}

func plainMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		converted, err := plain(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}
