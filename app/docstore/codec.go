package docstore

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func encode(doc any) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("docstore: nil document")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("docstore: encode document: %w", err)
	}
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("docstore: document must encode to a JSON object")
	}
	return raw, nil
}

func decodeFields(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(raw) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("docstore: decode document: %w", err)
	}
	return fields, nil
}

// normalize converts a Go value to the shape it has after a JSON round
// trip, so values compare equal to decoded document fields.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func applyUpdates(raw []byte, updates []Update) ([]byte, error) {
	fields, err := decodeFields(raw)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		if u.Field == "" {
			return nil, fmt.Errorf("docstore: update with empty field name")
		}
		if u.clear {
			delete(fields, u.Field)
			continue
		}
		v, err := normalize(u.Value)
		if err != nil {
			return nil, fmt.Errorf("docstore: encode field %q: %w", u.Field, err)
		}
		fields[u.Field] = v
	}
	return json.Marshal(fields)
}

func matches(raw []byte, filters []Filter) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return false, err
	}
	for _, f := range filters {
		want, err := normalize(f.Value)
		if err != nil {
			return false, fmt.Errorf("docstore: encode filter %q: %w", f.Field, err)
		}
		if !reflect.DeepEqual(fields[f.Field], want) {
			return false, nil
		}
	}
	return true, nil
}
