package shelf

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses a stored document, migrating the legacy layout where a cell
// held a single barcode string instead of a notebook list.
func Decode(data []byte) (Data, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing shelf data: %w", err)
	}
	return Migrate(raw)
}

// Migrate converts raw cell values to notebook lists. String values become a
// one-notebook list, list values are kept, null becomes an empty list.
// Anything else is an error.
func Migrate(raw map[string]json.RawMessage) (Data, error) {
	out := make(Data, len(raw))
	for id, val := range raw {
		val = bytes.TrimSpace(val)
		switch {
		case len(val) == 0 || bytes.Equal(val, []byte("null")):
			out[id] = []Notebook{}
		case val[0] == '"':
			var barcode string
			if err := json.Unmarshal(val, &barcode); err != nil {
				return nil, fmt.Errorf("cell %s: %w", id, err)
			}
			out[id] = []Notebook{{Barcode: barcode}}
		case val[0] == '[':
			var nbs []Notebook
			if err := json.Unmarshal(val, &nbs); err != nil {
				return nil, fmt.Errorf("cell %s: %w", id, err)
			}
			out[id] = cloneList(nbs)
		default:
			return nil, fmt.Errorf("cell %s: unexpected value %s", id, truncate(val, 32))
		}
	}
	return out, nil
}

// Marshal encodes compact JSON for storage.
func Marshal(d Data) ([]byte, error) {
	data, err := json.Marshal(d.Clone())
	if err != nil {
		return nil, fmt.Errorf("encoding shelf data: %w", err)
	}
	return data, nil
}

// MarshalIndent encodes JSON with 2-space indentation, the export format.
func MarshalIndent(d Data) ([]byte, error) {
	data, err := json.MarshalIndent(d.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding shelf data: %w", err)
	}
	return append(data, '\n'), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}
