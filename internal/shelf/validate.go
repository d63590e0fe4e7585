package shelf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Import failure kinds. Check with errors.Is.
var (
	ErrInvalidJSON  = errors.New("file is not valid JSON")
	ErrInvalidShape = errors.New("file does not contain shelf data")
)

// ShapeError describes where an import document deviates from the expected
// {cell: [{barcode, title?}]} shape.
type ShapeError struct {
	Cell   string
	Index  int // -1 when the problem is the cell value itself
	Reason string
}

func (e *ShapeError) Error() string {
	switch {
	case e.Cell == "":
		return fmt.Sprintf("%v: %s", ErrInvalidShape, e.Reason)
	case e.Index < 0:
		return fmt.Sprintf("%v: cell %s: %s", ErrInvalidShape, e.Cell, e.Reason)
	default:
		return fmt.Sprintf("%v: cell %s, entry %d: %s", ErrInvalidShape, e.Cell, e.Index+1, e.Reason)
	}
}

func (e *ShapeError) Unwrap() error { return ErrInvalidShape }

// ParseImport decodes and validates an import document. The document must be
// an object whose values are lists of objects carrying a string "barcode".
// The legacy string-per-cell layout is rejected here even though stored
// documents accept it.
func ParseImport(data []byte) (Data, error) {
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ShapeError{Index: -1, Reason: "top level must be an object"}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &ShapeError{Index: -1, Reason: err.Error()}
	}

	out := make(Data, len(raw))
	for id, val := range raw {
		nbs, err := parseImportCell(id, val)
		if err != nil {
			return nil, err
		}
		out[id] = nbs
	}
	return out, nil
}

func parseImportCell(id string, val json.RawMessage) ([]Notebook, error) {
	val = bytes.TrimSpace(val)
	if len(val) == 0 || val[0] != '[' {
		return nil, &ShapeError{Cell: id, Index: -1, Reason: "value must be a list"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, &ShapeError{Cell: id, Index: -1, Reason: err.Error()}
	}

	nbs := make([]Notebook, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, &ShapeError{Cell: id, Index: i, Reason: "entry must be an object"}
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			return nil, &ShapeError{Cell: id, Index: i, Reason: err.Error()}
		}
		if _, ok := fields["barcode"]; !ok {
			return nil, &ShapeError{Cell: id, Index: i, Reason: `missing "barcode"`}
		}
		var nb Notebook
		if err := json.Unmarshal(item, &nb); err != nil {
			return nil, &ShapeError{Cell: id, Index: i, Reason: "barcode and title must be strings"}
		}
		nbs = append(nbs, nb)
	}
	return nbs, nil
}
