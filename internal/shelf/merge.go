package shelf

import (
	"fmt"
	"strings"
)

// ImportMode selects how imported data combines with the current state.
type ImportMode int

const (
	ModeMerge ImportMode = iota
	ModeReplace
)

func (m ImportMode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "merge"
}

// ParseImportMode accepts "merge" or "replace".
func ParseImportMode(s string) (ImportMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "merge":
		return ModeMerge, nil
	case "replace":
		return ModeReplace, nil
	default:
		return ModeMerge, fmt.Errorf("unknown import mode %q (want merge or replace)", s)
	}
}

// Apply combines incoming with current according to mode. Neither input is
// modified.
func Apply(current, incoming Data, mode ImportMode) Data {
	if mode == ModeReplace {
		return incoming.Clone()
	}
	return Merge(current, incoming)
}

// Merge adds every imported cell to dst. Cells missing from dst are adopted
// as-is; for existing cells only notebooks whose barcode is not yet present
// in that cell are appended.
func Merge(dst, src Data) Data {
	out := dst.Clone()
	for id, incoming := range src {
		existing, ok := out[id]
		if !ok {
			out[id] = cloneList(incoming)
			continue
		}
		for _, nb := range incoming {
			if HasBarcode(existing, nb.Barcode) {
				continue
			}
			existing = append(existing, nb)
		}
		out[id] = existing
	}
	return out
}

// MergeStats counts what Merge would add and skip.
type MergeStats struct {
	NewCells int
	Added    int
	Skipped  int
}

// PreviewMerge reports what Merge(dst, src) would do without building the result.
func PreviewMerge(dst, src Data) MergeStats {
	var st MergeStats
	for id, incoming := range src {
		existing, ok := dst[id]
		if !ok {
			st.NewCells++
			st.Added += len(incoming)
			continue
		}
		seen := cloneList(existing)
		for _, nb := range incoming {
			if HasBarcode(seen, nb.Barcode) {
				st.Skipped++
				continue
			}
			seen = append(seen, nb)
			st.Added++
		}
	}
	return st
}
