package shelf

import "strings"

// Search returns the cell holding a notebook whose barcode equals query,
// ignoring case and surrounding whitespace. Only exact matches count.
// Cells are scanned in grid order so the first hit is deterministic.
func Search(d Data, query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	for _, id := range d.Cells() {
		for _, nb := range d[id] {
			if strings.ToLower(nb.Barcode) == q {
				return id, true
			}
		}
	}
	return "", false
}
