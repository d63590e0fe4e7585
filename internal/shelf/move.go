package shelf

// Move removes from source every notebook whose barcode matches one of moved
// and appends moved to target. Duplicated barcodes in source all leave
// together. Target may equal source, in which case the moved records end up
// appended once after the remaining ones.
func Move(d Data, source string, moved []Notebook, target string) Data {
	out := d.Clone()

	kept := make([]Notebook, 0, len(out[source]))
	for _, nb := range out[source] {
		if HasBarcode(moved, nb.Barcode) {
			continue
		}
		kept = append(kept, nb)
	}
	out[source] = kept

	out[target] = append(out[target], moved...)
	if out[target] == nil {
		out[target] = []Notebook{}
	}
	return out
}
