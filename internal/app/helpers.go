package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/storage"
	"github.com/fatih/color"
)

// parseCell validates a "col-row" argument and returns its canonical key.
func parseCell(arg string) (string, error) {
	id, err := shelf.ParseCellID(strings.TrimSpace(arg))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// slotLabel renders a cell key as "C<col>, L<row>".
func slotLabel(key string) string {
	id, err := shelf.ParseCellID(key)
	if err != nil {
		return key
	}
	return id.Label()
}

// notebooksFrom turns barcode arguments into records, skipping blanks.
func notebooksFrom(barcodes []string) []shelf.Notebook {
	out := make([]shelf.Notebook, 0, len(barcodes))
	for _, b := range barcodes {
		nb := shelf.Notebook{Barcode: strings.TrimSpace(b)}
		if nb.Blank() {
			continue
		}
		out = append(out, nb)
	}
	return out
}

// confirm asks a yes/no question on in. Anything but y/yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N): ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// printCell writes one cell and its notebooks.
func printCell(w io.Writer, key string, nbs []shelf.Notebook) {
	fmt.Fprintf(w, "%s %s\n", color.CyanString(slotLabel(key)), color.HiBlackString("(%s, %d)", key, len(nbs)))
	for _, nb := range nbs {
		if nb.Title != "" {
			fmt.Fprintf(w, "  %s  %s\n", nb.Barcode, color.HiBlackString(nb.Title))
			continue
		}
		fmt.Fprintf(w, "  %s\n", nb.Barcode)
	}
}

// persisted drops storage failures. OnError has already printed them as
// warnings and the change stands in memory for the rest of the command.
func persisted(err error) error {
	var se *storage.StorageError
	if errors.As(err, &se) {
		return nil
	}
	return err
}
