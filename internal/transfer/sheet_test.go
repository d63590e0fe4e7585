package transfer_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/transfer"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name, path string
		want       transfer.Format
		wantErr    bool
	}{
		{"", "out.json", transfer.FormatJSON, false},
		{"", "out.XLSX", transfer.FormatXLSX, false},
		{"", "-", transfer.FormatJSON, false},
		{"xlsx", "-", transfer.FormatXLSX, false},
		{"JSON", "out.xlsx", transfer.FormatJSON, false},
		{"csv", "out.csv", "", true},
	}
	for _, tt := range tests {
		got, err := transfer.ParseFormat(tt.name, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q, %q) error = %v, wantErr %v", tt.name, tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q, %q) = %q, want %q", tt.name, tt.path, got, tt.want)
		}
	}
}

func TestExportSheetFile_Rows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shelf.xlsx")
	d := shelf.Data{
		"10-1": {{Barcode: "z"}},
		"1-1":  {},
		"2-3":  {{Barcode: "9780132350884", Title: "Clean Code"}, {Barcode: "b"}},
	}
	if err := transfer.ExportSheetFile(path, d); err != nil {
		t.Fatalf("ExportSheetFile() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(transfer.SheetName)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	want := [][]string{
		{"Cell", "Slot", "Position", "Barcode", "Title"},
		{"1-1", "C1, L1"},
		{"2-3", "C2, L3", "1", "9780132350884", "Clean Code"},
		{"2-3", "C2, L3", "2", "b"},
		{"10-1", "C10, L1", "1", "z"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("sheet rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExportSheet_Writer(t *testing.T) {
	var buf bytes.Buffer
	if err := transfer.ExportSheet(&buf, shelf.Seed()); err != nil {
		t.Fatalf("ExportSheet() error: %v", err)
	}
	// xlsx is a zip archive.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Errorf("output does not look like an xlsx workbook")
	}
}
