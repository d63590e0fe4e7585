package transfer_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/transfer"
	"github.com/google/go-cmp/cmp"
)

func TestExport_IndentedJSON(t *testing.T) {
	var buf bytes.Buffer
	d := shelf.Data{"1-1": {{Barcode: "a"}}}
	if err := transfer.Export(&buf, d); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	want := "{\n  \"1-1\": [\n    {\n      \"barcode\": \"a\"\n    }\n  ]\n}\n"
	if buf.String() != want {
		t.Errorf("Export() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestExportFile_ThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", transfer.DefaultExportName)
	d := shelf.Data{
		"1-1": {},
		"2-3": {{Barcode: "9780132350884", Title: "Clean Code"}},
	}
	if err := transfer.ExportFile(path, d); err != nil {
		t.Fatalf("ExportFile() error: %v", err)
	}
	got, err := transfer.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if diff := cmp.Diff(d, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "nope.json"), transfer.ErrReadFile},
		{"directory", dir, transfer.ErrReadFile},
		{"syntax error", write("bad.json", "{"), shelf.ErrInvalidJSON},
		{"number cell", write("num.json", `{"1-1": 5}`), shelf.ErrInvalidShape},
		{"legacy string", write("legacy.json", `{"1-1": "978"}`), shelf.ErrInvalidShape},
		{"array root", write("arr.json", `[]`), shelf.ErrInvalidShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transfer.ReadFile(tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadFile() error = %v, want %v", err, tt.want)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestRead_ReaderFailure(t *testing.T) {
	_, err := transfer.Read(failingReader{})
	if !errors.Is(err, transfer.ErrReadFile) {
		t.Fatalf("Read() error = %v, want ErrReadFile", err)
	}
	if !strings.Contains(err.Error(), "device gone") {
		t.Errorf("underlying error lost: %v", err)
	}
}

func TestPreview(t *testing.T) {
	current := shelf.Data{
		"1-1": {{Barcode: "a"}},
		"2-2": {{Barcode: "z"}},
	}
	incoming := shelf.Data{
		"1-1": {{Barcode: "a"}, {Barcode: "b"}},
		"3-1": {{Barcode: "c"}},
	}

	got := transfer.Preview(current, incoming, shelf.ModeMerge)
	want := transfer.Summary{Mode: shelf.ModeMerge, Cells: 2, NewCells: 1, Added: 2, Skipped: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge preview mismatch (-want +got):\n%s", diff)
	}

	got = transfer.Preview(current, incoming, shelf.ModeReplace)
	want = transfer.Summary{Mode: shelf.ModeReplace, Cells: 2, NewCells: 2, Added: 3, Removed: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("replace preview mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(got.String(), "replace:") {
		t.Errorf("String() = %q", got.String())
	}
}
