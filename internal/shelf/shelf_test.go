package shelf_test

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/google/go-cmp/cmp"
)

func nb(barcodes ...string) []shelf.Notebook {
	out := make([]shelf.Notebook, len(barcodes))
	for i, b := range barcodes {
		out[i] = shelf.Notebook{Barcode: b}
	}
	return out
}

// --- Decode / Migrate ---

func TestDecode_LegacyStrings(t *testing.T) {
	got, err := shelf.Decode([]byte(`{"1-1":"978","2-3":[{"barcode":"abc","title":"Lab"}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := shelf.Data{
		"1-1": nb("978"),
		"2-3": {{Barcode: "abc", Title: "Lab"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_NullCellBecomesEmptyList(t *testing.T) {
	got, err := shelf.Decode([]byte(`{"1-1":null}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l, ok := got["1-1"]; !ok || l == nil || len(l) != 0 {
		t.Errorf(`got["1-1"] = %#v, want empty non-nil list`, l)
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, in := range []string{`not json`, `[1,2]`, `{"1-1": 42}`, `{"1-1": {"barcode":"x"}}`} {
		if _, err := shelf.Decode([]byte(in)); err == nil {
			t.Errorf("Decode(%s): expected error, got nil", in)
		}
	}
}

// --- Save filtering ---

func TestFilterBlank(t *testing.T) {
	got := shelf.FilterBlank(nb("a", "", "  "))
	if diff := cmp.Diff(nb("a"), got); diff != "" {
		t.Errorf("FilterBlank mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterBlank_KeepsOriginalBarcode(t *testing.T) {
	got := shelf.FilterBlank(nb(" a "))
	if len(got) != 1 || got[0].Barcode != " a " {
		t.Errorf("FilterBlank should not rewrite barcodes, got %v", got)
	}
}

// --- Search ---

func TestSearch(t *testing.T) {
	d := shelf.Data{"1-1": nb("9780321765723"), "2-1": nb("ABC-1")}
	cases := []struct {
		query  string
		want   string
		wantOK bool
	}{
		{"9780321765723", "1-1", true},
		{"  9780321765723 ", "1-1", true},
		{"abc-1", "2-1", true},
		{"978", "", false},
		{"", "", false},
		{"   ", "", false},
		{"missing", "", false},
	}
	for _, c := range cases {
		got, ok := shelf.Search(d, c.query)
		if got != c.want || ok != c.wantOK {
			t.Errorf("Search(%q) = (%q, %v), want (%q, %v)", c.query, got, ok, c.want, c.wantOK)
		}
	}
}

func TestSearch_FirstInGridOrder(t *testing.T) {
	d := shelf.Data{"10-1": nb("dup"), "2-5": nb("dup"), "2-1": nb("other")}
	got, ok := shelf.Search(d, "dup")
	if !ok || got != "2-5" {
		t.Errorf("Search(dup) = (%q, %v), want (2-5, true)", got, ok)
	}
}

// --- Move ---

func TestMove(t *testing.T) {
	d := shelf.Data{"1-1": nb("x", "y")}
	got := shelf.Move(d, "1-1", nb("x"), "2-2")
	want := shelf.Data{"1-1": nb("y"), "2-2": nb("x")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Move mismatch (-want +got):\n%s", diff)
	}
	if len(d["1-1"]) != 2 {
		t.Error("Move modified its input")
	}
}

func TestMove_AppendsToExistingTarget(t *testing.T) {
	d := shelf.Data{"1-1": nb("x", "y"), "2-2": nb("z")}
	got := shelf.Move(d, "1-1", nb("x"), "2-2")
	if diff := cmp.Diff(nb("z", "x"), got["2-2"]); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestMove_DuplicateBarcodesLeaveTogether(t *testing.T) {
	d := shelf.Data{"1-1": nb("x", "y", "x")}
	got := shelf.Move(d, "1-1", nb("x"), "3-1")
	if diff := cmp.Diff(nb("y"), got["1-1"]); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(nb("x"), got["3-1"]); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestMove_SameCell(t *testing.T) {
	d := shelf.Data{"1-1": nb("x", "y")}
	got := shelf.Move(d, "1-1", nb("x"), "1-1")
	if diff := cmp.Diff(nb("y", "x"), got["1-1"]); diff != "" {
		t.Errorf("same-cell move mismatch (-want +got):\n%s", diff)
	}
}

// --- Merge / Apply ---

func TestMerge_DeduplicatesPerCell(t *testing.T) {
	dst := shelf.Data{"1-1": nb("a")}
	src := shelf.Data{"1-1": nb("a", "b"), "4-2": nb("a")}
	got := shelf.Merge(dst, src)
	want := shelf.Data{"1-1": nb("a", "b"), "4-2": nb("a")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_AdoptsNewCellAsIs(t *testing.T) {
	got := shelf.Merge(shelf.Data{}, shelf.Data{"2-2": nb("a", "a")})
	if diff := cmp.Diff(nb("a", "a"), got["2-2"]); diff != "" {
		t.Errorf("adopted cell mismatch (-want +got):\n%s", diff)
	}
}

func TestPreviewMerge(t *testing.T) {
	dst := shelf.Data{"1-1": nb("a")}
	src := shelf.Data{"1-1": nb("a", "b"), "4-2": nb("c", "d")}
	got := shelf.PreviewMerge(dst, src)
	want := shelf.MergeStats{NewCells: 1, Added: 3, Skipped: 1}
	if got != want {
		t.Errorf("PreviewMerge = %+v, want %+v", got, want)
	}
}

func TestApply_Replace(t *testing.T) {
	cur := shelf.Data{"1-1": nb("a"), "2-2": nb("b")}
	in := shelf.Data{"3-3": nb("c")}
	got := shelf.Apply(cur, in, shelf.ModeReplace)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("Apply replace mismatch (-want +got):\n%s", diff)
	}
}

func TestParseImportMode(t *testing.T) {
	if m, err := shelf.ParseImportMode("Replace"); err != nil || m != shelf.ModeReplace {
		t.Errorf("ParseImportMode(Replace) = %v, %v", m, err)
	}
	if _, err := shelf.ParseImportMode("append"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

// --- ParseImport ---

func TestParseImport_Valid(t *testing.T) {
	got, err := shelf.ParseImport([]byte(`{"1-1":[{"barcode":"a"},{"barcode":"b","title":"B"}],"2-2":[]}`))
	if err != nil {
		t.Fatalf("ParseImport: %v", err)
	}
	want := shelf.Data{"1-1": {{Barcode: "a"}, {Barcode: "b", Title: "B"}}, "2-2": {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseImport mismatch (-want +got):\n%s", diff)
	}
}

func TestParseImport_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"syntax", `{"1-1": [`, shelf.ErrInvalidJSON},
		{"array top level", `[]`, shelf.ErrInvalidShape},
		{"null top level", `null`, shelf.ErrInvalidShape},
		{"number cell", `{"1-1": 5}`, shelf.ErrInvalidShape},
		{"legacy string cell", `{"1-1": "978"}`, shelf.ErrInvalidShape},
		{"entry not object", `{"1-1": ["978"]}`, shelf.ErrInvalidShape},
		{"missing barcode", `{"1-1": [{"title":"x"}]}`, shelf.ErrInvalidShape},
		{"numeric barcode", `{"1-1": [{"barcode": 978}]}`, shelf.ErrInvalidShape},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := shelf.ParseImport([]byte(c.in))
			if !errors.Is(err, c.want) {
				t.Errorf("ParseImport(%s) error = %v, want %v", c.in, err, c.want)
			}
		})
	}
}

func TestShapeError_Message(t *testing.T) {
	_, err := shelf.ParseImport([]byte(`{"3-1": [{"barcode":"a"},{"title":"b"}]}`))
	var se *shelf.ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ShapeError, got %T", err)
	}
	if se.Cell != "3-1" || se.Index != 1 {
		t.Errorf("ShapeError = %+v, want cell 3-1 index 1", se)
	}
}

// --- Seed / Marshal ---

func TestSeed_MarshalsAnchorAsEmptyList(t *testing.T) {
	data, err := shelf.Marshal(shelf.Seed())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"1-1":[]}` {
		t.Errorf("Marshal(Seed()) = %s", data)
	}
}

func TestMarshalIndent_TwoSpaces(t *testing.T) {
	data, err := shelf.MarshalIndent(shelf.Data{"1-1": nb("a")})
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	want := "{\n  \"1-1\": [\n    {\n      \"barcode\": \"a\"\n    }\n  ]\n}\n"
	if string(data) != want {
		t.Errorf("MarshalIndent =\n%s\nwant\n%s", data, want)
	}
}

func TestData_Cells_GridOrder(t *testing.T) {
	d := shelf.Data{"10-1": nil, "2-3": nil, "2-1": nil, "junk": nil}
	got := d.Cells()
	want := []string{"2-1", "2-3", "10-1", "junk"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Cells mismatch (-want +got):\n%s", diff)
	}
}
