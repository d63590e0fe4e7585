package editor_test

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/shelfscribe/internal/editor"
	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/google/go-cmp/cmp"
)

type recordSaver struct {
	calls int
	cell  string
	saved []shelf.Notebook
	err   error
}

func (r *recordSaver) Save(id string, nbs []shelf.Notebook) error {
	r.calls++
	r.cell = id
	r.saved = nbs
	return r.err
}

func nb(barcodes ...string) []shelf.Notebook {
	out := make([]shelf.Notebook, 0, len(barcodes))
	for _, b := range barcodes {
		out = append(out, shelf.Notebook{Barcode: b})
	}
	return out
}

func TestDraft_IndependentOfSource(t *testing.T) {
	src := nb("a", "b")
	d := editor.New("1-1", src)
	if err := d.SetBarcode(0, "z"); err != nil {
		t.Fatal(err)
	}
	if src[0].Barcode != "a" {
		t.Errorf("source list was modified: %v", src)
	}
}

func TestDraft_AddBlocksSaveUntilFilled(t *testing.T) {
	d := editor.New("2-2", nb("a"))
	i := d.Add()
	if i != 1 {
		t.Errorf("Add() index = %d, want 1", i)
	}
	if d.CanSave() {
		t.Error("CanSave() = true with a blank entry")
	}
	s := &recordSaver{}
	if err := d.Commit(s); !errors.Is(err, editor.ErrBlankBarcode) {
		t.Errorf("Commit() error = %v, want ErrBlankBarcode", err)
	}
	if s.calls != 0 {
		t.Errorf("saver called %d times", s.calls)
	}

	_ = d.SetBarcode(i, "   ")
	if d.CanSave() {
		t.Error("CanSave() = true with a whitespace barcode")
	}
	_ = d.SetBarcode(i, "b")
	if !d.CanSave() {
		t.Error("CanSave() = false after filling every barcode")
	}
	if err := d.Commit(s); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if s.cell != "2-2" {
		t.Errorf("saved cell = %q", s.cell)
	}
	if diff := cmp.Diff(nb("a", "b"), s.saved); diff != "" {
		t.Errorf("saved mismatch (-want +got):\n%s", diff)
	}
}

func TestDraft_RemoveAndIndexErrors(t *testing.T) {
	d := editor.New("1-1", nb("a", "b", "c"))
	if err := d.Remove(1); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(nb("a", "c"), d.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	for _, i := range []int{-1, 2} {
		if err := d.Remove(i); !errors.Is(err, editor.ErrIndex) {
			t.Errorf("Remove(%d) error = %v, want ErrIndex", i, err)
		}
		if err := d.SetBarcode(i, "x"); !errors.Is(err, editor.ErrIndex) {
			t.Errorf("SetBarcode(%d) error = %v, want ErrIndex", i, err)
		}
		if err := d.SetTitle(i, "x"); !errors.Is(err, editor.ErrIndex) {
			t.Errorf("SetTitle(%d) error = %v, want ErrIndex", i, err)
		}
	}
}

func TestDraft_SetTitle(t *testing.T) {
	d := editor.New("1-1", nb("a"))
	_ = d.SetTitle(0, "Physics II")
	want := []shelf.Notebook{{Barcode: "a", Title: "Physics II"}}
	if diff := cmp.Diff(want, d.Result()); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if !d.Dirty() {
		t.Error("Dirty() = false after a title change")
	}
}

func TestDraft_SelectionKeyedByBarcode(t *testing.T) {
	d := editor.New("1-1", nb("a", "b", "a"))
	d.Toggle("a")
	d.Toggle("missing")
	d.Toggle("")

	if !d.IsSelected("a") || d.IsSelected("b") || d.IsSelected("missing") {
		t.Errorf("unexpected selection state")
	}
	if diff := cmp.Diff(nb("a"), d.Selected()); diff != "" {
		t.Errorf("duplicates should collapse (-want +got):\n%s", diff)
	}

	d.Toggle("a")
	if len(d.Selected()) != 0 {
		t.Errorf("Selected() = %v after untoggle", d.Selected())
	}
}

func TestDraft_SelectionDroppedWhenBarcodeGone(t *testing.T) {
	d := editor.New("1-1", nb("a", "b"))
	d.Toggle("b")
	_ = d.SetBarcode(1, "c")
	if d.IsSelected("b") {
		t.Error("selection kept after its barcode was edited away")
	}

	d.Toggle("a")
	_ = d.Remove(0)
	if d.IsSelected("a") {
		t.Error("selection kept after its entry was removed")
	}
}

func TestDraft_Close(t *testing.T) {
	tests := []struct {
		name     string
		behavior editor.CloseBehavior
		edit     func(d *editor.Draft)
		wantSave bool
		want     []shelf.Notebook
	}{
		{
			name:     "commit unchanged does nothing",
			behavior: editor.CloseCommit,
			edit:     func(*editor.Draft) {},
		},
		{
			name:     "commit saves edits and drops blanks",
			behavior: editor.CloseCommit,
			edit: func(d *editor.Draft) {
				_ = d.SetBarcode(d.Add(), "b")
				d.Add()
			},
			wantSave: true,
			want:     nb("a", "b"),
		},
		{
			name:     "discard drops edits",
			behavior: editor.CloseDiscard,
			edit: func(d *editor.Draft) {
				_ = d.SetBarcode(d.Add(), "b")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := editor.New("3-3", nb("a"))
			tt.edit(d)
			s := &recordSaver{}
			saved, err := d.Close(tt.behavior, s)
			if err != nil {
				t.Fatalf("Close() error: %v", err)
			}
			if saved != tt.wantSave || (s.calls > 0) != tt.wantSave {
				t.Fatalf("saved = %v (calls %d), want %v", saved, s.calls, tt.wantSave)
			}
			if tt.wantSave {
				if diff := cmp.Diff(tt.want, s.saved); diff != "" {
					t.Errorf("saved mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestParseCloseBehavior(t *testing.T) {
	tests := []struct {
		in      string
		want    editor.CloseBehavior
		wantErr bool
	}{
		{"", editor.CloseCommit, false},
		{"commit", editor.CloseCommit, false},
		{" Discard ", editor.CloseDiscard, false},
		{"ask", editor.CloseCommit, true},
	}
	for _, tt := range tests {
		got, err := editor.ParseCloseBehavior(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCloseBehavior(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCloseBehavior(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
