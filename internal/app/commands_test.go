package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/shelfscribe/internal/move"
	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the home directory, and with it every default path, at a
// fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELFSCRIBE_CONFIG", filepath.Join(home, "config.yml"))
	return home
}

// run executes one CLI invocation and returns what the command wrote.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	closeShelf()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "shelfscribe %s", strings.Join(args, " "))
	return out
}

func exported(t *testing.T) shelf.Data {
	t.Helper()
	d, err := shelf.Decode([]byte(mustRun(t, "export", "-")))
	require.NoError(t, err)
	return d
}

func TestCLI_SetListSearch(t *testing.T) {
	isolate(t)

	mustRun(t, "set", "2-1", "A", " ", "B")

	out := mustRun(t, "list")
	assert.Contains(t, out, "C2, L1")
	assert.Contains(t, out, "2 notebook(s) in 1 slot(s)")

	out = mustRun(t, "list", "--table")
	assert.Contains(t, out, "BARCODE")
	assert.Equal(t, 2, strings.Count(out, "2-1"), "one row per notebook")

	var listing []cellListing
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "list", "--json", "--empty")), &listing))
	require.Len(t, listing, 2)
	assert.Equal(t, "1-1", listing[0].Cell)
	assert.Empty(t, listing[0].Notebooks)
	assert.Equal(t, "C2, L1", listing[1].Label)
	assert.Len(t, listing[1].Notebooks, 2)

	assert.Contains(t, mustRun(t, "search", "B"), "B is in C2, L1 (2-1)")

	var res searchResult
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "search", " a ", "--json")), &res))
	assert.True(t, res.Found)
	assert.Equal(t, "2-1", res.Cell)

	_, err := run(t, "search", "missing")
	assert.Error(t, err)
}

func TestCLI_RejectsBadCell(t *testing.T) {
	isolate(t)

	_, err := run(t, "set", "0-1", "A")
	assert.ErrorIs(t, err, shelf.ErrInvalidCellID)

	_, err = run(t, "add", "x", "A")
	assert.ErrorIs(t, err, shelf.ErrInvalidCellID)
}

func TestCLI_AddSkipsDuplicates(t *testing.T) {
	isolate(t)

	mustRun(t, "add", "1-1", "NB-1", "--title", "Lab notes")
	mustRun(t, "add", "1-1", "NB-1")
	mustRun(t, "add", "1-1", "NB-2")

	d := exported(t)
	assert.Equal(t, []shelf.Notebook{
		{Barcode: "NB-1", Title: "Lab notes"},
		{Barcode: "NB-2"},
	}, d["1-1"])
}

func TestCLI_MoveAndDelete(t *testing.T) {
	isolate(t)
	mustRun(t, "set", "1-1", "x", "y")

	mustRun(t, "move", "1-1", "2-2", "x")
	d := exported(t)
	assert.Equal(t, []shelf.Notebook{{Barcode: "y"}}, d["1-1"])
	assert.Equal(t, []shelf.Notebook{{Barcode: "x"}}, d["2-2"])

	_, err := run(t, "move", "1-1", "1-1", "y")
	assert.ErrorIs(t, err, move.ErrSameCell)

	_, err = run(t, "move", "1-1", "nowhere", "y")
	assert.ErrorIs(t, err, move.ErrBadTarget)

	_, err = run(t, "move", "1-1", "01-1", "y")
	assert.ErrorIs(t, err, move.ErrSameCell)

	_, err = run(t, "move", "1-1", "0-3", "y")
	assert.ErrorIs(t, err, move.ErrBadTarget)

	_, err = run(t, "move", "1-1", "3-1", "zzz")
	assert.Error(t, err)

	_, err = run(t, "move", "1-1", "3-1")
	assert.Error(t, err, "needs barcodes or --all")

	mustRun(t, "move", "2-2", "1-1", "--all")
	d = exported(t)
	assert.Equal(t, []shelf.Notebook{{Barcode: "y"}, {Barcode: "x"}}, d["1-1"])

	mustRun(t, "delete", "2-2")
	d = exported(t)
	_, exists := d["2-2"]
	assert.False(t, exists)
}

func TestCLI_MoveStoresCanonicalTarget(t *testing.T) {
	isolate(t)
	mustRun(t, "set", "1-1", "x")

	mustRun(t, "move", "1-1", "02-03", "x")
	d := exported(t)
	assert.Equal(t, []shelf.Notebook{{Barcode: "x"}}, d["2-3"])
	_, raw := d["02-03"]
	assert.False(t, raw, "the typed form must not become a key")

	assert.Contains(t, mustRun(t, "grid"), "■")
}

func TestCLI_ExportResetImport(t *testing.T) {
	home := isolate(t)
	mustRun(t, "set", "1-1", "A")
	mustRun(t, "set", "4-2", "B", "C")

	backup := filepath.Join(home, "backup.json")
	mustRun(t, "export", backup)

	_, err := run(t, "reset")
	assert.Error(t, err, "reset needs --yes without a terminal")

	mustRun(t, "reset", "--yes")
	assert.Equal(t, shelf.Seed(), exported(t))

	out := mustRun(t, "import", backup, "--dry-run")
	assert.Contains(t, out, "merge:")
	assert.Equal(t, shelf.Seed(), exported(t))

	mustRun(t, "import", backup, "--mode", "replace")
	d := exported(t)
	assert.Equal(t, []shelf.Notebook{{Barcode: "B"}, {Barcode: "C"}}, d["4-2"])
	assert.Equal(t, []shelf.Notebook{{Barcode: "A"}}, d["1-1"])

	bad := filepath.Join(home, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"1-1": 7}`), 0o644))
	_, err = run(t, "import", bad)
	assert.ErrorIs(t, err, shelf.ErrInvalidShape)

	_, err = run(t, "import", backup, "--mode", "append")
	assert.Error(t, err)
}

func TestCLI_ExportSpreadsheet(t *testing.T) {
	home := isolate(t)
	mustRun(t, "set", "1-1", "A")

	sheet := filepath.Join(home, "shelf.xlsx")
	mustRun(t, "export", sheet)
	data, err := os.ReadFile(sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "xlsx is a zip archive")

	_, err = run(t, "export", "--format", "csv")
	assert.Error(t, err)
}

func TestCLI_Grid(t *testing.T) {
	isolate(t)
	mustRun(t, "set", "1-1", "A", "B")

	out := mustRun(t, "grid")
	assert.Contains(t, out, "C1")
	assert.Contains(t, out, "L1")
	assert.Contains(t, out, "■■")
}

func TestCLI_VersionAndConfig(t *testing.T) {
	home := isolate(t)

	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })
	assert.Equal(t, "shelfscribe 1.2.3\n", mustRun(t, "version"))

	t.Setenv("SHELFSCRIBE_STORAGE_BACKEND", "bolt")
	out := mustRun(t, "config", "show")
	assert.Contains(t, out, "backend: bolt")
	assert.Contains(t, out, "close_behavior: commit")

	mustRun(t, "config", "init")
	raw, err := os.ReadFile(filepath.Join(home, "config.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "backend: bolt")

	_, err = run(t, "config", "init")
	assert.Error(t, err)
	mustRun(t, "config", "init", "--force")
}

func TestCLI_NoArgsWithoutTerminalShowsHelp(t *testing.T) {
	isolate(t)
	out := mustRun(t)
	assert.Contains(t, out, "shelfscribe keeps an inventory")
}

func TestCompleteCells(t *testing.T) {
	isolate(t)
	mustRun(t, "set", "2-1", "A")
	mustRun(t, "set", "12-3", "B", "C")

	got, directive := completeCells(1)(nil, nil, "1")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Equal(t, []string{
		"1-1\tC1, L1, 0 notebook(s)",
		"12-3\tC12, L3, 2 notebook(s)",
	}, got)

	got, _ = completeCells(1)(nil, []string{"2-1"}, "")
	assert.Empty(t, got, "only the first argument is a cell")
}
