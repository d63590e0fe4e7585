package transfer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/util"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds the inventory in a spreadsheet export.
const SheetName = "Shelf"

var sheetHeader = []string{"Cell", "Slot", "Position", "Barcode", "Title"}

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "json" or "xlsx". An empty name is inferred from the
// path's extension.
func ParseFormat(name, path string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			return FormatXLSX, nil
		}
		return FormatJSON, nil
	case "json":
		return FormatJSON, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json or xlsx)", name)
}

// buildSheet lays out one row per notebook in grid order. Empty cells get a
// row with no barcode so the sheet shows every slot in use.
func buildSheet(d shelf.Data) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, err
	}

	set := func(col, row int, v interface{}) error {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(SheetName, name, v)
	}

	for i, h := range sheetHeader {
		if err := set(i+1, 1, h); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	row := 2
	for _, id := range d.Cells() {
		label := id
		if c, err := shelf.ParseCellID(id); err == nil {
			label = c.Label()
		}
		nbs := d[id]
		if len(nbs) == 0 {
			if err := setRow(set, row, id, label, 0, shelf.Notebook{}); err != nil {
				_ = f.Close()
				return nil, err
			}
			row++
			continue
		}
		for i, nb := range nbs {
			if err := setRow(set, row, id, label, i+1, nb); err != nil {
				_ = f.Close()
				return nil, err
			}
			row++
		}
	}
	return f, nil
}

func setRow(set func(col, row int, v interface{}) error, row int, id, label string, pos int, nb shelf.Notebook) error {
	values := []interface{}{id, label, pos, nb.Barcode, nb.Title}
	for i, v := range values {
		if v == "" || v == 0 {
			continue
		}
		if err := set(i+1, row, v); err != nil {
			return err
		}
	}
	return nil
}

// ExportSheet writes d to w as an xlsx workbook.
func ExportSheet(w io.Writer, d shelf.Data) error {
	f, err := buildSheet(d)
	if err != nil {
		return fmt.Errorf("building sheet: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing sheet: %w", err)
	}
	return nil
}

// ExportSheetFile writes d to path as an xlsx workbook.
func ExportSheetFile(path string, d shelf.Data) error {
	path = util.ExpandHome(path)
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := buildSheet(d)
	if err != nil {
		return fmt.Errorf("building sheet: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
