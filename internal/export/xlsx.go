// Package export writes shopping lists to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/five82/kitchen/internal/kitchen"
)

const (
	itemsSheet   = "Shopping List"
	recipesSheet = "Recipes"
)

// WriteXLSX encodes list as an XLSX workbook to w. Items go to the first
// sheet, the included recipe names to a second one.
func WriteXLSX(w io.Writer, list kitchen.ShoppingList) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(itemsSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", []interface{}{"Item", "Amount", "Category", "Done"}); err != nil {
		return err
	}
	for i, item := range list.Items {
		category := ""
		if item.Category != nil {
			category = *item.Category
		}
		done := ""
		if item.Checked {
			done = "x"
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, trimRow(item.Name, item.Amount, category, done)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	if len(list.RecipesIncluded) > 0 {
		if _, err := f.NewSheet(recipesSheet); err != nil {
			return err
		}
		for i, name := range list.RecipesIncluded {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetCellValue(recipesSheet, cell, name); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}

// SaveXLSX writes list to path, creating parent directories.
func SaveXLSX(path string, list kitchen.ShoppingList) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := WriteXLSX(out, list); err != nil {
		_ = out.Close()
		return fmt.Errorf("write xlsx: %w", err)
	}
	return out.Close()
}

// trimRow drops trailing empty values so blank cells are not written.
func trimRow(values ...string) []interface{} {
	end := len(values)
	for end > 0 && values[end-1] == "" {
		end--
	}
	row := make([]interface{}, end)
	for i := 0; i < end; i++ {
		row[i] = values[i]
	}
	return row
}
