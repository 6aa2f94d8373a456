package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/five82/kitchen/internal/kitchen"
)

func sampleList() kitchen.ShoppingList {
	dairy := "Dairy"
	return kitchen.ShoppingList{
		Items: []kitchen.ShoppingListItem{
			{Name: "Milk", Amount: "500 ml", Category: &dairy},
			{Name: "Rice", Amount: "200 g", Checked: true},
		},
		TotalItems:      2,
		RecipesIncluded: []string{"Risotto", "Pudding"},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleList()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	require.Equal(t, []string{itemsSheet, recipesSheet}, f.GetSheetList())

	rows, err := f.GetRows(itemsSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Item", "Amount", "Category", "Done"},
		{"Milk", "500 ml", "Dairy"},
		{"Rice", "200 g", "", "x"},
	}, rows)

	recipes, err := f.GetRows(recipesSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Risotto"}, {"Pudding"}}, recipes)
}

func TestWriteXLSX_EmptyListHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, kitchen.ShoppingList{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	require.Equal(t, []string{itemsSheet}, f.GetSheetList())
	rows, err := f.GetRows(itemsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestSaveXLSX_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "list.xlsx")
	require.NoError(t, SaveXLSX(path, sampleList()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	value, err := f.GetCellValue(itemsSheet, "A2")
	require.NoError(t, err)
	require.Equal(t, "Milk", value)
}
