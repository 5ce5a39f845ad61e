package tabular

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReader_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.csv")
	content := "Equip #, Job ,Amount\nPT-01,2024-016,500\n PT-02 ,WTX-204,250\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	datasets, err := NewReader(path).Datasets(context.Background())
	require.NoError(t, err)
	require.Len(t, datasets, 1)

	ds := datasets[0]
	assert.Equal(t, "input.csv", ds.SourceFile)
	assert.Equal(t, []string{"Equip #", "Job", "Amount"}, ds.Headers)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "PT-02", ds.Rows[1]["Equip #"], "cells are trimmed")
}

func TestReader_CSV_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Equip #,Job\n"), 0o644))

	datasets, err := NewReader(path).Datasets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, datasets)
}

func TestReader_Workbook_MultipleSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Equip #", "Job", "Amount"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"PT-01", "2024-016", 500}))
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)
	_, err = f.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Second", "A1", &[]interface{}{"Asset ID", "Job"}))
	require.NoError(t, f.SetSheetRow("Second", "A2", &[]interface{}{"PT-09", "HOU-110"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	datasets, err := NewReader(path).Datasets(context.Background())
	require.NoError(t, err)
	require.Len(t, datasets, 2, "empty sheet is skipped")

	assert.Equal(t, "Sheet1", datasets[0].SheetName)
	assert.Equal(t, "500", datasets[0].Rows[0]["Amount"])
	assert.Equal(t, "Second", datasets[1].SheetName)
	assert.Equal(t, "PT-09", datasets[1].Rows[0]["Asset ID"])
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.xlsx")).Datasets(context.Background())
	assert.Error(t, err)
}
