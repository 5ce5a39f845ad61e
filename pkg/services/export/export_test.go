package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
	"github.com/traxovo/fleet-ledger/pkg/services/division"
	"github.com/traxovo/fleet-ledger/pkg/services/extract"
	"github.com/traxovo/fleet-ledger/pkg/services/roles"
	"github.com/traxovo/fleet-ledger/pkg/services/tabular"
)

func sampleRecords() []domain.ReconciledRecord {
	return []domain.ReconciledRecord{
		{
			EquipmentID: "PT-01", JobNumber: "2024-016", CostCode: "100",
			Units: 10, Rate: 50, Amount: 500, Division: "DFW", SourceFile: "a.xlsx",
		},
		{
			EquipmentID: "PT-02", JobNumber: "WTX-204", CostCode: "200",
			Units: 3.5, Rate: 120.5, Amount: 421.75, Division: "WTX", SourceFile: "a.xlsx",
		},
	}
}

// Writing a reconciled dataset and re-reading it through the normal
// pipeline must preserve keys and numeric values.
func TestWriteWorkbook_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reconciled.xlsx")
	records := sampleRecords()
	require.NoError(t, WriteWorkbook(path, records))

	datasets, err := tabular.NewReader(path).Datasets(context.Background())
	require.NoError(t, err)
	require.Len(t, datasets, 1)

	rm := roles.Resolve(datasets[0].Headers, roles.DefaultPatterns())
	require.True(t, rm.Usable())

	acc := extract.NewAccumulator(domain.CollisionOverwrite)
	_, err = extract.Rows(datasets[0], rm, division.Default(), acc)
	require.NoError(t, err)

	reread := acc.Records()
	require.Len(t, reread, len(records))
	for i, rec := range records {
		assert.Equal(t, rec.Key(), reread[i].Key())
		assert.InDelta(t, rec.Units, reread[i].Units, 1e-9)
		assert.InDelta(t, rec.Rate, reread[i].Rate, 1e-9)
		assert.InDelta(t, rec.Amount, reread[i].Amount, 1e-9)
	}
}

func TestWriteDivisionCSVs_SplitsByDivision(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()
	records[0].Date = "2024-01-15"
	records[1].Date = ""
	require.NoError(t, WriteDivisionCSVs(dir, records, true))

	dfw := readCSVFile(t, filepath.Join(dir, "division_DFW.csv"))
	require.Len(t, dfw, 2)
	assert.Equal(t, divisionHeaders, dfw[0])
	assert.Equal(t, []string{"PT-01", "2024-016", "100", "10", "50", "500", "DFW", "2024-01-15", "a.xlsx"}, dfw[1])

	wtx := readCSVFile(t, filepath.Join(dir, "division_WTX.csv"))
	require.Len(t, wtx, 2)
	assert.Equal(t, "", wtx[1][7], "malformed source dates stay null")
}

func TestWriteDivisionCSVs_DefaultsDateToToday(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDivisionCSVs(dir, sampleRecords()[:1], false))

	rows := readCSVFile(t, filepath.Join(dir, "division_DFW.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, time.Now().Format("2006-01-02"), rows[1][7])
}

func TestWriteChangeWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changes.xlsx")
	changes := []domain.ChangeRecord{
		{Key: "X1", Type: domain.ChangeModified, OriginalValue: 100, NewValue: 100.02, Difference: 0.02},
		{Key: "X2", Type: domain.ChangeAdded, NewValue: 75, Difference: 75},
	}
	require.NoError(t, WriteChangeWorkbook(path, changes))

	datasets, err := tabular.NewReader(path).Datasets(context.Background())
	require.NoError(t, err)
	require.Len(t, datasets, 1)
	require.Len(t, datasets[0].Rows, 2)
	assert.Equal(t, "X1", datasets[0].Rows[0]["Key"])
	assert.Equal(t, "Modified", datasets[0].Rows[0]["Change Type"])
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
