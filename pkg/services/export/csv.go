package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
)

// Machine-friendly column names for the per-division extracts.
var divisionHeaders = []string{
	"Equipment_Number", "Job_Number", "Cost_Code",
	"Units", "Rate", "Amount", "Division", "Date", "Source_File",
}

// WriteDivisionCSVs writes one CSV per division under dir. When no
// input sheet carried a date column (dateResolved false) every row is
// stamped with today's date; otherwise the record's normalized date is
// used and malformed source dates stay empty.
func WriteDivisionCSVs(dir string, records []domain.ReconciledRecord, dateResolved bool) error {
	today := time.Now().Format("2006-01-02")

	byDivision := make(map[string][]domain.ReconciledRecord)
	for _, rec := range records {
		byDivision[rec.Division] = append(byDivision[rec.Division], rec)
	}

	for div, recs := range byDivision {
		path := filepath.Join(dir, fmt.Sprintf("division_%s.csv", div))
		if err := writeDivisionCSV(path, recs, dateResolved, today); err != nil {
			return err
		}
	}
	return nil
}

func writeDivisionCSV(path string, records []domain.ReconciledRecord, dateResolved bool, today string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(divisionHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range records {
		date := rec.Date
		if !dateResolved {
			date = today
		}
		row := []string{
			rec.EquipmentID, rec.JobNumber, rec.CostCode,
			formatFloat(rec.Units), formatFloat(rec.Rate), formatFloat(rec.Amount),
			rec.Division, date, rec.SourceFile,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
