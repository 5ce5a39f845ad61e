package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
)

const reconciledSheet = "Reconciled"

// Human-facing labels for the normalized workbook export.
var workbookHeaders = []interface{}{
	"Equip #", "Job", "Cost Code", "Units", "Rate", "Amount", "Division", "Source File",
}

// WriteWorkbook writes the reconciled records to a normalized Excel
// workbook. Numeric fields are written as numbers so a re-read
// preserves values within float tolerance.
func WriteWorkbook(path string, records []domain.ReconciledRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reconciledSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(reconciledSheet, "A1", &workbookHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range records {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			rec.EquipmentID, rec.JobNumber, rec.CostCode,
			rec.Units, rec.Rate, rec.Amount,
			rec.Division, rec.SourceFile,
		}
		if err := f.SetSheetRow(reconciledSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

var changeHeaders = []interface{}{
	"Key", "Change Type", "Original Value", "New Value", "Difference",
}

// WriteChangeWorkbook writes a diff result to an Excel workbook in the
// order the differ produced.
func WriteChangeWorkbook(path string, changes []domain.ChangeRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Changes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &changeHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, c := range changes {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{c.Key, string(c.Type), c.OriginalValue, c.NewValue, c.Difference}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
