package extract

import (
	"strings"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
	"github.com/traxovo/fleet-ledger/pkg/services/division"
	"github.com/traxovo/fleet-ledger/pkg/services/tabular"
)

// SheetStats counts what one sheet contributed to the accumulator.
// UnparsedCells counts numeric cells that defaulted to zero, so parse
// failures stay visible in the run summary even though row values keep
// the lenient zero-default semantics.
type SheetStats struct {
	Records       int
	Amount        float64
	RowsSkipped   int
	UnparsedCells int
}

// Rows normalizes a dataset into reconciled records using the resolved
// role map and feeds them to the accumulator. The role map must be
// usable (equipment ID, job number, and units or amount resolved)
// before calling; rows missing a key value are skipped whole, never
// producing partial records.
func Rows(
	ds *domain.TabularDataset,
	rm domain.RoleMap,
	divisions *division.Table,
	acc *Accumulator,
) (SheetStats, error) {
	var stats SheetStats

	equipCol := rm[domain.RoleEquipmentID]
	jobCol := rm[domain.RoleJobNumber]
	costCol, hasCost := rm.Column(domain.RoleCostCode)
	unitsCol, hasUnits := rm.Column(domain.RoleUnits)
	rateCol, hasRate := rm.Column(domain.RoleRate)
	amountCol, hasAmount := rm.Column(domain.RoleAmount)
	dateCol, hasDate := rm.Column(domain.RoleDate)

	for _, row := range ds.Rows {
		equipID := strings.TrimSpace(row[equipCol])
		jobNumber := strings.TrimSpace(row[jobCol])
		if equipID == "" || jobNumber == "" {
			stats.RowsSkipped++
			continue
		}

		rec := domain.ReconciledRecord{
			EquipmentID: equipID,
			JobNumber:   jobNumber,
			SourceFile:  ds.SourceFile,
		}
		if hasCost {
			rec.CostCode = strings.TrimSpace(row[costCol])
		}
		if hasUnits {
			rec.Units = parseCell(row[unitsCol], &stats)
		}
		if hasRate {
			rec.Rate = parseCell(row[rateCol], &stats)
		}

		provided := false
		if hasAmount {
			if cell := strings.TrimSpace(row[amountCol]); cell != "" {
				rec.Amount = parseCell(cell, &stats)
				provided = true
			}
		}
		if !provided && rec.Units > 0 && rec.Rate > 0 {
			rec.Amount = rec.Units * rec.Rate
		}
		if rec.Amount <= 0 {
			stats.RowsSkipped++
			continue
		}

		rec.Division = divisions.Assign(jobNumber)
		if hasDate {
			rec.Date = tabular.NormalizeDate(row[dateCol])
		}

		if err := acc.Add(rec); err != nil {
			return stats, err
		}
		stats.Records++
		stats.Amount += rec.Amount
	}

	return stats, nil
}

func parseCell(cell string, stats *SheetStats) float64 {
	v, ok := tabular.ParseNumber(cell)
	if !ok && strings.TrimSpace(cell) != "" {
		stats.UnparsedCells++
	}
	return v
}
