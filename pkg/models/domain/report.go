package domain

import "time"

// RunReport summarizes one batch run for console reporting.
type RunReport struct {
	RunID        string
	Started      time.Time
	Finished     time.Time
	Files        []FileSummary
	Divisions    []DivisionSummary
	TotalRecords int
	TotalAmount  float64
}

// FileSummary reports what one input file contributed.
type FileSummary struct {
	File          string
	SheetsUsed    int
	SheetsSkipped int
	Records       int
	Amount        float64
	RowsSkipped   int
	UnparsedCells int
}

// DivisionSummary reports per-division record counts and totals.
type DivisionSummary struct {
	Division string
	Records  int
	Amount   float64
}
