package recon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
	"github.com/traxovo/fleet-ledger/pkg/services/config"
	"github.com/traxovo/fleet-ledger/pkg/services/division"
	"github.com/traxovo/fleet-ledger/pkg/services/extract"
	"github.com/traxovo/fleet-ledger/pkg/services/roles"
	"github.com/traxovo/fleet-ledger/pkg/services/tabular"
)

// ErrNoUsableData is the one hard failure of a batch run: every input
// file was skipped or contributed nothing.
var ErrNoUsableData = errors.New("no usable data found across input files")

// Result is the outcome of one batch run.
type Result struct {
	Report  *domain.RunReport
	Records []domain.ReconciledRecord
	// DateResolved reports whether any sheet carried a date column;
	// per-division exports stamp today's date when none did.
	DateResolved bool
}

// Processor runs the batch pipeline: scan the input directory, load
// each spreadsheet, resolve column roles, extract and normalize rows,
// assign divisions, and accumulate records under the collision policy.
// Malformed files and rows are contained locally; they never abort
// the run.
type Processor struct {
	patterns  []roles.Pattern
	divisions *division.Table
	policy    domain.CollisionPolicy
}

func NewProcessor(cfg *config.Config) (*Processor, error) {
	table, err := cfg.DivisionTable()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Collision()
	if err != nil {
		return nil, err
	}
	return &Processor{
		patterns:  cfg.RolePatterns(),
		divisions: table,
		policy:    policy,
	}, nil
}

// Run processes every spreadsheet under inputDir. The returned error
// is ErrNoUsableData when nothing was extracted; per-file problems are
// logged as warnings and skipped.
func (p *Processor) Run(ctx context.Context, inputDir string) (*Result, error) {
	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	files, err := inputFiles(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory %s: %w", inputDir, err)
	}

	report := &domain.RunReport{RunID: runID, Started: time.Now()}
	acc := extract.NewAccumulator(p.policy)
	result := &Result{Report: report}

	for _, file := range files {
		summary, dateSeen, err := p.processFile(ctx, file, acc)
		if err != nil {
			return nil, err
		}
		if summary == nil {
			continue
		}
		result.DateResolved = result.DateResolved || dateSeen
		report.Files = append(report.Files, *summary)
		logger.Info().
			Str("file", summary.File).
			Int("records", summary.Records).
			Float64("amount", summary.Amount).
			Int("unparsed_cells", summary.UnparsedCells).
			Msg("file processed")
	}

	result.Records = acc.Records()
	report.Finished = time.Now()
	report.TotalRecords = len(result.Records)
	for _, rec := range result.Records {
		report.TotalAmount += rec.Amount
	}
	report.Divisions = divisionSummaries(result.Records)

	if report.TotalRecords == 0 {
		logger.Error().Int("files_scanned", len(files)).Msg("no usable data extracted")
		return nil, ErrNoUsableData
	}
	return result, nil
}

// processFile loads one spreadsheet and extracts every usable sheet.
// Unreadable files and sheets missing required columns are warnings,
// not errors; only a collision-policy violation propagates.
func (p *Processor) processFile(
	ctx context.Context,
	path string,
	acc *extract.Accumulator,
) (*domain.FileSummary, bool, error) {
	logger := zerolog.Ctx(ctx)

	datasets, err := tabular.NewReader(path).Datasets(ctx)
	if err != nil {
		logger.Warn().Str("file", path).Err(err).Msg("unreadable file skipped")
		return nil, false, nil
	}

	summary := &domain.FileSummary{File: filepath.Base(path)}
	dateSeen := false
	for _, ds := range datasets {
		rm := roles.Resolve(ds.Headers, p.patterns)
		if !rm.Usable() {
			logger.Warn().
				Str("file", summary.File).
				Str("sheet", ds.SheetName).
				Interface("missing_roles", rm.MissingRequired()).
				Msg("sheet skipped: required columns not found")
			summary.SheetsSkipped++
			continue
		}
		if _, ok := rm.Column(domain.RoleDate); ok {
			dateSeen = true
		}

		stats, err := extract.Rows(ds, rm, p.divisions, acc)
		if err != nil {
			return nil, false, err
		}
		summary.SheetsUsed++
		summary.Records += stats.Records
		summary.Amount += stats.Amount
		summary.RowsSkipped += stats.RowsSkipped
		summary.UnparsedCells += stats.UnparsedCells
	}
	return summary, dateSeen, nil
}

func divisionSummaries(records []domain.ReconciledRecord) []domain.DivisionSummary {
	byDivision := make(map[string]*domain.DivisionSummary)
	for _, rec := range records {
		s, ok := byDivision[rec.Division]
		if !ok {
			s = &domain.DivisionSummary{Division: rec.Division}
			byDivision[rec.Division] = s
		}
		s.Records++
		s.Amount += rec.Amount
	}

	out := make([]domain.DivisionSummary, 0, len(byDivision))
	for _, s := range byDivision {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Division < out[j].Division })
	return out
}

func inputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".xlsx", ".xlsm", ".csv":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
