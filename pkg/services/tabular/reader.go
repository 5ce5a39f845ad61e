package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
)

// Reader loads Excel workbooks and CSV files into TabularDatasets.
// Excel workbooks yield one dataset per non-empty sheet; a CSV file
// yields a single dataset.
type Reader struct {
	path     string
	fileType string // "xlsx" or "csv"
}

func NewReader(path string) *Reader {
	fileType := "xlsx"
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		fileType = "csv"
	}
	return &Reader{path: path, fileType: fileType}
}

// Datasets reads every usable sheet of the file. Sheets without at
// least a header row and one data row are skipped.
func (r *Reader) Datasets(ctx context.Context) ([]*domain.TabularDataset, error) {
	if _, err := os.Stat(r.path); err != nil {
		return nil, fmt.Errorf("input file %s: %w", r.path, err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	default:
		return r.readWorkbook(ctx)
	}
}

// First returns the first usable dataset of the file, which is how the
// diff command treats single-table inputs.
func (r *Reader) First(ctx context.Context) (*domain.TabularDataset, error) {
	datasets, err := r.Datasets(ctx)
	if err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no usable sheet in %s", r.path)
	}
	return datasets[0], nil
}

func (r *Reader) readWorkbook(ctx context.Context) ([]*domain.TabularDataset, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", r.path, err)
	}
	defer f.Close()

	logger := zerolog.Ctx(ctx)
	var datasets []*domain.TabularDataset
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			logger.Warn().Str("file", r.path).Str("sheet", sheet).Err(err).
				Msg("unreadable sheet skipped")
			continue
		}
		if len(rows) < 2 {
			continue
		}
		ds := buildDataset(rows)
		ds.SourceFile = filepath.Base(r.path)
		ds.SheetName = sheet
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

func (r *Reader) readCSV() ([]*domain.TabularDataset, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV %s: %w", r.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // source files routinely have ragged rows
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", r.path, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	ds := buildDataset(rows)
	ds.SourceFile = filepath.Base(r.path)
	return []*domain.TabularDataset{ds}, nil
}

func buildDataset(rows [][]string) *domain.TabularDataset {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([]domain.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(domain.Row, len(headers))
		for j, cell := range raw {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(cell)
			}
		}
		data = append(data, row)
	}

	return &domain.TabularDataset{Headers: headers, Rows: data}
}
