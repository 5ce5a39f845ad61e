package recon

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
	"github.com/traxovo/fleet-ledger/pkg/services/tabular"
)

// DefaultTolerance is the threshold below which two values are
// considered equal for diff purposes.
const DefaultTolerance = 0.01

// DiffOptions name the shared key column, the value column to compare,
// and the numeric tolerance.
type DiffOptions struct {
	KeyColumn   string
	ValueColumn string
	Tolerance   float64
}

// Diff classifies every key of two dataset versions as Added, Deleted
// or Modified. Keys are coerced to strings; when a key appears more
// than once in a dataset only the first row counts. Output is sorted
// by change type (lexical ascending) and then by magnitude descending
// within each type.
func Diff(oldDS, newDS *domain.TabularDataset, opts DiffOptions) ([]domain.ChangeRecord, error) {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	for _, ds := range []*domain.TabularDataset{oldDS, newDS} {
		if !ds.HasColumn(opts.KeyColumn) {
			return nil, fmt.Errorf("key column %q not found in %s", opts.KeyColumn, ds.SourceFile)
		}
		if !ds.HasColumn(opts.ValueColumn) {
			return nil, fmt.Errorf("value column %q not found in %s", opts.ValueColumn, ds.SourceFile)
		}
	}

	oldVals := firstValueByKey(oldDS, opts)
	newVals := firstValueByKey(newDS, opts)

	var changes []domain.ChangeRecord
	for key, newVal := range newVals {
		oldVal, inOld := oldVals[key]
		if !inOld {
			changes = append(changes, domain.ChangeRecord{
				Key:        key,
				Type:       domain.ChangeAdded,
				NewValue:   newVal,
				Difference: newVal,
			})
			continue
		}
		diff := newVal - oldVal
		if math.Abs(diff) > opts.Tolerance {
			changes = append(changes, domain.ChangeRecord{
				Key:           key,
				Type:          domain.ChangeModified,
				OriginalValue: oldVal,
				NewValue:      newVal,
				Difference:    diff,
			})
		}
	}
	for key, oldVal := range oldVals {
		if _, inNew := newVals[key]; !inNew {
			changes = append(changes, domain.ChangeRecord{
				Key:           key,
				Type:          domain.ChangeDeleted,
				OriginalValue: oldVal,
				Difference:    -oldVal,
			})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Type != changes[j].Type {
			return changes[i].Type < changes[j].Type
		}
		di, dj := math.Abs(changes[i].Difference), math.Abs(changes[j].Difference)
		if di != dj {
			return di > dj
		}
		return changes[i].Key < changes[j].Key
	})
	return changes, nil
}

func firstValueByKey(ds *domain.TabularDataset, opts DiffOptions) map[string]float64 {
	values := make(map[string]float64, len(ds.Rows))
	for _, row := range ds.Rows {
		key := strings.TrimSpace(row[opts.KeyColumn])
		if key == "" {
			continue
		}
		if _, seen := values[key]; seen {
			continue
		}
		v, _ := tabular.ParseNumber(row[opts.ValueColumn])
		values[key] = v
	}
	return values
}
