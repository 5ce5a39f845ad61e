package extract

import (
	"fmt"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
)

// Accumulator collects reconciled records across sheets and files,
// applying the configured collision policy when a key repeats.
// Insertion order of first appearance is preserved for exports.
type Accumulator struct {
	policy  domain.CollisionPolicy
	records map[string]domain.ReconciledRecord
	order   []string
}

func NewAccumulator(policy domain.CollisionPolicy) *Accumulator {
	if policy == "" {
		policy = domain.CollisionOverwrite
	}
	return &Accumulator{
		policy:  policy,
		records: make(map[string]domain.ReconciledRecord),
	}
}

func (a *Accumulator) Add(rec domain.ReconciledRecord) error {
	key := rec.Key()
	existing, seen := a.records[key]
	if !seen {
		a.records[key] = rec
		a.order = append(a.order, key)
		return nil
	}

	switch a.policy {
	case domain.CollisionOverwrite:
		a.records[key] = rec
	case domain.CollisionSum:
		merged := existing
		merged.Units += rec.Units
		merged.Amount += rec.Amount
		merged.SourceFile = rec.SourceFile
		a.records[key] = merged
	case domain.CollisionError:
		return fmt.Errorf("duplicate allocation key %s (from %s and %s)",
			key, existing.SourceFile, rec.SourceFile)
	}
	return nil
}

func (a *Accumulator) Len() int {
	return len(a.order)
}

// Records returns accumulated records in first-appearance order.
func (a *Accumulator) Records() []domain.ReconciledRecord {
	out := make([]domain.ReconciledRecord, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.records[key])
	}
	return out
}
