package domain

import "fmt"

// ReconciledRecord is a normalized billing allocation row. Records are
// immutable once built; duplicate keys are resolved at insert time
// according to the configured CollisionPolicy.
type ReconciledRecord struct {
	EquipmentID string
	JobNumber   string
	CostCode    string
	Units       float64
	Rate        float64
	Amount      float64
	Division    string
	Date        string // normalized YYYY-MM-DD, empty when unresolved
	SourceFile  string
}

// Key is the composite identity of a record across sheets and files.
func (r ReconciledRecord) Key() string {
	return fmt.Sprintf("%s_%s_%s", r.EquipmentID, r.JobNumber, r.CostCode)
}

// CollisionPolicy decides what happens when two records share a key.
type CollisionPolicy string

const (
	// CollisionOverwrite keeps the last record seen (source behavior).
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionSum accumulates units and amounts across duplicates.
	CollisionSum CollisionPolicy = "sum"
	// CollisionError fails the run on the first duplicate key.
	CollisionError CollisionPolicy = "error"
)

func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case CollisionOverwrite, CollisionSum, CollisionError:
		return CollisionPolicy(s), nil
	case "":
		return CollisionOverwrite, nil
	}
	return "", fmt.Errorf("unknown collision policy %q", s)
}
