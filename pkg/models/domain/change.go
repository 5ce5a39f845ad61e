package domain

// ChangeType classifies a key when two dataset versions are compared.
type ChangeType string

const (
	ChangeAdded    ChangeType = "Added"
	ChangeDeleted  ChangeType = "Deleted"
	ChangeModified ChangeType = "Modified"
)

// ChangeRecord is one classified key out of a dataset diff. Produced
// sorted by (change type, magnitude); never mutated afterwards.
type ChangeRecord struct {
	Key           string
	Type          ChangeType
	OriginalValue float64
	NewValue      float64
	Difference    float64
}
