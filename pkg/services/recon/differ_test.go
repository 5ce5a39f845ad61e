package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
)

func diffDataset(rows ...domain.Row) *domain.TabularDataset {
	return &domain.TabularDataset{
		SourceFile: "test.csv",
		Headers:    []string{"asset_id", "value"},
		Rows:       rows,
	}
}

var diffOpts = DiffOptions{KeyColumn: "asset_id", ValueColumn: "value"}

func TestDiff_SelfIsEmpty(t *testing.T) {
	ds := diffDataset(
		domain.Row{"asset_id": "X1", "value": "100"},
		domain.Row{"asset_id": "X2", "value": "250.75"},
	)

	changes, err := Diff(ds, ds, diffOpts)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDiff_ToleranceBoundary(t *testing.T) {
	oldDS := diffDataset(domain.Row{"asset_id": "X1", "value": "100"})

	within := diffDataset(domain.Row{"asset_id": "X1", "value": "100.005"})
	changes, err := Diff(oldDS, within, diffOpts)
	require.NoError(t, err)
	assert.Empty(t, changes, "differences under 0.01 are equal")

	beyond := diffDataset(domain.Row{"asset_id": "X1", "value": "100.02"})
	changes, err = Diff(oldDS, beyond, diffOpts)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ChangeModified, changes[0].Type)
	assert.InDelta(t, 0.02, changes[0].Difference, 1e-9)
	assert.Equal(t, 100.0, changes[0].OriginalValue)
	assert.Equal(t, 100.02, changes[0].NewValue)
}

func TestDiff_ClassifiesAddedAndDeleted(t *testing.T) {
	oldDS := diffDataset(
		domain.Row{"asset_id": "X1", "value": "100"},
		domain.Row{"asset_id": "X2", "value": "40"},
	)
	newDS := diffDataset(
		domain.Row{"asset_id": "X1", "value": "100"},
		domain.Row{"asset_id": "X3", "value": "75"},
	)

	changes, err := Diff(oldDS, newDS, diffOpts)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, domain.ChangeAdded, changes[0].Type)
	assert.Equal(t, "X3", changes[0].Key)
	assert.Equal(t, 75.0, changes[0].NewValue)

	assert.Equal(t, domain.ChangeDeleted, changes[1].Type)
	assert.Equal(t, "X2", changes[1].Key)
	assert.Equal(t, 40.0, changes[1].OriginalValue)
}

func TestDiff_SortsByTypeThenMagnitude(t *testing.T) {
	oldDS := diffDataset(
		domain.Row{"asset_id": "M1", "value": "100"},
		domain.Row{"asset_id": "M2", "value": "100"},
		domain.Row{"asset_id": "D1", "value": "5"},
	)
	newDS := diffDataset(
		domain.Row{"asset_id": "M1", "value": "101"},
		domain.Row{"asset_id": "M2", "value": "190"},
		domain.Row{"asset_id": "A1", "value": "3"},
	)

	changes, err := Diff(oldDS, newDS, diffOpts)
	require.NoError(t, err)
	require.Len(t, changes, 4)

	// Lexical change-type order groups all Added before Deleted before
	// Modified; magnitude descends only within each group.
	assert.Equal(t, domain.ChangeAdded, changes[0].Type)
	assert.Equal(t, domain.ChangeDeleted, changes[1].Type)
	assert.Equal(t, "M2", changes[2].Key, "largest modification first within the group")
	assert.Equal(t, "M1", changes[3].Key)
}

func TestDiff_FirstRowWinsOnDuplicateKeys(t *testing.T) {
	oldDS := diffDataset(
		domain.Row{"asset_id": "X1", "value": "100"},
		domain.Row{"asset_id": "X1", "value": "900"},
	)
	newDS := diffDataset(domain.Row{"asset_id": "X1", "value": "100"})

	changes, err := Diff(oldDS, newDS, diffOpts)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDiff_MissingColumns(t *testing.T) {
	ds := diffDataset(domain.Row{"asset_id": "X1", "value": "100"})
	other := &domain.TabularDataset{SourceFile: "other.csv", Headers: []string{"id"}}

	_, err := Diff(ds, other, diffOpts)
	assert.ErrorContains(t, err, "key column")

	_, err = Diff(ds, ds, DiffOptions{KeyColumn: "asset_id", ValueColumn: "missing"})
	assert.ErrorContains(t, err, "value column")
}
