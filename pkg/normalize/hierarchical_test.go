package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adtaxonomy/taxsync/pkg/errors"
	"github.com/adtaxonomy/taxsync/pkg/tabular"
	"github.com/adtaxonomy/taxsync/pkg/taxonomy"
)

func hierTable(columns []string, rows ...tabular.Row) *tabular.Dataset {
	return tabular.NewTableDataset(&tabular.Table{Columns: columns, Rows: rows})
}

func TestHierarchicalPathFromPathColumn(t *testing.T) {
	ds := hierTable(
		[]string{"Unique ID", "Name", "Path"},
		tabular.Row{"Unique ID": "42", "Name": "AI", "Path": "Tech > Computing > AI"},
	)

	got, err := Hierarchical(ds)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Tech", "Computing", "AI"}, got[0].Path)
}

func TestHierarchicalPathDelimiters(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"angle brackets", "Tech > Computing > AI", []string{"Tech", "Computing", "AI"}},
		{"slashes", "Tech/Computing/AI", []string{"Tech", "Computing", "AI"}},
		{"backslashes", `Tech\Computing\AI`, []string{"Tech", "Computing", "AI"}},
		{"commas", "Tech, Computing, AI", []string{"Tech", "Computing", "AI"}},
		{"empty segments dropped", "Tech >> AI >", []string{"Tech", "AI"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := hierTable(
				[]string{"ID", "Label", "Path"},
				tabular.Row{"ID": "1", "Label": "AI", "Path": tt.raw},
			)
			got, err := Hierarchical(ds)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Path)
		})
	}
}

func TestHierarchicalPathFromTierColumns(t *testing.T) {
	ds := hierTable(
		[]string{"Unique ID", "Name", "Path", "Tier 1", "Tier 2", "Tier 3"},
		tabular.Row{
			"Unique ID": "42", "Name": "Computing", "Path": "",
			"Tier 1": "Tech", "Tier 2": "Computing", "Tier 3": "",
		},
	)

	got, err := Hierarchical(ds)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Tech", "Computing"}, got[0].Path)
}

func TestHierarchicalPathFallsBackToLabel(t *testing.T) {
	ds := hierTable(
		[]string{"ID", "Label"},
		tabular.Row{"ID": "9", "Label": "Orphan"},
	)

	got, err := Hierarchical(ds)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Orphan"}, got[0].Path)
}

func TestHierarchicalSCDCoercion(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"TRUE", true},
		{"1", true},
		{"Yes", true},
		{"y", true},
		{"", false},
		{"no", false},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("scd "+tt.raw, func(t *testing.T) {
			ds := hierTable(
				[]string{"ID", "Label", "SCD"},
				tabular.Row{"ID": "1", "Label": "X", "SCD": tt.raw},
			)
			got, err := Hierarchical(ds)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].SCD)
		})
	}
}

func TestHierarchicalNoSCDColumnDefaultsFalse(t *testing.T) {
	ds := hierTable(
		[]string{"ID", "Label"},
		tabular.Row{"ID": "1", "Label": "X"},
	)

	got, err := Hierarchical(ds)
	require.NoError(t, err)
	assert.False(t, got[0].SCD)
}

func TestHierarchicalSkipsEmptyRows(t *testing.T) {
	ds := hierTable(
		[]string{"ID", "Label"},
		tabular.Row{"ID": "1", "Label": "Kept"},
		tabular.Row{"ID": "", "Label": "Dropped"},
		tabular.Row{"ID": "2", "Label": "   "},
	)

	got, err := Hierarchical(ds)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestHierarchicalSchemaInferenceFailure(t *testing.T) {
	ds := hierTable(
		[]string{"Code", "Description"},
		tabular.Row{"Code": "1", "Description": "x"},
	)

	// "code" is a flat-schema alias only; the hierarchical id aliases
	// exclude it, so inference must fail.
	_, err := Hierarchical(ds)
	require.Error(t, err)
	assert.True(t, errors.IsSchemaInference(err))
}

func TestHierarchicalFromTree(t *testing.T) {
	ds := tabular.NewTreeDataset([]tabular.TreeRow{
		{ID: "1", Label: "Root", Path: []string{"Root"}, SCD: false},
		{ID: "1.1", Label: "Child", Path: []string{"Root", "Child"}, SCD: true},
	})

	got, err := Hierarchical(ds)
	require.NoError(t, err)
	assert.Equal(t, []taxonomy.HierarchicalCategory{
		{ID: "1", Label: "Root", Path: []string{"Root"}, SCD: false},
		{ID: "1.1", Label: "Child", Path: []string{"Root", "Child"}, SCD: true},
	}, got)
}
