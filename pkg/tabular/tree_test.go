package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTreeSingleRoot(t *testing.T) {
	text := `{
		"id": "1", "label": "Root",
		"children": [
			{"id": "1.1", "label": "Child"}
		]
	}`

	ds, err := Parse(text, "taxonomy.json")
	require.NoError(t, err)
	require.Equal(t, KindTree, ds.Kind())

	rows := ds.Tree()
	require.Len(t, rows, 2)
	assert.Equal(t, TreeRow{ID: "1", Label: "Root", Path: []string{"Root"}}, rows[0])
	assert.Equal(t, TreeRow{ID: "1.1", Label: "Child", Path: []string{"Root", "Child"}}, rows[1])
}

func TestParseTreeAliases(t *testing.T) {
	// code/name/nodes/is_scd are the secondary aliases for every field.
	text := `{
		"code": "10", "name": "Sensitive Topics", "is_scd": "yes",
		"nodes": [
			{"code": "10.1", "name": "Conflict", "sensitive": true}
		]
	}`

	ds, err := Parse(text, "taxonomy.json")
	require.NoError(t, err)

	rows := ds.Tree()
	require.Len(t, rows, 2)
	assert.Equal(t, "10", rows[0].ID)
	assert.True(t, rows[0].SCD)
	assert.True(t, rows[1].SCD)
	assert.Equal(t, []string{"Sensitive Topics", "Conflict"}, rows[1].Path)
}

func TestParseTreeSkipsNodeWithoutIDButVisitsChildren(t *testing.T) {
	text := `{
		"label": "Unkeyed Root",
		"children": [
			{"id": "2", "label": "Kept"}
		]
	}`

	ds, err := Parse(text, "taxonomy.json")
	require.NoError(t, err)

	rows := ds.Tree()
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].ID)
	// The unkeyed node still contributes its label to descendant paths.
	assert.Equal(t, []string{"Unkeyed Root", "Kept"}, rows[0].Path)
}

func TestParseTreeNodeWithoutLabelKeepsAncestorPath(t *testing.T) {
	text := `{
		"id": "1", "label": "Root",
		"children": [
			{"id": "ignored",
			 "children": [{"id": "3", "label": "Deep"}]}
		]
	}`

	ds, err := Parse(text, "taxonomy.json")
	require.NoError(t, err)

	rows := ds.Tree()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Root", "Deep"}, rows[1].Path)
}

func TestParseTreeSiblingPathsDoNotContaminate(t *testing.T) {
	text := `{
		"id": "1", "label": "Root",
		"children": [
			{"id": "1.1", "label": "Left",
			 "children": [{"id": "1.1.1", "label": "LeftChild"}]},
			{"id": "1.2", "label": "Right"}
		]
	}`

	ds, err := Parse(text, "taxonomy.json")
	require.NoError(t, err)

	rows := ds.Tree()
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Root", "Left", "LeftChild"}, rows[2].Path)
	assert.Equal(t, []string{"Root", "Right"}, rows[3].Path)
}

func TestParseTreeForestOfRoots(t *testing.T) {
	// An array whose first element is not an object is walked as roots,
	// not treated as a flat row table.
	text := `[
		{"id": "1", "label": "First"},
		{"id": "2", "label": "Second"}
	]`

	ds, err := Parse(text, "taxonomy.json")
	require.NoError(t, err)
	// A non-empty array of objects is row-shaped, so this is a table.
	assert.Equal(t, KindTable, ds.Kind())

	// Force the forest path with a leading non-object element.
	ds, err = Parse(`[null, {"id": "1", "label": "First"}]`, "taxonomy.json")
	require.NoError(t, err)
	require.Equal(t, KindTree, ds.Kind())
	require.Len(t, ds.Tree(), 1)
	assert.Equal(t, []string{"First"}, ds.Tree()[0].Path)
}

func TestParseTreeNumericScalars(t *testing.T) {
	text := `{"id": 7, "label": "Numeric", "scd": 1}`

	ds, err := Parse(text, "taxonomy.json")
	require.NoError(t, err)

	rows := ds.Tree()
	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0].ID)
	assert.True(t, rows[0].SCD)
}
