// Package tabular turns raw upstream taxonomy content into a normalized
// dataset regardless of the shape the upstream published. Tab- and
// comma-separated text becomes an ordered table of column→value rows with
// the header row auto-detected; JSON becomes either the same table shape
// (for a flat array of objects) or a sequence of tree rows flattened from a
// nested hierarchy. The shape decision is made exactly once per parse and
// carried on the Dataset, so normalizers dispatch on a tag instead of
// re-inspecting the data.
package tabular

// Row maps a column label, exactly as published upstream, to its raw
// string value for one table row.
type Row map[string]string

// Table is an ordered sequence of rows sharing the detected header's
// column label set.
type Table struct {
	Columns []string
	Rows    []Row
}

// TreeRow is one node flattened out of a hierarchical JSON taxonomy.
// Path runs from the root ancestor to the node's own label.
type TreeRow struct {
	ID    string
	Label string
	Path  []string
	SCD   bool
}

// Kind tags which shape a parse produced.
type Kind int

// Dataset shape tags.
const (
	KindTable Kind = iota
	KindTree
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindTree:
		return "tree"
	}
	return "unknown"
}

// Dataset is the tagged result of a parse: a Table for delimited or flat
// JSON input, or tree rows for hierarchical JSON input.
type Dataset struct {
	kind  Kind
	table *Table
	tree  []TreeRow
}

// Kind returns which shape this dataset holds.
func (d *Dataset) Kind() Kind {
	return d.kind
}

// Table returns the table shape, or nil for tree datasets.
func (d *Dataset) Table() *Table {
	return d.table
}

// Tree returns the flattened tree rows, or nil for table datasets.
func (d *Dataset) Tree() []TreeRow {
	return d.tree
}

// NewTableDataset wraps a table as a dataset.
func NewTableDataset(t *Table) *Dataset {
	return &Dataset{kind: KindTable, table: t}
}

// NewTreeDataset wraps flattened tree rows as a dataset.
func NewTreeDataset(rows []TreeRow) *Dataset {
	return &Dataset{kind: KindTree, tree: rows}
}
