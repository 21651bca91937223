package tabular

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/adtaxonomy/taxsync/pkg/errors"
	"github.com/adtaxonomy/taxsync/pkg/taxonomy"
)

// Alias sets accepted for hierarchical JSON node fields, checked in order.
var (
	idAliases       = []string{"id", "code"}
	labelAliases    = []string{"label", "name"}
	scdAliases      = []string{"scd", "is_scd", "sensitive"}
	childrenAliases = []string{"children", "nodes"}
)

// parseJSON handles content whose extension is not a recognized delimited
// format. A non-empty array of objects is already row-shaped and becomes a
// table; any other valid JSON value is walked as a hierarchy (a single root
// node or a sequence of root nodes). Invalid JSON fails with a FormatError.
func parseJSON(text, name string) (*Dataset, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, errors.NewFormatError(name, "unsupported format", err)
	}
	if dec.More() {
		return nil, errors.NewFormatError(name, "unsupported format", errors.New("trailing content after JSON value"))
	}

	if list, ok := data.([]any); ok && len(list) > 0 {
		if _, ok := list[0].(map[string]any); ok {
			return NewTableDataset(tableFromObjects(list)), nil
		}
	}

	var rows []TreeRow
	switch v := data.(type) {
	case map[string]any:
		rows = walk(v, nil, rows)
	case []any:
		for _, n := range v {
			if node, ok := n.(map[string]any); ok {
				rows = walk(node, nil, rows)
			}
		}
	}
	return NewTreeDataset(rows), nil
}

// walk flattens one node and recurses into its children. A node missing its
// id or label contributes no row of its own, but its children are still
// visited. The ancestor path is copied before every append so sibling
// branches never share backing storage.
func walk(node map[string]any, ancestors []string, rows []TreeRow) []TreeRow {
	id := firstScalar(node, idAliases)
	label := firstScalar(node, labelAliases)

	if id != "" && label != "" {
		rows = append(rows, TreeRow{
			ID:    id,
			Label: label,
			Path:  appendPath(ancestors, label),
			SCD:   taxonomy.ParseSCD(firstScalar(node, scdAliases)),
		})
	}

	next := ancestors
	if label != "" {
		next = appendPath(ancestors, label)
	}
	for _, alias := range childrenAliases {
		children, ok := node[alias].([]any)
		if !ok {
			continue
		}
		for _, c := range children {
			if child, ok := c.(map[string]any); ok {
				rows = walk(child, next, rows)
			}
		}
		break
	}
	return rows
}

// appendPath returns ancestors + [label] on fresh backing storage.
func appendPath(ancestors []string, label string) []string {
	path := make([]string, 0, len(ancestors)+1)
	path = append(path, ancestors...)
	return append(path, label)
}

// tableFromObjects converts a JSON array of objects into a table. JSON
// object keys carry no order, so columns are sorted lexicographically; the
// only downstream consumer of column order is tier-column sequencing, which
// sorts correctly under lexicographic order.
func tableFromObjects(list []any) *Table {
	seen := make(map[string]bool)
	var columns []string
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for key := range obj {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	sort.Strings(columns)

	rows := make([]Row, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		row := make(Row, len(columns))
		for _, col := range columns {
			row[col] = stringify(obj[col])
		}
		rows = append(rows, row)
	}
	return &Table{Columns: columns, Rows: rows}
}

// firstScalar returns the stringified value of the first alias present with
// a non-empty scalar value.
func firstScalar(node map[string]any, aliases []string) string {
	for _, alias := range aliases {
		if s := stringify(node[alias]); s != "" {
			return s
		}
	}
	return ""
}

// stringify renders a scalar JSON value as its raw string form. Containers
// and nulls render empty.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
