package normalize

import (
	"strings"

	"github.com/adtaxonomy/taxsync/pkg/errors"
	"github.com/adtaxonomy/taxsync/pkg/tabular"
	"github.com/adtaxonomy/taxsync/pkg/taxonomy"
)

// pathDelimiters are the separators a delimited path column may use.
const pathDelimiters = ">/\\,"

// Hierarchical maps a dataset into the canonical hierarchical schema,
// preserving input row order. Rows whose id or label is empty after
// trimming are skipped. A table whose id or label column cannot be located
// fails with a SchemaInferenceError.
func Hierarchical(ds *tabular.Dataset) ([]taxonomy.HierarchicalCategory, error) {
	if ds.Kind() == tabular.KindTree {
		return hierarchicalFromTree(ds.Tree()), nil
	}
	return hierarchicalFromTable(ds.Table())
}

func hierarchicalFromTable(table *tabular.Table) ([]taxonomy.HierarchicalCategory, error) {
	idCol, ok := findColumn(table.Columns, hierIDAliases)
	if !ok {
		return nil, errors.NewSchemaInferenceError("id", table.Columns)
	}
	labelCol, ok := findColumn(table.Columns, labelAliases)
	if !ok {
		return nil, errors.NewSchemaInferenceError("label", table.Columns)
	}
	pathCol, hasPath := findColumn(table.Columns, pathAliases)
	scdCol, hasSCD := findColumn(table.Columns, scdAliases)
	tiers := tierColumns(table.Columns)

	out := make([]taxonomy.HierarchicalCategory, 0, len(table.Rows))
	for _, row := range table.Rows {
		id := strings.TrimSpace(row[idCol])
		label := strings.TrimSpace(row[labelCol])
		if id == "" || label == "" {
			continue
		}

		path := rowPath(row, pathCol, hasPath, tiers)
		if len(path) == 0 {
			path = []string{label}
		}

		scd := false
		if hasSCD {
			scd = taxonomy.ParseSCD(row[scdCol])
		}

		out = append(out, taxonomy.HierarchicalCategory{
			ID:    id,
			Label: label,
			Path:  path,
			SCD:   scd,
		})
	}
	return out, nil
}

// rowPath derives the structural path for one row: a delimited path column
// wins when it yields any segments, tier columns in declared order are the
// fallback, and an empty result is resolved by the caller.
func rowPath(row tabular.Row, pathCol string, hasPath bool, tiers []string) []string {
	if hasPath {
		if segments := splitPath(row[pathCol]); len(segments) > 0 {
			return segments
		}
	}

	var segments []string
	for _, tier := range tiers {
		if val := strings.TrimSpace(row[tier]); val != "" {
			segments = append(segments, val)
		}
	}
	return segments
}

// splitPath splits a delimited path value on any accepted delimiter,
// trimming each segment and dropping empties.
func splitPath(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(pathDelimiters, r)
	})

	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}

// hierarchicalFromTree converts pre-flattened tree rows, which already
// carry their ancestor paths and sensitivity flags.
func hierarchicalFromTree(rows []tabular.TreeRow) []taxonomy.HierarchicalCategory {
	out := make([]taxonomy.HierarchicalCategory, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row.ID)
		label := strings.TrimSpace(row.Label)
		if id == "" || label == "" {
			continue
		}
		path := row.Path
		if len(path) == 0 {
			path = []string{label}
		}
		out = append(out, taxonomy.HierarchicalCategory{
			ID:    id,
			Label: label,
			Path:  path,
			SCD:   row.SCD,
		})
	}
	return out
}
