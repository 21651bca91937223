package normalize

import (
	"strings"

	"github.com/adtaxonomy/taxsync/pkg/errors"
	"github.com/adtaxonomy/taxsync/pkg/tabular"
	"github.com/adtaxonomy/taxsync/pkg/taxonomy"
)

// Flat maps a dataset into the canonical 2-level schema, preserving input
// row order. Rows whose code or label is empty after trimming are skipped;
// that is a filtering policy, not an error. A table whose id or label
// column cannot be located fails with a SchemaInferenceError.
func Flat(ds *tabular.Dataset) ([]taxonomy.FlatCategory, error) {
	if ds.Kind() == tabular.KindTree {
		return flatFromTree(ds.Tree()), nil
	}
	return flatFromTable(ds.Table())
}

func flatFromTable(table *tabular.Table) ([]taxonomy.FlatCategory, error) {
	idCol, ok := findColumn(table.Columns, flatIDAliases)
	if !ok {
		return nil, errors.NewSchemaInferenceError("code", table.Columns)
	}
	labelCol, ok := findColumn(table.Columns, labelAliases)
	if !ok {
		return nil, errors.NewSchemaInferenceError("label", table.Columns)
	}

	out := make([]taxonomy.FlatCategory, 0, len(table.Rows))
	for _, row := range table.Rows {
		code := strings.TrimSpace(row[idCol])
		label := strings.TrimSpace(row[labelCol])
		if code == "" || label == "" {
			continue
		}
		out = append(out, taxonomy.FlatCategory{Code: code, Label: label})
	}
	return out, nil
}

// flatFromTree projects tree rows onto the flat schema: the node id becomes
// the code and the path is dropped.
func flatFromTree(rows []tabular.TreeRow) []taxonomy.FlatCategory {
	out := make([]taxonomy.FlatCategory, 0, len(rows))
	for _, row := range rows {
		code := strings.TrimSpace(row.ID)
		label := strings.TrimSpace(row.Label)
		if code == "" || label == "" {
			continue
		}
		out = append(out, taxonomy.FlatCategory{Code: code, Label: label})
	}
	return out
}
