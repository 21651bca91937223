// Package normalize maps parsed taxonomy datasets into the canonical flat
// and hierarchical schemas. Column meaning is inferred by matching headers
// against explicit ordered alias tables, checked case-insensitively, so new
// upstream column spellings are a one-line addition rather than a code path.
package normalize

import "strings"

// Alias tables per logical field. Columns are scanned in their published
// order and the first header whose lower-cased form appears in the set wins.
var (
	flatIDAliases = []string{"code", "id", "node id", "taxonomy id", "unique id"}
	hierIDAliases = []string{"id", "node id", "taxonomy id", "unique id"}
	labelAliases  = []string{"label", "name", "node", "node name"}
	pathAliases   = []string{"path", "full path", "taxonomy path"}
	scdAliases    = []string{"scd", "sensitive", "is scd"}
)

// tierPrefix marks ordinal hierarchy columns ("Tier 1", "Tier 2", ...).
const tierPrefix = "tier"

// findColumn returns the first column whose lower-cased label is one of the
// accepted aliases.
func findColumn(columns, aliases []string) (string, bool) {
	set := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		set[a] = true
	}
	for _, col := range columns {
		if set[strings.ToLower(col)] {
			return col, true
		}
	}
	return "", false
}

// tierColumns returns the tier columns in their declared order.
func tierColumns(columns []string) []string {
	var tiers []string
	for _, col := range columns {
		if strings.HasPrefix(strings.ToLower(col), tierPrefix) {
			tiers = append(tiers, col)
		}
	}
	return tiers
}
