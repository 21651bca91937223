// Package taxonomy defines the canonical category schemas that every upstream
// taxonomy format is normalized into, along with the release-line version tag
// parsed from upstream file names. Downstream matching logic consumes these
// shapes and never sees the upstream's native column names.
package taxonomy

import "strings"

// FlatCategory is the canonical 2.x schema: a code and a display label.
// No uniqueness constraint is enforced on Code.
type FlatCategory struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// HierarchicalCategory is the canonical 3.x schema. Path runs from the root
// of the taxonomy tree to this node and is never empty: when no structural
// path information is recoverable it falls back to the node's own label.
// SCD is the sensitive category designation and defaults to false when the
// source carries no such field.
type HierarchicalCategory struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Path  []string `json:"path"`
	SCD   bool     `json:"scd"`
}

// ParseSCD coerces a raw source value to the sensitive category flag.
// Only "true", "1", "yes" and "y" (case-insensitive) mark a node sensitive;
// everything else, including empty and missing values, does not.
func ParseSCD(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
