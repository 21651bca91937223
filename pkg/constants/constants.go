// Package constants provides shared constants used throughout the taxsync codebase.
// This includes timeouts, file permissions, upstream repository coordinates, and
// artifact names that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for file downloads from the upstream repository
	DefaultHTTPTimeout = 30 * time.Second

	// ListingTimeout is the timeout for directory-listing requests
	ListingTimeout = 20 * time.Second

	// SyncTimeout is the overall timeout for a full catalog sync run
	SyncTimeout = 5 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Upstream repository constants identify the source of truth for taxonomy data
const (
	// GitHubAPIURL is the base URL of the GitHub REST API
	GitHubAPIURL = "https://api.github.com"

	// TaxonomyRepo is the upstream repository that publishes IAB taxonomy files
	TaxonomyRepo = "InteractiveAdvertisingBureau/Taxonomies"

	// ContentTaxonomyDir is the repository sub-path holding content taxonomy files
	ContentTaxonomyDir = "Content Taxonomies"

	// GitHubTokenEnv is the environment variable holding an optional bearer token.
	// Unauthenticated access works but is rate limited more aggressively.
	GitHubTokenEnv = "GITHUB_TOKEN"
)

// Artifact constants name the files a sync run writes into the data directory
const (
	// FlatCatalogFile holds the normalized 2.x catalog
	FlatCatalogFile = "iab_2x.json"

	// HierarchicalCatalogFile holds the normalized 3.x catalog
	HierarchicalCatalogFile = "iab_3x.json"

	// ManifestFile records what each sync run produced
	ManifestFile = "manifest.json"

	// RawDirName is the sub-directory where upstream files are kept verbatim for audit
	RawDirName = "raw"

	// DefaultDataDir is the default output directory for catalog artifacts
	DefaultDataDir = "data"
)

// Version line constants identify the two taxonomy release lines the pipeline tracks
const (
	// HierarchicalMajor is the mandatory 3.x release line
	HierarchicalMajor = 3

	// FlatMajor is the optional 2.x release line
	FlatMajor = 2
)

// Parser constants bound format detection
const (
	// HeaderScanLines is how many leading lines are scanned for the real header row
	HeaderScanLines = 10
)
