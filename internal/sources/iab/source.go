// Package iab locates and downloads IAB content taxonomy files published in
// the upstream Tech Lab repository. The upstream has no release API; the
// source of truth is a directory of versioned files whose names follow the
// "Content Taxonomy <major>.<minor>" convention, so locating a catalog means
// listing that directory and picking the best-versioned candidate.
package iab

import (
	"context"
	"net/url"

	"github.com/adtaxonomy/taxsync/internal/transport"
	"github.com/adtaxonomy/taxsync/pkg/constants"
	"github.com/adtaxonomy/taxsync/pkg/taxonomy"
)

// File is one candidate taxonomy file from the upstream directory listing.
type File struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Source lists and downloads taxonomy files from one upstream repository
// directory.
type Source struct {
	client *transport.Client
	apiURL string
	repo   string
	dir    string
}

// Option configures a Source.
type Option func(*Source)

// WithAPIURL overrides the GitHub API base URL, used by tests to point at a
// mock server.
func WithAPIURL(apiURL string) Option {
	return func(s *Source) {
		s.apiURL = apiURL
	}
}

// WithRepo overrides the upstream repository ("owner/name").
func WithRepo(repo string) Option {
	return func(s *Source) {
		s.repo = repo
	}
}

// WithDir overrides the repository sub-path that holds taxonomy files.
func WithDir(dir string) Option {
	return func(s *Source) {
		s.dir = dir
	}
}

// New creates a Source against the IAB Tech Lab Taxonomies repository.
func New(client *transport.Client, opts ...Option) *Source {
	if client == nil {
		client = transport.Default()
	}
	s := &Source{
		client: client,
		apiURL: constants.GitHubAPIURL,
		repo:   constants.TaxonomyRepo,
		dir:    constants.ContentTaxonomyDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListFiles returns the plain files in the upstream taxonomy directory.
// Sub-directories and symlinks are excluded.
func (s *Source) ListFiles(ctx context.Context) ([]File, error) {
	endpoint := s.apiURL + "/repos/" + s.repo + "/contents/" + url.PathEscape(s.dir)

	var entries []File
	if err := s.client.GetJSON(ctx, endpoint, &entries); err != nil {
		return nil, err
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.Type == "file" {
			files = append(files, entry)
		}
	}
	return files, nil
}

// Download returns the full text content of a taxonomy file.
func (s *Source) Download(ctx context.Context, f File) (string, error) {
	return s.client.GetText(ctx, f.DownloadURL)
}

// PickLatest selects the file with the highest minor version on the given
// major release line. Files whose names carry no version tag are ignored.
// When several files share the maximal minor (which the naming convention
// should prevent), the lexicographically greatest file name wins, making the
// choice deterministic regardless of listing order. The second return value
// is false when no candidate matches.
func PickLatest(files []File, major int) (File, bool) {
	var (
		best    File
		bestVer taxonomy.Version
		found   bool
	)
	for _, f := range files {
		ver, ok := taxonomy.ParseVersion(f.Name)
		if !ok || ver.Major != major {
			continue
		}
		switch {
		case !found:
			best, bestVer, found = f, ver, true
		case ver.Minor > bestVer.Minor:
			best, bestVer = f, ver
		case ver.Minor == bestVer.Minor && f.Name > best.Name:
			best = f
		}
	}
	return best, found
}
