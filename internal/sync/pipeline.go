// Package sync drives the catalog synchronization pipeline: locate the best
// upstream file per release line, download it, parse and normalize it, and
// persist the canonical artifacts. The two release-line branches are
// isolated from each other; only the inability to locate or download the
// mandatory 3.x branch fails the run.
package sync

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/adtaxonomy/taxsync/internal/sources/iab"
	"github.com/adtaxonomy/taxsync/pkg/constants"
	"github.com/adtaxonomy/taxsync/pkg/errors"
	"github.com/adtaxonomy/taxsync/pkg/logging"
	"github.com/adtaxonomy/taxsync/pkg/normalize"
	"github.com/adtaxonomy/taxsync/pkg/save"
	"github.com/adtaxonomy/taxsync/pkg/tabular"
	"github.com/adtaxonomy/taxsync/pkg/taxonomy"
)

// Manifest records what one sync run produced.
type Manifest struct {
	SyncedAt time.Time               `json:"synced_at"`
	Branches map[string]BranchResult `json:"branches"`
}

// BranchResult describes one completed release-line branch.
type BranchResult struct {
	SourceFile string `json:"source_file"`
	Version    string `json:"version"`
	Rows       int    `json:"rows"`
	Artifact   string `json:"artifact"`
}

// Branch names used in logs, errors, and the manifest.
const (
	branchFlat         = "2.x"
	branchHierarchical = "3.x"
)

// Pipeline runs catalog synchronization against one upstream source.
type Pipeline struct {
	source  *iab.Source
	dataDir string
	format  save.Format
	logger  *zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDataDir sets the output directory for catalog artifacts.
func WithDataDir(dir string) Option {
	return func(p *Pipeline) {
		p.dataDir = dir
	}
}

// WithFormat sets the artifact encoding. The manifest is always JSON.
func WithFormat(f save.Format) Option {
	return func(p *Pipeline) {
		p.format = f
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline for the given source.
func New(source *iab.Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:  source,
		dataDir: constants.DefaultDataDir,
		format:  save.FormatJSON,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one synchronization pass. The returned error is non-nil only
// when the mandatory 3.x branch could not be located or downloaded at all;
// every other failure is logged and degrades that branch alone.
func (p *Pipeline) Run(ctx context.Context) (*Manifest, error) {
	manifest := &Manifest{
		SyncedAt: time.Now().UTC(),
		Branches: make(map[string]BranchResult),
	}

	p.logger.Info().Msg("listing upstream taxonomy files")
	files, err := p.source.ListFiles(ctx)
	if err != nil {
		return nil, errors.WrapSync(branchHierarchical, "list", err)
	}

	// Mandatory 3.x branch. Locate and download failures abort the run.
	f3, ok := iab.PickLatest(files, constants.HierarchicalMajor)
	if !ok {
		return nil, errors.NewSyncError(branchHierarchical, "locate", errors.ErrNotFound)
	}
	p.logger.Info().Str("branch", branchHierarchical).Str("file", f3.Name).Msg("downloading")
	text3, err := p.source.Download(ctx, f3)
	if err != nil {
		return nil, errors.WrapSync(branchHierarchical, "download", err)
	}
	if result, err := p.hierarchicalBranch(f3, text3); err != nil {
		p.logger.Warn().Err(err).Str("branch", branchHierarchical).Msg("branch failed")
	} else {
		manifest.Branches[branchHierarchical] = result
	}

	// Optional 2.x branch. Every failure degrades to a warning.
	p.flatBranchRun(ctx, files, manifest)

	if err := save.File(filepath.Join(p.dataDir, constants.ManifestFile), manifest, save.FormatJSON); err != nil {
		p.logger.Warn().Err(err).Msg("could not write manifest")
	}

	p.logger.Info().Int("branches", len(manifest.Branches)).Msg("sync done")
	return manifest, nil
}

// flatBranchRun executes the optional 2.x branch end to end, recording the
// result on the manifest when it completes.
func (p *Pipeline) flatBranchRun(ctx context.Context, files []iab.File, manifest *Manifest) {
	f2, ok := iab.PickLatest(files, constants.FlatMajor)
	if !ok {
		p.logger.Warn().Str("branch", branchFlat).Msg("no matching upstream file; skipping")
		return
	}
	p.logger.Info().Str("branch", branchFlat).Str("file", f2.Name).Msg("downloading")
	text, err := p.source.Download(ctx, f2)
	if err != nil {
		p.logger.Warn().Err(errors.WrapSync(branchFlat, "download", err)).Str("branch", branchFlat).Msg("branch failed")
		return
	}
	result, err := p.flatBranch(f2, text)
	if err != nil {
		p.logger.Warn().Err(err).Str("branch", branchFlat).Msg("branch failed")
		return
	}
	manifest.Branches[branchFlat] = result
}

// hierarchicalBranch parses, normalizes, and persists the 3.x catalog.
func (p *Pipeline) hierarchicalBranch(f iab.File, text string) (BranchResult, error) {
	if err := p.persistRaw(f, text); err != nil {
		return BranchResult{}, errors.WrapSync(branchHierarchical, "persist", err)
	}

	ds, err := tabular.Parse(text, f.Name)
	if err != nil {
		return BranchResult{}, errors.WrapSync(branchHierarchical, "parse", err)
	}

	categories, err := normalize.Hierarchical(ds)
	if err != nil {
		return BranchResult{}, errors.WrapSync(branchHierarchical, "normalize", err)
	}

	artifact := p.format.Filename(constants.HierarchicalCatalogFile)
	if err := save.File(filepath.Join(p.dataDir, artifact), categories, p.format); err != nil {
		return BranchResult{}, errors.WrapSync(branchHierarchical, "persist", err)
	}

	p.logger.Info().
		Str("branch", branchHierarchical).
		Int("rows", len(categories)).
		Str("artifact", artifact).
		Msg("catalog written")
	return p.branchResult(f, len(categories), artifact), nil
}

// flatBranch parses, normalizes, and persists the 2.x catalog.
func (p *Pipeline) flatBranch(f iab.File, text string) (BranchResult, error) {
	if err := p.persistRaw(f, text); err != nil {
		return BranchResult{}, errors.WrapSync(branchFlat, "persist", err)
	}

	ds, err := tabular.Parse(text, f.Name)
	if err != nil {
		return BranchResult{}, errors.WrapSync(branchFlat, "parse", err)
	}

	categories, err := normalize.Flat(ds)
	if err != nil {
		return BranchResult{}, errors.WrapSync(branchFlat, "normalize", err)
	}

	artifact := p.format.Filename(constants.FlatCatalogFile)
	if err := save.File(filepath.Join(p.dataDir, artifact), categories, p.format); err != nil {
		return BranchResult{}, errors.WrapSync(branchFlat, "persist", err)
	}

	p.logger.Info().
		Str("branch", branchFlat).
		Int("rows", len(categories)).
		Str("artifact", artifact).
		Msg("catalog written")
	return p.branchResult(f, len(categories), artifact), nil
}

// persistRaw keeps a verbatim copy of the upstream file for audit. Raw
// copies are never re-parsed on later runs.
func (p *Pipeline) persistRaw(f iab.File, text string) error {
	return save.Raw(filepath.Join(p.dataDir, constants.RawDirName, f.Name), []byte(text))
}

func (p *Pipeline) branchResult(f iab.File, rows int, artifact string) BranchResult {
	version := ""
	if ver, ok := taxonomy.ParseVersion(f.Name); ok {
		version = ver.String()
	}
	return BranchResult{
		SourceFile: f.Name,
		Version:    version,
		Rows:       rows,
		Artifact:   artifact,
	}
}
