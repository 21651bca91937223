package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adtaxonomy/taxsync/internal/sources/iab"
	"github.com/adtaxonomy/taxsync/internal/transport"
	"github.com/adtaxonomy/taxsync/pkg/logging"
	"github.com/adtaxonomy/taxsync/pkg/save"
	"github.com/adtaxonomy/taxsync/pkg/taxonomy"
)

const tsv3x = "Unique ID\tParent\tName\tTier 1\tTier 2\n" +
	"1\t\tAttractions\tAttractions\t\n" +
	"2\t1\tAmusement and Theme Parks\tAttractions\tAmusement and Theme Parks\n"

const tsv2x = "Unique ID\tName\n" +
	"1-1\tArts & Entertainment\n" +
	"1-2\tAutomotive\n"

// upstream is a mock of the GitHub contents API plus raw file downloads.
// fileStatus overrides the response code per file name.
type upstream struct {
	server     *httptest.Server
	files      map[string]string
	fileStatus map[string]int
}

func newUpstream(t *testing.T, files map[string]string, fileStatus map[string]int) *upstream {
	t.Helper()
	u := &upstream{files: files, fileStatus: fileStatus}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/InteractiveAdvertisingBureau/Taxonomies/contents/Content Taxonomies" {
			var entries []iab.File
			for name := range u.files {
				entries = append(entries, iab.File{
					Name:        name,
					Type:        "file",
					DownloadURL: fmt.Sprintf("%s/download/%s", u.server.URL, url.PathEscape(name)),
				})
			}
			_ = json.NewEncoder(w).Encode(entries)
			return
		}
		name := filepath.Base(r.URL.Path)
		if status, ok := u.fileStatus[name]; ok {
			w.WriteHeader(status)
			return
		}
		content, ok := u.files[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(content))
	}))
	t.Cleanup(u.server.Close)
	return u
}

func newTestPipeline(t *testing.T, u *upstream, dataDir string) *Pipeline {
	t.Helper()
	source := iab.New(transport.New(nil, time.Second), iab.WithAPIURL(u.server.URL))
	return New(source, WithDataDir(dataDir), WithLogger(&logging.Nop))
}

func TestRunBothBranches(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"Content Taxonomy 3.0.tsv": "stale",
		"Content Taxonomy 3.1.tsv": tsv3x,
		"Content Taxonomy 2.2.tsv": tsv2x,
	}, nil)
	dataDir := t.TempDir()

	manifest, err := newTestPipeline(t, u, dataDir).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest.Branches, 2)

	// 3.x artifact
	var hier []taxonomy.HierarchicalCategory
	readJSON(t, filepath.Join(dataDir, "iab_3x.json"), &hier)
	require.Len(t, hier, 2)
	assert.Equal(t, "1", hier[0].ID)
	assert.Equal(t, []string{"Attractions"}, hier[0].Path)
	assert.Equal(t, []string{"Attractions", "Amusement and Theme Parks"}, hier[1].Path)

	// 2.x artifact
	var flat []taxonomy.FlatCategory
	readJSON(t, filepath.Join(dataDir, "iab_2x.json"), &flat)
	require.Len(t, flat, 2)
	assert.Equal(t, "Arts & Entertainment", flat[0].Label)

	// raw audit copies, byte-for-byte
	raw, err := os.ReadFile(filepath.Join(dataDir, "raw", "Content Taxonomy 3.1.tsv"))
	require.NoError(t, err)
	assert.Equal(t, tsv3x, string(raw))

	// manifest
	var m Manifest
	readJSON(t, filepath.Join(dataDir, "manifest.json"), &m)
	assert.Equal(t, "3.1", m.Branches["3.x"].Version)
	assert.Equal(t, 2, m.Branches["3.x"].Rows)
	assert.Equal(t, "Content Taxonomy 2.2.tsv", m.Branches["2.x"].SourceFile)
}

func TestRunOptionalBranchDownloadFailureIsIsolated(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"Content Taxonomy 3.1.tsv": tsv3x,
		"Content Taxonomy 2.2.tsv": tsv2x,
	}, map[string]int{
		"Content Taxonomy 2.2.tsv": http.StatusInternalServerError,
	})
	dataDir := t.TempDir()

	manifest, err := newTestPipeline(t, u, dataDir).Run(context.Background())
	require.NoError(t, err, "a 2.x failure must not fail the run")

	_, hasFlat := manifest.Branches["2.x"]
	assert.False(t, hasFlat)
	assert.Contains(t, manifest.Branches, "3.x")

	assert.FileExists(t, filepath.Join(dataDir, "iab_3x.json"))
	assert.NoFileExists(t, filepath.Join(dataDir, "iab_2x.json"))
}

func TestRunMissingOptionalBranchIsSkipped(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"Content Taxonomy 3.1.tsv": tsv3x,
	}, nil)
	dataDir := t.TempDir()

	manifest, err := newTestPipeline(t, u, dataDir).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, manifest.Branches, 1)
	assert.Contains(t, manifest.Branches, "3.x")
}

func TestRunMissingMandatoryBranchFails(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"Content Taxonomy 2.2.tsv": tsv2x,
	}, nil)

	_, err := newTestPipeline(t, u, t.TempDir()).Run(context.Background())
	require.Error(t, err)
}

func TestRunMandatoryDownloadFailureFails(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"Content Taxonomy 3.1.tsv": tsv3x,
	}, map[string]int{
		"Content Taxonomy 3.1.tsv": http.StatusServiceUnavailable,
	})

	_, err := newTestPipeline(t, u, t.TempDir()).Run(context.Background())
	require.Error(t, err)
}

func TestRunMandatoryNormalizeFailureDegrades(t *testing.T) {
	// Columns that defeat schema inference: parse succeeds, normalization
	// fails, but the run still completes with a zero completion code.
	u := newUpstream(t, map[string]string{
		"Content Taxonomy 3.1.tsv": "Foo\tBar\n1\tx\n",
		"Content Taxonomy 2.2.tsv": tsv2x,
	}, nil)
	dataDir := t.TempDir()

	manifest, err := newTestPipeline(t, u, dataDir).Run(context.Background())
	require.NoError(t, err)

	_, hasHier := manifest.Branches["3.x"]
	assert.False(t, hasHier)
	assert.NoFileExists(t, filepath.Join(dataDir, "iab_3x.json"), "no partial output on schema failure")
	assert.Contains(t, manifest.Branches, "2.x", "the other branch still completes")
}

func TestRunYAMLFormat(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"Content Taxonomy 3.1.tsv": tsv3x,
	}, nil)
	dataDir := t.TempDir()

	source := iab.New(transport.New(nil, time.Second), iab.WithAPIURL(u.server.URL))
	pipeline := New(source, WithDataDir(dataDir), WithFormat(save.FormatYAML), WithLogger(&logging.Nop))

	manifest, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "iab_3x.yaml", manifest.Branches["3.x"].Artifact)
	assert.FileExists(t, filepath.Join(dataDir, "iab_3x.yaml"))
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}
