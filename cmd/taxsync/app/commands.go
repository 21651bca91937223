package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adtaxonomy/taxsync/internal/sync"
	"github.com/adtaxonomy/taxsync/pkg/save"
	"github.com/adtaxonomy/taxsync/pkg/taxonomy"
)

// NewSyncCommand creates the sync command.
func (a *App) NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the local catalog with the upstream taxonomy",
		Long: `Sync locates the latest Content Taxonomy 3.x and 2.x files in the
upstream repository, downloads them, and writes the normalized catalogs:

  iab_3x.json  [{"id", "label", "path", "scd"}, ...]
  iab_2x.json  [{"code", "label"}, ...]

Raw upstream files are kept verbatim under the data directory's raw/
sub-directory for audit.

The 3.x line is mandatory: if it cannot be located or downloaded the
command fails. All other failures, including everything on the 2.x line,
degrade to warnings.`,
		Example: `  taxsync sync                     # Sync into ./data
  taxsync sync --data-dir /var/lib/taxsync
  taxsync sync --format yaml       # YAML catalogs instead of JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := save.ParseFormat(mustGetString(cmd, "format"))
			if err != nil {
				return err
			}
			dataDir := mustGetString(cmd, "data-dir")
			if dataDir == "" {
				dataDir = a.config.DataDir
			}

			pipeline := sync.New(a.Source(),
				sync.WithDataDir(dataDir),
				sync.WithFormat(format),
				sync.WithLogger(a.logger),
			)
			_, err = pipeline.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().String("data-dir", "", "output directory for catalog artifacts")
	cmd.Flags().String("format", "", "catalog artifact format: json, yaml (default json)")

	return cmd
}

// NewListCommand creates the list command.
func (a *App) NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upstream taxonomy files and their versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := a.Source().ListFiles(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range files {
				if ver, ok := taxonomy.ParseVersion(f.Name); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", ver, f.Name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", "-", f.Name)
				}
			}
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxsync %s (commit %s, built %s)\n", a.version, a.commit, a.date)
		},
	}
}
