package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/talenthub/internal/config"
	"github.com/abhisek/talenthub/internal/store"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "talenthub [paper.yaml]",
	Short: "Build, preview and practice maths papers",
	Long: `Talent Hub builds arithmetic practice papers from question blocks,
previews them through the generation service, exports PDFs and runs timed
attempts in the terminal.

Pass a paper file to open it in the builder.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
	RunE: runApp,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a config file (default: ./config/config.yaml, then the user config dir)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TALENTHUB_DB env var)")

	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(pdfCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db.path from the config, then TALENTHUB_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

// openStore opens the local journal.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}
