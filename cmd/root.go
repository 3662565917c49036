package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/flagquiz/internal/config"
	"github.com/abhisek/flagquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "flagquiz",
	Short: "Guess the country from its flag",
	Long:  "Flag Quiz: a terminal game of ten flags per round, three choices per flag.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (default ./config/config.yaml or $XDG_CONFIG_HOME/flagquiz/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides FLAGQUIZ_DB env var)")
	pf.String("assets", "", "Directory with <region>/*.png flag images")
	pf.String("region", "", "Flag region to play (default asia)")
	pf.String("manifest", "", "JSON or YAML flag manifest (overrides --assets)")
	pf.Uint64("seed", 0, "Random seed for a reproducible round (0 = clock)")
	pf.String("player", "", "Player name recorded with each session")
	pf.Duration("feedback-delay", 0, "How long Correct!/Wrong! stays on screen (default 1s)")
	pf.String("log-file", "", "Log file (default flagquiz.log next to the database)")
	pf.String("env", "", "Environment: local, dev or production")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration with the command's flags bound on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{
		ConfigFile: file,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (--db flag, then the
// FLAGQUIZ_DB env var or config file), falling back to the XDG default.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads configuration and opens the database.
func openStore(cmd *cobra.Command) (*config.Config, *store.Store, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, "", err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, nil, "", fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("open store: %w", err)
	}
	return cfg, st, dbPath, nil
}
