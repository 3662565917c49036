package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/flagquiz/internal/app"
	"github.com/abhisek/flagquiz/internal/catalog"
	"github.com/abhisek/flagquiz/internal/config"
	"github.com/abhisek/flagquiz/internal/logger"
	"github.com/abhisek/flagquiz/internal/quiz"
	"github.com/abhisek/flagquiz/internal/screens/play"
	"github.com/abhisek/flagquiz/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, st, dbPath, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	// The TUI owns the terminal, so logs always go to a file.
	cfg.LogFile = cfg.ResolveLogFile(dbPath)
	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cat, err := loadCatalog(cfg, log)
	if err != nil {
		return err
	}
	log.Info("catalog loaded",
		zap.String("region", cat.Region()),
		zap.Int("flags", cat.Len()),
		zap.String("db", dbPath))

	deps := play.Deps{
		Catalog:       cat,
		EventRepo:     store.WithLogging(st.EventRepo(), log),
		SnapRepo:      st.SnapshotRepo(),
		Rand:          quiz.NewRand(cfg.Seed),
		FeedbackDelay: cfg.FeedbackDelay,
		Player:        cfg.Player,
		Log:           log,
	}
	return app.Run(deps)
}

// loadCatalog picks the flag source: a manifest file, then the assets
// directory, then the catalog built into the binary. An unreadable assets
// directory yields an empty catalog so the quiz reports it on screen.
func loadCatalog(cfg *config.Config, log *zap.Logger) (*catalog.Catalog, error) {
	switch {
	case cfg.ManifestPath != "":
		cat, err := catalog.LoadManifestFile(cfg.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("load manifest: %w", err)
		}
		return cat, nil

	case cfg.AssetsDir != "":
		cat, err := catalog.LoadDir(os.DirFS(cfg.AssetsDir), cfg.Region)
		if err != nil {
			log.Warn("cannot read flag assets, starting with an empty catalog",
				zap.String("dir", cfg.AssetsDir),
				zap.String("region", cfg.Region),
				zap.Error(err))
			return catalog.Empty(cfg.Region), nil
		}
		return cat, nil

	default:
		cat, err := catalog.Builtin()
		if err != nil {
			return nil, fmt.Errorf("load builtin catalog: %w", err)
		}
		return cat, nil
	}
}
