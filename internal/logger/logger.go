package logger

import (
	"go.uber.org/zap"

	"github.com/abhisek/flagquiz/internal/config"
)

// New builds a zap logger for cfg.Env. When cfg.LogFile is set all output,
// including zap's internal errors, goes to that file so the terminal stays
// free for the TUI.
func New(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	}

	if cfg.LogFile != "" {
		zc.OutputPaths = []string{cfg.LogFile}
		zc.ErrorOutputPaths = []string{cfg.LogFile}
	}

	return zc.Build()
}
