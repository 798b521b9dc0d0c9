package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"volei-app/internal/standings"
)

// New builds a JSON production logger, or a console logger when app is "dev".
func New(level string, app string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if app == "dev" {
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Diagnostics writes one entry per standings diagnostic. Unknown teams are
// errors in the source data; the rest are warnings.
func Diagnostics(logger *zap.Logger, diags []standings.Diagnostic) {
	for _, d := range diags {
		fields := []zap.Field{
			zap.String("kind", string(d.Kind)),
			zap.Int("match_index", d.MatchIndex),
		}
		if d.MatchID != "" {
			fields = append(fields, zap.String("match_id", d.MatchID))
		}
		if d.Team != "" {
			fields = append(fields, zap.String("team", d.Team))
		}
		if d.Kind == standings.KindUnknownTeam {
			logger.Error(d.Message, fields...)
			continue
		}
		logger.Warn(d.Message, fields...)
	}
}
