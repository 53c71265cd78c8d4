package logger

import (
	"io"
	"log/slog"

	"github.com/go-chi/httplog/v3"
)

const (
	AppName    = "attendance-backend"
	AppVersion = "v1.0.0"
)

// New returns a JSON logger whose attributes follow the ECS schema used by
// the HTTP request logger.
func New(w io.Writer, level slog.Level, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", AppName),
		slog.String("version", AppVersion),
		slog.String("env", env),
	)
}
