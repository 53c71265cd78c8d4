package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/logger"
)

func main() {
	var (
		action = flag.String("action", "up", "migration action: up, down, drop or version")
		driver = flag.String("driver", "", "store driver, overrides STORE_DRIVER (postgres or sqlite)")
	)
	flag.Parse()

	if *driver != "" {
		os.Setenv("STORE_DRIVER", *driver)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.App.SlogLevel(), cfg.App.Env))

	if err := database.RunMigration(*action, cfg.Database.Driver, cfg.StoreDSN()); err != nil {
		slog.Error("migration failed", "action", *action, "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}

	slog.Info("migration completed", "action", *action, "driver", cfg.Database.Driver)
}
