package main

import (
	"flag"
	"log"
	"os"

	"github.com/mashaweer/mashaweer/internal/pkg/config"
	"github.com/mashaweer/mashaweer/internal/pkg/database"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/drivers.env", "path to the env config file")
	command := flag.String("command", "up", "migration command: up, down or version")
	steps := flag.Int("steps", 1, "number of migrations to roll back with -command=down")
	flag.Parse()

	configs := config.InitConfig(*configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nil)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	switch *command {
	case "up":
		err = database.MigrateUp(configs.Database)
	case "down":
		err = database.MigrateDown(configs.Database, *steps)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = database.MigrationVersion(configs.Database)
		if err == nil {
			zapLogger.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty))
		}
	default:
		zapLogger.Error("Unknown migration command", zap.String("command", *command))
		os.Exit(2)
	}

	if err != nil {
		zapLogger.Fatal("Migration failed", zap.String("command", *command), zap.Error(err))
	}
}
