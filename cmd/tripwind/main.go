package main

import (
	"context"
	"embed"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tripwind/tripwind/internal/app"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// embeddedConfig is the application configuration bundled into the binary.
//
//go:embed resources/application.yaml
var embeddedConfig []byte

// migrationsFS bundles the database migration scripts.
//
//go:embed all:resources/migrations
var migrationsFS embed.FS

func main() {
	mode := flag.String("mode", string(app.ModeServe), "serve | run | history")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Warnf("Received signal '%v', shutting down", sig)
		cancel()
	}()

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	if err := app.RunApplication(ctx, envFilePath, embeddedConfig, migrationsFS, app.DBProviderOptions(), app.Mode(*mode)); err != nil {
		logger.Fatalf("Application run failed: %v", err)
	}
}
