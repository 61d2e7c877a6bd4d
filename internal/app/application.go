// Package app assembles the vacation pipeline into a runnable Fx
// application.
package app

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"go.uber.org/fx"

	"github.com/tripwind/tripwind/internal/store/gormstore"
	"github.com/tripwind/tripwind/internal/task"
	"github.com/tripwind/tripwind/pkg/pipeline/adapter/database"
	gormadapter "github.com/tripwind/tripwind/pkg/pipeline/adapter/database/gorm"
	"github.com/tripwind/tripwind/pkg/pipeline/adapter/storage"
	storagegcs "github.com/tripwind/tripwind/pkg/pipeline/adapter/storage/gcs"
	storagelocal "github.com/tripwind/tripwind/pkg/pipeline/adapter/storage/local"
	coreconfig "github.com/tripwind/tripwind/pkg/pipeline/core/config"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/repository"
	"github.com/tripwind/tripwind/pkg/pipeline/infrastructure/metrics"
	"github.com/tripwind/tripwind/pkg/pipeline/infrastructure/migration"
	sqlrepo "github.com/tripwind/tripwind/pkg/pipeline/infrastructure/repository/sql"
	"github.com/tripwind/tripwind/pkg/pipeline/launcher"
	pipelinelistener "github.com/tripwind/tripwind/pkg/pipeline/listener"
	"github.com/tripwind/tripwind/pkg/pipeline/scheduler"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// Mode selects what the process does after wiring.
type Mode string

const (
	// ModeServe runs the interval scheduler until the process is stopped.
	ModeServe Mode = "serve"
	// ModeRun executes one manual pipeline cycle and exits.
	ModeRun Mode = "run"
	// ModeHistory prints the recent run history and exits.
	ModeHistory Mode = "history"
)

const (
	metadataMigrationsPath = "resources/migrations/metadata"
	workloadMigrationsPath = "resources/migrations/workload"
)

// RunApplication wires and runs the pipeline. It blocks until the
// application shuts down.
func RunApplication(appCtx context.Context, envFilePath string, embeddedConfig coreconfig.EmbeddedConfig, migrationsFS embed.FS, dbProviderOptions []fx.Option, mode Mode) error {
	cfg, err := coreconfig.LoadConfig(envFilePath, embeddedConfig)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.SetLogLevel(cfg.Tripwind.System.Logging.Level)

	app := fx.New(
		fx.Supply(
			embeddedConfig,
			cfg,
			fx.Annotate(appCtx, fx.As(new(context.Context)), fx.ResultTags(`name:"appCtx"`)),
		),
		fx.Options(dbProviderOptions...),
		logger.Module,
		metrics.Module,
		gormadapter.Module,
		storagelocal.Module,
		storagegcs.Module,
		storage.Module,
		sqlrepo.Module,
		gormstore.Module,
		pipelinelistener.Module,
		launcher.Module,
		Module,
		fx.Supply(mode),
		fx.Supply(fx.Annotate(migrationsFS, fx.ResultTags(`name:"migrationsFS"`))),
		fx.Invoke(fx.Annotate(runMigrations, fx.ParamTags("", "", `name:"migrationsFS"`))),
		fx.Invoke(fx.Annotate(start, fx.ParamTags("", "", "", "", "", "", "", "", `name:"appCtx"`))),
	)

	app.Run()
	return app.Err()
}

// runMigrations brings both schemas up before anything launches a task.
func runMigrations(cfg *coreconfig.Config, dbResolver database.DBConnectionResolver, migrationsFS embed.FS) error {
	ctx := context.Background()
	plans := []struct {
		dbRef string
		path  string
	}{
		{cfg.Tripwind.Infrastructure.TaskRepositoryDBRef, metadataMigrationsPath},
		{cfg.Tripwind.Infrastructure.TargetStoreDBRef, workloadMigrationsPath},
	}

	applied := make(map[string]bool)
	for _, plan := range plans {
		// Both refs may point at the same connection; migrate each
		// connection and path combination once.
		key := plan.dbRef + "|" + plan.path
		if applied[key] {
			continue
		}
		applied[key] = true

		conn, err := dbResolver.ResolveDBConnection(ctx, plan.dbRef)
		if err != nil {
			return fmt.Errorf("failed to resolve connection '%s' for migration: %w", plan.dbRef, err)
		}
		if _, err := fs.Stat(migrationsFS, plan.path); err != nil {
			logger.Debugf("No migrations bundled under '%s', skipping", plan.path)
			continue
		}
		if err := migration.NewMigrator(conn).Up(ctx, migrationsFS, plan.path, "schema_migrations"); err != nil {
			return fmt.Errorf("failed to migrate '%s': %w", plan.dbRef, err)
		}
		logger.Infof("Migrations applied on connection '%s' from '%s'", plan.dbRef, plan.path)
	}
	return nil
}

func start(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	mode Mode,
	cfg *coreconfig.Config,
	taskLauncher launcher.TaskLauncher,
	repo repository.TaskExecutionRepository,
	sched *scheduler.IntervalScheduler,
	coordinator *task.Coordinator,
	appCtx context.Context,
) {
	switch mode {
	case ModeRun:
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go runOnce(appCtx, taskLauncher, shutdowner)
				return nil
			},
		})
	case ModeHistory:
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go printHistory(appCtx, repo, cfg.Tripwind.Pipeline.RunHistoryLimit, shutdowner)
				return nil
			},
		})
	default:
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				coordinator.Start(appCtx)
				sched.Start(appCtx)
				logger.Infof("Pipeline scheduler started")
				return nil
			},
			OnStop: func(context.Context) error {
				sched.Stop()
				coordinator.Stop()
				logger.Infof("Pipeline scheduler stopped")
				return nil
			},
		})
	}
}

// runOnce executes one full pipeline cycle: the update task, then the
// notification task once the update run has reached a terminal state.
func runOnce(ctx context.Context, taskLauncher launcher.TaskLauncher, shutdowner fx.Shutdowner) {
	defer func() {
		if err := shutdowner.Shutdown(); err != nil {
			logger.Errorf("Failed to shut down after manual run: %v", err)
		}
	}()

	execution, err := taskLauncher.Launch(ctx, task.UpdateTaskName, model.TriggerManual)
	if err != nil {
		logger.Errorf("Manual update run failed to launch: %v", err)
		return
	}
	logger.Infof("Update run %s finished with status %s", execution.ID, execution.Status)

	notification, err := taskLauncher.Launch(ctx, task.NotificationTaskName, model.TriggerUpstream)
	if err != nil {
		logger.Errorf("Notification run failed to launch: %v", err)
		return
	}
	logger.Infof("Notification run %s finished with status %s", notification.ID, notification.Status)
}

// printHistory writes the recent run history to stdout.
func printHistory(ctx context.Context, repo repository.TaskExecutionRepository, limit int, shutdowner fx.Shutdowner) {
	defer func() {
		if err := shutdowner.Shutdown(); err != nil {
			logger.Errorf("Failed to shut down after history listing: %v", err)
		}
	}()

	executions, err := repo.FindRecentTaskExecutions(ctx, limit)
	if err != nil {
		logger.Errorf("Failed to load run history: %v", err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tTRIGGER\tSTATUS\tEXIT\tSTARTED\tDURATION")
	for _, e := range executions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.TaskName, e.Trigger, e.Status, e.ExitStatus,
			e.StartTime.Format("2006-01-02 15:04:05"), e.Duration())
	}
	w.Flush()
}
