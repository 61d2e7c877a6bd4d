package app

import (
	"context"
	"time"

	"go.uber.org/fx"

	appconfig "github.com/tripwind/tripwind/internal/config"
	"github.com/tripwind/tripwind/internal/dataset"
	"github.com/tripwind/tripwind/internal/enrichment"
	"github.com/tripwind/tripwind/internal/export"
	"github.com/tripwind/tripwind/internal/generation"
	"github.com/tripwind/tripwind/internal/notify"
	"github.com/tripwind/tripwind/internal/store"
	"github.com/tripwind/tripwind/internal/task"
	"github.com/tripwind/tripwind/pkg/pipeline/adapter/storage"
	coreconfig "github.com/tripwind/tripwind/pkg/pipeline/core/config"
	"github.com/tripwind/tripwind/pkg/pipeline/core/ports"
	"github.com/tripwind/tripwind/pkg/pipeline/launcher"
	"github.com/tripwind/tripwind/pkg/pipeline/listener"
	"github.com/tripwind/tripwind/pkg/pipeline/scheduler"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

func newDatasetLoader(appCfg *appconfig.AppConfig) dataset.Loader {
	return dataset.NewFileLoader(appCfg.Datasets)
}

func newAirportIndex(appCfg *appconfig.AppConfig) (*enrichment.AirportIndex, error) {
	return enrichment.NewAirportIndex(appCfg.Enrichment.AirportReferencePath, appCfg.ReferenceLayout())
}

func newHomeAirportSource(appCfg *appconfig.AppConfig) enrichment.HomeAirportSource {
	if appCfg.Enrichment.HomeAirport != "" {
		return enrichment.StaticHomeAirportSource(appCfg.Enrichment.HomeAirport)
	}
	return enrichment.NewFileHomeAirportSource(appCfg.Enrichment.HomeAirportDoc)
}

func newGenerationClient(appCfg *appconfig.AppConfig) (generation.Client, error) {
	return generation.NewClient(context.Background(), appCfg.Generation)
}

func newNotificationChannel(appCfg *appconfig.AppConfig) notify.Channel {
	switch appCfg.Notification.Channel {
	case "email":
		return notify.NewSMTPChannel(appCfg.Notification.SMTP)
	default:
		if appCfg.Notification.Channel != "" && appCfg.Notification.Channel != "log" {
			logger.Warnf("Unknown notification channel '%s', falling back to the log channel", appCfg.Notification.Channel)
		}
		return notify.NewLogChannel()
	}
}

// newExporter returns nil when snapshot archival is disabled; the update
// task treats a nil exporter as "skip archival".
func newExporter(appCfg *appconfig.AppConfig, resolver storage.StorageConnectionResolver) (export.Exporter, error) {
	if !appCfg.Export.Enabled {
		return nil, nil
	}
	return export.NewParquetExporter(appCfg.Export, resolver)
}

func newUpdateTasklet(
	loader dataset.Loader,
	airports *enrichment.AirportIndex,
	home enrichment.HomeAirportSource,
	targets store.TargetStore,
	exporter export.Exporter,
	appCfg *appconfig.AppConfig,
) ports.Tasklet {
	return task.NewUpdateTasklet(loader, airports, home, targets, exporter, appCfg.Update)
}

func newNotificationTasklet(
	targets store.TargetStore,
	generator generation.Client,
	channel notify.Channel,
	appCfg *appconfig.AppConfig,
) ports.Tasklet {
	return task.NewNotificationTasklet(targets, appCfg.Policy, generator, channel, task.NotifyConfig{
		Recipient: appCfg.Notification.Recipient,
		Subject:   appCfg.Notification.Subject,
	})
}

func newFailureAlertNotifier(channel notify.Channel, appCfg *appconfig.AppConfig) ports.Notifier {
	return notify.NewFailureAlertNotifier(channel, appCfg.Notification.AlertRecipient)
}

func newCoordinator(l launcher.TaskLauncher, signaler *listener.CompletionSignaler) *task.Coordinator {
	return task.NewCoordinator(l, signaler)
}

func newScheduler(l launcher.TaskLauncher, cfg *coreconfig.Config) *scheduler.IntervalScheduler {
	interval := time.Duration(cfg.Tripwind.Pipeline.Scheduler.IntervalMinutes) * time.Minute
	return scheduler.NewIntervalScheduler(l, task.UpdateTaskName, interval, cfg.Tripwind.Pipeline.Scheduler.RunOnStart)
}

// Module assembles the vacation-domain providers on top of the pipeline
// core.
var Module = fx.Options(
	fx.Provide(
		appconfig.NewAppConfig,
		newDatasetLoader,
		newAirportIndex,
		newHomeAirportSource,
		newGenerationClient,
		newNotificationChannel,
		newExporter,
		newCoordinator,
		newScheduler,
	),
	fx.Provide(
		fx.Annotate(newUpdateTasklet, fx.ResultTags(`group:"`+ports.TaskletGroup+`"`)),
		fx.Annotate(newNotificationTasklet, fx.ResultTags(`group:"`+ports.TaskletGroup+`"`)),
		fx.Annotate(newFailureAlertNotifier, fx.ResultTags(`group:"`+ports.NotifierGroup+`"`)),
	),
)
