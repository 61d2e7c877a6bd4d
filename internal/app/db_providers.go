package app

import (
	"os"
	"strings"

	"go.uber.org/fx"

	mysqlprovider "github.com/tripwind/tripwind/pkg/pipeline/adapter/database/mysql"
	postgresprovider "github.com/tripwind/tripwind/pkg/pipeline/adapter/database/postgres"
	sqliteprovider "github.com/tripwind/tripwind/pkg/pipeline/adapter/database/sqlite"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// dbProviderModules maps adapter names to their Fx modules.
var dbProviderModules = map[string]fx.Option{
	"postgres": postgresprovider.Module,
	"mysql":    mysqlprovider.Module,
	"sqlite":   sqliteprovider.Module,
}

// DBProviderOptions selects the database providers to register from the
// DB_ADAPTERS environment variable, defaulting to all supported ones.
func DBProviderOptions() []fx.Option {
	adapters := os.Getenv("DB_ADAPTERS")
	if adapters == "" {
		adapters = "postgres,mysql,sqlite"
	}

	options := make([]fx.Option, 0)
	for _, name := range strings.Split(adapters, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if module, ok := dbProviderModules[name]; ok {
			options = append(options, module)
			logger.Debugf("Database provider '%s' registered", name)
		} else {
			logger.Warnf("Database provider '%s' is not supported, skipping", name)
		}
	}
	return options
}
