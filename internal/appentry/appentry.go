package appentry

import (
	"time"

	"go.uber.org/fx"

	"github.com/twlotto/backend/internal/appconfig"
	"github.com/twlotto/backend/internal/controller"
	"github.com/twlotto/backend/internal/model/cache"
	"github.com/twlotto/backend/internal/pkg/logger"
	"github.com/twlotto/backend/internal/repo"
	"github.com/twlotto/backend/internal/server/httpserver"
	"github.com/twlotto/backend/internal/server/svr"
	"github.com/twlotto/backend/internal/service"
	"github.com/twlotto/backend/internal/workers/refreshwkr"
)

func ProvideOptions() []fx.Option {
	opts := []fx.Option{
		// Misc
		fx.Provide(appconfig.Parse),
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(logger.Configure),
		fx.Invoke(cache.Initialize),
		fx.WithLogger(logger.Fx),

		// Controllers
		controller.Module(),

		// Workers
		fx.Invoke(refreshwkr.Start),

		// fx Extra Options
		fx.StartTimeout(1 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	return opts
}
