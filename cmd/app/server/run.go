package server

import (
	"context"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/twlotto/backend/internal/appconfig"
	"github.com/twlotto/backend/internal/appentry"
)

func Bootstrap() error {
	opts := []fx.Option{}
	opts = append(opts, appentry.ProvideOptions()...)
	opts = append(opts, fx.Invoke(run))

	app := fx.New(opts...)

	if err := app.Start(context.Background()); err != nil {
		return err
	}

	<-app.Done()
	return nil
}

func run(app *fiber.App, conf *appconfig.Config, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", conf.ServiceAddress)
			if err != nil {
				return err
			}

			go func() {
				if err := app.Listener(ln); err != nil {
					log.Error().Err(err).Msg("server terminated unexpectedly")
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if conf.DevMode {
				return nil
			}
			return app.Shutdown()
		},
	})
}
