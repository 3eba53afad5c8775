package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/twlotto/backend/cmd/app/server"
	"github.com/twlotto/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "twlotto-backend",
		Description: "Taiwan Lottery draw statistics backend. Loads the published per-game draw history and serves derived statistics over HTTP. Built with Go, fiber and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
