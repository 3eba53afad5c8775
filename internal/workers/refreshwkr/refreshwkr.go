package refreshwkr

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/twlotto/backend/internal/appconfig"
	"github.com/twlotto/backend/internal/model/cache"
	"github.com/twlotto/backend/internal/repo"
)

type WorkerDeps struct {
	fx.In

	DatasetRepo *repo.Dataset
}

type Worker struct {
	// count counts refresh batches the worker has completed so far
	count int

	// interval describes the interval in-between refresh batches
	interval time.Duration

	// timeout bounds a single refresh, fetch retries included
	timeout time.Duration

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	(&Worker{
		interval:   conf.RefreshInterval,
		timeout:    conf.FetchTimeout,
		WorkerDeps: deps,
	}).do()
}

// do runs the first refresh immediately (the initial dataset load), then
// keeps refreshing on the configured interval. A failed refresh leaves the
// previous snapshot serving; only a successful swap flushes the derived
// view caches.
func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			log.Info().
				Int("count", w.count).
				Msg("refresh worker batch started")

			refreshCtx, refreshCancel := context.WithTimeout(ctx, w.timeout)
			err := w.DatasetRepo.Refresh(refreshCtx)
			refreshCancel()

			if err != nil {
				log.Error().Err(err).Msg("refresh worker failed; keeping previous snapshot")
			} else {
				if err := cache.Flush(); err != nil {
					log.Error().Err(err).Msg("refresh worker failed to flush derived view caches")
				}
				log.Info().Int("count", w.count).Msg("refresh worker batch finished")
			}

			w.count++

			select {
			case <-ctx.Done():
				return
			case <-time.After(w.interval):
			}
		}
	}()

	return cancel
}

func (w *Worker) Count() int {
	return w.count
}
