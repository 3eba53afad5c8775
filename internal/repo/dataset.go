package repo

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/ahmetb/go-linq/v3"
	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/twlotto/backend/internal/appconfig"
	"github.com/twlotto/backend/internal/model"
)

// ErrNotLoaded is returned by Current before the first successful Refresh.
var ErrNotLoaded = errors.New("dataset: no snapshot loaded yet")

const fetchAttempts = 3

// Dataset is the loader and holder of the draw history. It owns the only
// mutable reference in the system: an atomically swapped pointer to the
// current immutable snapshot. Readers take the pointer once per operation and
// never observe a snapshot under construction.
type Dataset struct {
	conf   *appconfig.Config
	client *http.Client

	current atomic.Pointer[model.Dataset]
}

func NewDataset(conf *appconfig.Config) *Dataset {
	return &Dataset{
		conf: conf,
		client: &http.Client{
			Timeout: conf.FetchTimeout,
		},
	}
}

// Current returns the latest loaded snapshot.
func (r *Dataset) Current() (*model.Dataset, error) {
	dataset := r.current.Load()
	if dataset == nil {
		return nil, ErrNotLoaded
	}
	return dataset, nil
}

// Refresh loads a complete new snapshot and swaps it in. On any error the
// previous snapshot stays current, matching the update pipeline's behavior of
// keeping existing data when an update fails.
func (r *Dataset) Refresh(ctx context.Context) error {
	raw, err := r.fetch(ctx, r.conf.DataURL, r.conf.DataFilePath)
	if err != nil {
		return errors.Wrap(err, "fetching draw history")
	}

	games, err := parseGames(raw)
	if err != nil {
		return errors.Wrap(err, "parsing draw history")
	}

	info, err := r.fetchUpdateInfo(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("update info sidecar unavailable; synthesizing from draw history")
		info = synthesizeUpdateInfo(games)
	}

	r.current.Store(&model.Dataset{
		Games:      games,
		UpdateInfo: info,
	})

	log.Info().
		Int("games", len(games)).
		Int("records", info.TotalRecords).
		Msg("dataset refreshed")

	return nil
}

func (r *Dataset) fetchUpdateInfo(ctx context.Context) (model.UpdateInfo, error) {
	raw, err := r.fetch(ctx, r.conf.UpdateInfoURL, r.conf.UpdateInfoPath)
	if err != nil {
		return model.UpdateInfo{}, err
	}

	var info model.UpdateInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return model.UpdateInfo{}, errors.Wrap(err, "parsing update info")
	}
	return info, nil
}

func (r *Dataset) fetch(ctx context.Context, url, path string) ([]byte, error) {
	if url != "" {
		return r.fetchRemote(ctx, url)
	}
	return os.ReadFile(path)
}

func (r *Dataset) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	return retry.DoWithData(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("unexpected status %s from %s", resp.Status, url)
		}

		return io.ReadAll(resp.Body)
	},
		retry.Context(ctx),
		retry.Attempts(fetchAttempts),
		retry.LastErrorOnly(true),
	)
}

// parseGames decodes the per-game draw lists, drops games without any record,
// and orders each surviving series newest-first. Draws whose date failed to
// parse are kept with a zero date: the aggregator is the one to report them,
// so a malformed record never silently disappears from the statistics.
func parseGames(raw []byte) (map[string]model.GameSeries, error) {
	var decoded map[string]model.GameSeries
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	games := lo.PickBy(decoded, func(name string, series model.GameSeries) bool {
		return len(series) > 0
	})

	for name, series := range games {
		sorted := make(model.GameSeries, 0, len(series))
		linq.From(series).
			SortT(func(a, b *model.Draw) bool {
				return a.Date.After(b.Date.Time)
			}).
			ToSlice(&sorted)
		games[name] = sorted
	}

	return games, nil
}

func synthesizeUpdateInfo(games map[string]model.GameSeries) model.UpdateInfo {
	names := lo.Keys(games)
	linq.From(names).Sort(func(a, b interface{}) bool {
		return a.(string) < b.(string)
	}).ToSlice(&names)

	return model.UpdateInfo{
		TotalGames: len(games),
		TotalRecords: lo.SumBy(lo.Values(games), func(series model.GameSeries) int {
			return len(series)
		}),
		GamesAvailable: names,
	}
}
