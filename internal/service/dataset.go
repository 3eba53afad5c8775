package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/twlotto/backend/internal/model"
	"github.com/twlotto/backend/internal/model/cache"
	"github.com/twlotto/backend/internal/pkg/lterr"
	"github.com/twlotto/backend/internal/repo"
)

const derivedViewExpiry = time.Minute * 10

// DatasetService mediates between the snapshot repo and the aggregator,
// memoizing derived views per snapshot. The aggregator is pure, so a cached
// view stays valid until the refresh worker swaps the snapshot and flushes.
type DatasetService struct {
	DatasetRepo *repo.Dataset
	Aggregator  *Aggregator
}

func NewDatasetService(datasetRepo *repo.Dataset, aggregator *Aggregator) *DatasetService {
	return &DatasetService{
		DatasetRepo: datasetRepo,
		Aggregator:  aggregator,
	}
}

func (s *DatasetService) current() (*model.Dataset, error) {
	dataset, err := s.DatasetRepo.Current()
	if err != nil {
		if errors.Is(err, repo.ErrNotLoaded) {
			return nil, lterr.ErrNotReady
		}
		return nil, err
	}
	return dataset, nil
}

// SeriesOf resolves a game's draw series from the current snapshot.
func (s *DatasetService) SeriesOf(ctx context.Context, game string) (model.GameSeries, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}

	series, ok := dataset.Series(game)
	if !ok {
		return nil, lterr.ErrNotFound.Msg("game %s does not exist in the current draw history", game)
	}
	return series, nil
}

// Cache: gameSummaries, 10min
func (s *DatasetService) GetGames(ctx context.Context) ([]model.GameSummary, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}

	valueFunc := func() ([]model.GameSummary, error) {
		return lo.Map(dataset.GameNames(), func(name string, _ int) model.GameSummary {
			return model.GameSummary{
				Name:    name,
				Records: len(dataset.Games[name]),
			}
		}), nil
	}

	var summaries []model.GameSummary
	calculated, err := cache.GameSummaries.MutexGetSet(&summaries, valueFunc, derivedViewExpiry)
	if err != nil {
		return nil, err
	} else if calculated {
		cache.LastModifiedTime.Set("[gameSummaries]", time.Now(), 0)
	}
	return summaries, nil
}

// GetUpdateInfo passes the sidecar metadata through untouched.
func (s *DatasetService) GetUpdateInfo(ctx context.Context) (*model.UpdateInfo, error) {
	dataset, err := s.current()
	if err != nil {
		return nil, err
	}
	return &dataset.UpdateInfo, nil
}

// Cache: latestDraw#game:{game}, 10min
func (s *DatasetService) GetLatestDraw(ctx context.Context, game string) (*model.Draw, error) {
	series, err := s.SeriesOf(ctx, game)
	if err != nil {
		return nil, err
	}

	valueFunc := func() (*model.Draw, error) {
		return s.Aggregator.LatestDraw(series)
	}

	var draw *model.Draw
	calculated, err := cache.LatestDraw.MutexGetSet(game, &draw, valueFunc, derivedViewExpiry)
	if err != nil {
		return nil, err
	} else if calculated {
		cache.LastModifiedTime.Set("[latestDraw#game:"+game+"]", time.Now(), 0)
	}
	return draw, nil
}

// Cache: monthlyFrequency#game|month:{game}|{month}, 10min
func (s *DatasetService) GetMonthlyFrequency(ctx context.Context, game string, reference model.Date) ([]model.NumberFrequency, error) {
	series, err := s.SeriesOf(ctx, game)
	if err != nil {
		return nil, err
	}

	valueFunc := func() ([]model.NumberFrequency, error) {
		return s.Aggregator.MonthlyFrequency(series, reference)
	}

	key := game + "|" + reference.Format("2006-01")

	var frequencies []model.NumberFrequency
	calculated, err := cache.MonthlyFrequency.MutexGetSet(key, &frequencies, valueFunc, derivedViewExpiry)
	if err != nil {
		return nil, err
	} else if calculated {
		cache.LastModifiedTime.Set("[monthlyFrequency#game|month:"+key+"]", time.Now(), 0)
	}
	return frequencies, nil
}

// Cache: periodStats#game:{game}, 10min
func (s *DatasetService) GetPeriodStats(ctx context.Context, game string) (*model.PeriodStats, error) {
	series, err := s.SeriesOf(ctx, game)
	if err != nil {
		return nil, err
	}

	valueFunc := func() (*model.PeriodStats, error) {
		return s.Aggregator.PeriodStats(series)
	}

	var stats *model.PeriodStats
	calculated, err := cache.PeriodStats.MutexGetSet(game, &stats, valueFunc, derivedViewExpiry)
	if err != nil {
		return nil, err
	} else if calculated {
		cache.LastModifiedTime.Set("[periodStats#game:"+game+"]", time.Now(), 0)
	}
	return stats, nil
}

// GetRecentHistory is a plain prefix slice of the series; cheap enough that
// caching it would only buy extra invalidation work.
func (s *DatasetService) GetRecentHistory(ctx context.Context, game string, limit int) ([]*model.Draw, error) {
	series, err := s.SeriesOf(ctx, game)
	if err != nil {
		return nil, err
	}
	return s.Aggregator.RecentHistory(series, limit)
}
