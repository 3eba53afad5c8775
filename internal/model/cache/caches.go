package cache

import (
	"sync"
	"time"

	"github.com/twlotto/backend/internal/model"
	"github.com/twlotto/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	LatestDraw       *cache.Set[*model.Draw]
	MonthlyFrequency *cache.Set[[]model.NumberFrequency]
	PeriodStats      *cache.Set[*model.PeriodStats]
	GameSummaries    *cache.Singular[[]model.GameSummary]

	LastModifiedTime *cache.Set[time.Time]

	once sync.Once

	flushers map[string]Flusher
)

func Initialize() {
	once.Do(initializeCaches)
}

func initializeCaches() {
	flushers = make(map[string]Flusher)

	// derived views, keyed by game (frequency additionally by month)
	LatestDraw = cache.NewSet[*model.Draw]("latestDraw#game")
	MonthlyFrequency = cache.NewSet[[]model.NumberFrequency]("monthlyFrequency#game|month")
	PeriodStats = cache.NewSet[*model.PeriodStats]("periodStats#game")
	GameSummaries = cache.NewSingular[[]model.GameSummary]("gameSummaries")

	LastModifiedTime = cache.NewSet[time.Time]("lastModifiedTime")

	flushers["latestDraw#game"] = LatestDraw.Flush
	flushers["monthlyFrequency#game|month"] = MonthlyFrequency.Flush
	flushers["periodStats#game"] = PeriodStats.Flush
	flushers["gameSummaries"] = GameSummaries.Flush
	flushers["lastModifiedTime"] = LastModifiedTime.Flush
}

// Flush drops every derived view cache. Called after a dataset refresh swaps
// in a new snapshot, so no view computed from the previous snapshot outlives it.
func Flush() error {
	for _, flush := range flushers {
		if err := flush(); err != nil {
			return err
		}
	}
	return nil
}
