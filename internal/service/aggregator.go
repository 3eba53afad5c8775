package service

import (
	"math"
	"sort"

	"gopkg.in/guregu/null.v3"

	"github.com/twlotto/backend/internal/constant"
	"github.com/twlotto/backend/internal/model"
	"github.com/twlotto/backend/internal/pkg/lterr"
)

// Aggregator derives statistics views from a game's draw series. It is
// stateless and side-effect-free: every method is a pure function of its
// arguments, never mutates the series, and is safe to call concurrently.
//
// Series are expected newest-first as established by the loader; ordering is
// not re-verified here. An empty series is a normal state and yields empty
// results, never an error. A draw without a parseable date fails the invoked
// computation with a data integrity error instead, since the date is
// load-bearing for every view and skipping the draw would skew the results.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// LatestDraw returns the most recent draw of the series, or nil for an empty
// series.
func (s *Aggregator) LatestDraw(series model.GameSeries) (*model.Draw, error) {
	if len(series) == 0 {
		return nil, nil
	}

	draw := series[0]
	if draw.Date.IsZero() {
		return nil, integrityErr(draw, 0)
	}
	return draw, nil
}

// MonthlyFrequency counts in how many draws each number appeared within the
// calendar month and year of reference, and returns the top entries sorted by
// count descending. A number repeated inside one draw's sequence counts once
// for that draw, matching the update pipeline which de-duplicates numbers per
// record. Ties are broken by the order numbers were first encountered while
// walking the filtered draws, which keeps the result deterministic. The result
// is truncated to constant.TopMonthlyNumbers entries; a month without draws
// yields an empty slice.
func (s *Aggregator) MonthlyFrequency(series model.GameSeries, reference model.Date) ([]model.NumberFrequency, error) {
	counts := make(map[int]int)
	firstSeen := make(map[int]int)

	for i, draw := range series {
		if draw.Date.IsZero() {
			return nil, integrityErr(draw, i)
		}
		if !draw.Date.SameMonth(reference) {
			continue
		}
		if draw.Numbers == nil {
			return nil, lterr.ErrDataIntegrity.Msg("draw %s (index %d) has no numbers sequence", drawRef(draw), i)
		}

		seen := make(map[int]struct{}, len(draw.Numbers))
		for _, number := range draw.Numbers {
			if _, dup := seen[number]; dup {
				continue
			}
			seen[number] = struct{}{}

			if _, ok := counts[number]; !ok {
				firstSeen[number] = len(firstSeen)
			}
			counts[number]++
		}
	}

	frequencies := make([]model.NumberFrequency, 0, len(counts))
	for number, count := range counts {
		frequencies = append(frequencies, model.NumberFrequency{Number: number, Count: count})
	}

	sort.SliceStable(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return firstSeen[frequencies[i].Number] < firstSeen[frequencies[j].Number]
	})

	if len(frequencies) > constant.TopMonthlyNumbers {
		frequencies = frequencies[:constant.TopMonthlyNumbers]
	}

	return frequencies, nil
}

// PeriodStats aggregates the whole recorded period of a series: record count,
// date range, and the mean interval between consecutive draws in whole days,
// rounded half away from zero. The mean interval requires at least two draws
// and stays invalid otherwise.
func (s *Aggregator) PeriodStats(series model.GameSeries) (*model.PeriodStats, error) {
	stats := &model.PeriodStats{Count: len(series)}
	if len(series) == 0 {
		return stats, nil
	}

	for i, draw := range series {
		if draw.Date.IsZero() {
			return nil, integrityErr(draw, i)
		}
	}

	newest := series[0].Date
	oldest := series[len(series)-1].Date
	stats.RangeEnd = &newest
	stats.RangeStart = &oldest

	if len(series) < 2 {
		return stats, nil
	}

	totalDays := 0
	for i := 0; i < len(series)-1; i++ {
		totalDays += series[i].Date.DaysSince(series[i+1].Date)
	}
	mean := float64(totalDays) / float64(len(series)-1)
	stats.AverageIntervalDays = null.IntFrom(int64(math.Round(mean)))

	return stats, nil
}

// RecentHistory returns the first limit draws of the series, i.e. the most
// recent ones. A non-positive limit is a caller bug and is rejected rather
// than clamped to a default that would mask it.
func (s *Aggregator) RecentHistory(series model.GameSeries, limit int) ([]*model.Draw, error) {
	if limit <= 0 {
		return nil, lterr.ErrInvalidReq.Msg("history limit must be a positive integer, got %d", limit)
	}

	if limit > len(series) {
		limit = len(series)
	}
	for i, draw := range series[:limit] {
		if draw.Date.IsZero() {
			return nil, integrityErr(draw, i)
		}
	}

	return series[:limit:limit], nil
}

func integrityErr(draw *model.Draw, index int) *lterr.LottoError {
	return lterr.ErrDataIntegrity.Msg("draw %s (index %d) has no parseable date", drawRef(draw), index)
}

func drawRef(draw *model.Draw) string {
	if draw.DrawNo.Valid {
		return draw.DrawNo.String
	}
	return "<unnumbered>"
}
