package model

import (
	"sort"

	"gopkg.in/guregu/null.v3"
)

// Draw is one published drawing of a lottery game. Immutable once loaded.
type Draw struct {
	// Date is the drawing date. Required: every derived view depends on it.
	Date Date `json:"date"`

	// DrawNo is the official draw number (期別). Opaque, display-only.
	DrawNo null.String `json:"period"`

	// Numbers are the drawn values in published order, not necessarily sorted.
	Numbers []int `json:"numbers"`

	// Special is the special number (特別號) for games that have one.
	Special null.Int `json:"special"`
}

// GameSeries is the recorded history of one game, ordered newest-first:
// index 0 is the most recent draw. The loader establishes the ordering and
// consumers rely on it without re-verifying.
type GameSeries []*Draw

// GameSummary names a game and its record count for listing endpoints.
type GameSummary struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// UpdateInfo is the sidecar metadata written by the update pipeline alongside
// the draw history. It is passed through to clients untouched; nothing in it
// feeds the statistics.
type UpdateInfo struct {
	LastUpdated    string   `json:"last_updated"`
	DataVersion    string   `json:"data_version"`
	TotalGames     int      `json:"total_games"`
	TotalRecords   int      `json:"total_records"`
	GamesAvailable []string `json:"games_available"`
}

// Dataset is one immutable load of every game's history plus its update
// metadata. A refresh builds a complete new Dataset and swaps it wholesale;
// nothing mutates a Dataset in place, so any reference read once stays
// consistent for the whole operation.
type Dataset struct {
	Games      map[string]GameSeries
	UpdateInfo UpdateInfo
}

func (d *Dataset) Series(game string) (GameSeries, bool) {
	series, ok := d.Games[game]
	return series, ok
}

func (d *Dataset) GameNames() []string {
	names := make([]string, 0, len(d.Games))
	for name := range d.Games {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
