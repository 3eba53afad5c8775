package model

import (
	"gopkg.in/guregu/null.v3"
)

// NumberFrequency is one entry of a frequency table: how many times Number
// occurred across the numbers of a draw subset. Derived and ephemeral, never
// persisted.
type NumberFrequency struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// PeriodStats are aggregate statistics over one game's whole recorded period.
//
// AverageIntervalDays is invalid when fewer than two draws exist: "zero days
// between draws" and "not enough data to tell" must stay distinguishable, so
// the field is never defaulted to a number.
type PeriodStats struct {
	Count               int      `json:"count"`
	RangeStart          *Date    `json:"rangeStart"`
	RangeEnd            *Date    `json:"rangeEnd"`
	AverageIntervalDays null.Int `json:"averageIntervalDays"`
}
