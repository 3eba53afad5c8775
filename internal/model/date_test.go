package model

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		expect Date
	}{
		{"valid", `"2024-03-10"`, NewDate(2024, time.March, 10)},
		{"unparseable string kept as zero", `"113/03/10"`, Date{}},
		{"empty string kept as zero", `""`, Date{}},
		{"non-string kept as zero", `5`, Date{}},
		{"null kept as zero", `null`, Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.json), &d))
			assert.True(t, tt.expect.Equal(d.Time), "expected %v, got %v", tt.expect, d)
		})
	}
}

func TestDateMarshal(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, time.March, 3))
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-03"`, string(b))

	b, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestDateSameMonth(t *testing.T) {
	ref := NewDate(2024, time.March, 15)
	assert.True(t, NewDate(2024, time.March, 1).SameMonth(ref))
	assert.False(t, NewDate(2024, time.April, 1).SameMonth(ref))
	// same month of a different year does not match
	assert.False(t, NewDate(2023, time.March, 15).SameMonth(ref))
}

func TestDateDaysSince(t *testing.T) {
	assert.Equal(t, 7, NewDate(2024, time.March, 10).DaysSince(NewDate(2024, time.March, 3)))
	assert.Equal(t, -7, NewDate(2024, time.March, 3).DaysSince(NewDate(2024, time.March, 10)))
	assert.Equal(t, 0, NewDate(2024, time.March, 3).DaysSince(NewDate(2024, time.March, 3)))
	// across a month boundary
	assert.Equal(t, 2, NewDate(2024, time.March, 1).DaysSince(NewDate(2024, time.February, 28)))
}
