package repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twlotto/backend/internal/appconfig"
	"github.com/twlotto/backend/internal/model"
)

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	return NewDataset(&appconfig.Config{
		DataFilePath:   "testdata/lottery-data.json",
		UpdateInfoPath: "testdata/update-info.json",
		FetchTimeout:   5 * time.Second,
	})
}

func TestCurrentBeforeRefresh(t *testing.T) {
	r := testDataset(t)

	_, err := r.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestRefreshFromFile(t *testing.T) {
	r := testDataset(t)
	require.NoError(t, r.Refresh(context.Background()))

	dataset, err := r.Current()
	require.NoError(t, err)

	// the empty 3星彩 entry is not a valid game
	assert.Len(t, dataset.Games, 3)
	_, ok := dataset.Series("3星彩")
	assert.False(t, ok)

	// series are reordered newest-first regardless of file order
	lotto, ok := dataset.Series("大樂透")
	require.True(t, ok)
	require.Len(t, lotto, 3)
	assert.Equal(t, model.NewDate(2024, time.March, 10), lotto[0].Date)
	assert.Equal(t, model.NewDate(2024, time.March, 3), lotto[1].Date)
	assert.Equal(t, model.NewDate(2024, time.February, 27), lotto[2].Date)
	assert.Equal(t, "113000021", lotto[0].DrawNo.String)
	assert.EqualValues(t, 17, lotto[0].Special.Int64)

	// a malformed date is kept, not dropped, and sorts to the end
	super, ok := dataset.Series("威力彩")
	require.True(t, ok)
	require.Len(t, super, 2)
	assert.False(t, super[0].Date.IsZero())
	assert.True(t, super[1].Date.IsZero())

	// the sidecar passes through untouched
	assert.Equal(t, "2.0", dataset.UpdateInfo.DataVersion)
	assert.Equal(t, "2024-03-10T21:05:00+08:00", dataset.UpdateInfo.LastUpdated)
}

func TestRefreshSynthesizesUpdateInfo(t *testing.T) {
	r := NewDataset(&appconfig.Config{
		DataFilePath:   "testdata/lottery-data.json",
		UpdateInfoPath: "testdata/does-not-exist.json",
		FetchTimeout:   5 * time.Second,
	})
	require.NoError(t, r.Refresh(context.Background()))

	dataset, err := r.Current()
	require.NoError(t, err)

	info := dataset.UpdateInfo
	assert.Equal(t, 3, info.TotalGames)
	assert.Equal(t, 6, info.TotalRecords)
	assert.Equal(t, []string{"今彩539", "大樂透", "威力彩"}, info.GamesAvailable)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	r := testDataset(t)
	require.NoError(t, r.Refresh(context.Background()))

	before, err := r.Current()
	require.NoError(t, err)

	r.conf.DataFilePath = "testdata/does-not-exist.json"
	err = r.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	after, err := r.Current()
	require.NoError(t, err)
	assert.Same(t, before, after)
}
