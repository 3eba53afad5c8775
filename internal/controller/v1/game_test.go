package v1

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twlotto/backend/internal/appconfig"
	"github.com/twlotto/backend/internal/model/cache"
	"github.com/twlotto/backend/internal/pkg/lterr"
	"github.com/twlotto/backend/internal/repo"
	"github.com/twlotto/backend/internal/server/httpserver"
	"github.com/twlotto/backend/internal/server/svr"
	"github.com/twlotto/backend/internal/service"
)

const fixture = `{
  "大樂透": [
    {"date": "2024-03-03", "period": "113000019", "numbers": [2, 2, 4], "special": 33},
    {"date": "2024-03-10", "period": "113000021", "numbers": [1, 2, 3], "special": 17}
  ],
  "威力彩": [
    {"date": "2024-03-07", "period": "113000013", "numbers": [1, 9, 16]},
    {"date": "broken", "period": "113000012", "numbers": [7, 11, 18]}
  ],
  "3星彩": []
}`

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	cache.Initialize()
	require.NoError(t, cache.Flush())

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "lottery-data.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(fixture), 0o644))

	datasetRepo := repo.NewDataset(&appconfig.Config{
		DataFilePath:   dataPath,
		UpdateInfoPath: filepath.Join(dir, "update-info.json"),
		FetchTimeout:   5 * time.Second,
	})
	require.NoError(t, datasetRepo.Refresh(context.Background()))

	app := fiber.New(fiber.Config{
		ErrorHandler: httpserver.ErrorHandler,
	})
	v1, _ := svr.CreateEndpointGroups(app)

	datasetService := service.NewDatasetService(datasetRepo, service.NewAggregator())
	RegisterGame(v1, Game{DatasetService: datasetService})
	RegisterAbout(v1, About{DatasetService: datasetService})

	return app
}

func request(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return resp.StatusCode, body
}

func TestGetGames(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/games", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var games []map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &games))

	// the empty game is filtered out by the loader
	require.Len(t, games, 2)
	assert.Equal(t, "大樂透", games[0]["name"])
	assert.EqualValues(t, 2, games[0]["records"])
}

func TestGetLatestDraw(t *testing.T) {
	app := testApp(t)

	status, body := request(t, app, "/api/v1/games/大樂透/latest")
	require.Equal(t, http.StatusOK, status)

	draw, ok := body["draw"].(map[string]any)
	require.True(t, ok, "expected a draw object, got %v", body["draw"])
	assert.Equal(t, "2024-03-10", draw["date"])
	assert.Equal(t, "113000021", draw["period"])
}

func TestGetLatestDrawUnknownGame(t *testing.T) {
	app := testApp(t)

	status, body := request(t, app, "/api/v1/games/大福彩/latest")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, lterr.CodeNotFound, body["code"])
}

func TestGetMonthlyFrequency(t *testing.T) {
	app := testApp(t)

	status, body := request(t, app, "/api/v1/games/大樂透/frequency/monthly?month=2024-03")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2024-03", body["month"])

	frequency, ok := body["frequency"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, frequency)

	top := frequency[0].(map[string]any)
	assert.EqualValues(t, 2, top["number"])
	assert.EqualValues(t, 2, top["count"])
}

func TestGetMonthlyFrequencyBadMonth(t *testing.T) {
	app := testApp(t)

	status, body := request(t, app, "/api/v1/games/大樂透/frequency/monthly?month=March")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, lterr.CodeInvalidRequest, body["code"])
}

func TestGetPeriodStats(t *testing.T) {
	app := testApp(t)

	status, body := request(t, app, "/api/v1/games/大樂透/stats")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["count"])
	assert.Equal(t, "2024-03-03", body["rangeStart"])
	assert.Equal(t, "2024-03-10", body["rangeEnd"])
	assert.EqualValues(t, 7, body["averageIntervalDays"])
}

func TestGetPeriodStatsIntegrityError(t *testing.T) {
	app := testApp(t)

	// 威力彩 carries a draw whose date never parsed
	status, body := request(t, app, "/api/v1/games/威力彩/stats")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, lterr.CodeDataIntegrity, body["code"])
}

func TestGetRecentHistory(t *testing.T) {
	app := testApp(t)

	status, body := request(t, app, "/api/v1/games/大樂透/history?limit=1")
	require.Equal(t, http.StatusOK, status)

	draws, ok := body["draws"].([]any)
	require.True(t, ok)
	require.Len(t, draws, 1)
	assert.Equal(t, "2024-03-10", draws[0].(map[string]any)["date"])
}

func TestGetRecentHistoryRejectsBadLimits(t *testing.T) {
	app := testApp(t)

	for _, limit := range []string{"0", "-5", "five"} {
		status, body := request(t, app, "/api/v1/games/大樂透/history?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, status, "limit=%s", limit)
		assert.Equal(t, lterr.CodeInvalidRequest, body["code"], "limit=%s", limit)
	}
}

func TestGetAbout(t *testing.T) {
	app := testApp(t)

	// no sidecar on disk, so the loader synthesizes the metadata
	status, body := request(t, app, "/api/v1/about")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["total_games"])
	assert.EqualValues(t, 4, body["total_records"])
}
