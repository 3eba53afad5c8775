package v1

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/twlotto/backend/internal/constant"
	"github.com/twlotto/backend/internal/model"
	"github.com/twlotto/backend/internal/model/cache"
	"github.com/twlotto/backend/internal/pkg/cachectrl"
	"github.com/twlotto/backend/internal/pkg/lterr"
	"github.com/twlotto/backend/internal/server/svr"
	"github.com/twlotto/backend/internal/service"
	"github.com/twlotto/backend/internal/util/rekuest"
)

const monthLayout = "2006-01"

type Game struct {
	fx.In

	DatasetService *service.DatasetService
}

func RegisterGame(v1 *svr.V1, c Game) {
	v1.Get("/games", c.GetGames)

	game := v1.Group("/games/:gameName")
	game.Get("/latest", c.GetLatestDraw)
	game.Get("/frequency/monthly", c.GetMonthlyFrequency)
	game.Get("/stats", c.GetPeriodStats)
	game.Get("/history", c.GetRecentHistory)
}

func (c *Game) GetGames(ctx *fiber.Ctx) error {
	games, err := c.DatasetService.GetGames(ctx.UserContext())
	if err != nil {
		return err
	}

	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get("[gameSummaries]", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptIn(ctx, lastModifiedTime)

	return ctx.JSON(games)
}

func (c *Game) GetLatestDraw(ctx *fiber.Ctx) error {
	gameName := ctx.Params("gameName")
	if err := rekuest.ValidGameName(ctx, gameName); err != nil {
		return err
	}

	draw, err := c.DatasetService.GetLatestDraw(ctx.UserContext(), gameName)
	if err != nil {
		return err
	}

	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get("[latestDraw#game:"+gameName+"]", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptIn(ctx, lastModifiedTime)

	// draw stays null for a game without records yet: a normal state,
	// not an error, and the presenter decides how to render it
	return ctx.JSON(fiber.Map{
		"game": gameName,
		"draw": draw,
	})
}

func (c *Game) GetMonthlyFrequency(ctx *fiber.Ctx) error {
	gameName := ctx.Params("gameName")
	if err := rekuest.ValidGameName(ctx, gameName); err != nil {
		return err
	}

	reference := model.DateFromTime(time.Now())
	if month := ctx.Query("month"); month != "" {
		t, err := time.ParseInLocation(monthLayout, month, time.UTC)
		if err != nil {
			return lterr.ErrInvalidReq.Msg("invalid month %s: expecting YYYY-MM", month)
		}
		reference = model.DateFromTime(t)
	}

	frequencies, err := c.DatasetService.GetMonthlyFrequency(ctx.UserContext(), gameName, reference)
	if err != nil {
		return err
	}

	key := gameName + "|" + reference.Format(monthLayout)
	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get("[monthlyFrequency#game|month:"+key+"]", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptIn(ctx, lastModifiedTime)

	return ctx.JSON(fiber.Map{
		"game":      gameName,
		"month":     reference.Format(monthLayout),
		"frequency": frequencies,
	})
}

func (c *Game) GetPeriodStats(ctx *fiber.Ctx) error {
	gameName := ctx.Params("gameName")
	if err := rekuest.ValidGameName(ctx, gameName); err != nil {
		return err
	}

	stats, err := c.DatasetService.GetPeriodStats(ctx.UserContext(), gameName)
	if err != nil {
		return err
	}

	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get("[periodStats#game:"+gameName+"]", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptIn(ctx, lastModifiedTime)

	return ctx.JSON(stats)
}

func (c *Game) GetRecentHistory(ctx *fiber.Ctx) error {
	gameName := ctx.Params("gameName")
	if err := rekuest.ValidGameName(ctx, gameName); err != nil {
		return err
	}

	limit := constant.DefaultHistoryLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return lterr.ErrInvalidReq.Msg("invalid history limit %s: expecting a positive integer", raw)
		}
		// non-positive values flow through so the aggregator rejects
		// them; clamping here would mask the caller's bug
		limit = parsed
	}

	draws, err := c.DatasetService.GetRecentHistory(ctx.UserContext(), gameName, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"game":  gameName,
		"draws": draws,
	})
}
