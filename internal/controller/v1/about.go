package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/twlotto/backend/internal/server/svr"
	"github.com/twlotto/backend/internal/service"
)

type About struct {
	fx.In

	DatasetService *service.DatasetService
}

func RegisterAbout(v1 *svr.V1, c About) {
	v1.Get("/about", c.GetAbout)
}

// GetAbout exposes the update pipeline's sidecar metadata as-is.
func (c *About) GetAbout(ctx *fiber.Ctx) error {
	info, err := c.DatasetService.GetUpdateInfo(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(info)
}
