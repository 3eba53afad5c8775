package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/twlotto/backend/internal/constant"
	"github.com/twlotto/backend/internal/pkg/flog"
)

// RequestID repopulates the request id injected by the logger middleware into
// ctx.Locals so non-logging consumers can reach it.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.IDFromFiberCtx(c)
		if ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
