package middleware

import (
	"errors"

	"floorplan_manager/constants"
	"floorplan_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// SessionRequired yêu cầu header X-Session-Id trỏ tới một phiên đang mở.
// Handler phía sau lấy phiên qua c.Locals("sessionId").
func SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Session-Id")
		if id == "" {
			id = c.Params("sessionId")
		}
		if id == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.SESSION_NOT_FOUND, errors.New("missing session id"))
		}
		c.Locals("sessionId", id)
		return c.Next()
	}
}
