package validate

import (
	"fmt"

	"floorplan_manager/constants"
	"floorplan_manager/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func CreateFloorPlan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateFloorPlanInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Cannot parse request: %s", err.Error()),
			})
		}

		validate := validator.New()
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if input.CanvasWidth != nil && *input.CanvasWidth > constants.MAX_CANVAS_SIZE {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("canvasWidth exceeds maximum of %.0f", constants.MAX_CANVAS_SIZE),
			})
		}
		if input.CanvasHeight != nil && *input.CanvasHeight > constants.MAX_CANVAS_SIZE {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("canvasHeight exceeds maximum of %.0f", constants.MAX_CANVAS_SIZE),
			})
		}

		c.Locals("createPlanInput", input)
		return c.Next()
	}
}

func EditFloorPlan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditFloorPlanInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Cannot parse request: %s", err.Error()),
			})
		}

		if input.Title != nil && *input.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "title must not be empty",
			})
		}

		c.Locals("editPlanInput", input)
		return c.Next()
	}
}
