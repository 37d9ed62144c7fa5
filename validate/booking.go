package validate

import (
	"fmt"

	"floorplan_manager/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func Booking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.BookingInput
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

		c.Locals("bookingInput", input)
		return c.Next()
	}
}

func Inquiry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.InquiryInput
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

		c.Locals("inquiryInput", input)
		return c.Next()
	}
}
