package validate

import (
	"fmt"

	"floorplan_manager/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AddSectionInput struct {
	Name         string  `json:"name" validate:"required"`
	Color        string  `json:"color"`
	DefaultPrice float64 `json:"defaultPrice" validate:"gte=0"`
}

func AddSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input AddSectionInput
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

		c.Locals("addSectionInput", input)
		return c.Next()
	}
}

func UpdateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch session.SectionPatch
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Cannot parse request: %s", err.Error()),
			})
		}

		c.Locals("sectionPatch", patch)
		return c.Next()
	}
}

type DeleteSectionInput struct {
	ReassignTo *string `json:"reassignTo"`
}

func DeleteSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input DeleteSectionInput
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("Cannot parse request: %s", err.Error()),
				})
			}
		}

		c.Locals("deleteSectionInput", input)
		return c.Next()
	}
}

type ReorderSectionsInput struct {
	Order []string `json:"order" validate:"required,dive,required"`
}

func ReorderSections() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input ReorderSectionsInput
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

		c.Locals("reorderSectionsInput", input)
		return c.Next()
	}
}
