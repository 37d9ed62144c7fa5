package validate

import (
	"fmt"

	"floorplan_manager/model"
	"floorplan_manager/session"

	"github.com/gofiber/fiber/v2"
)

type AddElementInput struct {
	Type model.ElementType `json:"type" validate:"required"`
	X    float64           `json:"x"`
	Y    float64           `json:"y"`
}

var elementTypes = map[model.ElementType]bool{
	model.TypeTable:         true,
	model.TypeSectionMarker: true,
	model.TypeStage:         true,
	model.TypeBar:           true,
	model.TypeEntrance:      true,
	model.TypeLounge:        true,
	model.TypeDancefloor:    true,
	model.TypeAmenity:       true,
	model.TypeCustom:        true,
}

func AddElement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input AddElementInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Cannot parse request: %s", err.Error()),
			})
		}
		if !elementTypes[input.Type] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unknown element type %q", input.Type),
			})
		}

		c.Locals("addElementInput", input)
		return c.Next()
	}
}

// UpdateElement chỉ parse patch, các bất biến (size, capacity, section tồn tại)
// do edit session kiểm tra tại ranh giới thao tác
func UpdateElement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch session.ElementPatch
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Cannot parse request: %s", err.Error()),
			})
		}

		c.Locals("elementPatch", patch)
		return c.Next()
	}
}

type SelectInput struct {
	IDs  []string           `json:"ids"`
	Mode session.SelectMode `json:"mode"`
}

func Select() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input SelectInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Cannot parse request: %s", err.Error()),
			})
		}
		if input.Mode == "" {
			input.Mode = session.SelectReplace
		}
		switch input.Mode {
		case session.SelectReplace, session.SelectAdd, session.SelectToggle:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unknown select mode %q", input.Mode),
			})
		}

		c.Locals("selectInput", input)
		return c.Next()
	}
}

type GestureBeginInput struct {
	Kind      session.GestureKind `json:"kind" validate:"required"`
	ElementId string              `json:"elementId" validate:"required"`
}

func BeginGesture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input GestureBeginInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Cannot parse request: %s", err.Error()),
			})
		}
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("gestureBeginInput", input)
		return c.Next()
	}
}
