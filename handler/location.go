package handler

import (
	"errors"

	"floorplan_manager/constants"
	"floorplan_manager/database"
	"floorplan_manager/model"
	"floorplan_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetLocations(c *fiber.Ctx) error {
	var locations []model.Location
	if err := database.DB.Order("name ASC").Find(&locations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, locations)
}

func GetLocationById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var location model.Location
	if err := database.DB.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.LOCATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, location)
}
