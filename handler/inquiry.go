package handler

import (
	"errors"

	"floorplan_manager/config"
	"floorplan_manager/constants"
	"floorplan_manager/helper"
	"floorplan_manager/model"
	"floorplan_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SendInquiry gửi mail liên hệ về venue khi không đặt online được
func SendInquiry(c *fiber.Ctx) error {
	input := c.Locals("inquiryInput").(model.InquiryInput)

	plan, err := findPlan(input.PlanId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PLAN_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	to := config.Config("INQUIRY_TO")
	if to == "" {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Inquiry mailbox is not configured", nil)
	}

	data := utils.InquiryData{
		PlanTitle:    plan.Title,
		LocationName: helper.ResolveLocationName(plan.LocationId),
		Name:         input.Name,
		Email:        input.Email,
		Message:      input.Message,
	}
	if input.ElementId != "" {
		if doc, derr := helper.LoadPlanDocument(plan); derr == nil {
			if el := doc.ElementByID(input.ElementId); el != nil {
				data.ElementLabel = el.Label
				if data.ElementLabel == "" {
					data.ElementLabel = el.Number
				}
			}
		}
	}

	utils.SendInquiryEmail(to, data)
	return utils.SuccessResponse(c, fiber.StatusAccepted, fiber.Map{"queued": true})
}
