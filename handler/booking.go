package handler

import (
	"errors"
	"strconv"

	"floorplan_manager/config"
	"floorplan_manager/constants"
	"floorplan_manager/helper"
	"floorplan_manager/model"
	"floorplan_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookElement kiểm tra availability rồi chuyển giao cho hệ thống đặt chỗ.
// Core không xử lý thanh toán hay lưu đơn, chỉ đóng gói yêu cầu.
func BookElement(c *fiber.Ctx) error {
	input := c.Locals("bookingInput").(model.BookingInput)

	plan, err := findPlan(c.Params("planId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PLAN_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	doc, err := helper.LoadPlanDocument(plan)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Floor plan document is corrupted", err)
	}

	el := doc.ElementByID(input.ElementId)
	if el == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ELEMENT_NOT_FOUND, nil)
	}
	if !el.Bookable {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.BOOKING_NOT_BOOKABLE, nil)
	}

	snapshot, err := helper.FetchSnapshot(c.Context(), plan.PlanId, doc)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Inventory fetch failed and no cached snapshot exists", err)
	}
	statuses := helper.ResolveAvailability(doc, snapshot)
	st := statuses.Elements[el.ID]

	if st.Status == model.StatusSoldOut {
		return c.Status(fiber.StatusConflict).JSON(model.BookingResult{
			Rejected: true,
			Reason:   constants.BOOKING_SOLD_OUT,
			Element:  &st,
		})
	}

	// seat selector bị chặn bởi min(remaining, capacity)
	max := st.Remaining
	if el.Capacity < max {
		max = el.Capacity
	}
	if input.SeatCount > max {
		return c.Status(fiber.StatusConflict).JSON(model.BookingResult{
			Rejected: true,
			Reason:   constants.BOOKING_NOT_ENOUGH,
			Element:  &st,
		})
	}

	// Không có collaborator: degrade về thông báo liên hệ, không phải lỗi
	if !helper.ReservationConfigured() {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"fallback":     true,
			"message":      constants.BOOKING_NO_PROVIDER,
			"contactEmail": config.Config("INQUIRY_TO"),
		})
	}

	request := model.BookingRequest{
		ElementId:      el.ID,
		SectionId:      el.SectionId,
		SeatCount:      input.SeatCount,
		RequestedPrice: helper.EffectivePrice(doc, el),
	}
	redirectUrl, rejection, err := helper.SubmitBooking(c.Context(), request)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Reservation hand-off failed", err)
	}

	if rejection != "" {
		// booking race: resolve lại phần tử để frontend cập nhật màu,
		// không lặng lẽ retry
		refreshed, ferr := helper.FetchSnapshot(c.Context(), plan.PlanId, doc)
		if ferr == nil {
			statuses = helper.ResolveAvailability(doc, refreshed)
			st = statuses.Elements[el.ID]
		}
		return c.Status(fiber.StatusConflict).JSON(model.BookingResult{
			Rejected: true,
			Reason:   rejection,
			Element:  &st,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.BookingResult{RedirectUrl: redirectUrl})
}

// BookingQR trả về QR PNG của URL tiếp tục flow đặt chỗ
func BookingQR(c *fiber.Ctx) error {
	data := c.Query("data")
	if data == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, errors.New("missing data query param"))
	}
	size := 256
	if s := c.Query("size"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 64 && parsed <= 1024 {
			size = parsed
		}
	}

	png, err := utils.GenerateQRCode(data, size)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
