package handler

import (
	"errors"

	"floorplan_manager/constants"
	"floorplan_manager/helper"
	"floorplan_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RenderPlan vẽ bản đã lưu của tài liệu cho frontend, cố định 100%,
// tô màu theo availability hiện tại
func RenderPlan(c *fiber.Ctx) error {
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

	opts := helper.RenderOptions{}
	snapshot, err := helper.FetchSnapshot(c.Context(), plan.PlanId, doc)
	if err == nil {
		statuses := helper.ResolveAvailability(doc, snapshot)
		opts.Statuses = &statuses
	}
	// inventory lỗi và không có cache: vẫn vẽ, phần tử bookable hiện trung tính

	svg := helper.RenderSVG(doc, opts)
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(svg)
}

// RenderSession vẽ trạng thái đang chỉnh sửa: viewport, grid overlay,
// highlight và handle trên các phần tử được chọn
func RenderSession(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	doc := s.PlanSnapshot()
	viewport := s.Viewport()
	opts := helper.RenderOptions{
		Editor:    true,
		Selection: s.Selection(),
		Zoom:      viewport.Zoom,
		PanX:      viewport.PanX,
		PanY:      viewport.PanY,
	}

	snapshot, err := helper.FetchSnapshot(c.Context(), doc.ID, doc)
	if err == nil {
		statuses := helper.ResolveAvailability(doc, snapshot)
		opts.Statuses = &statuses
	}

	svg := helper.RenderSVG(doc, opts)
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(svg)
}
