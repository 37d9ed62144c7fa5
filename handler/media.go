package handler

import (
	"context"
	"fmt"

	"floorplan_manager/constants"
	"floorplan_manager/session"
	"floorplan_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// UploadBackground upload ảnh nền canvas lên Cloudinary và gắn vào
// document của phiên đang mở (một thao tác undoable)
func UploadBackground(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	cld, ok := c.Locals("cld").(*cloudinary.Cloudinary)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Media upload is not configured", nil)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing image file", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	defer file.Close()

	result, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:   "floorplans",
		PublicID: fmt.Sprintf("background_%s", s.ID),
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Cloudinary upload failed", err)
	}

	canvas, err := s.UpdateCanvas(session.CanvasPatch{BackgroundImageUrl: &result.SecureURL})
	if err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, canvas)
}

// UpdateCanvas chỉnh grid/kích thước canvas của phiên
func UpdateCanvas(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	var patch session.CanvasPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	canvas, err := s.UpdateCanvas(patch)
	if err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, canvas)
}
