package handler

import (
	"errors"
	"fmt"

	"floorplan_manager/constants"
	"floorplan_manager/database"
	"floorplan_manager/helper"
	"floorplan_manager/model"
	"floorplan_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func findPlan(planId string) (*model.Plan, error) {
	var plan model.Plan
	if err := database.DB.Preload("Location").Where("plan_id = ?", planId).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func GetPlans(c *fiber.Ctx) error {
	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	query := database.DB.Model(&model.Plan{}).Preload("Location").Order("created_at DESC")
	if c.Query("template") == "true" {
		query = query.Where("is_template = true")
	}

	var totalCount int64
	query.Count(&totalCount)

	var plans []model.Plan
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).Find(&plans).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       plans,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

func GetPlanById(c *fiber.Ctx) error {
	plan, err := findPlan(c.Params("planId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PLAN_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, plan)
}

// GetPlanDocument trả về nguyên cây tài liệu (canvas, sections, elements)
func GetPlanDocument(c *fiber.Ctx) error {
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
	return utils.SuccessResponse(c, fiber.StatusOK, doc)
}

// CreatePlan tạo floor plan rỗng hoặc clone từ template với id mới toàn bộ
func CreatePlan(c *fiber.Ctx) error {
	input := c.Locals("createPlanInput").(model.CreateFloorPlanInput)

	if input.LocationId != nil {
		var loc model.Location
		if err := database.DB.First(&loc, *input.LocationId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.LOCATION_NOT_FOUND, fmt.Errorf("locationId not found"), "locationId")
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	planId := uuid.NewString()
	var doc *model.FloorPlan

	if input.TemplateId != nil {
		template, err := findPlan(*input.TemplateId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Template not found", fmt.Errorf("templateId not found"), "templateId")
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		src, err := helper.LoadPlanDocument(template)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Template document is corrupted", err)
		}
		doc = cloneWithFreshIds(src)
		doc.ID = planId
		doc.Title = input.Title
		doc.LinkedLocationId = input.LocationId
	} else {
		canvas := model.Canvas{Width: 1000, Height: 700, GridSize: 20}
		if input.CanvasWidth != nil {
			canvas.Width = *input.CanvasWidth
		}
		if input.CanvasHeight != nil {
			canvas.Height = *input.CanvasHeight
		}
		if input.ShowGrid != nil {
			canvas.ShowGrid = *input.ShowGrid
		}
		if input.GridSize != nil {
			canvas.GridSize = *input.GridSize
		}
		doc = helper.EmptyPlanDocument(planId, input.Title, canvas)
		doc.LinkedLocationId = input.LocationId
	}

	layout, err := helper.SerializePlanDocument(doc)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var newPlan model.Plan
	copier.Copy(&newPlan, &input)
	newPlan.PlanId = planId
	newPlan.Slug = helper.GenerateUniquePlanSlug(database.DB, input.Title)
	newPlan.Layout = layout

	if err := database.DB.Create(&newPlan).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot create floor plan", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, newPlan)
}

// cloneWithFreshIds cấp id mới cho section/element khi clone từ template,
// giữ nguyên mapping sectionId giữa các phần tử
func cloneWithFreshIds(src *model.FloorPlan) *model.FloorPlan {
	doc := src.Clone()
	sectionIds := make(map[string]string, len(doc.Sections))
	for i := range doc.Sections {
		fresh := uuid.NewString()
		sectionIds[doc.Sections[i].ID] = fresh
		doc.Sections[i].ID = fresh
	}
	for i := range doc.Elements {
		doc.Elements[i].ID = uuid.NewString()
		if doc.Elements[i].SectionId != nil {
			fresh := sectionIds[*doc.Elements[i].SectionId]
			doc.Elements[i].SectionId = &fresh
		}
	}
	return doc
}

func EditPlan(c *fiber.Ctx) error {
	input := c.Locals("editPlanInput").(model.EditFloorPlanInput)

	plan, err := findPlan(c.Params("planId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PLAN_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Title != nil && *input.Title != plan.Title {
		plan.Title = *input.Title
		plan.Slug = helper.GenerateUniquePlanSlug(database.DB, *input.Title)
	}
	if input.LocationId != nil {
		var loc model.Location
		if err := database.DB.First(&loc, *input.LocationId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.LOCATION_NOT_FOUND, err, "locationId")
		}
		plan.LocationId = input.LocationId
	}
	if input.IsTemplate != nil {
		plan.IsTemplate = *input.IsTemplate
	}

	// metadata đổi thì document lưu kèm cũng phải khớp
	doc, err := helper.LoadPlanDocument(plan)
	if err == nil {
		doc.Title = plan.Title
		doc.LinkedLocationId = plan.LocationId
		if layout, serr := helper.SerializePlanDocument(doc); serr == nil {
			plan.Layout = layout
		}
	}

	if err := database.DB.Save(plan).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot update floor plan", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, plan)
}

func DeletePlan(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)

	if err := database.DB.Delete(&model.Plan{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot delete floor plans", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": len(input.IDs)})
}
