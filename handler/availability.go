package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"floorplan_manager/constants"
	"floorplan_manager/database"
	"floorplan_manager/helper"
	"floorplan_manager/model"
	"floorplan_manager/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var availabilityScheduler gocron.Scheduler

// GetAvailability resolve trạng thái từ snapshot inventory mới nhất.
// Fetch lỗi thì dùng bản cache gần nhất, không bao giờ blank availability.
func GetAvailability(c *fiber.Ctx) error {
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

	snapshot, err := helper.FetchSnapshot(c.Context(), plan.PlanId, doc)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Inventory fetch failed and no cached snapshot exists", err)
	}

	statuses := helper.ResolveAvailability(doc, snapshot)
	if len(statuses.Warnings) > 0 {
		log.Printf("Plan %s has %d elements linked to missing inventory", plan.PlanId, len(statuses.Warnings))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, statuses)
}

type legendEntry struct {
	Section model.Section            `json:"section"`
	Status  model.AvailabilityStatus `json:"status"`
}

// GetLegend trả về section kèm trạng thái gộp để vẽ chú giải
func GetLegend(c *fiber.Ctx) error {
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

	snapshot, err := helper.FetchSnapshot(c.Context(), plan.PlanId, doc)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Inventory fetch failed and no cached snapshot exists", err)
	}
	statuses := helper.ResolveAvailability(doc, snapshot)

	legend := make([]legendEntry, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		legend = append(legend, legendEntry{Section: sec, Status: statuses.Sections[sec.ID]})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, legend)
}

// refreshPlanAvailability: một vòng poll cho một plan đang có người xem.
// Mỗi lần publish là một status map trọn vẹn thay thế bản trước,
// không có cập nhật từng phần.
func refreshPlanAvailability(planId string) {
	plan, err := findPlan(planId)
	if err != nil {
		return
	}
	doc, err := helper.LoadPlanDocument(plan)
	if err != nil {
		log.Printf("Skip availability refresh, plan %s document broken: %v", planId, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	snapshot, err := helper.FetchSnapshot(ctx, planId, doc)
	if err != nil {
		log.Printf("Availability refresh for plan %s failed: %v", planId, err)
		return
	}

	statuses := helper.ResolveAvailability(doc, snapshot)
	payload, err := json.Marshal(statuses)
	if err != nil {
		return
	}
	database.Redis.Publish(ctx, planChannel(planId), payload)
}

// StartAvailabilityScheduler poll inventory mỗi phút cho các plan có
// websocket viewer đang mở
func StartAvailabilityScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	availabilityScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			for _, planId := range ActivePlanIds() {
				refreshPlanAvailability(planId)
			}
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Availability refresh scheduler started (every 1 minute)")
}

func StopAvailabilityScheduler() {
	if availabilityScheduler != nil {
		availabilityScheduler.Shutdown()
	}
}
