package router

import (
	"floorplan_manager/handler"
	"floorplan_manager/middleware"
	"floorplan_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	location := v1.Group("/location", logger.New())
	location.Get("/", handler.GetLocations)
	location.Get("/:locationId", validate.GetById("locationId"), handler.GetLocationById)

	plan := v1.Group("/plan", logger.New())
	plan.Get("/", handler.GetPlans)
	plan.Post("/", validate.CreateFloorPlan(), handler.CreatePlan)
	plan.Get("/:planId", handler.GetPlanById)
	plan.Put("/:planId", validate.EditFloorPlan(), handler.EditPlan)
	plan.Delete("/", validate.Delete(), handler.DeletePlan)
	plan.Get("/:planId/document", handler.GetPlanDocument)
	plan.Get("/:planId/availability", handler.GetAvailability)
	plan.Get("/:planId/legend", handler.GetLegend)
	plan.Get("/:planId/render", handler.RenderPlan)
	plan.Post("/:planId/booking", validate.Booking(), handler.BookElement)

	booking := v1.Group("/booking", logger.New())
	booking.Get("/qr", handler.BookingQR)
	booking.Post("/inquiry", validate.Inquiry(), handler.SendInquiry)

	sess := v1.Group("/session", logger.New())
	sess.Post("/open/:planId", handler.OpenSession)
	sess.Get("/:sessionId", middleware.SessionRequired(), handler.GetSessionState)
	sess.Delete("/:sessionId", middleware.SessionRequired(), handler.CloseSession)
	sess.Post("/:sessionId/save", middleware.SessionRequired(), handler.SaveSession)
	sess.Get("/:sessionId/render", middleware.SessionRequired(), handler.RenderSession)
	sess.Get("/:sessionId/hit-test", middleware.SessionRequired(), handler.HitTest)

	sess.Post("/:sessionId/element", middleware.SessionRequired(), validate.AddElement(), handler.AddElement)
	sess.Patch("/:sessionId/element/:elementId", middleware.SessionRequired(), validate.UpdateElement(), handler.UpdateElement)
	sess.Delete("/:sessionId/element/:elementId", middleware.SessionRequired(), handler.DeleteElement)
	sess.Post("/:sessionId/element/:elementId/duplicate", middleware.SessionRequired(), handler.DuplicateElement)

	sess.Post("/:sessionId/section", middleware.SessionRequired(), validate.AddSection(), handler.AddSection)
	sess.Patch("/:sessionId/section/:sectionId", middleware.SessionRequired(), validate.UpdateSection(), handler.UpdateSection)
	sess.Delete("/:sessionId/section/:sectionId", middleware.SessionRequired(), validate.DeleteSection(), handler.DeleteSection)
	sess.Put("/:sessionId/sections/order", middleware.SessionRequired(), validate.ReorderSections(), handler.ReorderSections)

	sess.Post("/:sessionId/selection", middleware.SessionRequired(), validate.Select(), handler.SelectElements)
	sess.Delete("/:sessionId/selection", middleware.SessionRequired(), handler.ClearSelection)

	sess.Post("/:sessionId/undo", middleware.SessionRequired(), handler.Undo)
	sess.Post("/:sessionId/redo", middleware.SessionRequired(), handler.Redo)

	sess.Put("/:sessionId/viewport/zoom", middleware.SessionRequired(), handler.SetZoom)
	sess.Put("/:sessionId/viewport/pan", middleware.SessionRequired(), handler.Pan)

	sess.Post("/:sessionId/gesture", middleware.SessionRequired(), validate.BeginGesture(), handler.BeginGesture)
	sess.Put("/:sessionId/gesture", middleware.SessionRequired(), handler.MoveGesture)
	sess.Post("/:sessionId/gesture/end", middleware.SessionRequired(), handler.EndGesture)
	sess.Delete("/:sessionId/gesture", middleware.SessionRequired(), handler.CancelGesture)

	sess.Patch("/:sessionId/canvas", middleware.SessionRequired(), handler.UpdateCanvas)
	sess.Post("/:sessionId/canvas/background", middleware.SessionRequired(), handler.UploadBackground)

	// websocket đẩy availability realtime cho frontend
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/plan/:planId", websocket.New(handler.AvailabilityWebsocket))
}
