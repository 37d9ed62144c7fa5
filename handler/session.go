package handler

import (
	"errors"
	"log"
	"strconv"
	"time"

	"floorplan_manager/constants"
	"floorplan_manager/database"
	"floorplan_manager/helper"
	"floorplan_manager/model"
	"floorplan_manager/session"
	"floorplan_manager/utils"
	"floorplan_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// sessions giữ các phiên chỉnh sửa đang mở, scoped theo instance chứ không
// phải singleton per-document: mỗi lần mở là một phiên mới với history riêng
var sessions = session.NewManager()

var sessionSweeper *cron.Cron

const sessionMaxIdle = 2 * time.Hour

func getSession(c *fiber.Ctx) *session.EditSession {
	id, _ := c.Locals("sessionId").(string)
	return sessions.Get(id)
}

func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, session.ErrElementNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ELEMENT_NOT_FOUND, err)
	case errors.Is(err, session.ErrSectionNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SECTION_NOT_FOUND, err)
	case errors.Is(err, session.ErrNoActiveGesture), errors.Is(err, session.ErrGestureActive):
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), err)
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}
}

type sessionState struct {
	SessionId string           `json:"sessionId"`
	Document  *model.FloorPlan `json:"document"`
	Selection []string         `json:"selection"`
	Tool      session.Tool     `json:"tool"`
	Viewport  session.Viewport `json:"viewport"`
	UndoDepth int              `json:"undoDepth"`
	RedoDepth int              `json:"redoDepth"`
	Dirty     bool             `json:"dirty"`
}

func stateOf(s *session.EditSession) sessionState {
	undo, redo := s.HistoryDepth()
	return sessionState{
		SessionId: s.ID,
		Document:  s.PlanSnapshot(),
		Selection: s.Selection(),
		Tool:      s.ActiveTool(),
		Viewport:  s.Viewport(),
		UndoDepth: undo,
		RedoDepth: redo,
		Dirty:     s.Dirty(),
	}
}

// OpenSession load tài liệu và mở phiên chỉnh sửa. Load lỗi thì không mở
// phiên: không bao giờ chỉnh sửa trên document dở dang.
func OpenSession(c *fiber.Ctx) error {
	plan, err := findPlan(c.Params("planId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PLAN_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	doc, err := helper.LoadPlanDocument(plan)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Cannot open editor: document failed to load", err)
	}

	s := sessions.Open(doc, plan.ID)
	log.Printf("Edit session %s opened for plan %s. Open sessions: %d", s.ID, plan.PlanId, sessions.Count())
	return utils.SuccessResponse(c, fiber.StatusCreated, stateOf(s))
}

func GetSessionState(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stateOf(s))
}

func CloseSession(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	sessions.Close(s.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"closed": s.ID})
}

// SaveSession ghi đè nguyên tài liệu vào bản ghi. Save lỗi thì local edits
// vẫn còn nguyên trong phiên, client retry được.
func SaveSession(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	doc := s.PlanSnapshot()
	layout, err := helper.SerializePlanDocument(doc)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	result := database.DB.Model(&model.Plan{}).
		Where("id = ?", s.PlanRecordId).
		Updates(map[string]any{"layout": layout, "title": doc.Title})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Save failed, local edits are kept", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PLAN_NOT_FOUND, errors.New("plan record missing"))
	}

	s.MarkSaved()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"saved": true})
}

// --- element ops ---

func AddElement(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	input := c.Locals("addElementInput").(validate.AddElementInput)

	el, err := s.AddElement(input.Type, model.Point{X: input.X, Y: input.Y})
	if err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, el)
}

func UpdateElement(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	patch := c.Locals("elementPatch").(session.ElementPatch)

	el, err := s.UpdateElement(c.Params("elementId"), patch)
	if err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, el)
}

func DeleteElement(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	if err := s.DeleteElement(c.Params("elementId")); err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": c.Params("elementId")})
}

func DuplicateElement(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	el, err := s.DuplicateElement(c.Params("elementId"))
	if err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, el)
}

// --- section ops ---

func AddSection(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	input := c.Locals("addSectionInput").(validate.AddSectionInput)

	sec, err := s.AddSection(input.Name, input.Color, input.DefaultPrice)
	if err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, sec)
}

func UpdateSection(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	patch := c.Locals("sectionPatch").(session.SectionPatch)

	sec, err := s.UpdateSection(c.Params("sectionId"), patch)
	if err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sec)
}

func DeleteSection(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	input := c.Locals("deleteSectionInput").(validate.DeleteSectionInput)

	if err := s.DeleteSection(c.Params("sectionId"), input.ReassignTo); err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": c.Params("sectionId")})
}

func ReorderSections(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	input := c.Locals("reorderSectionsInput").(validate.ReorderSectionsInput)

	if err := s.ReorderSections(input.Order); err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"order": input.Order})
}

// --- selection / history / viewport ---

func SelectElements(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	input := c.Locals("selectInput").(validate.SelectInput)

	if err := s.Select(input.IDs, input.Mode); err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, s.Selection())
}

func ClearSelection(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	s.ClearSelection()
	return utils.SuccessResponse(c, fiber.StatusOK, []string{})
}

func Undo(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	applied := s.Undo() // stack rỗng là no-op, không phải lỗi
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"applied": applied, "document": s.PlanSnapshot()})
}

func Redo(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	applied := s.Redo()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"applied": applied, "document": s.PlanSnapshot()})
}

func SetZoom(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	var input struct {
		Zoom float64 `json:"zoom"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, s.SetZoom(input.Zoom))
}

func Pan(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	var input struct {
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, s.Pan(input.DX, input.DY))
}

// HitTest trả về phần tử trên cùng tại toạ độ canvas, phần tử thêm sau
// thắng khi chồng lên nhau
func HitTest(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}

	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	y, errY := strconv.ParseFloat(c.Query("y"), 64)
	if errX != nil || errY != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, nil)
	}

	doc := s.PlanSnapshot()
	hit := doc.HitTest(model.Point{X: x, Y: y})
	if hit == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"elementId": nil})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"elementId": *hit, "element": doc.ElementByID(*hit)})
}

// --- gestures ---

func BeginGesture(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	input := c.Locals("gestureBeginInput").(validate.GestureBeginInput)

	if err := s.BeginGesture(input.Kind, input.ElementId); err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"tool": s.ActiveTool()})
}

func MoveGesture(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	var frame session.GestureFrame
	if err := c.BodyParser(&frame); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	preview, err := s.UpdateGesture(frame)
	if err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, preview)
}

func EndGesture(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	committed, err := s.EndGesture()
	if err != nil {
		return sessionError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"committed": committed})
}

func CancelGesture(c *fiber.Ctx) error {
	s := getSession(c)
	if s == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, nil)
	}
	s.CancelGesture()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"tool": s.ActiveTool()})
}

// --- sweeper ---

// StartSessionSweeper dọn các phiên bỏ quên, chạy mỗi 15 phút
func StartSessionSweeper() {
	sessionSweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := sessionSweeper.AddFunc("*/15 * * * *", func() {
		if removed := sessions.SweepIdle(sessionMaxIdle); removed > 0 {
			log.Printf("Closed %d idle edit sessions", removed)
		}
	})
	if err != nil {
		log.Printf("Error starting session sweeper: %v", err)
		return
	}

	sessionSweeper.Start()
	log.Println("Session sweeper started (every 15 minutes)")
}

func StopSessionSweeper() {
	if sessionSweeper != nil {
		sessionSweeper.Stop()
	}
}
