package session

import (
	"reflect"
	"testing"
	"time"

	"floorplan_manager/constants"
	"floorplan_manager/model"
)

func strPtr(s string) *string { return &s }

func ptrF(v float64) *float64 { return &v }

func testPlan() *model.FloorPlan {
	return &model.FloorPlan{
		ID:     "plan-1",
		Title:  "Test Hall",
		Canvas: model.Canvas{Width: 800, Height: 600},
		Sections: []model.Section{
			{ID: "vip", Name: "VIP", Color: "#ffd700", DefaultPrice: 150},
			{ID: "ga", Name: "General", Color: "#90caf9", DefaultPrice: 50},
		},
		Elements: []model.Element{
			{ID: "t1", Type: model.TypeTable, Shape: model.ShapeRound, X: 10, Y: 10, Width: 40, Height: 40,
				Bookable: true, Capacity: 4, SectionId: strPtr("vip")},
			{ID: "t2", Type: model.TypeTable, Shape: model.ShapeRound, X: 60, Y: 10, Width: 40, Height: 40,
				Bookable: true, Capacity: 4, SectionId: strPtr("vip")},
			{ID: "t3", Type: model.TypeTable, Shape: model.ShapeRound, X: 110, Y: 10, Width: 40, Height: 40,
				Bookable: true, Capacity: 4, SectionId: strPtr("vip")},
			{ID: "st", Type: model.TypeStage, Shape: model.ShapeRectangle, X: 300, Y: 0, Width: 200, Height: 100, Label: "Stage"},
		},
	}
}

func openTestSession(t *testing.T) *EditSession {
	t.Helper()
	return NewManager().Open(testPlan(), 1)
}

func TestUndoRedoRestoresExactState(t *testing.T) {
	s := openTestSession(t)
	initial := s.PlanSnapshot()

	if _, err := s.AddElement(model.TypeBar, model.Point{X: 400, Y: 300}); err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	if _, err := s.UpdateElement("t1", ElementPatch{X: ptrF(200), Label: strPtr("Front")}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	if err := s.DeleteElement("t3"); err != nil {
		t.Fatalf("DeleteElement: %v", err)
	}
	if _, err := s.AddSection("Balcony", "#cccccc", 80); err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	afterOps := s.PlanSnapshot()

	for i := 0; i < 4; i++ {
		if !s.Undo() {
			t.Fatalf("undo %d reported nothing to undo", i)
		}
	}
	if !reflect.DeepEqual(initial, s.PlanSnapshot()) {
		t.Fatalf("undoing every op must restore the initial document")
	}
	if s.Undo() {
		t.Fatalf("undo on an empty stack must be a no-op")
	}

	for i := 0; i < 4; i++ {
		if !s.Redo() {
			t.Fatalf("redo %d reported nothing to redo", i)
		}
	}
	if !reflect.DeepEqual(afterOps, s.PlanSnapshot()) {
		t.Fatalf("redoing every op must restore the post-edit document")
	}
	if s.Redo() {
		t.Fatalf("redo on an empty stack must be a no-op")
	}
}

func TestNewEditClearsRedoStack(t *testing.T) {
	s := openTestSession(t)

	if _, err := s.UpdateElement("t1", ElementPatch{X: ptrF(50)}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	s.Undo()
	if _, redo := s.HistoryDepth(); redo != 1 {
		t.Fatalf("expected one redoable op, got %d", redo)
	}

	if _, err := s.UpdateElement("t2", ElementPatch{Y: ptrF(99)}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	if _, redo := s.HistoryDepth(); redo != 0 {
		t.Fatalf("a new edit must clear the redo stack, got %d", redo)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	s := openTestSession(t)

	for i := 0; i < constants.MAX_HISTORY+20; i++ {
		if _, err := s.UpdateElement("t1", ElementPatch{X: ptrF(float64(i))}); err != nil {
			t.Fatalf("UpdateElement %d: %v", i, err)
		}
	}
	undo, _ := s.HistoryDepth()
	if undo != constants.MAX_HISTORY {
		t.Fatalf("history depth = %d, want cap %d", undo, constants.MAX_HISTORY)
	}
}

func TestUpdateElementValidatesBeforeMutating(t *testing.T) {
	s := openTestSession(t)
	before := s.PlanSnapshot()

	if _, err := s.UpdateElement("t1", ElementPatch{Width: ptrF(-5)}); err == nil {
		t.Fatalf("negative width must be rejected")
	}
	if _, err := s.UpdateElement("t1", ElementPatch{SectionId: strPtr("ghost")}); err == nil {
		t.Fatalf("unknown sectionId must be rejected")
	}
	if _, err := s.UpdateElement("missing", ElementPatch{X: ptrF(1)}); err != ErrElementNotFound {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}

	if !reflect.DeepEqual(before, s.PlanSnapshot()) {
		t.Fatalf("rejected edits must leave the document untouched")
	}
	if undo, _ := s.HistoryDepth(); undo != 0 {
		t.Fatalf("rejected edits must not enter the history, depth %d", undo)
	}
}

func TestUpdateElementNormalizesRotation(t *testing.T) {
	s := openTestSession(t)

	el, err := s.UpdateElement("t1", ElementPatch{Rotation: ptrF(370)})
	if err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	if el.Rotation != 10 {
		t.Fatalf("rotation 370 must normalize to 10, got %v", el.Rotation)
	}

	el, err = s.UpdateElement("t1", ElementPatch{Rotation: ptrF(-90)})
	if err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	if el.Rotation != 270 {
		t.Fatalf("rotation -90 must normalize to 270, got %v", el.Rotation)
	}
}

func TestClearFlagsNullOutFields(t *testing.T) {
	s := openTestSession(t)

	el, err := s.UpdateElement("t1", ElementPatch{Price: ptrF(120), LinkedInventoryId: strPtr("inv-1")})
	if err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	if el.Price == nil || el.LinkedInventoryId == nil {
		t.Fatalf("expected price and inventory link to be set")
	}

	el, err = s.UpdateElement("t1", ElementPatch{ClearSection: true, ClearPrice: true, ClearLinkedInventory: true})
	if err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	if el.SectionId != nil || el.Price != nil || el.LinkedInventoryId != nil {
		t.Fatalf("clear flags must null the fields, got %+v", el)
	}
}

func TestAddElementCentersAndDefaults(t *testing.T) {
	s := openTestSession(t)

	el, err := s.AddElement(model.TypeTable, model.Point{X: 100, Y: 100})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	if el.ID == "" {
		t.Fatalf("new element must get an id")
	}
	if el.X != 80 || el.Y != 80 {
		t.Fatalf("40x40 table placed at (100,100) must sit at (80,80), got (%v,%v)", el.X, el.Y)
	}
	if !el.Bookable || el.Capacity != 4 || el.Shape != model.ShapeRound {
		t.Fatalf("table defaults wrong: %+v", el)
	}
}

func TestDuplicateElementOffsetsAndDropsInventoryLink(t *testing.T) {
	s := openTestSession(t)
	if _, err := s.UpdateElement("t1", ElementPatch{LinkedInventoryId: strPtr("inv-1")}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}

	dup, err := s.DuplicateElement("t1")
	if err != nil {
		t.Fatalf("DuplicateElement: %v", err)
	}
	if dup.ID == "t1" {
		t.Fatalf("duplicate must get a fresh id")
	}
	if dup.X != 10+constants.DUPLICATE_OFFSET || dup.Y != 10+constants.DUPLICATE_OFFSET {
		t.Fatalf("duplicate must be offset, got (%v,%v)", dup.X, dup.Y)
	}
	if dup.LinkedInventoryId != nil {
		t.Fatalf("duplicate must not inherit the inventory link")
	}
	if dup.SectionId == nil || *dup.SectionId != "vip" {
		t.Fatalf("duplicate must keep the section assignment")
	}
}

func TestDeleteSectionReassignsAndUndoesAtomically(t *testing.T) {
	s := openTestSession(t)
	before := s.PlanSnapshot()

	if err := s.DeleteSection("vip", nil); err != nil {
		t.Fatalf("DeleteSection: %v", err)
	}
	doc := s.PlanSnapshot()
	if doc.SectionByID("vip") != nil {
		t.Fatalf("section must be gone")
	}
	for _, id := range []string{"t1", "t2", "t3"} {
		if e := doc.ElementByID(id); e.SectionId != nil {
			t.Fatalf("element %s must be unassigned after delete", id)
		}
	}

	// một lần undo trả lại cả section lẫn sectionId của mọi phần tử thành viên
	if !s.Undo() {
		t.Fatalf("expected one undoable op")
	}
	if !reflect.DeepEqual(before, s.PlanSnapshot()) {
		t.Fatalf("single undo must restore the section and every member assignment")
	}
}

func TestDeleteSectionReassignTarget(t *testing.T) {
	s := openTestSession(t)

	if err := s.DeleteSection("vip", strPtr("ghost")); err == nil {
		t.Fatalf("unknown reassign target must be rejected")
	}
	if err := s.DeleteSection("vip", strPtr("vip")); err == nil {
		t.Fatalf("reassigning into the deleted section must be rejected")
	}

	if err := s.DeleteSection("vip", strPtr("ga")); err != nil {
		t.Fatalf("DeleteSection: %v", err)
	}
	doc := s.PlanSnapshot()
	for _, id := range []string{"t1", "t2", "t3"} {
		e := doc.ElementByID(id)
		if e.SectionId == nil || *e.SectionId != "ga" {
			t.Fatalf("element %s must be reassigned to ga", id)
		}
	}
}

func TestReorderSectionsRequiresPermutation(t *testing.T) {
	s := openTestSession(t)

	if err := s.ReorderSections([]string{"vip"}); err == nil {
		t.Fatalf("short order must be rejected")
	}
	if err := s.ReorderSections([]string{"vip", "vip"}); err == nil {
		t.Fatalf("repeated ids must be rejected")
	}
	if err := s.ReorderSections([]string{"ga", "vip"}); err != nil {
		t.Fatalf("ReorderSections: %v", err)
	}
	doc := s.PlanSnapshot()
	if doc.Sections[0].ID != "ga" || doc.Sections[1].ID != "vip" {
		t.Fatalf("expected order [ga vip], got %+v", doc.Sections)
	}

	s.Undo()
	doc = s.PlanSnapshot()
	if doc.Sections[0].ID != "vip" {
		t.Fatalf("undo must restore the original order")
	}
}

func TestSelectionModesAndHistoryExclusion(t *testing.T) {
	s := openTestSession(t)

	if err := s.Select([]string{"t1", "ghost"}, SelectReplace); err == nil {
		t.Fatalf("selecting an unknown element must fail")
	}
	if err := s.Select([]string{"t1", "t2"}, SelectReplace); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := s.Select([]string{"t3"}, SelectAdd); err != nil {
		t.Fatalf("Select add: %v", err)
	}
	if got := s.Selection(); !reflect.DeepEqual(got, []string{"t1", "t2", "t3"}) {
		t.Fatalf("selection = %v", got)
	}
	if err := s.Select([]string{"t2"}, SelectToggle); err != nil {
		t.Fatalf("Select toggle: %v", err)
	}
	if got := s.Selection(); !reflect.DeepEqual(got, []string{"t1", "t3"}) {
		t.Fatalf("toggle must drop t2, got %v", got)
	}

	// selection không vào history
	if undo, _ := s.HistoryDepth(); undo != 0 {
		t.Fatalf("selection changes must not be undoable, depth %d", undo)
	}

	s.ClearSelection()
	if got := s.Selection(); len(got) != 0 {
		t.Fatalf("expected empty selection, got %v", got)
	}
}

func TestDeleteElementDropsSelection(t *testing.T) {
	s := openTestSession(t)
	if err := s.Select([]string{"t1", "t2"}, SelectReplace); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := s.DeleteElement("t1"); err != nil {
		t.Fatalf("DeleteElement: %v", err)
	}
	if got := s.Selection(); !reflect.DeepEqual(got, []string{"t2"}) {
		t.Fatalf("deleted element must leave the selection, got %v", got)
	}
}

func TestViewportClampAndHistoryExclusion(t *testing.T) {
	s := openTestSession(t)

	if vp := s.SetZoom(10); vp.Zoom != constants.MAX_ZOOM {
		t.Fatalf("zoom must clamp to %v, got %v", constants.MAX_ZOOM, vp.Zoom)
	}
	if vp := s.SetZoom(0.01); vp.Zoom != constants.MIN_ZOOM {
		t.Fatalf("zoom must clamp to %v, got %v", constants.MIN_ZOOM, vp.Zoom)
	}
	if vp := s.Pan(30, -15); vp.PanX != 30 || vp.PanY != -15 {
		t.Fatalf("pan accumulates deltas, got %+v", vp)
	}
	if undo, _ := s.HistoryDepth(); undo != 0 {
		t.Fatalf("viewport changes must not be undoable")
	}
}

func TestUpdateCanvasUndoable(t *testing.T) {
	s := openTestSession(t)

	if _, err := s.UpdateCanvas(CanvasPatch{Width: ptrF(-1)}); err == nil {
		t.Fatalf("non-positive canvas size must be rejected")
	}

	canvas, err := s.UpdateCanvas(CanvasPatch{GridSize: ptrF(25), ShowGrid: boolPtr(true)})
	if err != nil {
		t.Fatalf("UpdateCanvas: %v", err)
	}
	if canvas.GridSize != 25 || !canvas.ShowGrid {
		t.Fatalf("canvas patch not applied: %+v", canvas)
	}

	s.Undo()
	doc := s.PlanSnapshot()
	if doc.Canvas.GridSize != 0 || doc.Canvas.ShowGrid {
		t.Fatalf("undo must restore the previous canvas, got %+v", doc.Canvas)
	}
}

func boolPtr(b bool) *bool { return &b }

func TestManagerSweepIdle(t *testing.T) {
	m := NewManager()
	s := m.Open(testPlan(), 1)

	if removed := m.SweepIdle(time.Hour); removed != 0 {
		t.Fatalf("fresh session must survive the sweep")
	}
	if m.Get(s.ID) == nil {
		t.Fatalf("session must still be registered")
	}

	if removed := m.SweepIdle(0); removed != 1 {
		t.Fatalf("expected the idle session to be closed, removed %d", removed)
	}
	if m.Get(s.ID) != nil {
		t.Fatalf("swept session must be gone")
	}
	if m.Count() != 0 {
		t.Fatalf("expected empty manager, count %d", m.Count())
	}
}
