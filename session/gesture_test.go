package session

import "testing"

func TestDragGestureCommitsOneHistoryEntry(t *testing.T) {
	s := openTestSession(t)

	if err := s.BeginGesture(GestureDrag, "t1"); err != nil {
		t.Fatalf("BeginGesture: %v", err)
	}
	if s.ActiveTool() != ToolDragging {
		t.Fatalf("tool must switch to dragging, got %v", s.ActiveTool())
	}

	// kéo 30 frame liên tiếp, document chưa được đụng tới
	for i := 1; i <= 30; i++ {
		if _, err := s.UpdateGesture(GestureFrame{X: ptrF(float64(10 + i)), Y: ptrF(float64(10 + i))}); err != nil {
			t.Fatalf("UpdateGesture frame %d: %v", i, err)
		}
	}
	if doc := s.PlanSnapshot(); doc.ElementByID("t1").X != 10 {
		t.Fatalf("moves must only touch the preview until pointer-up")
	}
	if undo, _ := s.HistoryDepth(); undo != 0 {
		t.Fatalf("no history entry before the gesture ends")
	}

	committed, err := s.EndGesture()
	if err != nil {
		t.Fatalf("EndGesture: %v", err)
	}
	if !committed {
		t.Fatalf("a moved gesture must commit")
	}
	if s.ActiveTool() != ToolIdle {
		t.Fatalf("tool must return to idle")
	}

	doc := s.PlanSnapshot()
	if el := doc.ElementByID("t1"); el.X != 40 || el.Y != 40 {
		t.Fatalf("commit must apply the last frame, got (%v,%v)", el.X, el.Y)
	}
	// cả cử chỉ là đúng một entry, một lần undo về thẳng vị trí ban đầu
	if undo, _ := s.HistoryDepth(); undo != 1 {
		t.Fatalf("whole gesture must be one history entry, got %d", undo)
	}
	s.Undo()
	if el := s.PlanSnapshot().ElementByID("t1"); el.X != 10 || el.Y != 10 {
		t.Fatalf("single undo must restore the pre-gesture position, got (%v,%v)", el.X, el.Y)
	}
}

func TestGestureWithoutMovementCommitsNothing(t *testing.T) {
	s := openTestSession(t)

	if err := s.BeginGesture(GestureDrag, "t1"); err != nil {
		t.Fatalf("BeginGesture: %v", err)
	}
	committed, err := s.EndGesture()
	if err != nil {
		t.Fatalf("EndGesture: %v", err)
	}
	if committed {
		t.Fatalf("a gesture that never moved must not commit")
	}
	if undo, _ := s.HistoryDepth(); undo != 0 {
		t.Fatalf("no-op gesture must leave no history entry, got %d", undo)
	}
}

func TestCancelGestureDiscardsPreview(t *testing.T) {
	s := openTestSession(t)

	if err := s.BeginGesture(GestureDrag, "t1"); err != nil {
		t.Fatalf("BeginGesture: %v", err)
	}
	if _, err := s.UpdateGesture(GestureFrame{X: ptrF(500)}); err != nil {
		t.Fatalf("UpdateGesture: %v", err)
	}
	s.CancelGesture()

	if el := s.PlanSnapshot().ElementByID("t1"); el.X != 10 {
		t.Fatalf("cancel must discard the preview, got x=%v", el.X)
	}
	if undo, _ := s.HistoryDepth(); undo != 0 {
		t.Fatalf("cancelled gesture must leave no history entry")
	}
	if s.ActiveTool() != ToolIdle {
		t.Fatalf("cancel must return the tool to idle")
	}
}

func TestGestureStateMachineGuards(t *testing.T) {
	s := openTestSession(t)

	if _, err := s.UpdateGesture(GestureFrame{X: ptrF(1)}); err != ErrNoActiveGesture {
		t.Fatalf("move without a gesture: got %v", err)
	}
	if _, err := s.EndGesture(); err != ErrNoActiveGesture {
		t.Fatalf("end without a gesture: got %v", err)
	}
	if err := s.BeginGesture(GestureDrag, "missing"); err != ErrElementNotFound {
		t.Fatalf("gesture on unknown element: got %v", err)
	}
	if err := s.BeginGesture(GestureKind("wiggle"), "t1"); err == nil {
		t.Fatalf("unknown gesture kind must be rejected")
	}

	if err := s.BeginGesture(GestureDrag, "t1"); err != nil {
		t.Fatalf("BeginGesture: %v", err)
	}
	if err := s.BeginGesture(GestureResize, "t2"); err != ErrGestureActive {
		t.Fatalf("second concurrent gesture: got %v", err)
	}
}

func TestGestureSnapsToGrid(t *testing.T) {
	plan := testPlan()
	plan.Canvas.ShowGrid = true
	plan.Canvas.GridSize = 20
	s := NewManager().Open(plan, 1)

	if err := s.BeginGesture(GestureDrag, "t1"); err != nil {
		t.Fatalf("BeginGesture: %v", err)
	}
	preview, err := s.UpdateGesture(GestureFrame{X: ptrF(47), Y: ptrF(53)})
	if err != nil {
		t.Fatalf("UpdateGesture: %v", err)
	}
	if preview.X != 40 || preview.Y != 60 {
		t.Fatalf("expected snap to (40,60), got (%v,%v)", preview.X, preview.Y)
	}

	// giá trị sau snap chính là giá trị được commit
	if _, err := s.EndGesture(); err != nil {
		t.Fatalf("EndGesture: %v", err)
	}
	if el := s.PlanSnapshot().ElementByID("t1"); el.X != 40 || el.Y != 60 {
		t.Fatalf("committed position must be the snapped one, got (%v,%v)", el.X, el.Y)
	}
}

func TestGestureNoSnapWhenGridHidden(t *testing.T) {
	s := openTestSession(t) // grid tắt trong testPlan

	if err := s.BeginGesture(GestureDrag, "t1"); err != nil {
		t.Fatalf("BeginGesture: %v", err)
	}
	preview, err := s.UpdateGesture(GestureFrame{X: ptrF(47.5)})
	if err != nil {
		t.Fatalf("UpdateGesture: %v", err)
	}
	if preview.X != 47.5 {
		t.Fatalf("hidden grid must not snap, got %v", preview.X)
	}
}

func TestResizeGestureIgnoresNonPositiveSizes(t *testing.T) {
	s := openTestSession(t)

	if err := s.BeginGesture(GestureResize, "t1"); err != nil {
		t.Fatalf("BeginGesture: %v", err)
	}
	preview, err := s.UpdateGesture(GestureFrame{Width: ptrF(-10), Height: ptrF(80)})
	if err != nil {
		t.Fatalf("UpdateGesture: %v", err)
	}
	if preview.Width != 40 {
		t.Fatalf("negative width frame must be ignored, got %v", preview.Width)
	}
	if preview.Height != 80 {
		t.Fatalf("valid height must apply, got %v", preview.Height)
	}
}

func TestRotateGestureNormalizes(t *testing.T) {
	s := openTestSession(t)

	if err := s.BeginGesture(GestureRotate, "t1"); err != nil {
		t.Fatalf("BeginGesture: %v", err)
	}
	preview, err := s.UpdateGesture(GestureFrame{Rotation: ptrF(-45)})
	if err != nil {
		t.Fatalf("UpdateGesture: %v", err)
	}
	if preview.Rotation != 315 {
		t.Fatalf("rotation -45 must normalize to 315, got %v", preview.Rotation)
	}

	if _, err := s.EndGesture(); err != nil {
		t.Fatalf("EndGesture: %v", err)
	}
	if el := s.PlanSnapshot().ElementByID("t1"); el.Rotation != 315 {
		t.Fatalf("committed rotation must be normalized, got %v", el.Rotation)
	}
}
