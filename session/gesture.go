package session

import (
	"fmt"
	"math"

	"floorplan_manager/model"
)

type GestureKind string

const (
	GestureDrag   GestureKind = "drag"
	GestureResize GestureKind = "resize"
	GestureRotate GestureKind = "rotate"
)

// GestureFrame là một pointer-move event, chỉ mang các trường liên quan đến kind
type GestureFrame struct {
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Width    *float64 `json:"width"`
	Height   *float64 `json:"height"`
	Rotation *float64 `json:"rotation"`
}

// gestureState giữ bản preview trong lúc kéo, document và history không bị đụng tới
type gestureState struct {
	kind      GestureKind
	elementId string
	original  model.Element
	preview   model.Element
}

func toolForGesture(kind GestureKind) Tool {
	switch kind {
	case GestureResize:
		return ToolResizing
	case GestureRotate:
		return ToolRotating
	default:
		return ToolDragging
	}
}

// BeginGesture: pointer-down trên một phần tử, chuyển tool từ idle sang mode tương ứng
func (s *EditSession) BeginGesture(kind GestureKind, elementId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.gesture != nil {
		return ErrGestureActive
	}
	switch kind {
	case GestureDrag, GestureResize, GestureRotate:
	default:
		return fmt.Errorf("unknown gesture kind %q", kind)
	}
	el := s.plan.ElementByID(elementId)
	if el == nil {
		return ErrElementNotFound
	}

	s.gesture = &gestureState{
		kind:      kind,
		elementId: elementId,
		original:  el.Clone(),
		preview:   el.Clone(),
	}
	s.activeTool = toolForGesture(kind)
	return nil
}

// snap làm tròn toạ độ về bội số gridSize khi grid đang bật.
// Chỉ là tiện ích tương tác: giá trị sau snap chính là giá trị được lưu.
func (s *EditSession) snap(v float64) float64 {
	if !s.plan.Canvas.ShowGrid || s.plan.Canvas.GridSize <= 0 {
		return v
	}
	return math.Round(v/s.plan.Canvas.GridSize) * s.plan.Canvas.GridSize
}

// UpdateGesture áp một frame lên bản preview, không sinh history entry
func (s *EditSession) UpdateGesture(frame GestureFrame) (*model.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.gesture == nil {
		return nil, ErrNoActiveGesture
	}
	g := s.gesture
	switch g.kind {
	case GestureDrag:
		if frame.X != nil {
			g.preview.X = s.snap(*frame.X)
		}
		if frame.Y != nil {
			g.preview.Y = s.snap(*frame.Y)
		}
	case GestureResize:
		if frame.Width != nil {
			w := s.snap(*frame.Width)
			if w > 0 {
				g.preview.Width = w
			}
		}
		if frame.Height != nil {
			h := s.snap(*frame.Height)
			if h > 0 {
				g.preview.Height = h
			}
		}
		if frame.X != nil {
			g.preview.X = s.snap(*frame.X)
		}
		if frame.Y != nil {
			g.preview.Y = s.snap(*frame.Y)
		}
	case GestureRotate:
		if frame.Rotation != nil {
			g.preview.Rotation = model.NormalizeRotation(*frame.Rotation)
		}
	}
	preview := g.preview.Clone()
	return &preview, nil
}

// EndGesture: pointer-up. Cả cử chỉ commit thành đúng một history entry,
// kéo bao nhiêu frame cũng vậy. Không di chuyển gì thì không có entry nào.
func (s *EditSession) EndGesture() (committed bool, err error) {
	s.mu.Lock()
	if s.gesture == nil {
		s.mu.Unlock()
		return false, ErrNoActiveGesture
	}
	g := s.gesture
	s.gesture = nil
	s.activeTool = ToolIdle
	changed := g.preview.X != g.original.X ||
		g.preview.Y != g.original.Y ||
		g.preview.Width != g.original.Width ||
		g.preview.Height != g.original.Height ||
		g.preview.Rotation != g.original.Rotation
	s.mu.Unlock()

	if !changed {
		return false, nil
	}
	patch := ElementPatch{
		X:        &g.preview.X,
		Y:        &g.preview.Y,
		Width:    &g.preview.Width,
		Height:   &g.preview.Height,
		Rotation: &g.preview.Rotation,
	}
	if _, err := s.UpdateElement(g.elementId, patch); err != nil {
		return false, err
	}
	return true, nil
}

// CancelGesture bỏ preview, document giữ nguyên trạng thái trước cử chỉ
func (s *EditSession) CancelGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.gesture = nil
	s.activeTool = ToolIdle
}
