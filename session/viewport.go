package session

import "floorplan_manager/constants"

// Viewport chỉ là trạng thái hiển thị: không vào undo history, không được lưu
type Viewport struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

func (s *EditSession) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// SetZoom clamp về [25%, 400%]
func (s *EditSession) SetZoom(zoom float64) Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if zoom < constants.MIN_ZOOM {
		zoom = constants.MIN_ZOOM
	}
	if zoom > constants.MAX_ZOOM {
		zoom = constants.MAX_ZOOM
	}
	s.viewport.Zoom = zoom
	return s.viewport
}

func (s *EditSession) Pan(dx, dy float64) Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.viewport.PanX += dx
	s.viewport.PanY += dy
	return s.viewport
}
