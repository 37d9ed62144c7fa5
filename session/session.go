package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"floorplan_manager/constants"
	"floorplan_manager/model"

	"github.com/google/uuid"
)

type Tool string

const (
	ToolIdle           Tool = "idle"
	ToolDragging       Tool = "dragging"
	ToolResizing       Tool = "resizing"
	ToolRotating       Tool = "rotating"
	ToolPanning        Tool = "panning"
	ToolDrawingSection Tool = "drawing-section"
)

type SelectMode string

const (
	SelectReplace SelectMode = "replace"
	SelectAdd     SelectMode = "add"
	SelectToggle  SelectMode = "toggle"
)

var (
	ErrElementNotFound = errors.New("element not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrNoActiveGesture = errors.New("no active gesture")
	ErrGestureActive   = errors.New("another gesture is in progress")
)

// EditSession giữ toàn bộ trạng thái chỉnh sửa trên một tài liệu đã load.
// Mọi mutation đi qua đây để có thể đưa vào undo history.
type EditSession struct {
	ID           string
	PlanRecordId uint

	mu         sync.Mutex
	plan       *model.FloorPlan
	selection  map[string]bool
	activeTool Tool
	history    []record
	redo       []record
	viewport   Viewport
	gesture    *gestureState
	dirty      bool
	lastActive time.Time
}

func newEditSession(plan *model.FloorPlan, recordId uint) *EditSession {
	return &EditSession{
		ID:           uuid.NewString(),
		PlanRecordId: recordId,
		plan:         plan,
		selection:    make(map[string]bool),
		activeTool:   ToolIdle,
		viewport:     Viewport{Zoom: 1},
		lastActive:   time.Now(),
	}
}

func (s *EditSession) touch() {
	s.lastActive = time.Now()
}

// PlanSnapshot trả về bản deep-copy để render hoặc save,
// save đang chạy không chặn các edit tiếp theo.
func (s *EditSession) PlanSnapshot() *model.FloorPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Clone()
}

func (s *EditSession) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkSaved được gọi sau khi save thành công; save lỗi thì giữ nguyên dirty
func (s *EditSession) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

func (s *EditSession) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *EditSession) ActiveTool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTool
}

// --- element operations ---

// AddElement tạo phần tử mới với default theo loại, đặt tâm tại pos
func (s *EditSession) AddElement(t model.ElementType, pos model.Point) (*model.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	el := defaultElement(t)
	el.ID = uuid.NewString()
	el.X = pos.X - el.Width/2
	el.Y = pos.Y - el.Height/2
	if err := el.Validate(); err != nil {
		return nil, err
	}

	s.plan.Elements = append(s.plan.Elements, el)
	s.push(&recAddElement{element: el.Clone(), index: len(s.plan.Elements) - 1})
	added := s.plan.ElementByID(el.ID)
	return added, nil
}

// UpdateElement merge một patch từng phần; inverse là snapshot đầy đủ trước đó
func (s *EditSession) UpdateElement(id string, patch ElementPatch) (*model.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	el := s.plan.ElementByID(id)
	if el == nil {
		return nil, ErrElementNotFound
	}

	before := el.Clone()
	updated := el.Clone()
	patch.applyTo(&updated)
	updated.Rotation = model.NormalizeRotation(updated.Rotation)

	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if updated.SectionId != nil && s.plan.SectionByID(*updated.SectionId) == nil {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, *updated.SectionId)
	}

	*el = updated
	s.push(&recUpdateElement{id: id, before: before, after: updated.Clone()})
	return el, nil
}

func (s *EditSession) DeleteElement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	idx := -1
	for i := range s.plan.Elements {
		if s.plan.Elements[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrElementNotFound
	}

	removed := s.plan.Elements[idx].Clone()
	s.plan.Elements = append(s.plan.Elements[:idx], s.plan.Elements[idx+1:]...)
	delete(s.selection, id)
	s.push(&recDeleteElement{element: removed, index: idx})
	return nil
}

// DuplicateElement clone kèm offset để bản sao không đè khít lên bản gốc
func (s *EditSession) DuplicateElement(id string) (*model.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	src := s.plan.ElementByID(id)
	if src == nil {
		return nil, ErrElementNotFound
	}

	dup := src.Clone()
	dup.ID = uuid.NewString()
	dup.X += constants.DUPLICATE_OFFSET
	dup.Y += constants.DUPLICATE_OFFSET
	dup.LinkedInventoryId = nil // inventory gắn theo từng phần tử, không copy

	s.plan.Elements = append(s.plan.Elements, dup)
	s.push(&recAddElement{element: dup.Clone(), index: len(s.plan.Elements) - 1})
	return s.plan.ElementByID(dup.ID), nil
}

// UpdateCanvas chỉnh cài đặt canvas, cũng là một thao tác undoable
func (s *EditSession) UpdateCanvas(patch CanvasPatch) (*model.Canvas, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	before := cloneCanvas(s.plan.Canvas)
	updated := cloneCanvas(s.plan.Canvas)
	patch.applyTo(&updated)
	if updated.Width <= 0 || updated.Height <= 0 {
		return nil, errors.New("canvas size must be positive")
	}
	if updated.GridSize < 0 {
		return nil, errors.New("gridSize must be >= 0")
	}

	s.plan.Canvas = updated
	s.push(&recUpdateCanvas{before: before, after: cloneCanvas(updated)})
	return &s.plan.Canvas, nil
}

// --- section operations ---

func (s *EditSession) AddSection(name, color string, defaultPrice float64) (*model.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if name == "" {
		return nil, errors.New("section name must not be empty")
	}
	if defaultPrice < 0 {
		return nil, errors.New("defaultPrice must be >= 0")
	}

	sec := model.Section{
		ID:           uuid.NewString(),
		Name:         name,
		Color:        color,
		DefaultPrice: defaultPrice,
	}
	s.plan.Sections = append(s.plan.Sections, sec)
	s.push(&recAddSection{section: sec.Clone(), index: len(s.plan.Sections) - 1})
	return s.plan.SectionByID(sec.ID), nil
}

func (s *EditSession) UpdateSection(id string, patch SectionPatch) (*model.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	sec := s.plan.SectionByID(id)
	if sec == nil {
		return nil, ErrSectionNotFound
	}

	before := sec.Clone()
	updated := sec.Clone()
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, errors.New("section name must not be empty")
		}
		updated.Name = *patch.Name
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}
	if patch.DefaultPrice != nil {
		if *patch.DefaultPrice < 0 {
			return nil, errors.New("defaultPrice must be >= 0")
		}
		updated.DefaultPrice = *patch.DefaultPrice
	}

	*sec = updated
	s.push(&recUpdateSection{id: id, before: before, after: updated.Clone()})
	return sec, nil
}

// DeleteSection gỡ section và gán lại sectionId các phần tử thành viên
// sang reassignTo (hoặc nil) trong đúng một bước undo.
func (s *EditSession) DeleteSection(id string, reassignTo *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	idx := -1
	for i := range s.plan.Sections {
		if s.plan.Sections[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrSectionNotFound
	}
	if reassignTo != nil {
		if *reassignTo == id {
			return errors.New("cannot reassign elements to the section being deleted")
		}
		if s.plan.SectionByID(*reassignTo) == nil {
			return fmt.Errorf("%w: %s", ErrSectionNotFound, *reassignTo)
		}
	}

	rec := &recDeleteSection{
		section:        s.plan.Sections[idx].Clone(),
		index:          idx,
		memberSections: make(map[string]*string),
		reassignTo:     reassignTo,
	}
	for i := range s.plan.Elements {
		e := &s.plan.Elements[i]
		if e.SectionId != nil && *e.SectionId == id {
			prior := *e.SectionId
			rec.memberSections[e.ID] = &prior
			if reassignTo != nil {
				to := *reassignTo
				e.SectionId = &to
			} else {
				e.SectionId = nil
			}
		}
	}
	s.plan.Sections = append(s.plan.Sections[:idx], s.plan.Sections[idx+1:]...)
	s.push(rec)
	return nil
}

// ReorderSections nhận danh sách id mới, phải là hoán vị của danh sách hiện tại
func (s *EditSession) ReorderSections(order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if len(order) != len(s.plan.Sections) {
		return errors.New("order must contain every section id exactly once")
	}
	byId := make(map[string]model.Section, len(s.plan.Sections))
	for _, sec := range s.plan.Sections {
		byId[sec.ID] = sec
	}
	reordered := make([]model.Section, 0, len(order))
	for _, id := range order {
		sec, ok := byId[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
		}
		delete(byId, id)
		reordered = append(reordered, sec)
	}

	before := make([]model.Section, len(s.plan.Sections))
	copy(before, s.plan.Sections)
	s.plan.Sections = reordered
	after := make([]model.Section, len(reordered))
	copy(after, reordered)
	s.push(&recReorderSections{before: before, after: after})
	return nil
}

// --- selection (không vào undo history) ---

func (s *EditSession) Select(ids []string, mode SelectMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for _, id := range ids {
		if s.plan.ElementByID(id) == nil {
			return fmt.Errorf("%w: %s", ErrElementNotFound, id)
		}
	}
	switch mode {
	case SelectReplace:
		s.selection = make(map[string]bool)
		for _, id := range ids {
			s.selection[id] = true
		}
	case SelectAdd:
		for _, id := range ids {
			s.selection[id] = true
		}
	case SelectToggle:
		for _, id := range ids {
			if s.selection[id] {
				delete(s.selection, id)
			} else {
				s.selection[id] = true
			}
		}
	default:
		return fmt.Errorf("unknown select mode %q", mode)
	}
	return nil
}

func (s *EditSession) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selection = make(map[string]bool)
}

func (s *EditSession) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.selection))
	for id := range s.selection {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
