package session

import (
	"floorplan_manager/constants"
	"floorplan_manager/model"
)

// record là một thao tác đã áp dụng, biết cách tự đảo ngược và áp dụng lại
type record interface {
	revert(s *EditSession)
	reapply(s *EditSession)
}

// push ghi record vào history, xoá redo stack và đánh dấu dirty.
// History có giới hạn, đầy thì bỏ record cũ nhất.
func (s *EditSession) push(r record) {
	s.history = append(s.history, r)
	if len(s.history) > constants.MAX_HISTORY {
		s.history = s.history[1:]
	}
	s.redo = nil
	s.dirty = true
}

// Undo đảo ngược thao tác gần nhất, stack rỗng là no-op chứ không phải lỗi
func (s *EditSession) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if len(s.history) == 0 {
		return false
	}
	r := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	r.revert(s)
	s.redo = append(s.redo, r)
	s.dirty = true
	return true
}

func (s *EditSession) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if len(s.redo) == 0 {
		return false
	}
	r := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	r.reapply(s)
	s.history = append(s.history, r)
	s.dirty = true
	return true
}

func (s *EditSession) HistoryDepth() (undo, redo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history), len(s.redo)
}

func insertElement(p *model.FloorPlan, e model.Element, index int) {
	if index < 0 || index > len(p.Elements) {
		index = len(p.Elements)
	}
	p.Elements = append(p.Elements, model.Element{})
	copy(p.Elements[index+1:], p.Elements[index:])
	p.Elements[index] = e
}

func removeElement(p *model.FloorPlan, id string) {
	for i := range p.Elements {
		if p.Elements[i].ID == id {
			p.Elements = append(p.Elements[:i], p.Elements[i+1:]...)
			return
		}
	}
}

func insertSection(p *model.FloorPlan, sec model.Section, index int) {
	if index < 0 || index > len(p.Sections) {
		index = len(p.Sections)
	}
	p.Sections = append(p.Sections, model.Section{})
	copy(p.Sections[index+1:], p.Sections[index:])
	p.Sections[index] = sec
}

func removeSection(p *model.FloorPlan, id string) {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			p.Sections = append(p.Sections[:i], p.Sections[i+1:]...)
			return
		}
	}
}

// --- element records ---

type recAddElement struct {
	element model.Element
	index   int
}

func (r *recAddElement) revert(s *EditSession) {
	removeElement(s.plan, r.element.ID)
	delete(s.selection, r.element.ID)
}

func (r *recAddElement) reapply(s *EditSession) {
	insertElement(s.plan, r.element.Clone(), r.index)
}

type recUpdateElement struct {
	id     string
	before model.Element
	after  model.Element
}

func (r *recUpdateElement) revert(s *EditSession) {
	if e := s.plan.ElementByID(r.id); e != nil {
		*e = r.before.Clone()
	}
}

func (r *recUpdateElement) reapply(s *EditSession) {
	if e := s.plan.ElementByID(r.id); e != nil {
		*e = r.after.Clone()
	}
}

type recDeleteElement struct {
	element model.Element
	index   int
}

func (r *recDeleteElement) revert(s *EditSession) {
	insertElement(s.plan, r.element.Clone(), r.index)
}

func (r *recDeleteElement) reapply(s *EditSession) {
	removeElement(s.plan, r.element.ID)
	delete(s.selection, r.element.ID)
}

// --- section records ---

type recAddSection struct {
	section model.Section
	index   int
}

func (r *recAddSection) revert(s *EditSession) {
	removeSection(s.plan, r.section.ID)
}

func (r *recAddSection) reapply(s *EditSession) {
	insertSection(s.plan, r.section.Clone(), r.index)
}

type recUpdateSection struct {
	id     string
	before model.Section
	after  model.Section
}

func (r *recUpdateSection) revert(s *EditSession) {
	if sec := s.plan.SectionByID(r.id); sec != nil {
		*sec = r.before.Clone()
	}
}

func (r *recUpdateSection) reapply(s *EditSession) {
	if sec := s.plan.SectionByID(r.id); sec != nil {
		*sec = r.after.Clone()
	}
}

// recDeleteSection gộp việc xoá section và gán lại sectionId các phần tử
// thành một record duy nhất, một lần undo trả lại cả hai.
type recDeleteSection struct {
	section        model.Section
	index          int
	memberSections map[string]*string
	reassignTo     *string
}

func (r *recDeleteSection) revert(s *EditSession) {
	insertSection(s.plan, r.section.Clone(), r.index)
	for id, prior := range r.memberSections {
		if e := s.plan.ElementByID(id); e != nil {
			if prior != nil {
				v := *prior
				e.SectionId = &v
			} else {
				e.SectionId = nil
			}
		}
	}
}

func (r *recDeleteSection) reapply(s *EditSession) {
	removeSection(s.plan, r.section.ID)
	for id := range r.memberSections {
		if e := s.plan.ElementByID(id); e != nil {
			if r.reassignTo != nil {
				v := *r.reassignTo
				e.SectionId = &v
			} else {
				e.SectionId = nil
			}
		}
	}
}

type recUpdateCanvas struct {
	before model.Canvas
	after  model.Canvas
}

func (r *recUpdateCanvas) revert(s *EditSession) {
	s.plan.Canvas = cloneCanvas(r.before)
}

func (r *recUpdateCanvas) reapply(s *EditSession) {
	s.plan.Canvas = cloneCanvas(r.after)
}

func cloneCanvas(c model.Canvas) model.Canvas {
	out := c
	if c.BackgroundImageUrl != nil {
		url := *c.BackgroundImageUrl
		out.BackgroundImageUrl = &url
	}
	return out
}

type recReorderSections struct {
	before []model.Section
	after  []model.Section
}

func (r *recReorderSections) revert(s *EditSession) {
	s.plan.Sections = make([]model.Section, len(r.before))
	copy(s.plan.Sections, r.before)
}

func (r *recReorderSections) reapply(s *EditSession) {
	s.plan.Sections = make([]model.Section, len(r.after))
	copy(s.plan.Sections, r.after)
}
