package model

import "github.com/jinzhu/copier"

// Clone deep-copy một phần tử, kể cả các trường con trỏ
func (e Element) Clone() Element {
	var out Element
	copier.CopyWithOption(&out, &e, copier.Option{DeepCopy: true})
	return out
}

func (s Section) Clone() Section {
	var out Section
	copier.CopyWithOption(&out, &s, copier.Option{DeepCopy: true})
	return out
}

// Clone deep-copy toàn bộ tài liệu, dùng cho snapshot undo và save
func (p *FloorPlan) Clone() *FloorPlan {
	out := &FloorPlan{
		ID:     p.ID,
		Title:  p.Title,
		Canvas: p.Canvas,
	}
	if p.Canvas.BackgroundImageUrl != nil {
		url := *p.Canvas.BackgroundImageUrl
		out.Canvas.BackgroundImageUrl = &url
	}
	if p.LinkedLocationId != nil {
		id := *p.LinkedLocationId
		out.LinkedLocationId = &id
	}
	out.Sections = make([]Section, 0, len(p.Sections))
	for _, s := range p.Sections {
		out.Sections = append(out.Sections, s.Clone())
	}
	out.Elements = make([]Element, 0, len(p.Elements))
	for _, e := range p.Elements {
		out.Elements = append(out.Elements, e.Clone())
	}
	return out
}
