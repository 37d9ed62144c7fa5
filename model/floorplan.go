package model

import (
	"errors"
	"fmt"
	"math"
)

type ElementType string

const (
	TypeTable         ElementType = "table"
	TypeSectionMarker ElementType = "section-marker"
	TypeStage         ElementType = "stage"
	TypeBar           ElementType = "bar"
	TypeEntrance      ElementType = "entrance"
	TypeLounge        ElementType = "lounge"
	TypeDancefloor    ElementType = "dancefloor"
	TypeAmenity       ElementType = "amenity"
	TypeCustom        ElementType = "custom"
)

type Shape string

const (
	ShapeRound     Shape = "round"
	ShapeSquare    Shape = "square"
	ShapeRectangle Shape = "rectangle"
)

// Canvas dùng đơn vị logic, không phụ thuộc zoom
type Canvas struct {
	Width              float64 `json:"width" validate:"required,gt=0"`
	Height             float64 `json:"height" validate:"required,gt=0"`
	ShowGrid           bool    `json:"showGrid"`
	GridSize           float64 `json:"gridSize"`
	BackgroundImageUrl *string `json:"backgroundImageUrl"`
}

type Section struct {
	ID           string  `json:"id"`
	Name         string  `json:"name" validate:"required"`
	Color        string  `json:"color"`
	DefaultPrice float64 `json:"defaultPrice" validate:"gte=0"`
}

type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation"`
	Shape    Shape       `json:"shape"`
	Label    string      `json:"label"`
	Number   string      `json:"number"`

	// Các trường dưới chỉ có ý nghĩa khi Bookable = true
	Bookable          bool     `json:"bookable"`
	Capacity          int      `json:"capacity"`
	SectionId         *string  `json:"sectionId"`
	Price             *float64 `json:"price"`
	Accessible        bool     `json:"accessible"`
	LinkedInventoryId *string  `json:"linkedInventoryId"`

	Description string `json:"description"`
}

type FloorPlan struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Canvas           Canvas    `json:"canvas"`
	LinkedLocationId *uint     `json:"linkedLocationId"`
	Sections         []Section `json:"sections"`
	Elements         []Element `json:"elements"`
}

// NormalizeRotation đưa góc quay về [0, 360)
func NormalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}

func (p *FloorPlan) ElementByID(id string) *Element {
	for i := range p.Elements {
		if p.Elements[i].ID == id {
			return &p.Elements[i]
		}
	}
	return nil
}

func (p *FloorPlan) SectionByID(id string) *Section {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}

// ElementsInSection xây index theo yêu cầu, section không giữ danh sách phần tử
func (p *FloorPlan) ElementsInSection(sectionId string) []*Element {
	var out []*Element
	for i := range p.Elements {
		e := &p.Elements[i]
		if e.SectionId != nil && *e.SectionId == sectionId {
			out = append(out, e)
		}
	}
	return out
}

func (e *Element) Validate() error {
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Errorf("element %s: width and height must be positive", e.ID)
	}
	switch e.Shape {
	case ShapeRound, ShapeSquare, ShapeRectangle:
	default:
		return fmt.Errorf("element %s: unknown shape %q", e.ID, e.Shape)
	}
	if e.Bookable && e.Capacity < 1 {
		return fmt.Errorf("element %s: bookable element needs capacity >= 1", e.ID)
	}
	return nil
}

// Validate kiểm tra các bất biến của tài liệu sau khi load hoặc trước khi save
func (p *FloorPlan) Validate() error {
	if p.Canvas.Width <= 0 || p.Canvas.Height <= 0 {
		return errors.New("canvas size must be positive")
	}
	sections := make(map[string]bool, len(p.Sections))
	for _, s := range p.Sections {
		if sections[s.ID] {
			return fmt.Errorf("duplicate section id %s", s.ID)
		}
		if s.DefaultPrice < 0 {
			return fmt.Errorf("section %s: defaultPrice must be >= 0", s.ID)
		}
		sections[s.ID] = true
	}
	seen := make(map[string]bool, len(p.Elements))
	for i := range p.Elements {
		e := &p.Elements[i]
		if seen[e.ID] {
			return fmt.Errorf("duplicate element id %s", e.ID)
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			return err
		}
		if e.SectionId != nil && !sections[*e.SectionId] {
			return fmt.Errorf("element %s references missing section %s", e.ID, *e.SectionId)
		}
	}
	return nil
}

// Normalize sửa rotation về [0, 360) cho toàn bộ phần tử (gọi sau khi load)
func (p *FloorPlan) Normalize() {
	for i := range p.Elements {
		p.Elements[i].Rotation = NormalizeRotation(p.Elements[i].Rotation)
	}
}
