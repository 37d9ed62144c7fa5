package session

import "floorplan_manager/model"

// ElementPatch là bản cập nhật từng phần, trường nil thì giữ nguyên.
// Các cờ Clear* phân biệt "không đổi" với "xoá về null".
type ElementPatch struct {
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Width    *float64 `json:"width"`
	Height   *float64 `json:"height"`
	Rotation *float64 `json:"rotation"`

	Shape       *model.Shape `json:"shape"`
	Label       *string      `json:"label"`
	Number      *string      `json:"number"`
	Description *string      `json:"description"`

	Bookable             *bool    `json:"bookable"`
	Capacity             *int     `json:"capacity"`
	SectionId            *string  `json:"sectionId"`
	ClearSection         bool     `json:"clearSection"`
	Price                *float64 `json:"price"`
	ClearPrice           bool     `json:"clearPrice"`
	Accessible           *bool    `json:"accessible"`
	LinkedInventoryId    *string  `json:"linkedInventoryId"`
	ClearLinkedInventory bool     `json:"clearLinkedInventory"`
}

func (p ElementPatch) applyTo(e *model.Element) {
	if p.X != nil {
		e.X = *p.X
	}
	if p.Y != nil {
		e.Y = *p.Y
	}
	if p.Width != nil {
		e.Width = *p.Width
	}
	if p.Height != nil {
		e.Height = *p.Height
	}
	if p.Rotation != nil {
		e.Rotation = *p.Rotation
	}
	if p.Shape != nil {
		e.Shape = *p.Shape
	}
	if p.Label != nil {
		e.Label = *p.Label
	}
	if p.Number != nil {
		e.Number = *p.Number
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Bookable != nil {
		e.Bookable = *p.Bookable
	}
	if p.Capacity != nil {
		e.Capacity = *p.Capacity
	}
	if p.ClearSection {
		e.SectionId = nil
	} else if p.SectionId != nil {
		id := *p.SectionId
		e.SectionId = &id
	}
	if p.ClearPrice {
		e.Price = nil
	} else if p.Price != nil {
		v := *p.Price
		e.Price = &v
	}
	if p.Accessible != nil {
		e.Accessible = *p.Accessible
	}
	if p.ClearLinkedInventory {
		e.LinkedInventoryId = nil
	} else if p.LinkedInventoryId != nil {
		id := *p.LinkedInventoryId
		e.LinkedInventoryId = &id
	}
}

// CanvasPatch chỉnh cài đặt canvas: grid, kích thước, ảnh nền
type CanvasPatch struct {
	Width              *float64 `json:"width"`
	Height             *float64 `json:"height"`
	ShowGrid           *bool    `json:"showGrid"`
	GridSize           *float64 `json:"gridSize"`
	BackgroundImageUrl *string  `json:"backgroundImageUrl"`
	ClearBackground    bool     `json:"clearBackground"`
}

func (p CanvasPatch) applyTo(c *model.Canvas) {
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.ShowGrid != nil {
		c.ShowGrid = *p.ShowGrid
	}
	if p.GridSize != nil {
		c.GridSize = *p.GridSize
	}
	if p.ClearBackground {
		c.BackgroundImageUrl = nil
	} else if p.BackgroundImageUrl != nil {
		url := *p.BackgroundImageUrl
		c.BackgroundImageUrl = &url
	}
}

type SectionPatch struct {
	Name         *string  `json:"name"`
	Color        *string  `json:"color"`
	DefaultPrice *float64 `json:"defaultPrice"`
}
