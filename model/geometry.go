package model

import "math"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// center of the element, rotation pivots around this point
func (e *Element) Center() Point {
	return Point{X: e.X + e.Width/2, Y: e.Y + e.Height/2}
}

// toLocal maps a canvas point into the element's unrotated frame,
// relative to the element center.
func (e *Element) toLocal(p Point) Point {
	c := e.Center()
	rad := -e.Rotation * math.Pi / 180
	dx := p.X - c.X
	dy := p.Y - c.Y
	return Point{
		X: dx*math.Cos(rad) - dy*math.Sin(rad),
		Y: dx*math.Sin(rad) + dy*math.Cos(rad),
	}
}

// Contains kiểm tra điểm có nằm trong phần tử không, tôn trọng shape và rotation.
// Round = ellipse nội tiếp [width,height]; square/rectangle = hình chữ nhật xoay.
func (e *Element) Contains(p Point) bool {
	l := e.toLocal(p)
	switch e.Shape {
	case ShapeRound:
		rx := e.Width / 2
		ry := e.Height / 2
		if rx <= 0 || ry <= 0 {
			return false
		}
		return (l.X*l.X)/(rx*rx)+(l.Y*l.Y)/(ry*ry) <= 1
	default:
		return math.Abs(l.X) <= e.Width/2 && math.Abs(l.Y) <= e.Height/2
	}
}

// BoundingBoxOf trả về khung bao ngoài (đã tính rotation) của một phần tử
func (p *FloorPlan) BoundingBoxOf(elementId string) (BoundingBox, bool) {
	e := p.ElementByID(elementId)
	if e == nil {
		return BoundingBox{}, false
	}
	c := e.Center()
	rad := e.Rotation * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	hw := e.Width / 2
	hh := e.Height / 2

	corners := [4]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	box := BoundingBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, corner := range corners {
		x := c.X + corner.X*cos - corner.Y*sin
		y := c.Y + corner.X*sin + corner.Y*cos
		box.MinX = math.Min(box.MinX, x)
		box.MinY = math.Min(box.MinY, y)
		box.MaxX = math.Max(box.MaxX, x)
		box.MaxY = math.Max(box.MaxY, y)
	}
	return box, true
}

// HitTest trả về id phần tử tại điểm p, nil nếu trống.
// Phần tử thêm sau (z cao hơn) thắng khi chồng lên nhau.
func (p *FloorPlan) HitTest(pt Point) *string {
	for i := len(p.Elements) - 1; i >= 0; i-- {
		if p.Elements[i].Contains(pt) {
			id := p.Elements[i].ID
			return &id
		}
	}
	return nil
}
