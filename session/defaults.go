package session

import "floorplan_manager/model"

// defaultElement trả về phần tử mới với kích thước/shape mặc định theo loại.
// Bàn mặc định là bookable 4 chỗ, các loại còn lại chỉ để trang trí.
func defaultElement(t model.ElementType) model.Element {
	el := model.Element{
		Type:  t,
		Shape: model.ShapeRectangle,
	}
	switch t {
	case model.TypeTable:
		el.Shape = model.ShapeRound
		el.Width, el.Height = 40, 40
		el.Bookable = true
		el.Capacity = 4
	case model.TypeStage:
		el.Width, el.Height = 200, 100
		el.Label = "Stage"
	case model.TypeBar:
		el.Width, el.Height = 120, 40
		el.Label = "Bar"
	case model.TypeEntrance:
		el.Width, el.Height = 60, 20
		el.Label = "Entrance"
	case model.TypeLounge:
		el.Width, el.Height = 100, 80
		el.Bookable = true
		el.Capacity = 6
	case model.TypeDancefloor:
		el.Width, el.Height = 150, 150
		el.Shape = model.ShapeSquare
	case model.TypeSectionMarker:
		el.Width, el.Height = 30, 30
		el.Shape = model.ShapeSquare
	case model.TypeAmenity:
		el.Width, el.Height = 40, 40
	default:
		el.Type = model.TypeCustom
		el.Width, el.Height = 50, 50
	}
	return el
}
