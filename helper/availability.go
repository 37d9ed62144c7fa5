package helper

import (
	"floorplan_manager/model"
)

// ResolveAvailability là hàm thuần: (document, snapshot) -> status map.
// Không giữ state nên server pre-render và client refresh dùng chung một logic.
// Mỗi lần gọi tương ứng đúng một snapshot, không trộn hai snapshot với nhau.
func ResolveAvailability(plan *model.FloorPlan, snapshot model.InventorySnapshot) model.StatusMap {
	out := model.StatusMap{
		Elements: make(map[string]model.ElementStatus),
		Sections: make(map[string]model.AvailabilityStatus),
	}

	for i := range plan.Elements {
		e := &plan.Elements[i]
		if !e.Bookable {
			continue
		}

		st := model.ElementStatus{Status: model.StatusAvailable, Capacity: e.Capacity, Remaining: e.Capacity}
		if e.LinkedInventoryId != nil {
			counts, ok := snapshot[*e.LinkedInventoryId]
			if !ok {
				// hạng vé đã bị xoá phía ticketing: coi là available kèm cảnh báo
				out.Warnings = append(out.Warnings, e.ID)
			} else {
				remaining := e.Capacity - counts.Sold
				if remaining < 0 {
					remaining = 0
				}
				st.Remaining = remaining
				switch {
				case remaining <= 0:
					st.Status = model.StatusSoldOut
				case remaining == e.Capacity:
					st.Status = model.StatusAvailable
				default:
					st.Status = model.StatusPartial
				}
			}
		}
		out.Elements[e.ID] = st
	}

	for _, sec := range plan.Sections {
		out.Sections[sec.ID] = reduceSection(sectionStatuses(plan, &out, sec.ID))
	}
	return out
}

func sectionStatuses(plan *model.FloorPlan, m *model.StatusMap, sectionId string) []model.AvailabilityStatus {
	var out []model.AvailabilityStatus
	for i := range plan.Elements {
		e := &plan.Elements[i]
		if !e.Bookable || e.SectionId == nil || *e.SectionId != sectionId {
			continue
		}
		out = append(out, m.Elements[e.ID].Status)
	}
	return out
}

// reduceSection gom trạng thái section cho legend: tất cả sold_out -> sold_out,
// có partial hoặc trộn available/sold_out -> partial, còn lại available
func reduceSection(statuses []model.AvailabilityStatus) model.AvailabilityStatus {
	if len(statuses) == 0 {
		return model.StatusAvailable
	}
	anyPartial := false
	anySoldOut := false
	anyAvailable := false
	for _, st := range statuses {
		switch st {
		case model.StatusSoldOut:
			anySoldOut = true
		case model.StatusPartial:
			anyPartial = true
		default:
			anyAvailable = true
		}
	}
	switch {
	case anySoldOut && !anyPartial && !anyAvailable:
		return model.StatusSoldOut
	case anyPartial, anySoldOut && anyAvailable:
		return model.StatusPartial
	default:
		return model.StatusAvailable
	}
}

// EffectivePrice: giá override của phần tử, không có thì rơi về defaultPrice
// của section, không thuộc section nào thì 0
func EffectivePrice(plan *model.FloorPlan, e *model.Element) float64 {
	if e.Price != nil {
		return *e.Price
	}
	if e.SectionId != nil {
		if sec := plan.SectionByID(*e.SectionId); sec != nil {
			return sec.DefaultPrice
		}
	}
	return 0
}
