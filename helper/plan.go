package helper

import (
	"encoding/json"
	"fmt"

	"floorplan_manager/model"
)

// LoadPlanDocument giải mã cột layout thành tài liệu, chuẩn hoá rotation
// và kiểm tra bất biến trước khi cho mở phiên. Document lỗi thì không mở
// phiên chỉnh sửa trên dữ liệu dở dang.
// Field lạ trong JSON được bỏ qua để tương thích về sau.
func LoadPlanDocument(record *model.Plan) (*model.FloorPlan, error) {
	var plan model.FloorPlan
	if err := json.Unmarshal([]byte(record.Layout), &plan); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	plan.ID = record.PlanId
	plan.Title = record.Title
	plan.LinkedLocationId = record.LocationId
	plan.Normalize()
	if plan.Sections == nil {
		plan.Sections = []model.Section{}
	}
	if plan.Elements == nil {
		plan.Elements = []model.Element{}
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// SerializePlanDocument ghi nguyên cả cây, không có định dạng delta
func SerializePlanDocument(plan *model.FloorPlan) (string, error) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// EmptyPlanDocument tạo tài liệu rỗng với canvas mặc định
func EmptyPlanDocument(id, title string, canvas model.Canvas) *model.FloorPlan {
	return &model.FloorPlan{
		ID:       id,
		Title:    title,
		Canvas:   canvas,
		Sections: []model.Section{},
		Elements: []model.Element{},
	}
}
