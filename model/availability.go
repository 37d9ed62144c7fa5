package model

// AvailabilityStatus is a three-way lattice: available < partial < sold_out.
type AvailabilityStatus string

const (
	StatusAvailable AvailabilityStatus = "available"
	StatusPartial   AvailabilityStatus = "partial"
	StatusSoldOut   AvailabilityStatus = "sold_out"
)

func (s AvailabilityStatus) rank() int {
	switch s {
	case StatusPartial:
		return 1
	case StatusSoldOut:
		return 2
	default:
		return 0
	}
}

// Worse trả về trạng thái xấu hơn giữa hai trạng thái
func (s AvailabilityStatus) Worse(o AvailabilityStatus) AvailabilityStatus {
	if o.rank() > s.rank() {
		return o
	}
	return s
}

// InventoryCount là snapshot sức chứa/đã bán của một hạng vé bên ngoài
type InventoryCount struct {
	Capacity int `json:"capacity"`
	Sold     int `json:"sold"`
}

// InventorySnapshot: linkedInventoryId -> counts, thay thế nguyên khối mỗi lần refresh
type InventorySnapshot map[string]InventoryCount

type ElementStatus struct {
	Status    AvailabilityStatus `json:"status"`
	Remaining int                `json:"remaining"`
	Capacity  int                `json:"capacity"`
}

// StatusMap là kết quả của availability resolver cho một tài liệu
type StatusMap struct {
	Elements map[string]ElementStatus      `json:"elements"`
	Sections map[string]AvailabilityStatus `json:"sections"`
	// Warnings liệt kê các element trỏ tới inventory không còn tồn tại
	Warnings []string `json:"warnings,omitempty"`
}
