package model

// Plan là bản ghi lưu trữ: metadata dạng cột, tài liệu serialize vào Layout
type Plan struct {
	DTO
	PlanId     string    `gorm:"uniqueIndex;not null" json:"planId"`
	Title      string    `gorm:"not null" validate:"required" json:"title"`
	Slug       string    `gorm:"uniqueIndex" json:"slug"`
	LocationId *uint     `json:"locationId"`
	Location   *Location `gorm:"foreignKey:LocationId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"location,omitempty"`
	IsTemplate bool      `gorm:"default:false" json:"isTemplate"`
	Layout     string    `gorm:"type:jsonb" json:"-"`
}

type Location struct {
	DTO
	Name    string `gorm:"not null" validate:"required" json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// InventoryItem: bảng demo cho hạng vé, bình thường do hệ thống bán vé sở hữu
type InventoryItem struct {
	DTO
	InventoryId string `gorm:"uniqueIndex;not null" json:"inventoryId"`
	Name        string `json:"name"`
	Capacity    int    `gorm:"not null" validate:"required,min=1" json:"capacity"`
	Sold        int    `gorm:"default:0" json:"sold"`
}

type CreateFloorPlanInput struct {
	Title        string   `json:"title" validate:"required"`
	LocationId   *uint    `json:"locationId"`
	TemplateId   *string  `json:"templateId"`
	CanvasWidth  *float64 `json:"canvasWidth" validate:"omitempty,gt=0"`
	CanvasHeight *float64 `json:"canvasHeight" validate:"omitempty,gt=0"`
	ShowGrid     *bool    `json:"showGrid"`
	GridSize     *float64 `json:"gridSize" validate:"omitempty,gt=0"`
	IsTemplate   bool     `json:"isTemplate"`
}

type EditFloorPlanInput struct {
	Title      *string `json:"title"`
	LocationId *uint   `json:"locationId"`
	IsTemplate *bool   `json:"isTemplate"`
}
