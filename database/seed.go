package database

import (
	"encoding/json"
	"log"

	"floorplan_manager/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedData tạo dữ liệu mẫu: một venue, vài hạng vé demo và một floor plan template
func SeedData(db *gorm.DB) {
	var count int64
	db.Model(&model.Location{}).Count(&count)
	if count > 0 {
		return
	}

	location := model.Location{
		Name:    "Grand Ballroom",
		Address: "12 Riverside Ave",
		City:    "Hanoi",
	}
	if err := db.Create(&location).Error; err != nil {
		log.Printf("Seed location failed: %v", err)
		return
	}

	items := []model.InventoryItem{
		{InventoryId: "inv-vip-tables", Name: "VIP tables", Capacity: 40, Sold: 12},
		{InventoryId: "inv-floor-tables", Name: "Floor tables", Capacity: 80, Sold: 0},
		{InventoryId: "inv-lounge", Name: "Lounge", Capacity: 24, Sold: 24},
	}
	if err := db.Create(&items).Error; err != nil {
		log.Printf("Seed inventory failed: %v", err)
	}

	vipSection := model.Section{ID: uuid.NewString(), Name: "VIP", Color: "#8e24aa", DefaultPrice: 150}
	floorSection := model.Section{ID: uuid.NewString(), Name: "Main Floor", Color: "#1e88e5", DefaultPrice: 60}

	doc := model.FloorPlan{
		ID:    uuid.NewString(),
		Title: "Gala Night Layout",
		Canvas: model.Canvas{
			Width:    1200,
			Height:   800,
			ShowGrid: true,
			GridSize: 20,
		},
		LinkedLocationId: &location.ID,
		Sections:         []model.Section{vipSection, floorSection},
		Elements: []model.Element{
			{
				ID: uuid.NewString(), Type: model.TypeStage, Shape: model.ShapeRectangle,
				X: 450, Y: 40, Width: 300, Height: 120, Label: "Stage",
			},
			{
				ID: uuid.NewString(), Type: model.TypeTable, Shape: model.ShapeRound,
				X: 200, Y: 260, Width: 60, Height: 60, Label: "T1", Number: "1",
				Bookable: true, Capacity: 8, SectionId: &vipSection.ID,
				LinkedInventoryId: ptr("inv-vip-tables"),
			},
			{
				ID: uuid.NewString(), Type: model.TypeTable, Shape: model.ShapeRound,
				X: 360, Y: 260, Width: 60, Height: 60, Label: "T2", Number: "2",
				Bookable: true, Capacity: 8, SectionId: &vipSection.ID,
				LinkedInventoryId: ptr("inv-vip-tables"), Accessible: true,
			},
			{
				ID: uuid.NewString(), Type: model.TypeTable, Shape: model.ShapeRound,
				X: 200, Y: 480, Width: 50, Height: 50, Label: "T10", Number: "10",
				Bookable: true, Capacity: 6, SectionId: &floorSection.ID,
				LinkedInventoryId: ptr("inv-floor-tables"),
			},
			{
				ID: uuid.NewString(), Type: model.TypeDancefloor, Shape: model.ShapeSquare,
				X: 500, Y: 400, Width: 200, Height: 200, Label: "Dance Floor",
			},
			{
				ID: uuid.NewString(), Type: model.TypeBar, Shape: model.ShapeRectangle,
				X: 1000, Y: 300, Width: 120, Height: 40, Label: "Bar", Rotation: 90,
			},
		},
	}

	layout, err := json.Marshal(&doc)
	if err != nil {
		log.Printf("Seed plan marshal failed: %v", err)
		return
	}
	plan := model.Plan{
		PlanId:     doc.ID,
		Title:      doc.Title,
		Slug:       "gala-night-layout",
		LocationId: &location.ID,
		IsTemplate: true,
		Layout:     string(layout),
	}
	if err := db.Create(&plan).Error; err != nil {
		log.Printf("Seed plan failed: %v", err)
		return
	}
	log.Println("Seed data created")
}

func ptr(s string) *string { return &s }
