package helper

import (
	"errors"

	"floorplan_manager/database"
	"floorplan_manager/model"

	"gorm.io/gorm"
)

// ResolveLocationName: linkedLocationId chỉ là tham chiếu yếu,
// floor plan chỉ cần tên hiển thị, không đọc/ghi gì thêm của venue
func ResolveLocationName(locationId *uint) string {
	if locationId == nil {
		return ""
	}
	var loc model.Location
	if err := database.DB.First(&loc, *locationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ""
		}
		return ""
	}
	return loc.Name
}
