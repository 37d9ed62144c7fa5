package constants

const (
	ERROR_INTERNAL_ERROR     = "Internal server error"
	DATA_INPUT_IS_NOT_NUMBER = "Parameter must be a number"
	INVALID_INPUT            = "Invalid input"

	PLAN_NOT_FOUND     = "Floor plan not found"
	LOCATION_NOT_FOUND = "Location not found"
	SESSION_NOT_FOUND  = "Edit session not found or expired"
	ELEMENT_NOT_FOUND  = "Element not found"
	SECTION_NOT_FOUND  = "Section not found"

	BOOKING_SOLD_OUT     = "This spot is sold out"
	BOOKING_NOT_ENOUGH   = "Not enough seats remaining"
	BOOKING_NOT_BOOKABLE = "This element cannot be booked"
	BOOKING_NO_PROVIDER  = "Online booking is not available, please contact the venue"
)

// Giới hạn chung cho canvas và phiên chỉnh sửa
const (
	MIN_ZOOM = 0.25
	MAX_ZOOM = 4.0

	MAX_HISTORY = 100

	MAX_CANVAS_SIZE = 10000.0

	DUPLICATE_OFFSET = 20.0
)
