package model

// BookingRequest là payload chuyển giao cho hệ thống đặt chỗ/bán vé bên ngoài
type BookingRequest struct {
	ElementId      string  `json:"elementId" validate:"required"`
	SectionId      *string `json:"sectionId"`
	SeatCount      int     `json:"seatCount" validate:"required,min=1"`
	RequestedPrice float64 `json:"requestedPrice" validate:"gte=0"`
}

type BookingInput struct {
	ElementId string `json:"elementId" validate:"required"`
	SeatCount int    `json:"seatCount" validate:"required,min=1"`
}

// BookingResult: hoặc RedirectUrl để tiếp tục flow, hoặc Rejected kèm lý do
type BookingResult struct {
	RedirectUrl string         `json:"redirectUrl,omitempty"`
	Rejected    bool           `json:"rejected"`
	Reason      string         `json:"reason,omitempty"`
	Element     *ElementStatus `json:"element,omitempty"`
}

type InquiryInput struct {
	PlanId    string `json:"planId" validate:"required"`
	ElementId string `json:"elementId"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message" validate:"required"`
}
