package helper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"floorplan_manager/config"
	"floorplan_manager/model"
)

// ReservationConfigured cho biết có hệ thống đặt chỗ/bán vé phía sau không.
// Không có thì booking panel rơi về thông báo liên hệ, không phải lỗi.
func ReservationConfigured() bool {
	return config.Config("RESERVATION_BASE_URL") != ""
}

var reservationClient = &http.Client{Timeout: 15 * time.Second}

// SubmitBooking chuyển giao yêu cầu đặt chỗ cho collaborator.
// Trả về URL để tiếp tục flow, hoặc reason khi bị từ chối đồng bộ
// (ví dụ chỗ vừa bán hết giữa lúc click và confirm).
func SubmitBooking(ctx context.Context, req model.BookingRequest) (redirectUrl string, rejection string, err error) {
	base := strings.TrimRight(config.Config("RESERVATION_BASE_URL"), "/")
	if base == "" {
		return "", "", fmt.Errorf("no reservation collaborator configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/v1/reservations", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := reservationClient.Do(httpReq)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var out struct {
			RedirectUrl string `json:"redirectUrl"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", "", err
		}
		return out.RedirectUrl, "", nil
	case http.StatusConflict:
		var out struct {
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Reason == "" {
			out.Reason = "booking rejected"
		}
		return "", out.Reason, nil
	default:
		return "", "", fmt.Errorf("reservation collaborator returned status %d", resp.StatusCode)
	}
}
