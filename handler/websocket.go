package handler

import (
	"context"
	"log"
	"sync"

	"floorplan_manager/database"
	"floorplan_manager/helper"

	"github.com/gofiber/contrib/websocket"
)

var (
	planViewers = make(map[string]map[*websocket.Conn]bool)
	viewerMutex sync.Mutex
)

func planChannel(planId string) string {
	return "floorplan:" + planId
}

// ActivePlanIds liệt kê các plan đang có viewer, dùng cho scheduler refresh
func ActivePlanIds() []string {
	viewerMutex.Lock()
	defer viewerMutex.Unlock()
	out := make([]string, 0, len(planViewers))
	for id := range planViewers {
		out = append(out, id)
	}
	return out
}

// AvailabilityWebsocket đẩy status map mới cho frontend mỗi lần refresh.
// Client mới connect nhận ngay trạng thái hiện tại.
func AvailabilityWebsocket(c *websocket.Conn) {
	planId := c.Params("planId")

	defer func() {
		viewerMutex.Lock()
		if planViewers[planId] != nil {
			delete(planViewers[planId], c)
			if len(planViewers[planId]) == 0 {
				delete(planViewers, planId)
			}
		}
		viewerMutex.Unlock()
		c.Close()
	}()

	viewerMutex.Lock()
	if planViewers[planId] == nil {
		planViewers[planId] = make(map[*websocket.Conn]bool)
	}
	planViewers[planId][c] = true
	viewerMutex.Unlock()

	log.Printf("New availability viewer for plan %s", planId)

	// Gửi trạng thái hiện tại cho client mới
	if plan, err := findPlan(planId); err == nil {
		if doc, err := helper.LoadPlanDocument(plan); err == nil {
			if snapshot, err := helper.FetchSnapshot(context.Background(), planId, doc); err == nil {
				c.WriteJSON(helper.ResolveAvailability(doc, snapshot))
			}
		}
	}

	// Sub kênh redis của plan
	pubsub := database.Redis.Subscribe(context.Background(), planChannel(planId))
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		viewerMutex.Lock()
		for conn := range planViewers[planId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(planViewers[planId], conn)
			}
		}
		viewerMutex.Unlock()
	}
}
