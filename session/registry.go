package session

import (
	"sync"
	"time"

	"floorplan_manager/model"
)

// Manager giữ các phiên chỉnh sửa đang mở, mỗi phiên độc lập trên bản copy riêng.
// Hai phiên cùng một tài liệu không chia sẻ state, last-write-wins khi save.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*EditSession
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*EditSession)}
}

// Open tạo phiên mới trên bản clone của tài liệu đã load
func (m *Manager) Open(plan *model.FloorPlan, recordId uint) *EditSession {
	s := newEditSession(plan.Clone(), recordId)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) *EditSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// SweepIdle đóng các phiên không hoạt động quá maxIdle, trả về số phiên đã đóng
func (m *Manager) SweepIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
