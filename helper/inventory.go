package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"floorplan_manager/config"
	"floorplan_manager/database"
	"floorplan_manager/model"

	"gorm.io/gorm"
)

// InventoryProvider cấp snapshot capacity/sold cho các linkedInventoryId.
// Core không quan tâm số liệu được tính hay lưu thế nào.
type InventoryProvider interface {
	Snapshot(ctx context.Context, ids []string) (model.InventorySnapshot, error)
}

// HTTPInventoryProvider gọi sang hệ thống bán vé qua REST
type HTTPInventoryProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPInventoryProvider(baseURL string) *HTTPInventoryProvider {
	return &HTTPInventoryProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPInventoryProvider) Snapshot(ctx context.Context, ids []string) (model.InventorySnapshot, error) {
	if len(ids) == 0 {
		return model.InventorySnapshot{}, nil
	}
	endpoint := fmt.Sprintf("%s/api/v1/inventory?ids=%s", p.BaseURL, url.QueryEscape(strings.Join(ids, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticketing returned status %d", resp.StatusCode)
	}

	var snapshot model.InventorySnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// DBInventoryProvider đọc bảng inventory_items nội bộ, dùng khi chạy standalone
type DBInventoryProvider struct {
	DB *gorm.DB
}

func (p *DBInventoryProvider) Snapshot(ctx context.Context, ids []string) (model.InventorySnapshot, error) {
	snapshot := model.InventorySnapshot{}
	if len(ids) == 0 {
		return snapshot, nil
	}
	var items []model.InventoryItem
	if err := p.DB.WithContext(ctx).Where("inventory_id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		snapshot[item.InventoryId] = model.InventoryCount{Capacity: item.Capacity, Sold: item.Sold}
	}
	return snapshot, nil
}

// ActiveInventoryProvider: có TICKETING_BASE_URL thì gọi collaborator,
// không thì rơi về bảng demo trong DB
func ActiveInventoryProvider() InventoryProvider {
	if base := config.Config("TICKETING_BASE_URL"); base != "" {
		return NewHTTPInventoryProvider(base)
	}
	return &DBInventoryProvider{DB: database.DB}
}

// LinkedInventoryIds gom các id inventory mà tài liệu tham chiếu
func LinkedInventoryIds(plan *model.FloorPlan) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range plan.Elements {
		e := &plan.Elements[i]
		if !e.Bookable || e.LinkedInventoryId == nil {
			continue
		}
		if !seen[*e.LinkedInventoryId] {
			seen[*e.LinkedInventoryId] = true
			out = append(out, *e.LinkedInventoryId)
		}
	}
	return out
}

const snapshotCacheTTL = 30 * time.Minute

func snapshotCacheKey(planId string) string {
	return "floorplan:snapshot:" + planId
}

// FetchSnapshot lấy snapshot mới cho tài liệu và cache lại bản tốt gần nhất.
// Fetch lỗi thì trả bản cache cũ (stale nhưng nhất quán) thay vì xoá trắng availability.
func FetchSnapshot(ctx context.Context, planId string, plan *model.FloorPlan) (model.InventorySnapshot, error) {
	ids := LinkedInventoryIds(plan)
	snapshot, err := ActiveInventoryProvider().Snapshot(ctx, ids)
	if err == nil {
		if raw, marshalErr := json.Marshal(snapshot); marshalErr == nil {
			database.Redis.Set(ctx, snapshotCacheKey(planId), raw, snapshotCacheTTL)
		}
		return snapshot, nil
	}

	raw, cacheErr := database.Redis.Get(ctx, snapshotCacheKey(planId)).Bytes()
	if cacheErr != nil {
		return nil, err
	}
	var cached model.InventorySnapshot
	if jsonErr := json.Unmarshal(raw, &cached); jsonErr != nil {
		return nil, err
	}
	return cached, nil
}
