package helper

import (
	"testing"

	"floorplan_manager/model"
)

func strPtr(s string) *string { return &s }

func availabilityPlan() *model.FloorPlan {
	return &model.FloorPlan{
		ID:     "plan-1",
		Canvas: model.Canvas{Width: 800, Height: 600},
		Sections: []model.Section{
			{ID: "vip", Name: "VIP", DefaultPrice: 150},
			{ID: "ga", Name: "General", DefaultPrice: 50},
			{ID: "empty", Name: "Chưa mở bán", DefaultPrice: 0},
		},
		Elements: []model.Element{
			{ID: "t1", Shape: model.ShapeRound, X: 0, Y: 0, Width: 40, Height: 40,
				Bookable: true, Capacity: 10, SectionId: strPtr("vip"), LinkedInventoryId: strPtr("inv-a")},
			{ID: "t2", Shape: model.ShapeRound, X: 50, Y: 0, Width: 40, Height: 40,
				Bookable: true, Capacity: 10, SectionId: strPtr("vip"), LinkedInventoryId: strPtr("inv-b")},
			{ID: "t3", Shape: model.ShapeRound, X: 100, Y: 0, Width: 40, Height: 40,
				Bookable: true, Capacity: 10, SectionId: strPtr("ga"), LinkedInventoryId: strPtr("inv-c")},
			{ID: "stage", Shape: model.ShapeRectangle, X: 200, Y: 0, Width: 200, Height: 100},
		},
	}
}

func TestResolveAvailabilityStatuses(t *testing.T) {
	plan := availabilityPlan()
	snapshot := model.InventorySnapshot{
		"inv-a": {Capacity: 10, Sold: 0},
		"inv-b": {Capacity: 10, Sold: 4},
		"inv-c": {Capacity: 10, Sold: 10},
	}

	m := ResolveAvailability(plan, snapshot)

	cases := []struct {
		id        string
		status    model.AvailabilityStatus
		remaining int
	}{
		{"t1", model.StatusAvailable, 10},
		{"t2", model.StatusPartial, 6},
		{"t3", model.StatusSoldOut, 0},
	}
	for _, c := range cases {
		st, ok := m.Elements[c.id]
		if !ok {
			t.Fatalf("missing status for %s", c.id)
		}
		if st.Status != c.status || st.Remaining != c.remaining {
			t.Fatalf("%s: got %s remaining %d, want %s remaining %d",
				c.id, st.Status, st.Remaining, c.status, c.remaining)
		}
	}
	if _, ok := m.Elements["stage"]; ok {
		t.Fatalf("non-bookable elements must not get a status")
	}
	if len(m.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", m.Warnings)
	}
}

func TestResolveAvailabilityClampsOversold(t *testing.T) {
	plan := availabilityPlan()
	snapshot := model.InventorySnapshot{
		"inv-a": {Capacity: 10, Sold: 15},
		"inv-b": {Capacity: 10, Sold: 0},
		"inv-c": {Capacity: 10, Sold: 0},
	}

	m := ResolveAvailability(plan, snapshot)
	st := m.Elements["t1"]
	if st.Remaining != 0 || st.Status != model.StatusSoldOut {
		t.Fatalf("oversold must clamp to 0/sold_out, got %+v", st)
	}
}

func TestResolveAvailabilityMissingInventory(t *testing.T) {
	plan := availabilityPlan()
	// inv-b đã bị xoá phía ticketing
	snapshot := model.InventorySnapshot{
		"inv-a": {Capacity: 10, Sold: 0},
		"inv-c": {Capacity: 10, Sold: 0},
	}

	m := ResolveAvailability(plan, snapshot)
	st := m.Elements["t2"]
	if st.Status != model.StatusAvailable || st.Remaining != 10 {
		t.Fatalf("dangling inventory link must fall back to available, got %+v", st)
	}
	if len(m.Warnings) != 1 || m.Warnings[0] != "t2" {
		t.Fatalf("expected warning for t2, got %v", m.Warnings)
	}
}

func TestResolveAvailabilityUnlinkedElement(t *testing.T) {
	plan := availabilityPlan()
	plan.Elements[0].LinkedInventoryId = nil

	m := ResolveAvailability(plan, model.InventorySnapshot{})
	st := m.Elements["t1"]
	if st.Status != model.StatusAvailable || st.Remaining != 10 {
		t.Fatalf("element without inventory link must be available at full capacity, got %+v", st)
	}
	if len(m.Warnings) != 0 {
		t.Fatalf("no warning for an intentionally unlinked element, got %v", m.Warnings)
	}
}

func TestSectionAggregation(t *testing.T) {
	plan := availabilityPlan()

	run := func(soldA, soldB, soldC int) model.StatusMap {
		return ResolveAvailability(plan, model.InventorySnapshot{
			"inv-a": {Capacity: 10, Sold: soldA},
			"inv-b": {Capacity: 10, Sold: soldB},
			"inv-c": {Capacity: 10, Sold: soldC},
		})
	}

	// vip = {t1, t2}
	if m := run(0, 0, 0); m.Sections["vip"] != model.StatusAvailable {
		t.Fatalf("[available available] -> available, got %s", m.Sections["vip"])
	}
	if m := run(0, 4, 0); m.Sections["vip"] != model.StatusPartial {
		t.Fatalf("[available partial] -> partial, got %s", m.Sections["vip"])
	}
	if m := run(0, 10, 0); m.Sections["vip"] != model.StatusPartial {
		t.Fatalf("mixed available/sold_out -> partial, got %s", m.Sections["vip"])
	}
	if m := run(10, 10, 0); m.Sections["vip"] != model.StatusSoldOut {
		t.Fatalf("[sold_out sold_out] -> sold_out, got %s", m.Sections["vip"])
	}
	// section không có phần tử bookable nào
	if m := run(0, 0, 0); m.Sections["empty"] != model.StatusAvailable {
		t.Fatalf("empty section -> available, got %s", m.Sections["empty"])
	}
}

func TestWorse(t *testing.T) {
	if got := model.StatusAvailable.Worse(model.StatusPartial); got != model.StatusPartial {
		t.Fatalf("available.Worse(partial) = %s", got)
	}
	if got := model.StatusSoldOut.Worse(model.StatusPartial); got != model.StatusSoldOut {
		t.Fatalf("sold_out.Worse(partial) = %s", got)
	}
}

func TestEffectivePrice(t *testing.T) {
	plan := availabilityPlan()
	override := 200.0
	plan.Elements[0].Price = &override

	if got := EffectivePrice(plan, &plan.Elements[0]); got != 200 {
		t.Fatalf("element override must win, got %v", got)
	}
	if got := EffectivePrice(plan, &plan.Elements[1]); got != 150 {
		t.Fatalf("section defaultPrice must apply, got %v", got)
	}

	plan.Elements[1].SectionId = nil
	if got := EffectivePrice(plan, &plan.Elements[1]); got != 0 {
		t.Fatalf("no override, no section -> 0, got %v", got)
	}
}
