package helper

import (
	"strings"
	"testing"

	"floorplan_manager/model"
)

func renderPlan() *model.FloorPlan {
	return &model.FloorPlan{
		ID:     "plan-1",
		Canvas: model.Canvas{Width: 400, Height: 300, ShowGrid: true, GridSize: 100},
		Sections: []model.Section{
			{ID: "vip", Name: "VIP", Color: "#ffd700", DefaultPrice: 150},
		},
		Elements: []model.Element{
			{ID: "t1", Type: model.TypeTable, Shape: model.ShapeRound, X: 10, Y: 10, Width: 40, Height: 40,
				Bookable: true, Capacity: 4, SectionId: strPtr("vip"), Number: "12"},
			{ID: "stage", Type: model.TypeStage, Shape: model.ShapeRectangle, X: 200, Y: 0, Width: 150, Height: 80,
				Rotation: 90, Label: "Stage <A>"},
		},
	}
}

func TestRenderSVGShapesAndColors(t *testing.T) {
	svg := RenderSVG(renderPlan(), RenderOptions{})

	if !strings.Contains(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatalf("missing svg root element")
	}
	if !strings.Contains(svg, `<ellipse cx="30" cy="30" rx="20" ry="20"`) {
		t.Fatalf("round element must render as an ellipse:\n%s", svg)
	}
	if !strings.Contains(svg, `<rect x="200" y="0" width="150" height="80"`) {
		t.Fatalf("rectangle element must render as a rect:\n%s", svg)
	}
	if !strings.Contains(svg, `fill="#ffd700"`) {
		t.Fatalf("element must take its section color")
	}
	if !strings.Contains(svg, `transform="rotate(90 275 40)"`) {
		t.Fatalf("rotated element must carry a rotate transform around its center:\n%s", svg)
	}
	if !strings.Contains(svg, `data-element-id="t1"`) {
		t.Fatalf("elements must be addressable by data-element-id")
	}
	if !strings.Contains(svg, ">12</text>") {
		t.Fatalf("table number must render as a label")
	}
	if !strings.Contains(svg, "Stage &lt;A&gt;") {
		t.Fatalf("labels must be escaped:\n%s", svg)
	}
}

func TestRenderSVGStatusTints(t *testing.T) {
	plan := renderPlan()
	statuses := &model.StatusMap{
		Elements: map[string]model.ElementStatus{
			"t1": {Status: model.StatusSoldOut, Remaining: 0, Capacity: 4},
		},
		Sections: map[string]model.AvailabilityStatus{"vip": model.StatusSoldOut},
	}

	svg := RenderSVG(plan, RenderOptions{Statuses: statuses})
	if !strings.Contains(svg, `stroke="#c62828"`) {
		t.Fatalf("sold_out element must use the sold_out stroke:\n%s", svg)
	}
	if !strings.Contains(svg, `fill-opacity="0.25"`) {
		t.Fatalf("sold_out element must be dimmed:\n%s", svg)
	}

	// phần tử không bookable giữ stroke trung tính kể cả khi có status map
	if !strings.Contains(svg, `stroke="#546e7a" data-element-id="stage"`) {
		t.Fatalf("non-bookable element must keep the neutral stroke:\n%s", svg)
	}
}

func TestRenderSVGEditorMode(t *testing.T) {
	plan := renderPlan()

	frontend := RenderSVG(plan, RenderOptions{})
	if strings.Contains(frontend, `stroke="#e0e0e0"`) {
		t.Fatalf("frontend render must not draw the grid")
	}
	if strings.Contains(frontend, `data-handle=`) {
		t.Fatalf("frontend render must not draw handles")
	}
	if !strings.Contains(frontend, `width="400" height="300"`) {
		t.Fatalf("frontend render is always at 100%%:\n%s", frontend)
	}

	editor := RenderSVG(plan, RenderOptions{Editor: true, Selection: []string{"t1"}, Zoom: 2, PanX: 50, PanY: 25})
	if !strings.Contains(editor, `stroke="#e0e0e0"`) {
		t.Fatalf("editor render must draw the grid when it is on")
	}
	if !strings.Contains(editor, `data-handle="outline"`) {
		t.Fatalf("selected element must get a selection outline")
	}
	if strings.Count(editor, `data-handle="resize"`) != 4 {
		t.Fatalf("expected 4 resize handles, got %d", strings.Count(editor, `data-handle="resize"`))
	}
	if !strings.Contains(editor, `data-handle="rotate"`) {
		t.Fatalf("selected element must get a rotate handle")
	}
	if !strings.Contains(editor, `width="800" height="600"`) {
		t.Fatalf("editor render must scale by zoom:\n%s", editor)
	}
	if !strings.Contains(editor, `viewBox="50 25 400 300"`) {
		t.Fatalf("editor render must offset the viewBox by the pan:\n%s", editor)
	}
}

func TestRenderSVGBackgroundImage(t *testing.T) {
	plan := renderPlan()
	plan.Canvas.BackgroundImageUrl = strPtr("https://cdn.example.com/hall.png?a=1&b=2")

	svg := RenderSVG(plan, RenderOptions{})
	if !strings.Contains(svg, `<image href="https://cdn.example.com/hall.png?a=1&amp;b=2"`) {
		t.Fatalf("background image must render escaped:\n%s", svg)
	}
}
