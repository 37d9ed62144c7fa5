package helper

import (
	"fmt"
	"strconv"
	"strings"

	"floorplan_manager/model"
)

// ============================================================
// SVG renderer
// ============================================================

// RenderOptions điều khiển chế độ vẽ: frontend cố định 100%,
// editor có viewport, grid overlay và handle trên phần tử được chọn.
type RenderOptions struct {
	Editor    bool
	Selection []string
	Zoom      float64
	PanX      float64
	PanY      float64
	Statuses  *model.StatusMap
}

var statusStroke = map[model.AvailabilityStatus]string{
	model.StatusAvailable: "#2e7d32",
	model.StatusPartial:   "#f9a825",
	model.StatusSoldOut:   "#c62828",
}

var statusOpacity = map[model.AvailabilityStatus]string{
	model.StatusAvailable: "0.9",
	model.StatusPartial:   "0.55",
	model.StatusSoldOut:   "0.25",
}

const neutralFill = "#b0bec5"

// RenderSVG vẽ tài liệu thành SVG, tô màu theo section và trạng thái availability
func RenderSVG(plan *model.FloorPlan, opts RenderOptions) string {
	zoom := opts.Zoom
	if !opts.Editor || zoom <= 0 {
		zoom = 1
	}

	selected := make(map[string]bool, len(opts.Selection))
	for _, id := range opts.Selection {
		selected[id] = true
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		f(plan.Canvas.Width*zoom), f(plan.Canvas.Height*zoom),
		f(opts.PanX), f(opts.PanY), f(plan.Canvas.Width), f(plan.Canvas.Height)))
	b.WriteString("\n")

	if plan.Canvas.BackgroundImageUrl != nil {
		b.WriteString(fmt.Sprintf(`  <image href="%s" x="0" y="0" width="%s" height="%s"/>`,
			escape(*plan.Canvas.BackgroundImageUrl), f(plan.Canvas.Width), f(plan.Canvas.Height)))
		b.WriteString("\n")
	}

	if opts.Editor && plan.Canvas.ShowGrid && plan.Canvas.GridSize > 0 {
		renderGrid(&b, plan.Canvas)
	}

	for i := range plan.Elements {
		renderElement(&b, plan, &plan.Elements[i], opts.Statuses)
	}

	if opts.Editor {
		for i := range plan.Elements {
			if selected[plan.Elements[i].ID] {
				renderHandles(&b, plan, plan.Elements[i].ID)
			}
		}
	}

	b.WriteString(`</svg>`)
	return b.String()
}

// ============================================================
// Grid
// ============================================================

func renderGrid(b *strings.Builder, c model.Canvas) {
	b.WriteString(`  <g stroke="#e0e0e0" stroke-width="0.5">` + "\n")
	for x := c.GridSize; x < c.Width; x += c.GridSize {
		b.WriteString(fmt.Sprintf(`    <line x1="%s" y1="0" x2="%s" y2="%s"/>`, f(x), f(x), f(c.Height)))
		b.WriteString("\n")
	}
	for y := c.GridSize; y < c.Height; y += c.GridSize {
		b.WriteString(fmt.Sprintf(`    <line x1="0" y1="%s" x2="%s" y2="%s"/>`, f(y), f(c.Width), f(y)))
		b.WriteString("\n")
	}
	b.WriteString("  </g>\n")
}

// ============================================================
// Elements
// ============================================================

func renderElement(b *strings.Builder, plan *model.FloorPlan, e *model.Element, statuses *model.StatusMap) {
	fill := neutralFill
	if e.SectionId != nil {
		if sec := plan.SectionByID(*e.SectionId); sec != nil && sec.Color != "" {
			fill = sec.Color
		}
	}

	stroke := "#546e7a"
	opacity := "1"
	if e.Bookable && statuses != nil {
		if st, ok := statuses.Elements[e.ID]; ok {
			stroke = statusStroke[st.Status]
			opacity = statusOpacity[st.Status]
		}
	}

	c := e.Center()
	transform := ""
	if e.Rotation != 0 {
		transform = fmt.Sprintf(` transform="rotate(%s %s %s)"`, f(e.Rotation), f(c.X), f(c.Y))
	}

	attrs := fmt.Sprintf(`fill="%s" fill-opacity="%s" stroke="%s" data-element-id="%s" data-type="%s"`,
		fill, opacity, stroke, e.ID, e.Type)

	switch e.Shape {
	case model.ShapeRound:
		b.WriteString(fmt.Sprintf(`  <ellipse cx="%s" cy="%s" rx="%s" ry="%s" %s%s/>`,
			f(c.X), f(c.Y), f(e.Width/2), f(e.Height/2), attrs, transform))
	default:
		b.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" %s%s/>`,
			f(e.X), f(e.Y), f(e.Width), f(e.Height), attrs, transform))
	}
	b.WriteString("\n")

	label := e.Label
	if label == "" {
		label = e.Number
	}
	if label != "" {
		b.WriteString(fmt.Sprintf(`  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-size="10">%s</text>`,
			f(c.X), f(c.Y), escape(label)))
		b.WriteString("\n")
	}
}

// renderHandles vẽ khung chọn nét đứt, 4 handle resize ở góc và handle rotate phía trên
func renderHandles(b *strings.Builder, plan *model.FloorPlan, elementId string) {
	box, ok := plan.BoundingBoxOf(elementId)
	if !ok {
		return
	}
	b.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="#1976d2" stroke-dasharray="4 2" data-handle="outline"/>`,
		f(box.MinX), f(box.MinY), f(box.MaxX-box.MinX), f(box.MaxY-box.MinY)))
	b.WriteString("\n")

	corners := [4][2]float64{
		{box.MinX, box.MinY}, {box.MaxX, box.MinY},
		{box.MaxX, box.MaxY}, {box.MinX, box.MaxY},
	}
	for _, corner := range corners {
		b.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="6" height="6" fill="#1976d2" data-handle="resize"/>`,
			f(corner[0]-3), f(corner[1]-3)))
		b.WriteString("\n")
	}

	cx := (box.MinX + box.MaxX) / 2
	b.WriteString(fmt.Sprintf(`  <circle cx="%s" cy="%s" r="4" fill="#1976d2" data-handle="rotate"/>`,
		f(cx), f(box.MinY-14)))
	b.WriteString("\n")
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
