package viewer

import (
	"github.com/psureshmagadi17/annotation-viewer/annot"
	"github.com/psureshmagadi17/annotation-viewer/coords"
	"github.com/psureshmagadi17/annotation-viewer/geom"
)

// ScreenRect is one overlay rectangle in display pixels, tagged with the
// annotation that owns it for hit-testing.
type ScreenRect struct {
	AnnotationID string
	Left         float64
	Top          float64
	Width        float64
	Height       float64
}

func (r ScreenRect) contains(x, y float64) bool {
	return x >= r.Left && x <= r.Left+r.Width &&
		y >= r.Top && y <= r.Top+r.Height
}

// OverlayRects projects annotation geometry onto the displayed surface.
// Quad-bearing annotations produce one axis-aligned rectangle per quad;
// everything else produces the single bbox rectangle. ds falls back to the
// viewport size before the first layout measurement.
func OverlayRects(annots []*annot.Annotation, vp coords.Viewport, ds coords.DisplaySize) []ScreenRect {
	if ds.IsZero() {
		ds = coords.DisplaySize{Width: vp.Width, Height: vp.Height}
	}

	rects := []ScreenRect{}
	for _, a := range annots {
		if len(a.NormalizedQuads) > 0 {
			for _, q := range a.NormalizedQuads {
				rects = append(rects, project(a.ID, q.Bounds(), ds))
			}
			continue
		}
		if a.NormalizedBBox != nil {
			rects = append(rects, project(a.ID, *a.NormalizedBBox, ds))
		}
	}
	return rects
}

func project(id string, nb geom.Rect, ds coords.DisplaySize) ScreenRect {
	return ScreenRect{
		AnnotationID: id,
		Left:         nb.X * ds.Width,
		Top:          nb.Y * ds.Height,
		Width:        nb.W * ds.Width,
		Height:       nb.H * ds.Height,
	}
}

// HitTest returns the id of the topmost overlay rectangle containing the
// point. Later rectangles paint over earlier ones, so the scan runs back
// to front.
func HitTest(x, y float64, rects []ScreenRect) (string, bool) {
	for i := len(rects) - 1; i >= 0; i-- {
		if rects[i].contains(x, y) {
			return rects[i].AnnotationID, true
		}
	}
	return "", false
}
