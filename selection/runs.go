// Package selection maps rectangular drag gestures on the drawing surface to
// the text runs underneath them, and turns native annotation geometry back
// into the text it covers.
package selection

import (
	"math"

	"github.com/psureshmagadi17/annotation-viewer/coords"
	"github.com/psureshmagadi17/annotation-viewer/geom"
)

// TextItem is one positioned text fragment as delivered by the text layout
// source, still in PDF point space. Tx/Ty are the baseline translation of
// the fragment's transform; Ty is the upper edge of the glyph box in PDF's
// bottom-left-origin convention, so the box spans [Ty-H, Ty] vertically.
// H may be zero, in which case FontSize stands in as the height estimate.
type TextItem struct {
	Tx       float64
	Ty       float64
	W        float64
	H        float64
	FontSize float64
	Str      string
}

// Run is one text fragment in viewport pixel space, top-left origin.
// Runs are built once per page render and discarded when the page is
// re-rendered at a new scale.
type Run struct {
	X    float64
	Y    float64
	W    float64
	H    float64
	Text string
}

func (r Run) rect() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// CollectRuns transforms every non-empty text item into viewport space.
// The result is fully materialized: a selection needs random access across
// the whole page. Production order is irrelevant, the resolver re-sorts.
func CollectRuns(items []TextItem, vp coords.Viewport) []Run {
	runs := make([]Run, 0, len(items))
	for _, it := range items {
		if it.Str == "" {
			continue
		}
		h := it.H
		if h == 0 {
			h = it.FontSize
		}
		x, y1 := coords.PDFToViewport(it.Tx, it.Ty, vp)
		_, y2 := coords.PDFToViewport(it.Tx, it.Ty-h, vp)
		runs = append(runs, Run{
			X:    x,
			Y:    math.Min(y1, y2),
			W:    it.W * vp.Scale,
			H:    math.Abs(y2 - y1),
			Text: it.Str,
		})
	}
	return runs
}
