package selection

import (
	"math"
	"sort"
	"strings"

	"github.com/psureshmagadi17/annotation-viewer/coords"
	"github.com/psureshmagadi17/annotation-viewer/geom"
)

// Options are the resolver's tuning constants. The shipped values are a
// precision/recall tradeoff, not a derivation; changing them is a product
// decision.
type Options struct {
	// OverlapThreshold is the fraction of a run's own area that must be
	// covered for the run to count as selected. The boundary is inclusive.
	OverlapThreshold float64
	// LineTolerance is the vertical band, in viewport pixels, within which
	// two runs are treated as the same line.
	LineTolerance float64
	// WordGap is the horizontal gap, in viewport pixels, beyond which a
	// single space is inserted between same-line runs.
	WordGap float64
	// MinGesture is the minimum drag extent, in surface pixels, on each
	// axis before a gesture is treated as a selection at all.
	MinGesture float64
}

func DefaultOptions() Options {
	return Options{
		OverlapThreshold: 0.30,
		LineTolerance:    5,
		WordGap:          2,
		MinGesture:       10,
	}
}

// DragRect is a selection gesture in drawing-surface pixel coordinates.
// Start and end may be any two opposite corners.
type DragRect struct {
	StartX float64
	StartY float64
	EndX   float64
	EndY   float64
}

func (d DragRect) rect() geom.Rect {
	return geom.RectFromCorners(d.StartX, d.StartY, d.EndX, d.EndY)
}

// Result is a resolved selection, ready to become a user-created annotation.
type Result struct {
	Text            string
	BBox            geom.Rect
	NormalizedBBox  geom.Rect
	Quads           []geom.Quad
	NormalizedQuads []geom.Quad
	Page            int
}

// Resolve maps a drag rectangle to the text runs underneath it. It returns
// (nil, nil) when nothing qualifies: an empty drag is the common case, not
// an error. The gesture-size debounce is the caller's job, but degenerate
// zero-area rectangles are rejected here regardless.
func Resolve(drag DragRect, runs []Run, vp coords.Viewport, page int, opts Options) (*Result, error) {
	sel := drag.rect()
	if sel.W <= 0 || sel.H <= 0 {
		return nil, nil
	}

	picked := overlapping(sel, runs, opts.OverlapThreshold)
	if len(picked) == 0 {
		return nil, nil
	}
	orderRuns(picked, opts.LineTolerance)

	// The raw selection corners participate in the union so the returned
	// box is never smaller than the visible drag gesture.
	pts := []geom.Point{
		{X: sel.Left(), Y: sel.Top()},
		{X: sel.Right(), Y: sel.Bottom()},
	}
	for _, r := range picked {
		c := geom.Intersect(r.rect(), sel)
		pts = append(pts,
			geom.Point{X: c.Left(), Y: c.Top()},
			geom.Point{X: c.Right(), Y: c.Bottom()},
		)
	}
	bbox, err := geom.UnionBounds(pts)
	if err != nil {
		return nil, err
	}

	quads := lineQuads(picked, sel, opts.LineTolerance)

	nbbox := geom.MustNormalize(bbox, vp.Width, vp.Height)
	nquads := make([]geom.Quad, len(quads))
	for i, q := range quads {
		nquads[i] = q.MustNormalize(vp.Width, vp.Height)
	}

	return &Result{
		Text:            joinRuns(picked, opts),
		BBox:            bbox,
		NormalizedBBox:  nbbox,
		Quads:           quads,
		NormalizedQuads: nquads,
		Page:            page,
	}, nil
}

// MatchText recovers the text covered by a set of annotation rectangles
// (one per quad, or the single bounding box) using the same overlap
// threshold and ordering rules as gesture resolution.
func MatchText(rects []geom.Rect, runs []Run, opts Options) string {
	taken := make([]bool, len(runs))
	picked := []Run{}
	for _, rect := range rects {
		if rect.W <= 0 || rect.H <= 0 {
			continue
		}
		for i, run := range runs {
			if taken[i] {
				continue
			}
			area := run.rect().Area()
			if area <= 0 {
				continue
			}
			if geom.IntersectionArea(rect, run.rect())/area >= opts.OverlapThreshold {
				taken[i] = true
				picked = append(picked, run)
			}
		}
	}
	if len(picked) == 0 {
		return ""
	}
	orderRuns(picked, opts.LineTolerance)
	return joinRuns(picked, opts)
}

// overlapping returns the runs covered by sel at or above the threshold.
// Zero-area runs never qualify; the ratio is taken against the run's own
// area, so a zero divisor cannot occur.
func overlapping(sel geom.Rect, runs []Run, threshold float64) []Run {
	out := []Run{}
	for _, run := range runs {
		area := run.rect().Area()
		if area <= 0 {
			continue
		}
		if geom.IntersectionArea(sel, run.rect())/area >= threshold {
			out = append(out, run)
		}
	}
	return out
}

// orderRuns sorts runs into reading order: by Y, except that runs within
// the line tolerance of each other order by X instead.
func orderRuns(runs []Run, lineTolerance float64) {
	sort.SliceStable(runs, func(i, j int) bool {
		if math.Abs(runs[i].Y-runs[j].Y) <= lineTolerance {
			return runs[i].X < runs[j].X
		}
		return runs[i].Y < runs[j].Y
	})
}

// joinRuns concatenates runs already in reading order. A space is inserted
// between same-line neighbours separated by more than the word gap. Line
// breaks insert nothing: consecutive lines are concatenated directly.
func joinRuns(runs []Run, opts Options) string {
	var b strings.Builder
	for i, run := range runs {
		if i > 0 {
			prev := runs[i-1]
			sameLine := math.Abs(run.Y-prev.Y) <= opts.LineTolerance
			if sameLine && run.X-(prev.X+prev.W) > opts.WordGap {
				b.WriteString(" ")
			}
		}
		b.WriteString(run.Text)
	}
	return b.String()
}

// lineQuads groups runs (already in reading order) into lines and emits one
// quadrilateral per line, every coordinate clipped to the selection bounds.
func lineQuads(runs []Run, sel geom.Rect, lineTolerance float64) []geom.Quad {
	quads := []geom.Quad{}
	i := 0
	for i < len(runs) {
		anchor := runs[i]
		left, top := anchor.X, anchor.Y
		right, bottom := anchor.X+anchor.W, anchor.Y+anchor.H
		j := i + 1
		for j < len(runs) && math.Abs(runs[j].Y-anchor.Y) <= lineTolerance {
			left = math.Min(left, runs[j].X)
			top = math.Min(top, runs[j].Y)
			right = math.Max(right, runs[j].X+runs[j].W)
			bottom = math.Max(bottom, runs[j].Y+runs[j].H)
			j++
		}
		quads = append(quads, geom.QuadFromRect(geom.Rect{
			X: clamp(left, sel.Left(), sel.Right()),
			Y: clamp(top, sel.Top(), sel.Bottom()),
			W: clamp(right, sel.Left(), sel.Right()) - clamp(left, sel.Left(), sel.Right()),
			H: clamp(bottom, sel.Top(), sel.Bottom()) - clamp(top, sel.Top(), sel.Bottom()),
		}))
		i = j
	}
	return quads
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
