// Package geom holds the rectangle and quadrilateral math shared by the
// annotation extractor, the selection resolver and the overlay projector.
// All rectangles are axis-aligned with a top-left origin and non-negative
// width and height.
package geom

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"
)

var (
	ErrInvalidDimension = errors.New("geom: page dimension must be positive")
	ErrEmptyInput       = errors.New("geom: empty point set")
)

type Point struct {
	X float64
	Y float64
}

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func RectFromCorners(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X: math.Min(x1, x2),
		Y: math.Min(y1, y2),
		W: math.Abs(x2 - x1),
		H: math.Abs(y2 - y1),
	}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Area() float64   { return r.W * r.H }

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left() && x <= r.Right() && y >= r.Top() && y <= r.Bottom()
}

func (r Rect) toR2() r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: r.Left(), Y: r.Top()},
		r2.Point{X: r.Right(), Y: r.Bottom()},
	)
}

// Normalize expresses r as fractions of the page size. Each component of the
// result is in [0,1] when r lies on the page.
func Normalize(r Rect, pageW, pageH float64) (Rect, error) {
	if pageW <= 0 || pageH <= 0 {
		return Rect{}, ErrInvalidDimension
	}
	return Rect{X: r.X / pageW, Y: r.Y / pageH, W: r.W / pageW, H: r.H / pageH}, nil
}

// Denormalize is the inverse of Normalize.
func Denormalize(r Rect, pageW, pageH float64) (Rect, error) {
	if pageW <= 0 || pageH <= 0 {
		return Rect{}, ErrInvalidDimension
	}
	return Rect{X: r.X * pageW, Y: r.Y * pageH, W: r.W * pageW, H: r.H * pageH}, nil
}

// MustNormalize is Normalize with invalid page dimensions clamped to 1.
// Render-path callers use it so a transiently unmeasured page cannot panic
// mid-frame.
func MustNormalize(r Rect, pageW, pageH float64) Rect {
	out, _ := Normalize(r, clampDim(pageW), clampDim(pageH))
	return out
}

// MustDenormalize is Denormalize with invalid page dimensions clamped to 1.
func MustDenormalize(r Rect, pageW, pageH float64) Rect {
	out, _ := Denormalize(r, clampDim(pageW), clampDim(pageH))
	return out
}

func clampDim(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}

// IntersectionArea returns the overlap area of two rectangles, 0 when they
// are disjoint.
func IntersectionArea(a, b Rect) float64 {
	ra := a.toR2()
	rb := b.toR2()
	if !ra.Intersects(rb) {
		return 0
	}
	s := ra.Intersection(rb).Size()
	if s.X <= 0 || s.Y <= 0 {
		return 0
	}
	return s.X * s.Y
}

// Intersect clips a to b. Disjoint inputs produce a zero-area rectangle on
// the nearest shared edge.
func Intersect(a, b Rect) Rect {
	left := math.Max(a.Left(), b.Left())
	top := math.Max(a.Top(), b.Top())
	right := math.Min(a.Right(), b.Right())
	bottom := math.Min(a.Bottom(), b.Bottom())
	return Rect{
		X: left,
		Y: top,
		W: math.Max(0, right-left),
		H: math.Max(0, bottom-top),
	}
}

// UnionBounds returns the bounding box of a point set.
func UnionBounds(pts []Point) (Rect, error) {
	if len(pts) == 0 {
		return Rect{}, ErrEmptyInput
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, nil
}
