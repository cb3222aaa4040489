package geom

import "math"

// Quad is one four-corner region of a multi-line highlight, stored as
// [x1,y1, x2,y2, x3,y3, x4,y4]. Quads produced by this system are always
// axis-aligned rectangles expressed as four corners; corner order is
// left-top, right-top, right-bottom, left-bottom for quads we synthesize,
// and whatever the source document used for quads read out of a PDF.
// Bounds tolerates either.
type Quad [8]float64

// QuadFromRect builds the corner list for an axis-aligned rectangle.
func QuadFromRect(r Rect) Quad {
	return Quad{
		r.Left(), r.Top(),
		r.Right(), r.Top(),
		r.Right(), r.Bottom(),
		r.Left(), r.Bottom(),
	}
}

// Bounds returns the axis-aligned bounding rectangle of the four corners.
func (q Quad) Bounds() Rect {
	minX, maxX := q[0], q[0]
	minY, maxY := q[1], q[1]
	for i := 2; i < 8; i += 2 {
		minX = math.Min(minX, q[i])
		maxX = math.Max(maxX, q[i])
		minY = math.Min(minY, q[i+1])
		maxY = math.Max(maxY, q[i+1])
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Normalize divides every coordinate by the page width or height.
func (q Quad) Normalize(pageW, pageH float64) (Quad, error) {
	if pageW <= 0 || pageH <= 0 {
		return Quad{}, ErrInvalidDimension
	}
	var out Quad
	for i := 0; i < 8; i += 2 {
		out[i] = q[i] / pageW
		out[i+1] = q[i+1] / pageH
	}
	return out, nil
}

// MustNormalize is Normalize with invalid page dimensions clamped to 1.
func (q Quad) MustNormalize(pageW, pageH float64) Quad {
	out, _ := q.Normalize(clampDim(pageW), clampDim(pageH))
	return out
}
