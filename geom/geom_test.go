package geom

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDenormalizeRoundTrip(t *testing.T) {
	roundTrip := func(x, y, w, h, pw, ph float64) bool {
		pageW := math.Mod(math.Abs(pw), 5000) + 1
		pageH := math.Mod(math.Abs(ph), 5000) + 1
		r := Rect{
			X: math.Mod(x, pageW),
			Y: math.Mod(y, pageH),
			W: math.Abs(math.Mod(w, pageW)),
			H: math.Abs(math.Mod(h, pageH)),
		}

		n, err := Normalize(r, pageW, pageH)
		if err != nil {
			return false
		}
		back, err := Denormalize(n, pageW, pageH)
		if err != nil {
			return false
		}

		const eps = 1e-9
		return math.Abs(back.X-r.X) < eps*pageW &&
			math.Abs(back.Y-r.Y) < eps*pageH &&
			math.Abs(back.W-r.W) < eps*pageW &&
			math.Abs(back.H-r.H) < eps*pageH
	}
	require.NoError(t, quick.Check(roundTrip, nil))
}

func TestNormalizeRejectsBadDimensions(t *testing.T) {
	r := Rect{X: 1, Y: 1, W: 1, H: 1}

	_, err := Normalize(r, 0, 100)
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = Normalize(r, 100, -5)
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = Denormalize(r, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestMustNormalizeClampsDimensions(t *testing.T) {
	r := Rect{X: 0.5, Y: 0.5, W: 0.25, H: 0.25}

	// page dimensions clamp to 1, so the rect passes through unchanged
	out := MustNormalize(r, 0, -10)
	assert.Equal(t, r, out)

	out = MustDenormalize(r, 0, 0)
	assert.Equal(t, r, out)
}

func TestIntersectionAreaSymmetric(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}

	assert.Equal(t, 25.0, IntersectionArea(a, b))
	assert.Equal(t, IntersectionArea(a, b), IntersectionArea(b, a))
}

func TestIntersectionAreaDisjoint(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name string
		b    Rect
	}{
		{"far right", Rect{X: 100, Y: 0, W: 10, H: 10}},
		{"far below", Rect{X: 0, Y: 100, W: 10, H: 10}},
		{"touching edge", Rect{X: 10, Y: 0, W: 10, H: 10}},
		{"zero area", Rect{X: 5, Y: 5, W: 0, H: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IntersectionArea(a, tc.b)
			assert.Equal(t, 0.0, got)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestIntersectClips(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}

	c := Intersect(a, b)
	assert.Equal(t, Rect{X: 5, Y: 5, W: 5, H: 5}, c)

	// disjoint input clips to zero area, never negative
	d := Intersect(a, Rect{X: 50, Y: 50, W: 10, H: 10})
	assert.Equal(t, 0.0, d.W)
	assert.Equal(t, 0.0, d.H)
}

func TestUnionBounds(t *testing.T) {
	pts := []Point{{X: 3, Y: 8}, {X: -1, Y: 2}, {X: 7, Y: 5}}

	r, err := UnionBounds(pts)
	require.NoError(t, err)
	assert.Equal(t, Rect{X: -1, Y: 2, W: 8, H: 6}, r)
}

func TestUnionBoundsEmpty(t *testing.T) {
	_, err := UnionBounds(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestQuadFromRectCornerOrder(t *testing.T) {
	q := QuadFromRect(Rect{X: 1, Y: 2, W: 10, H: 4})

	assert.Equal(t, Quad{1, 2, 11, 2, 11, 6, 1, 6}, q)
	// axis-aligned invariant
	assert.Equal(t, q[0], q[6])
	assert.Equal(t, q[1], q[3])
	assert.Equal(t, q[2], q[4])
	assert.Equal(t, q[5], q[7])
}

func TestQuadBoundsAnyCornerOrder(t *testing.T) {
	// corners in PDF quad-point order rather than ours
	q := Quad{1, 6, 11, 6, 1, 2, 11, 2}
	assert.Equal(t, Rect{X: 1, Y: 2, W: 10, H: 4}, q.Bounds())
}

func TestQuadNormalize(t *testing.T) {
	q := QuadFromRect(Rect{X: 100, Y: 200, W: 100, H: 100})

	n, err := q.Normalize(1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, Quad{0.1, 0.2, 0.2, 0.2, 0.2, 0.3, 0.1, 0.3}, n)

	_, err = q.Normalize(0, 1000)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}
