package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psureshmagadi17/annotation-viewer/coords"
	"github.com/psureshmagadi17/annotation-viewer/geom"
)

func unitViewport(w, h float64) coords.Viewport {
	return coords.Viewport{Width: w, Height: h, Scale: 1}
}

// run builds a viewport-space run directly, bypassing collection.
func run(x, y, w, h float64, text string) Run {
	return Run{X: x, Y: y, W: w, H: h, Text: text}
}

func TestCollectRunsSkipsEmptyStrings(t *testing.T) {
	vp := unitViewport(600, 800)
	items := []TextItem{
		{Tx: 10, Ty: 700, W: 50, H: 12, Str: "keep"},
		{Tx: 10, Ty: 680, W: 50, H: 12, Str: ""},
	}

	runs := CollectRuns(items, vp)
	require.Len(t, runs, 1)
	assert.Equal(t, "keep", runs[0].Text)
}

func TestCollectRunsFlipsY(t *testing.T) {
	vp := unitViewport(600, 800)
	items := []TextItem{{Tx: 10, Ty: 700, W: 50, H: 12, Str: "x"}}

	runs := CollectRuns(items, vp)
	require.Len(t, runs, 1)
	// box spans [688, 700] in PDF space; flipped top is 800-700=100
	assert.Equal(t, 100.0, runs[0].Y)
	assert.Equal(t, 12.0, runs[0].H)
	assert.Equal(t, 10.0, runs[0].X)
	assert.Equal(t, 50.0, runs[0].W)
}

func TestCollectRunsFontSizeFallback(t *testing.T) {
	vp := unitViewport(600, 800)
	items := []TextItem{{Tx: 0, Ty: 100, W: 40, FontSize: 14, Str: "x"}}

	runs := CollectRuns(items, vp)
	require.Len(t, runs, 1)
	assert.Equal(t, 14.0, runs[0].H)
}

func TestCollectRunsAppliesScale(t *testing.T) {
	vp := coords.Viewport{Width: 1200, Height: 1600, Scale: 2}
	items := []TextItem{{Tx: 10, Ty: 700, W: 50, H: 12, Str: "x"}}

	runs := CollectRuns(items, vp)
	require.Len(t, runs, 1)
	assert.Equal(t, 20.0, runs[0].X)
	assert.Equal(t, 100.0, runs[0].W)
	assert.Equal(t, 24.0, runs[0].H)
	assert.Equal(t, 200.0, runs[0].Y)
}

func TestResolveHelloWorld(t *testing.T) {
	runs := []Run{
		run(0, 0, 10, 10, "Hello"),
		run(20, 0, 10, 10, "World"),
	}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 0, StartY: 0, EndX: 30, EndY: 10}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "Hello World", res.Text)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 30, H: 10}, res.BBox)

	// both runs share a line, so a single quad covering their union
	require.Len(t, res.Quads, 1)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 30, H: 10}, res.Quads[0].Bounds())
}

func TestResolveNoSeparatorAcrossLines(t *testing.T) {
	runs := []Run{
		run(0, 0, 10, 10, "wrapped"),
		run(0, 20, 10, 10, "line"),
	}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 0, StartY: 0, EndX: 10, EndY: 30}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, res)

	// lines join without a space or newline
	assert.Equal(t, "wrappedline", res.Text)
	assert.Len(t, res.Quads, 2)
}

func TestResolveNoGapNoSpace(t *testing.T) {
	runs := []Run{
		run(0, 0, 10, 10, "Hel"),
		run(10.5, 0, 10, 10, "lo"),
	}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 0, StartY: 0, EndX: 25, EndY: 10}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Hello", res.Text)
}

func TestResolveEmptyWhitespace(t *testing.T) {
	runs := []Run{run(500, 500, 10, 10, "far away")}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 0, StartY: 0, EndX: 50, EndY: 50}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolveDegenerateRect(t *testing.T) {
	runs := []Run{run(0, 0, 10, 10, "text")}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 5, StartY: 0, EndX: 5, EndY: 10}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolveThresholdBoundary(t *testing.T) {
	// run area 100; selection covers a vertical slice of it
	runs := []Run{run(0, 0, 10, 10, "edge")}
	vp := unitViewport(600, 800)

	// exactly 30% overlap: included
	res, err := Resolve(DragRect{StartX: 0, StartY: 0, EndX: 3, EndY: 10}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "edge", res.Text)

	// 29.9%: excluded
	res, err = Resolve(DragRect{StartX: 0, StartY: 0, EndX: 2.99, EndY: 10}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolveSkipsZeroAreaRuns(t *testing.T) {
	runs := []Run{
		run(0, 0, 0, 10, "zero width"),
		run(0, 0, 10, 0, "zero height"),
	}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 0, StartY: 0, EndX: 20, EndY: 20}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolveBBoxNeverSmallerThanGesture(t *testing.T) {
	// a single small run inside a much larger drag
	runs := []Run{run(40, 40, 10, 10, "dot")}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 0, StartY: 0, EndX: 100, EndY: 100}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 100, H: 100}, res.BBox)
}

func TestResolveClipsQuadsToSelection(t *testing.T) {
	// run extends past the right edge of the selection
	runs := []Run{run(0, 0, 100, 10, "long line of text")}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 0, StartY: 0, EndX: 60, EndY: 10}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, res.Quads, 1)
	b := res.Quads[0].Bounds()
	assert.LessOrEqual(t, b.Right(), 60.0)
}

func TestResolveReadingOrder(t *testing.T) {
	// out of order input, including a 3px Y jitter within one line
	runs := []Run{
		run(40, 23, 10, 10, "C"),
		run(0, 0, 10, 10, "A"),
		run(20, 2, 10, 10, "B"),
	}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 0, StartY: 0, EndX: 60, EndY: 40}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "A BC", res.Text)
}

func TestResolveNormalizedGeometry(t *testing.T) {
	runs := []Run{run(60, 80, 60, 80, "x")}
	vp := unitViewport(600, 800)

	res, err := Resolve(DragRect{StartX: 60, StartY: 80, EndX: 120, EndY: 160}, runs, vp, 1, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.InDelta(t, 0.1, res.NormalizedBBox.X, 1e-9)
	assert.InDelta(t, 0.1, res.NormalizedBBox.Y, 1e-9)
	assert.InDelta(t, 0.1, res.NormalizedBBox.W, 1e-9)
	assert.InDelta(t, 0.1, res.NormalizedBBox.H, 1e-9)
	require.Len(t, res.NormalizedQuads, 1)
	nb := res.NormalizedQuads[0].Bounds()
	assert.LessOrEqual(t, nb.Right(), 1.0+1e-9)
	assert.LessOrEqual(t, nb.Bottom(), 1.0+1e-9)
}

func TestMatchText(t *testing.T) {
	runs := []Run{
		run(0, 0, 10, 10, "Hello"),
		run(20, 0, 10, 10, "World"),
		run(0, 50, 10, 10, "elsewhere"),
	}

	rects := []geom.Rect{{X: 0, Y: 0, W: 30, H: 10}}
	assert.Equal(t, "Hello World", MatchText(rects, runs, DefaultOptions()))
}

func TestMatchTextNoDoubleCount(t *testing.T) {
	runs := []Run{run(0, 0, 10, 10, "once")}
	rects := []geom.Rect{
		{X: 0, Y: 0, W: 10, H: 10},
		{X: 0, Y: 0, W: 10, H: 10},
	}
	assert.Equal(t, "once", MatchText(rects, runs, DefaultOptions()))
}

func TestMatchTextEmpty(t *testing.T) {
	assert.Equal(t, "", MatchText(nil, nil, DefaultOptions()))
	assert.Equal(t, "", MatchText([]geom.Rect{{W: 5, H: 5}}, []Run{run(100, 100, 10, 10, "far")}, DefaultOptions()))
}
