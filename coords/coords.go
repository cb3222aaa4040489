// Package coords converts between the three coordinate spaces the viewer
// reconciles: PDF user space (origin bottom-left, points), viewport pixel
// space (origin top-left, scaled by the render scale), and on-screen display
// space (the CSS-sized footprint of the drawing surface, which can differ
// from the surface's native pixel size).
package coords

// Viewport is the pixel-space rendering of one page at a specific scale.
// It is produced by a page render and read-only to everything else.
type Viewport struct {
	Width  float64
	Height float64
	Scale  float64
}

// DisplaySize is the observed on-screen size of the drawing surface.
// The zero value means "not yet measured".
type DisplaySize struct {
	Width  float64
	Height float64
}

func (d DisplaySize) IsZero() bool { return d.Width == 0 && d.Height == 0 }

// SurfaceRect is the drawing surface's bounding rectangle in client
// coordinates, as reported by the host layout.
type SurfaceRect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// PDFToViewport maps a PDF user-space point onto the viewport. PDF's origin
// is bottom-left, the viewport's is top-left, so Y flips.
func PDFToViewport(x, y float64, vp Viewport) (float64, float64) {
	return x * vp.Scale, vp.Height - y*vp.Scale
}

// ViewportToPDF is the exact inverse of PDFToViewport. vp.Scale must be
// positive.
func ViewportToPDF(x, y float64, vp Viewport) (float64, float64) {
	return x / vp.Scale, (vp.Height - y) / vp.Scale
}

// ViewportToDisplay maps a viewport pixel onto the displayed surface. It is
// the identity while the display size has not been measured.
func ViewportToDisplay(x, y float64, vp Viewport, ds DisplaySize) (float64, float64) {
	if ds.IsZero() || vp.Width <= 0 || vp.Height <= 0 {
		return x, y
	}
	return x * ds.Width / vp.Width, y * ds.Height / vp.Height
}

// DisplayToCanvas turns a raw pointer event into drawing-surface pixel
// coordinates, undoing any CSS scaling of the surface.
func DisplayToCanvas(clientX, clientY float64, sr SurfaceRect, nativeW, nativeH float64) (float64, float64) {
	if sr.Width <= 0 || sr.Height <= 0 {
		return 0, 0
	}
	return (clientX - sr.Left) * nativeW / sr.Width,
		(clientY - sr.Top) * nativeH / sr.Height
}
