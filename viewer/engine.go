// Package viewer is the page controller: it drives the rendering engine
// through narrow capability interfaces, owns the in-flight render slot,
// turns pointer gestures into text selections, and projects annotation
// geometry onto the displayed surface.
package viewer

import (
	"context"
	"image"

	"github.com/psureshmagadi17/annotation-viewer/annot"
	"github.com/psureshmagadi17/annotation-viewer/coords"
	"github.com/psureshmagadi17/annotation-viewer/selection"
)

// Document is an open PDF as seen by the controller.
type Document interface {
	PageCount() int
	// Page returns the 1-indexed page.
	Page(n int) (Page, error)
	Close() error
}

// RenderablePage paints pixels. Render blocks until the page is rasterized
// at the given scale or ctx is cancelled.
type RenderablePage interface {
	Viewport(scale float64) coords.Viewport
	Render(ctx context.Context, scale float64) (image.Image, error)
}

// TextLayoutSource yields the page's positioned text fragments in PDF space.
type TextLayoutSource interface {
	TextItems() ([]selection.TextItem, error)
}

// NativeAnnotationSource yields the page's native annotation records.
type NativeAnnotationSource interface {
	Records() ([]annot.Record, error)
}

// Page is the full capability set the controller needs from one page.
type Page interface {
	RenderablePage
	TextLayoutSource
	NativeAnnotationSource
}
