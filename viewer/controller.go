package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/psureshmagadi17/annotation-viewer/annot"
	"github.com/psureshmagadi17/annotation-viewer/coords"
	"github.com/psureshmagadi17/annotation-viewer/observability"
	"github.com/psureshmagadi17/annotation-viewer/selection"
)

// Controller owns one drawing surface. At most one render is in flight;
// starting a new one swaps the slot and cancels whatever was there.
type Controller struct {
	doc  Document
	opts selection.Options
	diag observability.Sink

	mu      sync.Mutex
	current *renderHandle

	display coords.DisplaySize

	page     Page
	pageNum  int
	viewport coords.Viewport
	img      image.Image
	items    []selection.TextItem
	runs     []selection.Run

	drag dragState
}

// renderHandle identifies one in-flight render so a finished render only
// vacates the slot if it still owns it.
type renderHandle struct {
	cancel context.CancelFunc
}

type dragState struct {
	active bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64
}

// NewController wires a controller to an open document. diag may be nil.
func NewController(doc Document, opts selection.Options, diag observability.Sink) *Controller {
	if diag == nil {
		diag = observability.Nop()
	}
	return &Controller{doc: doc, opts: opts, diag: diag}
}

// RenderPage renders page n at the given scale and refreshes the cached
// viewport and text runs. A render superseded by a newer one returns nil:
// cancellation is expected and swallowed, never surfaced as an error.
func (c *Controller) RenderPage(ctx context.Context, n int, scale float64) error {
	page, err := c.doc.Page(n)
	if err != nil {
		return fmt.Errorf("viewer: page %d: %w", n, err)
	}

	rctx, cancel := context.WithCancel(ctx)
	h := &renderHandle{cancel: cancel}
	c.swapRender(h)
	defer c.finishRender(h)

	vp := page.Viewport(scale)
	img, err := page.Render(rctx, scale)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.diag.Emit(observability.Event{
				Level: observability.LevelDebug,
				Op:    "render",
				Msg:   "render superseded",
				Fields: map[string]interface{}{
					"page": n,
				},
			})
			return nil
		}
		return fmt.Errorf("viewer: render page %d: %w", n, err)
	}

	items, err := page.TextItems()
	if err != nil {
		return fmt.Errorf("viewer: text layout for page %d: %w", n, err)
	}

	// A cancelled render may still complete: the engine has a window
	// between its last cancellation check and returning pixels. Only the
	// render that still owns the slot may commit.
	c.mu.Lock()
	if c.current != h {
		c.mu.Unlock()
		c.diag.Emit(observability.Event{
			Level: observability.LevelDebug,
			Op:    "render",
			Msg:   "render superseded",
			Fields: map[string]interface{}{
				"page": n,
			},
		})
		return nil
	}
	c.page = page
	c.pageNum = n
	c.viewport = vp
	c.img = img
	c.items = items
	c.runs = selection.CollectRuns(items, vp)
	c.drag = dragState{}
	c.mu.Unlock()

	c.diag.Emit(observability.Event{
		Level: observability.LevelDebug,
		Op:    "render",
		Msg:   "page rendered",
		Fields: map[string]interface{}{
			"page":  n,
			"scale": scale,
			"runs":  len(c.runs),
		},
	})
	return nil
}

func (c *Controller) swapRender(h *renderHandle) {
	c.mu.Lock()
	prev := c.current
	c.current = h
	c.mu.Unlock()
	if prev != nil {
		prev.cancel()
	}
}

func (c *Controller) finishRender(h *renderHandle) {
	c.mu.Lock()
	if c.current == h {
		c.current = nil
	}
	c.mu.Unlock()
	h.cancel()
}

// Image returns the most recently completed page raster, nil before the
// first render.
func (c *Controller) Image() image.Image { return c.img }

// Viewport returns the viewport of the last completed render.
func (c *Controller) Viewport() coords.Viewport { return c.viewport }

// PageNumber returns the 1-indexed page of the last completed render.
func (c *Controller) PageNumber() int { return c.pageNum }

// Runs exposes the current page's text runs, viewport space.
func (c *Controller) Runs() []selection.Run { return c.runs }

// SetDisplaySize records the observed on-screen size of the surface. It is
// idempotent; concurrent resize observations may coalesce or drop.
func (c *Controller) SetDisplaySize(ds coords.DisplaySize) { c.display = ds }

// DisplaySize returns the last measured display size; zero before the
// first layout pass.
func (c *Controller) DisplaySize() coords.DisplaySize { return c.display }

// PointerDown begins a selection drag at surface pixel coordinates.
func (c *Controller) PointerDown(x, y float64) {
	c.drag = dragState{active: true, startX: x, startY: y, lastX: x, lastY: y}
}

// PointerMove extends the active drag; ignored when no drag is active.
func (c *Controller) PointerMove(x, y float64) {
	if !c.drag.active {
		return
	}
	c.drag.lastX = x
	c.drag.lastY = y
}

// PointerUp ends the drag and resolves it to text. Drags smaller than the
// minimum gesture on either axis yield nil, as does a drag over whitespace.
func (c *Controller) PointerUp(x, y float64) (*selection.Result, error) {
	if !c.drag.active {
		return nil, nil
	}
	d := c.drag
	c.drag = dragState{}

	if abs(x-d.startX) < c.opts.MinGesture || abs(y-d.startY) < c.opts.MinGesture {
		c.diag.Emit(observability.Event{
			Level: observability.LevelDebug,
			Op:    "selection",
			Msg:   "gesture below minimum size",
		})
		return nil, nil
	}

	res, err := selection.Resolve(selection.DragRect{
		StartX: d.startX,
		StartY: d.startY,
		EndX:   x,
		EndY:   y,
	}, c.runs, c.viewport, c.pageNum, c.opts)
	if err != nil {
		return nil, err
	}
	if res == nil {
		c.diag.Emit(observability.Event{
			Level: observability.LevelDebug,
			Op:    "selection",
			Msg:   "no text under gesture",
		})
	}
	return res, nil
}

// Annotations extracts the current page's native annotations in
// page-intrinsic units, recovering span text from the page's text runs.
// Record-level failures are reported through the result, not as an error.
func (c *Controller) Annotations() (annot.ExtractResult, error) {
	if c.page == nil {
		return annot.ExtractResult{}, errors.New("viewer: no page rendered")
	}
	records, err := c.page.Records()
	if err != nil {
		return annot.ExtractResult{}, fmt.Errorf("viewer: annotations for page %d: %w", c.pageNum, err)
	}

	// Extraction is scale-independent, so match against scale-1 runs.
	pageW := c.viewport.Width / c.viewport.Scale
	pageH := c.viewport.Height / c.viewport.Scale
	unit := coords.Viewport{Width: pageW, Height: pageH, Scale: 1}
	runs := selection.CollectRuns(c.items, unit)

	res := annot.ExtractPage(records, c.pageNum, pageW, pageH, runs, annot.Options{Selection: c.opts})
	for _, e := range res.Errors {
		c.diag.Emit(observability.Event{
			Level: observability.LevelWarn,
			Op:    "extract",
			Msg:   "annotation record skipped",
			Err:   e,
		})
	}
	return res, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
