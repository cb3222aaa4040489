// Package engine adapts unipdf (document model, text marks, native
// annotation records) and go-fitz (page rasterization) to the viewer's
// capability interfaces.
package engine

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/mgmeyers/unipdf/v3/extractor"
	"github.com/mgmeyers/unipdf/v3/model"

	"github.com/psureshmagadi17/annotation-viewer/coords"
	"github.com/psureshmagadi17/annotation-viewer/selection"
	"github.com/psureshmagadi17/annotation-viewer/viewer"
)

// Document is an open PDF backed by a unipdf reader for structure and a
// fitz document for pixels.
type Document struct {
	file   *os.File
	reader *model.PdfReader
	raster *fitz.Document
	pages  int
}

var _ viewer.Document = (*Document)(nil)

func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	reader, err := model.NewPdfReader(io.ReadSeeker(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("engine: read %s: %w", path, err)
	}

	raster, err := fitz.New(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("engine: open raster for %s: %w", path, err)
	}

	pages, err := reader.GetNumPages()
	if err != nil {
		f.Close()
		raster.Close()
		return nil, fmt.Errorf("engine: page count for %s: %w", path, err)
	}

	return &Document{file: f, reader: reader, raster: raster, pages: pages}, nil
}

func (d *Document) PageCount() int { return d.pages }

func (d *Document) Page(n int) (viewer.Page, error) {
	if n < 1 || n > d.pages {
		return nil, fmt.Errorf("engine: page %d out of range 1..%d", n, d.pages)
	}
	p, err := d.reader.GetPage(n)
	if err != nil {
		return nil, fmt.Errorf("engine: page %d: %w", n, err)
	}
	return &page{doc: d, num: n, page: p}, nil
}

func (d *Document) Close() error {
	rerr := d.raster.Close()
	ferr := d.file.Close()
	if rerr != nil {
		return rerr
	}
	return ferr
}

type page struct {
	doc  *Document
	num  int
	page *model.PdfPage
}

var _ viewer.Page = (*page)(nil)

// size returns the page's intrinsic dimensions, swapped for sideways
// rotation.
func (p *page) size() (float64, float64) {
	w := p.page.MediaBox.Width()
	h := p.page.MediaBox.Height()
	if p.page.Rotate != nil && (*p.page.Rotate == 90 || *p.page.Rotate == 270) {
		w, h = h, w
	}
	return w, h
}

func (p *page) Viewport(scale float64) coords.Viewport {
	w, h := p.size()
	return coords.Viewport{Width: w * scale, Height: h * scale, Scale: scale}
}

// Render rasterizes the page at 72·scale DPI. The fitz call itself is not
// interruptible, so cancellation is checked on either side of it and a
// superseded result is dropped.
func (p *page) Render(ctx context.Context, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := p.doc.raster.ImageDPI(p.num-1, 72*scale)
	if err != nil {
		return nil, fmt.Errorf("engine: rasterize page %d: %w", p.num, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

// TextItems extracts the page's text marks. Ty carries the glyph box's
// upper edge in PDF space, which is what the run collector's height
// derivation expects.
func (p *page) TextItems() ([]selection.TextItem, error) {
	ext, err := extractor.New(p.page)
	if err != nil {
		return nil, fmt.Errorf("engine: extractor for page %d: %w", p.num, err)
	}
	txt, _, _, err := ext.ExtractPageText()
	if err != nil {
		return nil, fmt.Errorf("engine: text for page %d: %w", p.num, err)
	}

	marks := txt.Marks().Elements()
	items := make([]selection.TextItem, 0, len(marks))
	for _, mark := range marks {
		if mark.Text == "" {
			continue
		}
		items = append(items, selection.TextItem{
			Tx:  mark.BBox.Llx,
			Ty:  mark.BBox.Ury,
			W:   mark.BBox.Urx - mark.BBox.Llx,
			H:   mark.BBox.Ury - mark.BBox.Lly,
			Str: mark.Text,
		})
	}
	return items, nil
}
