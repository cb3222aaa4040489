package annot

import (
	"fmt"
	"math"
	"strings"

	"github.com/psureshmagadi17/annotation-viewer/geom"
	"github.com/psureshmagadi17/annotation-viewer/selection"
)

// Record is one native annotation record as read out of the PDF, still in
// PDF user space. The engine adapter fills whichever label candidates the
// document carries; empty fields simply lose the priority race in
// resolveLabel.
type Record struct {
	ID           string
	Subtype      string
	Rect         [4]float64
	QuadPoints   []float64
	Contents     string
	RichContents string
	Title        string
	Author       string
	Creator      string
	Subject      string
	Name         string
	Color        []float64
	Date         string
}

// ExtractResult is one page's worth of extraction. A record that fails to
// parse lands in Errors and extraction continues; the page as a whole still
// succeeds if anything was recoverable.
type ExtractResult struct {
	Annotations []*Annotation
	Errors      []error
}

// OK reports whether the page extraction is usable: either something was
// recovered, or there was nothing to recover in the first place.
func (r ExtractResult) OK() bool {
	return len(r.Annotations) > 0 || len(r.Errors) == 0
}

// ExtractPage converts a page's native records into annotations. Geometry
// is flipped into top-left-origin page-intrinsic units (scale 1), so the
// stored boxes are scale-independent. runs must be collected at scale 1 for
// the text matching to line up; pass nil to skip text recovery.
func ExtractPage(records []Record, page int, pageW, pageH float64, runs []selection.Run, opts Options) ExtractResult {
	res := ExtractResult{}
	ids := map[string]bool{}
	for _, rec := range records {
		switch rec.Subtype {
		case Link, Popup:
			// Navigation links carry no reviewable content and popups
			// duplicate their parent's, so neither becomes an annotation.
			continue
		}
		a, err := extractOne(rec, page, pageW, pageH, runs, opts, ids)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("page %d: %w", page, err))
			continue
		}
		res.Annotations = append(res.Annotations, a)
	}
	return res
}

// Options bundles the extractor's text-matching knobs.
type Options struct {
	Selection selection.Options
}

func DefaultOptions() Options {
	return Options{Selection: selection.DefaultOptions()}
}

func extractOne(rec Record, page int, pageW, pageH float64, runs []selection.Run, opts Options, ids map[string]bool) (*Annotation, error) {
	for _, v := range rec.Rect {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("annotation %q: non-finite rect", rec.ID)
		}
	}

	x1, y1, x2, y2 := rec.Rect[0], rec.Rect[1], rec.Rect[2], rec.Rect[3]
	bbox := geom.Rect{
		X: math.Min(x1, x2),
		Y: pageH - math.Max(y1, y2),
		W: math.Abs(x2 - x1),
		H: math.Abs(y2 - y1),
	}
	nbbox := geom.MustNormalize(bbox, pageW, pageH)

	quads, err := flipQuads(rec.QuadPoints, pageH)
	if err != nil {
		return nil, fmt.Errorf("annotation %q: %w", rec.ID, err)
	}
	var nquads []geom.Quad
	if len(quads) > 0 {
		nquads = make([]geom.Quad, len(quads))
		for i, q := range quads {
			nquads[i] = q.MustNormalize(pageW, pageH)
		}
	}

	id := rec.ID
	if id == "" {
		id = MakeID(ids, page, bbox.X, bbox.Y, typeOrDefault(rec.Subtype))
	}

	a := &Annotation{
		ID:             id,
		Page:           page,
		Type:           typeOrDefault(rec.Subtype),
		SpanText:       spanText(rec, bbox, quads, runs, opts),
		EntityType:     resolveLabel(rec),
		FeedbackType:   Unreviewed,
		BBox:           &bbox,
		NormalizedBBox: &nbbox,
		Color:          colorHex(rec.Color),
		ColorCategory:  colorCategory(rec.Color),
		Date:           rec.Date,
	}
	if len(quads) > 0 {
		a.QuadPoints = quads
		a.NormalizedQuads = nquads
	}
	return a, nil
}

// flipQuads splits a flat quad-point array into groups of 8 and applies the
// per-point Y-flip, keeping whatever corner order the document used.
func flipQuads(coords []float64, pageH float64) ([]geom.Quad, error) {
	if len(coords) == 0 {
		return nil, nil
	}
	if len(coords)%8 != 0 {
		return nil, fmt.Errorf("quad point count %d is not a multiple of 8", len(coords))
	}
	quads := make([]geom.Quad, 0, len(coords)/8)
	for i := 0; i < len(coords); i += 8 {
		var q geom.Quad
		for j := 0; j < 8; j += 2 {
			q[j] = coords[i+j]
			q[j+1] = pageH - coords[i+j+1]
		}
		quads = append(quads, q)
	}
	return quads, nil
}

// spanText recovers the text the annotation covers by matching its quads
// (or bbox) against the page's text runs, falling back to the record's own
// contents when the page has no matching text.
func spanText(rec Record, bbox geom.Rect, quads []geom.Quad, runs []selection.Run, opts Options) string {
	if len(runs) > 0 {
		rects := []geom.Rect{bbox}
		if len(quads) > 0 {
			rects = rects[:0]
			for _, q := range quads {
				rects = append(rects, q.Bounds())
			}
		}
		if txt := selection.MatchText(rects, runs, opts.Selection); txt != "" {
			return Scrub(txt)
		}
	}
	return Scrub(rec.Contents)
}

// resolveLabel picks the annotation's display label from the record's
// candidate fields. The order reflects which upstream authoring tools
// populate which field and is a compatibility contract: title object,
// contents string, contents object, author, creator, subject, generic name,
// then the lower-cased type tag.
func resolveLabel(rec Record) string {
	for _, candidate := range []string{
		rec.Title,
		rec.Contents,
		rec.RichContents,
		rec.Author,
		rec.Creator,
		rec.Subject,
		rec.Name,
	} {
		if candidate != "" {
			return Scrub(candidate)
		}
	}
	return strings.ToLower(typeOrDefault(rec.Subtype))
}

func typeOrDefault(subtype string) string {
	if subtype == "" {
		return Unsupported
	}
	return subtype
}
