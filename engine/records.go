package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"

	"github.com/psureshmagadi17/annotation-viewer/annot"
)

// Records reads the page's native annotation records into the extractor's
// neutral form.
func (p *page) Records() ([]annot.Record, error) {
	annotations, err := p.page.GetAnnotations()
	if err != nil {
		return nil, fmt.Errorf("engine: annotations for page %d: %w", p.num, err)
	}

	records := make([]annot.Record, 0, len(annotations))
	for _, a := range annotations {
		if a == nil {
			continue
		}
		records = append(records, p.record(a))
	}
	return records, nil
}

func (p *page) record(a *model.PdfAnnotation) annot.Record {
	ctx := a.GetContext()
	rec := annot.Record{Subtype: typeTag(ctx)}

	if vals, ok := floatArray(a.Rect); ok && len(vals) == 4 {
		copy(rec.Rect[:], vals)
	}
	if a.Contents != nil {
		rec.Contents = annot.Scrub(a.Contents.String())
	}
	if a.NM != nil {
		rec.Name = annot.Scrub(a.NM.String())
	}
	if date := parseDate(a.M); date != nil {
		rec.Date = date.Format(time.RFC3339)
	}

	var markup *model.PdfAnnotationMarkup
	switch t := ctx.(type) {
	case *model.PdfAnnotationHighlight:
		markup = t.PdfAnnotationMarkup
		rec.QuadPoints, _ = floatArray(t.QuadPoints)
		rec.Color, _ = floatArray(t.C)
	case *model.PdfAnnotationStrikeOut:
		markup = t.PdfAnnotationMarkup
		rec.QuadPoints, _ = floatArray(t.QuadPoints)
		rec.Color, _ = floatArray(t.C)
	case *model.PdfAnnotationUnderline:
		markup = t.PdfAnnotationMarkup
		rec.QuadPoints, _ = floatArray(t.QuadPoints)
		rec.Color, _ = floatArray(t.C)
	case *model.PdfAnnotationSquare:
		markup = t.PdfAnnotationMarkup
		rec.Color, _ = floatArray(t.C)
	case *model.PdfAnnotationText:
		markup = t.PdfAnnotationMarkup
		rec.Color, _ = floatArray(t.C)
	}
	if markup != nil {
		if markup.T != nil {
			rec.Title = annot.Scrub(markup.T.String())
		}
		if markup.Subj != nil {
			rec.Subject = annot.Scrub(markup.Subj.String())
		}
		if markup.RC != nil {
			rec.RichContents = annot.Scrub(markup.RC.String())
		}
	}
	return rec
}

func typeTag(ctx model.PdfModel) string {
	switch ctx.(type) {
	case *model.PdfAnnotationHighlight:
		return annot.Highlight
	case *model.PdfAnnotationStrikeOut:
		return annot.Strike
	case *model.PdfAnnotationUnderline:
		return annot.Underline
	case *model.PdfAnnotationSquare:
		return annot.Rectangle
	case *model.PdfAnnotationText:
		return annot.Text
	case *model.PdfAnnotationLink:
		return annot.Link
	case *model.PdfAnnotationPopup:
		return annot.Popup
	default:
		return annot.Unsupported
	}
}

func floatArray(obj core.PdfObject) ([]float64, bool) {
	if obj == nil {
		return nil, false
	}
	arr, ok := obj.(*core.PdfObjectArray)
	if !ok {
		return nil, false
	}
	vals, err := arr.ToFloat64Array()
	if err != nil {
		return nil, false
	}
	return vals, true
}

// PDF dates come in several near-identical spellings depending on the
// authoring tool; try each before giving up.
const (
	dateFormat    = "D:20060102150405+07'00'"
	dateFormatZ   = "D:20060102150405Z07'00'"
	dateFormatNoZ = "D:20060102150405"
)

func parseDate(obj core.PdfObject) *time.Time {
	if obj == nil {
		return nil
	}

	str := obj.String()
	date, err := time.Parse(dateFormat, str)
	if err != nil {
		date, err = time.Parse(dateFormatZ, str)
	}
	if err != nil {
		split := strings.Split(str, "Z")
		date, err = time.Parse(dateFormatNoZ, split[0])
	}
	if err != nil {
		return nil
	}
	return &date
}
