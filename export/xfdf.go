package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/psureshmagadi17/annotation-viewer/annot"
	"github.com/psureshmagadi17/annotation-viewer/geom"
)

const xfdfNamespace = "http://ns.adobe.com/xfdf/"

type xfdfDoc struct {
	XMLName xml.Name   `xml:"xfdf"`
	Xmlns   string     `xml:"xmlns,attr"`
	Annots  xfdfAnnots `xml:"annots"`
}

// xfdfAnnots wraps the annotation list; each item names its own element
// via XMLName (highlight, underline, square, ...).
type xfdfAnnots struct {
	Items []xfdfAnnot
}

type xfdfAnnot struct {
	XMLName  xml.Name
	Page     int    `xml:"page,attr"`
	Name     string `xml:"name,attr"`
	Rect     string `xml:"rect,attr,omitempty"`
	Coords   string `xml:"coords,attr,omitempty"`
	Color    string `xml:"color,attr,omitempty"`
	Title    string `xml:"title,attr,omitempty"`
	Subject  string `xml:"subject,attr,omitempty"`
	Contents string `xml:"contents,omitempty"`
}

// WriteXFDF emits the standard <xfdf><annots> envelope. XFDF speaks PDF
// user space, so the stored top-left geometry is flipped back using the
// page size implied by the bbox/normalized-bbox pair. Pages are 0-indexed
// in XFDF.
func WriteXFDF(w io.Writer, annots []*annot.Annotation) error {
	doc := xfdfDoc{Xmlns: xfdfNamespace}
	for _, a := range annots {
		doc.Annots.Items = append(doc.Annots.Items, toXFDF(a))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func toXFDF(a *annot.Annotation) xfdfAnnot {
	out := xfdfAnnot{
		XMLName:  xml.Name{Local: elementName(a)},
		Page:     a.Page - 1,
		Name:     a.ID,
		Color:    a.Color,
		Title:    a.EntityType,
		Subject:  string(a.FeedbackType),
		Contents: contents(a),
	}

	pageH, ok := impliedPageHeight(a)
	if a.BBox != nil {
		out.Rect = rectAttr(*a.BBox, pageH, ok)
	}
	if len(a.QuadPoints) > 0 {
		out.Coords = coordsAttr(a.QuadPoints, pageH, ok)
	}
	return out
}

func elementName(a *annot.Annotation) string {
	switch a.Type {
	case annot.Highlight, annot.Strike, annot.Underline, annot.Text:
		return a.Type
	case annot.Rectangle:
		return "square"
	}
	return annot.Highlight
}

func contents(a *annot.Annotation) string {
	if a.Notes != "" {
		return a.Notes
	}
	return a.SpanText
}

// impliedPageHeight recovers the scale-1 page height from the ratio of the
// stored bbox to its normalized form. When it cannot be recovered the
// geometry is written unflipped rather than dropped.
func impliedPageHeight(a *annot.Annotation) (float64, bool) {
	if a.BBox == nil || a.NormalizedBBox == nil {
		return 0, false
	}
	if a.NormalizedBBox.H <= 0 {
		return 0, false
	}
	return a.BBox.H / a.NormalizedBBox.H, true
}

func rectAttr(b geom.Rect, pageH float64, flip bool) string {
	y1, y2 := b.Top(), b.Bottom()
	if flip {
		y1 = pageH - b.Bottom()
		y2 = pageH - b.Top()
	}
	return fmt.Sprintf("%s,%s,%s,%s",
		formatCoord(b.Left()), formatCoord(y1),
		formatCoord(b.Right()), formatCoord(y2))
}

func coordsAttr(quads []geom.Quad, pageH float64, flip bool) string {
	parts := make([]string, 0, len(quads)*8)
	for _, q := range quads {
		for i := 0; i < 8; i += 2 {
			y := q[i+1]
			if flip {
				y = pageH - y
			}
			parts = append(parts, formatCoord(q[i]), formatCoord(y))
		}
	}
	return strings.Join(parts, ",")
}
