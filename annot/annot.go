// Package annot holds the reviewer-facing annotation model, the extractor
// that turns native PDF annotation records into it, and the in-memory
// collection the review session mutates.
package annot

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/psureshmagadi17/annotation-viewer/geom"
)

// Type tags for native annotation records.
const (
	Highlight   = "highlight"
	Strike      = "strike"
	Underline   = "underline"
	Rectangle   = "rectangle"
	Text        = "text"
	Link        = "link"
	Popup       = "popup"
	Unsupported = "unsupported"
)

// FeedbackType is the reviewer's verdict on one annotation.
type FeedbackType string

const (
	TruePositive  FeedbackType = "true_positive"
	FalsePositive FeedbackType = "false_positive"
	FalseNegative FeedbackType = "false_negative"
	Unreviewed    FeedbackType = "unreviewed"
)

// Annotation is one reviewed span. BBox/NormalizedBBox are page-intrinsic
// (scale 1) and must be re-projected against the current viewport at render
// time. When QuadPoints is non-empty the quads are authoritative for
// rendering, one rectangle per quad; otherwise the bbox is.
type Annotation struct {
	ID              string       `json:"id"`
	Page            int          `json:"page"`
	Type            string       `json:"type,omitempty"`
	SpanText        string       `json:"spanText,omitempty"`
	EntityType      string       `json:"entityType,omitempty"`
	FeedbackType    FeedbackType `json:"feedbackType"`
	BBox            *geom.Rect   `json:"bbox,omitempty"`
	NormalizedBBox  *geom.Rect   `json:"normalizedBbox,omitempty"`
	QuadPoints      []geom.Quad  `json:"quadPoints,omitempty"`
	NormalizedQuads []geom.Quad  `json:"normalizedQuads,omitempty"`
	IsUserCreated   bool         `json:"isUserCreated"`
	Notes           string       `json:"notes,omitempty"`
	Color           string       `json:"color,omitempty"`
	ColorCategory   string       `json:"colorCategory,omitempty"`
	Date            string       `json:"date,omitempty"`
}

// Scrub drops control and replacement characters that PDF string objects
// routinely smuggle into extracted text.
func Scrub(str string) string {
	return strings.Map(func(r rune) rune {
		if r == unicode.ReplacementChar {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, str)
}

// MakeID produces a stable, human-readable annotation id from the record's
// type and position, suffixing on collision. ids tracks issued ids.
func MakeID(ids map[string]bool, page int, x, y float64, annotType string) string {
	id := fmt.Sprintf("%s-p%dx%dy%d", annotType, page, int(x), int(y))
	base := id
	for i := 1; ids[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	ids[id] = true
	return id
}

// byPosition orders annotations in reading order: page, then top edge, then
// left edge. Annotations without geometry sort after those with it.
type byPosition []*Annotation

func (a byPosition) Len() int      { return len(a) }
func (a byPosition) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byPosition) Less(i, j int) bool {
	if a[i].Page != a[j].Page {
		return a[i].Page < a[j].Page
	}
	bi, bj := a[i].BBox, a[j].BBox
	if bi == nil || bj == nil {
		return bj == nil && bi != nil
	}
	if bi.Y != bj.Y {
		return bi.Y < bj.Y
	}
	return bi.X < bj.X
}
