package annot

import (
	"fmt"
	"sort"

	"github.com/psureshmagadi17/annotation-viewer/geom"
	"github.com/psureshmagadi17/annotation-viewer/selection"
)

// Store is the single-reviewer annotation collection: a flat list plus a
// page index, mutated synchronously, last writer wins. There is no
// concurrent writer, so there is no locking.
type Store struct {
	all    []*Annotation
	byPage map[int][]*Annotation
	ids    map[string]bool
	seq    int
}

func NewStore() *Store {
	return &Store{
		byPage: map[int][]*Annotation{},
		ids:    map[string]bool{},
	}
}

// Add inserts an extracted annotation. Annotations with a duplicate id are
// rejected.
func (s *Store) Add(a *Annotation) bool {
	if a == nil || s.ids[a.ID] {
		return false
	}
	s.ids[a.ID] = true
	s.all = append(s.all, a)
	s.byPage[a.Page] = append(s.byPage[a.Page], a)
	return true
}

// CreateFromSelection turns a resolved text selection into a user-created
// annotation. scale is the render scale of the viewport the selection was
// resolved against: the selection's pixel geometry is divided back down so
// the stored boxes are page-intrinsic (scale 1) like extracted ones. The
// normalized forms are already scale-independent and carry over as-is.
// By convention the feedback type starts as false_negative: a span the
// reviewer had to add by hand is, by definition, one the extraction step
// missed.
func (s *Store) CreateFromSelection(res *selection.Result, entityType string, scale float64) *Annotation {
	if res == nil {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}
	s.seq++
	bbox := scaleRect(res.BBox, 1/scale)
	nbbox := res.NormalizedBBox
	a := &Annotation{
		ID:              fmt.Sprintf("user-p%d-%d", res.Page, s.seq),
		Page:            res.Page,
		Type:            Highlight,
		SpanText:        Scrub(res.Text),
		EntityType:      entityType,
		FeedbackType:    FalseNegative,
		BBox:            &bbox,
		NormalizedBBox:  &nbbox,
		QuadPoints:      scaleQuads(res.Quads, 1/scale),
		NormalizedQuads: res.NormalizedQuads,
		IsUserCreated:   true,
	}
	s.Add(a)
	return a
}

func scaleRect(r geom.Rect, f float64) geom.Rect {
	return geom.Rect{X: r.X * f, Y: r.Y * f, W: r.W * f, H: r.H * f}
}

func scaleQuads(quads []geom.Quad, f float64) []geom.Quad {
	if len(quads) == 0 {
		return nil
	}
	out := make([]geom.Quad, len(quads))
	for i, q := range quads {
		for j := range q {
			out[i][j] = q[j] * f
		}
	}
	return out
}

func (s *Store) Get(id string) *Annotation {
	for _, a := range s.all {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// SetFeedback records the reviewer's verdict. Returns false for unknown ids.
func (s *Store) SetFeedback(id string, ft FeedbackType) bool {
	a := s.Get(id)
	if a == nil {
		return false
	}
	a.FeedbackType = ft
	return true
}

// SetNotes attaches free-form reviewer notes.
func (s *Store) SetNotes(id, notes string) bool {
	a := s.Get(id)
	if a == nil {
		return false
	}
	a.Notes = notes
	return true
}

// UpdateUserAnnotation edits the text and label of a user-created
// annotation. Extracted annotations are immutable apart from feedback.
func (s *Store) UpdateUserAnnotation(id, spanText, entityType string) bool {
	a := s.Get(id)
	if a == nil || !a.IsUserCreated {
		return false
	}
	a.SpanText = Scrub(spanText)
	a.EntityType = entityType
	return true
}

// Delete removes a user-created annotation from the flat list and the page
// index. Deleting anything else is a no-op.
func (s *Store) Delete(id string) bool {
	a := s.Get(id)
	if a == nil || !a.IsUserCreated {
		return false
	}
	s.all = remove(s.all, a)
	s.byPage[a.Page] = remove(s.byPage[a.Page], a)
	delete(s.ids, a.ID)
	return true
}

func remove(list []*Annotation, target *Annotation) []*Annotation {
	for i, a := range list {
		if a == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// ByPage returns the page's annotations in reading order.
func (s *Store) ByPage(page int) []*Annotation {
	out := append([]*Annotation(nil), s.byPage[page]...)
	sort.Stable(byPosition(out))
	return out
}

// All returns every annotation in reading order.
func (s *Store) All() []*Annotation {
	out := append([]*Annotation(nil), s.all...)
	sort.Stable(byPosition(out))
	return out
}

func (s *Store) Len() int { return len(s.all) }
