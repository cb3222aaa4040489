// Package export serializes a reviewed annotation set. The geometry fields
// round-trip unchanged: exports transcribe, they never recompute.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/psureshmagadi17/annotation-viewer/annot"
)

// Format names accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXFDF = "xfdf"
)

// Write dispatches on the format name.
func Write(w io.Writer, format string, annots []*annot.Annotation) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, annots)
	case FormatCSV:
		return WriteCSV(w, annots)
	case FormatXFDF:
		return WriteXFDF(w, annots)
	}
	return fmt.Errorf("export: unknown format %q", format)
}

// WriteJSON emits the annotation model's own JSON shape.
func WriteJSON(w io.Writer, annots []*annot.Annotation) error {
	if annots == nil {
		annots = []*annot.Annotation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(annots)
}

var csvHeader = []string{
	"id", "page", "type", "entityType", "feedbackType", "spanText",
	"isUserCreated", "color", "notes", "x", "y", "w", "h",
}

// WriteCSV emits one row per annotation. Geometry columns are empty for
// annotations without a bounding box.
func WriteCSV(w io.Writer, annots []*annot.Annotation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range annots {
		row := []string{
			a.ID,
			strconv.Itoa(a.Page),
			a.Type,
			a.EntityType,
			string(a.FeedbackType),
			a.SpanText,
			strconv.FormatBool(a.IsUserCreated),
			a.Color,
			a.Notes,
			"", "", "", "",
		}
		if a.BBox != nil {
			row[9] = formatCoord(a.BBox.X)
			row[10] = formatCoord(a.BBox.Y)
			row[11] = formatCoord(a.BBox.W)
			row[12] = formatCoord(a.BBox.H)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
