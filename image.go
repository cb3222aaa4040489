package main

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/psureshmagadi17/annotation-viewer/engine"
	"github.com/psureshmagadi17/annotation-viewer/observability"
	"github.com/psureshmagadi17/annotation-viewer/selection"
	"github.com/psureshmagadi17/annotation-viewer/viewer"
)

// writeSnapshots renders every page through the viewer controller and saves
// the rasters, one image per page.
func writeSnapshots(doc *engine.Document, opts selection.Options, diag observability.Sink) error {
	if err := os.MkdirAll(args.SnapshotPath, os.ModePerm); err != nil {
		return err
	}

	ctrl := viewer.NewController(doc, opts, diag)
	for i := 1; i <= doc.PageCount(); i++ {
		if err := ctrl.RenderPage(context.Background(), i, args.Scale); err != nil {
			return err
		}
		img := ctrl.Image()
		if img == nil {
			continue
		}

		name := fmt.Sprintf("%s/page-%d.%s", args.SnapshotPath, i, args.SnapshotFormat)
		if err := writeImage(img, name, args.SnapshotFormat, args.SnapshotQuality); err != nil {
			return err
		}
	}
	return nil
}

func writeImage(img image.Image, name, format string, quality int) error {
	if format == "jpg" {
		return writeJPGImage(img, name, quality)
	}
	return writePNGImage(img, name)
}

func writeJPGImage(img image.Image, name string, quality int) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	defer fd.Close()
	return jpeg.Encode(fd, img, &jpeg.Options{Quality: quality})
}

func writePNGImage(img image.Image, name string) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	defer fd.Close()
	return png.Encode(fd, img)
}
