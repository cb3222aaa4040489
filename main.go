package main

import (
	"context"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/psureshmagadi17/annotation-viewer/annot"
	"github.com/psureshmagadi17/annotation-viewer/engine"
	"github.com/psureshmagadi17/annotation-viewer/export"
	"github.com/psureshmagadi17/annotation-viewer/observability"
	"github.com/psureshmagadi17/annotation-viewer/selection"
)

var args struct {
	Format  string  `short:"f" enum:"json,csv,xfdf" default:"json" help:"Export format"`
	Output  string  `short:"o" type:"path" help:"Output file. Writes to stdout when omitted"`
	Overlap float64 `default:"0.3" help:"Overlap ratio required to count a text run as covered"`
	Workers int     `short:"j" default:"4" help:"Concurrent page extraction workers"`

	SnapshotPath    string  `short:"p" type:"path" help:"Directory to write rendered page snapshots into"`
	SnapshotFormat  string  `enum:"jpg,png" default:"png" help:"Snapshot image format"`
	SnapshotQuality int     `short:"q" default:"90" help:"Snapshot quality. Only applies to jpg"`
	Scale           float64 `short:"s" default:"1.0" help:"Render scale for page snapshots"`

	Verbose bool `short:"v" help:"Log diagnostic events to stderr"`

	InputPDF string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
}

func endIfErr(e error) {
	if e != nil {
		eLog := log.New(os.Stderr, "", 0)
		eLog.Fatalln(e)
	}
}

func stderrSink() observability.Sink {
	eLog := log.New(os.Stderr, "", 0)
	return observability.SinkFunc(func(e observability.Event) {
		if e.Err != nil {
			eLog.Printf("[%s] %s: %s: %v", e.Level, e.Op, e.Msg, e.Err)
			return
		}
		eLog.Printf("[%s] %s: %s", e.Level, e.Op, e.Msg)
	})
}

func main() {
	kong.Parse(&args)

	diag := observability.Gate(observability.LevelWarn, stderrSink())
	if args.Verbose {
		diag = stderrSink()
	}

	doc, err := engine.Open(args.InputPDF)
	endIfErr(err)
	defer doc.Close()

	opts := selection.DefaultOptions()
	opts.OverlapThreshold = args.Overlap

	pages := make([]annot.ExtractResult, doc.PageCount())

	workers := args.Workers
	if workers < 1 {
		workers = 1
	}
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i := 1; i <= doc.PageCount(); i++ {
		i := i
		g.Go(func() error {
			res, err := extractPage(doc, i, opts)
			if err != nil {
				return err
			}
			pages[i-1] = res
			return nil
		})
	}
	endIfErr(g.Wait())

	store := annot.NewStore()
	for _, res := range pages {
		for _, e := range res.Errors {
			diag.Emit(observability.Event{
				Level: observability.LevelWarn,
				Op:    "extract",
				Msg:   "annotation record skipped",
				Err:   e,
			})
		}
		for _, a := range res.Annotations {
			if !store.Add(a) {
				diag.Emit(observability.Event{
					Level: observability.LevelWarn,
					Op:    "extract",
					Msg:   "duplicate annotation id dropped",
					Fields: map[string]interface{}{
						"id": a.ID,
					},
				})
			}
		}
	}

	if args.SnapshotPath != "" {
		endIfErr(writeSnapshots(doc, opts, diag))
	}

	out := os.Stdout
	if args.Output != "" {
		f, err := os.Create(args.Output)
		endIfErr(err)
		defer f.Close()
		out = f
	}
	endIfErr(export.Write(out, args.Format, store.All()))
}

// extractPage pulls one page's text runs and native records and converts
// them at scale 1, so the stored geometry stays page-intrinsic.
func extractPage(doc *engine.Document, n int, opts selection.Options) (annot.ExtractResult, error) {
	page, err := doc.Page(n)
	if err != nil {
		return annot.ExtractResult{}, err
	}

	vp := page.Viewport(1)

	items, err := page.TextItems()
	if err != nil {
		return annot.ExtractResult{}, err
	}
	runs := selection.CollectRuns(items, vp)

	records, err := page.Records()
	if err != nil {
		return annot.ExtractResult{}, err
	}

	return annot.ExtractPage(records, n, vp.Width, vp.Height, runs, annot.Options{Selection: opts}), nil
}
