package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgallion1/charterreview/internal/extract"
	"github.com/dgallion1/charterreview/internal/meta"
	"github.com/dgallion1/charterreview/internal/parser"
	"github.com/dgallion1/charterreview/internal/segment"
)

// Worker extracts the comments of a single document. Workers share the
// read-only segmenter and classifier and never touch the compilation.
type Worker struct {
	segmenter  *segment.Segmenter
	classifier *extract.Classifier
	cells      parser.CellStrategy
	source     meta.Source
	timings    *extract.Timings
	log        *slog.Logger
}

func NewWorker(seg *segment.Segmenter, cls *extract.Classifier, cells parser.CellStrategy, source meta.Source, timings *extract.Timings, log *slog.Logger) *Worker {
	return &Worker{
		segmenter:  seg,
		classifier: cls,
		cells:      cells,
		source:     source,
		timings:    timings,
		log:        log,
	}
}

// Process runs parse, segment and classify for a job. Failures are recorded
// on the job; they never stop other documents.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "file", job.Filename)
	start := time.Now()
	defer func() {
		if w.timings != nil {
			w.timings.Record(time.Since(start))
		}
	}()

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "canceled")
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	doc, err := parser.ReadFile(job.Path)
	if err != nil {
		log.Error("document read failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	lines := parser.Gather(doc, w.cells)
	text := lines.Text()
	job.SetContentHash(ContentHashHex([]byte(text)))

	md, err := meta.Resolve(w.source, job.Filename, text)
	var nme *meta.NoMatchError
	if errors.As(err, &nme) {
		log.Warn("file name does not follow convention", "error", err, "reviewer", md.Reviewer)
	}
	job.SetMetadata(md.Reviewer, md.School)
	log = log.With("reviewer", md.Reviewer)

	// Phase 2: Segment
	job.SetStatus(StatusSegmenting, "segmenting")
	seg := w.segmenter.Segment(lines)
	job.SetSegmentation(string(seg.Strategy), len(lines), len(seg.Sections), seg.Filtered)
	if seg.Strategy == segment.None {
		log.Warn("no sections found", "lines", len(lines))
	}

	// Phase 3: Classify
	job.SetStatus(StatusClassifying, "classifying")
	for _, sec := range seg.Sections {
		frags, style := w.classifier.Classify(sec.Lines)
		if len(frags) == 0 {
			continue
		}
		if sec.Unresolved {
			uerr := &segment.SectionUnresolvedError{Header: sec.Header}
			log.Warn("comments filed under general comments", "error", uerr, "count", len(frags))
			job.AddError(uerr.Error())
		}
		log.Debug("section classified", "section", sec.Key.Title, "style", style, "comments", len(frags))
		job.AddComments(extract.Attribute(md.Reviewer, sec.Key, frags), sec.Unresolved)
	}

	snap := job.Snapshot()
	log.Info("document processed",
		"strategy", seg.Strategy,
		"sections", snap.Progress.Sections,
		"comments", snap.Progress.Comments,
		"filtered", snap.Progress.Filtered,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	job.SetStatus(StatusCompleted, "done")
}
