package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/charterreview/internal/boilerplate"
	"github.com/dgallion1/charterreview/internal/compilation"
	"github.com/dgallion1/charterreview/internal/extract"
	"github.com/dgallion1/charterreview/internal/meta"
	"github.com/dgallion1/charterreview/internal/parser"
	"github.com/dgallion1/charterreview/internal/sections"
	"github.com/dgallion1/charterreview/internal/segment"
	"github.com/google/uuid"
)

// ErrNoDocuments is returned when a run processes no document successfully.
var ErrNoDocuments = errors.New("no review documents were processed")

// Options configures one compilation run.
type Options struct {
	Registry       sections.Registry
	AppType        sections.AppType
	Boilerplate    *boilerplate.Set
	Cells          parser.CellStrategy
	Policy         extract.Policy
	ReviewerSource meta.Source
	Workers        int
	SkipDuplicates bool
}

// Summary describes a finished run.
type Summary struct {
	RunID      string                `json:"run_id"`
	AppType    sections.AppType      `json:"app_type"`
	Documents  int                   `json:"documents"`
	Processed  int                   `json:"processed"`
	Failed     int                   `json:"failed"`
	Duplicates int                   `json:"duplicate_inputs"`
	Filtered   int                   `json:"boilerplate_filtered"`
	Merge      compilation.Counts    `json:"merge"`
	Sections   int                   `json:"sections"`
	Timings    extract.StatsSnapshot `json:"timings"`
	Elapsed    time.Duration         `json:"elapsed"`
	Jobs       []JobSnapshot         `json:"jobs"`
}

// Orchestrator runs the extraction pipeline over a batch of documents.
type Orchestrator struct {
	opts Options
	jobs *JobStore
	log  *slog.Logger
}

// NewOrchestrator validates opts and applies defaults.
func NewOrchestrator(opts Options, log *slog.Logger) (*Orchestrator, error) {
	if opts.Registry == nil {
		opts.Registry = sections.Builtin()
	}
	if opts.AppType == "" {
		opts.AppType = sections.Standard
	}
	if opts.Cells == "" {
		opts.Cells = parser.CellSubstitute
	}
	if opts.Policy == "" {
		opts.Policy = extract.RunBlockFirst
	}
	if opts.ReviewerSource == "" {
		opts.ReviewerSource = meta.Auto
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.AppType != sections.Auto {
		if _, err := opts.Registry.Get(opts.AppType); err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{opts: opts, jobs: NewJobStore(), log: log}, nil
}

// Jobs returns the jobs of the last run in file order.
func (o *Orchestrator) Jobs() []*Job {
	return o.jobs.List()
}

// Run processes paths in file name order and merges their comments in that
// same order, whatever the number of workers. It returns ErrNoDocuments when
// no document could be read.
func (o *Orchestrator) Run(ctx context.Context, paths []string) (*compilation.Result, *Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := o.log.With("run_id", runID)

	paths = append([]string(nil), paths...)
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, nil, ErrNoDocuments
	}

	profile, appType, err := o.profile(paths, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("starting run", "documents", len(paths), "app_type", appType, "workers", o.opts.Workers)

	o.jobs = NewJobStore()
	jobs := make([]*Job, len(paths))
	for i, p := range paths {
		jobs[i] = NewJob(p, filepath.Base(p), i)
		o.jobs.Put(jobs[i])
	}

	timings := extract.NewTimings()
	seg := &segment.Segmenter{Profile: profile, Boilerplate: o.opts.Boilerplate}
	cls := &extract.Classifier{Policy: o.opts.Policy, Boilerplate: o.opts.Boilerplate}

	queue := make(chan *Job, len(jobs))
	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	var wg sync.WaitGroup
	for n := min(o.opts.Workers, len(jobs)); n > 0; n-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := NewWorker(seg, cls, o.opts.Cells, o.opts.ReviewerSource, timings, log)
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-queue:
					if !ok {
						return
					}
					w.Process(ctx, job)
				}
			}
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("run canceled: %w", err)
	}

	res, sum := o.merge(jobs, profile, log)
	sum.RunID = runID
	sum.AppType = appType
	sum.Timings = timings.Snapshot()
	sum.Elapsed = time.Since(start)

	log.Info("run complete",
		"processed", sum.Processed,
		"failed", sum.Failed,
		"duplicates", sum.Duplicates,
		"comments", res.Len(),
		"sections", sum.Sections,
		"elapsed", sum.Elapsed.Round(time.Millisecond),
	)
	if sum.Processed == 0 {
		return res, sum, ErrNoDocuments
	}
	return res, sum, nil
}

// merge folds completed jobs into one result in job order, so first-seen-wins
// deduplication keeps the comment from the earliest file name.
func (o *Orchestrator) merge(jobs []*Job, profile *sections.Profile, log *slog.Logger) (*compilation.Result, *Summary) {
	res := compilation.New(profile)
	sum := &Summary{Documents: len(jobs)}
	hashes := make(map[string]string) // content hash to first job ID

	for _, j := range jobs {
		snap := j.Snapshot()
		if snap.Status != StatusCompleted {
			sum.Failed++
			sum.Jobs = append(sum.Jobs, snap)
			continue
		}
		if o.opts.SkipDuplicates {
			if firstID, dup := hashes[snap.ContentHash]; dup {
				log.Warn("duplicate input skipped", "file", snap.Filename, "same_as", o.jobs.Get(firstID).Filename)
				j.SetStatus(StatusDupSkipped, "dedup")
				sum.Duplicates++
				sum.Jobs = append(sum.Jobs, j.Snapshot())
				continue
			}
			hashes[snap.ContentHash] = snap.ID
		}

		sum.Processed++
		sum.Filtered += snap.Progress.Filtered
		res.AddAll(j.Comments())
		if res.School == "" && snap.School != extract.UnknownSchool {
			res.School = snap.School
		}
		sum.Jobs = append(sum.Jobs, snap)
	}
	if res.School == "" {
		res.School = extract.UnknownSchool
	}
	sum.Merge = res.Counts()
	sum.Sections = len(res.Sections())
	return res, sum
}

// profile resolves the section profile, detecting the application type from
// the first readable document when it is Auto.
func (o *Orchestrator) profile(paths []string, log *slog.Logger) (*sections.Profile, sections.AppType, error) {
	at := o.opts.AppType
	if at == sections.Auto {
		at = sections.Standard
		for _, p := range paths {
			doc, err := parser.ReadFile(p)
			if err != nil {
				continue
			}
			at = sections.DetectApplicationType(parser.Gather(doc, o.opts.Cells).Text())
			log.Info("detected application type", "app_type", at, "file", filepath.Base(p))
			break
		}
	}
	p, err := o.opts.Registry.Get(at)
	if err != nil {
		return nil, "", err
	}
	return p, at, nil
}
