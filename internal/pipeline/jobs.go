package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/charterreview/internal/extract"
	"github.com/google/uuid"
)

// JobStatus represents the state of one document in a run.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusParsing     JobStatus = "parsing"
	StatusSegmenting  JobStatus = "segmenting"
	StatusClassifying JobStatus = "classifying"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusDupSkipped  JobStatus = "duplicate_skipped"
)

// Job tracks the processing of a single review document.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Index    int    `json:"index"` // Position in file name order

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Reviewer string    `json:"reviewer"`
	School   string    `json:"school"`
	Strategy string    `json:"strategy"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	comments []extract.Comment
	errors   []string
}

// Progress counts what was found in one document.
type Progress struct {
	Lines      int      `json:"lines"`
	Sections   int      `json:"sections"`
	Unresolved int      `json:"unresolved_sections"`
	Filtered   int      `json:"boilerplate_filtered"`
	Comments   int      `json:"comments"`
	Errors     []string `json:"errors"`
}

// NewJob returns a queued job for the file at path.
func NewJob(path, filename string, index int) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Path:      path,
		Filename:  filename,
		Index:     index,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JobStore is a thread-safe registry of one run's jobs, kept in file order.
type JobStore struct {
	mu    sync.Mutex
	jobs  map[string]*Job
	order []*Job
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*Job)}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		s.order = append(s.order, job)
	}
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// List returns the jobs in the order they were added.
func (s *JobStore) List() []*Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Job(nil), s.order...)
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetMetadata records who reviewed which school.
func (j *Job) SetMetadata(reviewer, school string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Reviewer = reviewer
	j.School = school
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash used to detect duplicate inputs.
func (j *Job) SetContentHash(h string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = h
}

// SetSegmentation records how the document was split.
func (j *Job) SetSegmentation(strategy string, lines, sections, filtered int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Strategy = strategy
	j.Progress.Lines = lines
	j.Progress.Sections = sections
	j.Progress.Filtered = filtered
	j.UpdatedAt = time.Now()
}

// AddComments appends the comments of one section.
func (j *Job) AddComments(cs []extract.Comment, unresolved bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.comments = append(j.comments, cs...)
	j.Progress.Comments += len(cs)
	if unresolved {
		j.Progress.Unresolved++
	}
	j.UpdatedAt = time.Now()
}

// Comments returns the extracted comments in document order.
func (j *Job) Comments() []extract.Comment {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]extract.Comment(nil), j.comments...)
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Filename    string    `json:"filename"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Reviewer    string    `json:"reviewer"`
	School      string    `json:"school"`
	Strategy    string    `json:"strategy"`
	ContentHash string    `json:"content_hash,omitempty"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	p := j.Progress
	p.Errors = errs
	return JobSnapshot{
		ID:          j.ID,
		Filename:    j.Filename,
		Status:      j.Status,
		Phase:       j.Phase,
		Reviewer:    j.Reviewer,
		School:      j.School,
		Strategy:    j.Strategy,
		ContentHash: j.ContentHash,
		Progress:    p,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
