// Package feedback accepts user suggestions for better phonetic renderings
// and hands them to a storage sink. The translator never reads them back.
package feedback

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/vocal-technique/vocaltrans/internal/sanitize"
)

const (
	maxWordLen    = 100
	maxContextLen = 1000
	maxReasonLen  = 1000
	maxAgentLen   = 256
)

// Feedback is one suggestion for a word's rendering.
type Feedback struct {
	ID                      string    `json:"id"`
	OriginalWord            string    `json:"originalWord"`
	CurrentTransformation   string    `json:"currentTransformation"`
	SuggestedTransformation string    `json:"suggestedTransformation"`
	Intensity               float64   `json:"intensity"`
	Context                 string    `json:"context"`
	Reason                  string    `json:"reason,omitempty"`
	Timestamp               string    `json:"timestamp,omitempty"`
	SubmittedAt             time.Time `json:"submittedAt"`
	UserAgent               string    `json:"userAgent,omitempty"`
	IP                      string    `json:"ip,omitempty"`
}

// Sink stores feedback records.
type Sink interface {
	Save(ctx context.Context, fb Feedback) error
}

// ErrNoSink is returned by NewService without a sink.
var ErrNoSink = errors.New("feedback: sink is required")

// ValidationError lists the fields a submission got wrong.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "feedback: invalid " + strings.Join(e.Fields, ", ")
}

// Sanitize strips markup from every free-text field and trims them.
func (fb Feedback) Sanitize() Feedback {
	fb.OriginalWord = sanitize.Line(fb.OriginalWord)
	fb.CurrentTransformation = sanitize.Line(fb.CurrentTransformation)
	fb.SuggestedTransformation = sanitize.Line(fb.SuggestedTransformation)
	fb.Context = strings.TrimSpace(sanitize.Text(fb.Context))
	fb.Reason = strings.TrimSpace(sanitize.Text(fb.Reason))
	fb.UserAgent = truncate(sanitize.Line(fb.UserAgent), maxAgentLen)
	return fb
}

// Validate reports missing or oversized fields and an intensity outside 1-10.
func (fb Feedback) Validate() error {
	var bad []string
	check := func(name, v string, limit int, required bool) {
		n := utf8.RuneCountInString(v)
		if (required && n == 0) || n > limit {
			bad = append(bad, name)
		}
	}
	check("originalWord", fb.OriginalWord, maxWordLen, true)
	check("currentTransformation", fb.CurrentTransformation, maxWordLen, true)
	check("suggestedTransformation", fb.SuggestedTransformation, maxWordLen, true)
	check("context", fb.Context, maxContextLen, false)
	check("reason", fb.Reason, maxReasonLen, false)
	if math.IsNaN(fb.Intensity) || fb.Intensity < 1 || fb.Intensity > 10 {
		bad = append(bad, "intensity")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// Service cleans, validates and stamps submissions before saving them.
type Service struct {
	sink  Sink
	clock func() time.Time
	newID func() string
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator overrides the ULID generator.
func WithIDGenerator(gen func() string) ServiceOption {
	return func(s *Service) { s.newID = gen }
}

// NewService wires a sink into a Service.
func NewService(sink Sink, opts ...ServiceOption) (*Service, error) {
	if sink == nil {
		return nil, ErrNoSink
	}
	s := &Service{
		sink:  sink,
		clock: time.Now,
		newID: func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit sanitises and validates fb, assigns its id and submission time and
// saves it. The stored record is returned.
func (s *Service) Submit(ctx context.Context, fb Feedback) (Feedback, error) {
	fb = fb.Sanitize()
	if err := fb.Validate(); err != nil {
		return Feedback{}, err
	}
	fb.ID = s.newID()
	fb.SubmittedAt = s.clock().UTC()
	if err := s.sink.Save(ctx, fb); err != nil {
		return Feedback{}, err
	}
	return fb, nil
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit])
}
