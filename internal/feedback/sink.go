package feedback

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// LogSink writes each record as one structured log entry.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink returns a sink logging to logger, or nowhere when it is nil.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger.Named("feedback")}
}

// Save implements Sink.
func (s *LogSink) Save(_ context.Context, fb Feedback) error {
	s.logger.Info("feedback received",
		zap.String("id", fb.ID),
		zap.String("original_word", fb.OriginalWord),
		zap.String("current", fb.CurrentTransformation),
		zap.String("suggested", fb.SuggestedTransformation),
		zap.Float64("intensity", fb.Intensity),
		zap.String("context", fb.Context),
		zap.String("reason", fb.Reason),
		zap.Time("submitted_at", fb.SubmittedAt),
		zap.String("user_agent", fb.UserAgent),
	)
	return nil
}

// MemorySink keeps records in memory, newest last.
type MemorySink struct {
	mu      sync.RWMutex
	records []Feedback
}

// Save implements Sink.
func (s *MemorySink) Save(ctx context.Context, fb Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.records = append(s.records, fb)
	s.mu.Unlock()
	return nil
}

// List returns a copy of the stored records.
func (s *MemorySink) List() []Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Feedback(nil), s.records...)
}

// MultiSink saves to every sink in order and stops at the first error.
type MultiSink []Sink

// Save implements Sink.
func (m MultiSink) Save(ctx context.Context, fb Feedback) error {
	for _, s := range m {
		if err := s.Save(ctx, fb); err != nil {
			return err
		}
	}
	return nil
}
