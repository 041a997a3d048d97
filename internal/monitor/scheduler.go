package monitor

import (
	"context"
	"time"

	"github.com/rileyhilliard/bitmeter/internal/logger"
	"github.com/rileyhilliard/bitmeter/internal/store"
)

// SampleSource is the read side of the bandwidth log.
// *store.SampleStore implements it.
type SampleSource interface {
	Query(ctx context.Context, since, now int64) (store.Pair, []store.Sample, error)
}

// Frame is the result of one successful tick.
type Frame struct {
	Now     int64
	Width   int
	Pair    store.Pair
	Samples []store.Sample
	Caption string
}

// Scheduler fetches the visible window from a SampleSource on each tick.
type Scheduler struct {
	source  SampleSource
	clock   func() time.Time
	timeout time.Duration
	logger  logger.Logger
}

// NewScheduler creates a scheduler reading from source using the wall clock.
func NewScheduler(source SampleSource) *Scheduler {
	return &Scheduler{
		source:  source,
		clock:   time.Now,
		timeout: 2 * time.Second,
		logger:  logger.Noop(),
	}
}

// SetClock replaces the time source. Used by tests.
func (s *Scheduler) SetClock(clock func() time.Time) {
	s.clock = clock
}

// SetLogger sets the logger used to report skipped ticks.
func (s *Scheduler) SetLogger(l logger.Logger) {
	s.logger = l
}

// Fetch queries the window [now-width, now) and returns it as a frame. On
// error the caller should keep whatever it was showing.
func (s *Scheduler) Fetch(ctx context.Context, width int) (Frame, error) {
	now := s.clock().Unix()
	since := now - int64(width)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pair, samples, err := s.source.Query(ctx, since, now)
	if err != nil {
		s.logger.Warn("tick at %d skipped: %v", now, err)
		return Frame{}, err
	}
	s.logger.Debug("tick at %d: %d samples since %d", now, len(samples), since)

	return Frame{
		Now:     now,
		Width:   width,
		Pair:    pair,
		Samples: samples,
		Caption: Caption(pair),
	}, nil
}

// Tick fetches a frame and, on success, replaces history with it. It reports
// whether a repaint is due. A failed fetch leaves history untouched.
func (s *Scheduler) Tick(ctx context.Context, width int, history *History) (Frame, bool) {
	frame, err := s.Fetch(ctx, width)
	if err != nil {
		return Frame{}, false
	}
	history.Replace(frame.Samples)
	return frame, true
}
