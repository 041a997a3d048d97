package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/rileyhilliard/bitmeter/internal/logger"
	"github.com/rileyhilliard/bitmeter/internal/store"
	"github.com/rileyhilliard/bitmeter/internal/store/storetest"
)

// fakeSource records the window it was asked for.
type fakeSource struct {
	pair    store.Pair
	samples []store.Sample
	err     error

	calls      int
	since, now int64
}

func (f *fakeSource) Query(ctx context.Context, since, now int64) (store.Pair, []store.Sample, error) {
	f.calls++
	f.since, f.now = since, now
	if f.err != nil {
		return store.Pair{}, nil, f.err
	}
	return f.pair, f.samples, nil
}

func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0) }
}

func TestScheduler_FetchWindow(t *testing.T) {
	src := &fakeSource{
		pair:    store.Pair{Download: 2500, Upload: 10},
		samples: []store.Sample{{Timestamp: 1000, Download: 2500, Upload: 10}},
	}
	s := NewScheduler(src)
	s.SetClock(fixedClock(1001))

	frame, err := s.Fetch(context.Background(), 160)
	require.NoError(t, err)

	assert.Equal(t, int64(1001-160), src.since)
	assert.Equal(t, int64(1001), src.now)
	assert.Equal(t, int64(1001), frame.Now)
	assert.Equal(t, 160, frame.Width)
	assert.Equal(t, src.samples, frame.Samples)
	assert.Equal(t, "DL: 2.50 UL: 0.01", frame.Caption)
}

func TestScheduler_TickFailureKeepsHistory(t *testing.T) {
	src := &fakeSource{samples: []store.Sample{{Timestamp: 1}, {Timestamp: 2}}}
	log := logger.NewBufferLogger()
	s := NewScheduler(src)
	s.SetClock(fixedClock(3))
	s.SetLogger(log)

	history := NewHistory()
	_, ok := s.Tick(context.Background(), 10, history)
	require.True(t, ok)
	require.Len(t, history.Samples(), 2)

	src.err = errors.New(errors.ErrStore, "database is locked", "")
	_, ok = s.Tick(context.Background(), 10, history)
	assert.False(t, ok, "no repaint after a failed query")
	assert.Len(t, history.Samples(), 2, "previous contents kept")
	assert.True(t, log.HasLevel(logger.LevelWarn))
}

// Seconds 100..104 in the store, a tick at 105 over a 5-pixel canvas.
func TestScheduler_EndToEnd(t *testing.T) {
	path := storetest.NewDB(t, storetest.Scenario, nil)
	samples, err := store.OpenSampleStore(path)
	require.NoError(t, err)
	defer samples.Close()

	s := NewScheduler(samples)
	s.SetClock(fixedClock(105))

	history := NewHistory()
	frame, ok := s.Tick(context.Background(), 5, history)
	require.True(t, ok)

	assert.Equal(t, []store.Sample{
		{Timestamp: 100, Download: 500, Upload: 200},
		{Timestamp: 101, Download: 600, Upload: 300},
		{Timestamp: 102, Download: 0, Upload: 0},
		{Timestamp: 103, Download: 700, Upload: 900},
		{Timestamp: 104, Download: 1024, Upload: 1024},
	}, history.Samples())
	assert.Equal(t, store.Pair{Download: 1024, Upload: 1024}, frame.Pair)
	assert.Equal(t, "DL: 1.02 UL: 1.02", frame.Caption)

	// A narrower canvas only sees the newest seconds
	frame, ok = s.Tick(context.Background(), 2, history)
	require.True(t, ok)
	assert.Len(t, history.Samples(), 2)
	assert.Equal(t, int64(103), history.Samples()[0].Timestamp)
	assert.Equal(t, "DL: 1.02 UL: 1.02", frame.Caption)
}

func TestScheduler_WindowProperty(t *testing.T) {
	var all []store.Sample
	for ts := int64(0); ts < 50; ts++ {
		all = append(all, store.Sample{Timestamp: ts, Download: ts * 10, Upload: ts})
	}
	path := storetest.NewDB(t, all, nil)
	samples, err := store.OpenSampleStore(path)
	require.NoError(t, err)
	defer samples.Close()

	for _, width := range []int{0, 1, 7, 49, 50, 80} {
		s := NewScheduler(samples)
		s.SetClock(fixedClock(50))
		history := NewHistory()

		_, ok := s.Tick(context.Background(), width, history)
		require.True(t, ok)

		var want []store.Sample
		for _, smp := range all {
			if smp.Timestamp >= int64(50-width) {
				want = append(want, smp)
			}
		}
		if want == nil {
			want = []store.Sample{}
		}
		assert.Equal(t, want, history.Samples(), "width %d", width)
	}
}
