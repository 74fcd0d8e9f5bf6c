package stats

import (
	"math"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"gonum.org/v1/gonum/stat"
)

// Summary is the reduced view of many invocation outcomes. Counts always
// satisfy Successful+Failed == Total. Min/avg/max and the quantiles cover
// successful invocations only, so MinDuration <= AvgDuration <= MaxDuration
// holds whenever anything completed, and all of them are zero when nothing
// succeeded.
type Summary struct {
	Total      int `json:"total_requests"`
	Successful int `json:"successful_requests"`
	Failed     int `json:"failed_requests"`

	TotalDuration time.Duration `json:"-"`
	AvgDuration   time.Duration `json:"-"`
	MinDuration   time.Duration `json:"-"`
	MaxDuration   time.Duration `json:"-"`
	P50Duration   time.Duration `json:"-"`
	P95Duration   time.Duration `json:"-"`
	P99Duration   time.Duration `json:"-"`

	// JSON-friendly millisecond fields.
	TotalDurationMs float64 `json:"total_duration_ms"`
	AvgDurationMs   float64 `json:"avg_duration_ms"`
	MinDurationMs   float64 `json:"min_duration_ms"`
	MaxDurationMs   float64 `json:"max_duration_ms"`
	P50DurationMs   float64 `json:"p50_duration_ms"`
	P95DurationMs   float64 `json:"p95_duration_ms"`
	P99DurationMs   float64 `json:"p99_duration_ms"`

	Errors []string `json:"errors"`
}

// Accumulator folds invocation outcomes one at a time. Folding only uses
// order-independent operations (counts, sums, min, max), so results arriving
// in completion order rather than submission order produce the same summary.
// Not safe for concurrent use; orchestrators fold from a single goroutine.
type Accumulator struct {
	total      int
	successful int
	failed     int
	sum        time.Duration
	min        time.Duration
	max        time.Duration
	hist       *hdrhistogram.Histogram
	errors     []string
}

// NewAccumulator returns an empty accumulator. The latency histogram tracks
// 1µs..60s at 3 significant figures.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		min:    time.Duration(math.MaxInt64),
		hist:   hdrhistogram.New(1, 60_000_000, 3),
		errors: []string{},
	}
}

// Record folds one outcome. Failed outcomes contribute their error text and
// nothing to the duration statistics.
func (a *Accumulator) Record(ok bool, errText string, d time.Duration) {
	a.total++
	if !ok {
		a.failed++
		a.errors = append(a.errors, errText)
		return
	}
	a.successful++
	a.sum += d
	if d < a.min {
		a.min = d
	}
	if d > a.max {
		a.max = d
	}
	us := d.Microseconds()
	if us < a.hist.LowestTrackableValue() {
		us = a.hist.LowestTrackableValue()
	}
	if us > a.hist.HighestTrackableValue() {
		us = a.hist.HighestTrackableValue()
	}
	_ = a.hist.RecordValue(us)
}

// Summarize closes the fold. wall is the orchestrator-measured wall-clock
// span from submission to last completion; it is reported as TotalDuration.
func (a *Accumulator) Summarize(wall time.Duration) Summary {
	s := Summary{
		Total:         a.total,
		Successful:    a.successful,
		Failed:        a.failed,
		TotalDuration: wall,
		Errors:        a.errors,
	}
	if a.successful > 0 {
		s.AvgDuration = a.sum / time.Duration(a.successful)
		s.MinDuration = a.min
		s.MaxDuration = a.max
		s.P50Duration = time.Duration(a.hist.ValueAtQuantile(50)) * time.Microsecond
		s.P95Duration = time.Duration(a.hist.ValueAtQuantile(95)) * time.Microsecond
		s.P99Duration = time.Duration(a.hist.ValueAtQuantile(99)) * time.Microsecond
	}
	// The min sentinel never leaks: with zero successes it is reported as 0.
	s.TotalDurationMs = durationMs(s.TotalDuration)
	s.AvgDurationMs = durationMs(s.AvgDuration)
	s.MinDurationMs = durationMs(s.MinDuration)
	s.MaxDurationMs = durationMs(s.MaxDuration)
	s.P50DurationMs = durationMs(s.P50Duration)
	s.P95DurationMs = durationMs(s.P95Duration)
	s.P99DurationMs = durationMs(s.P99Duration)
	return s
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// IntervalStats summarizes the gaps between consecutive stream messages.
type IntervalStats struct {
	Count  int           `json:"count"`
	Mean   time.Duration `json:"-"`
	Stddev time.Duration `json:"-"`

	MeanMs   float64 `json:"mean_ms"`
	StddevMs float64 `json:"stddev_ms"`
}

// Intervals reduces a sequence of inter-message gaps. A single interval has
// zero stddev; an empty sequence reduces to the zero value.
func Intervals(gaps []time.Duration) IntervalStats {
	is := IntervalStats{Count: len(gaps)}
	if len(gaps) == 0 {
		return is
	}
	secs := make([]float64, len(gaps))
	for i, g := range gaps {
		secs[i] = g.Seconds()
	}
	mean := stat.Mean(secs, nil)
	is.Mean = time.Duration(mean * float64(time.Second))
	if len(secs) > 1 {
		is.Stddev = time.Duration(stat.StdDev(secs, nil) * float64(time.Second))
	}
	is.MeanMs = durationMs(is.Mean)
	is.StddevMs = durationMs(is.Stddev)
	return is
}
