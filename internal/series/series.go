package series

import (
	"errors"
	"time"

	"github.com/jwtly10/barlens/internal/logging"
	"github.com/jwtly10/barlens/internal/types"
)

var (
	// ErrIndexOutOfRange is returned when a requested index or window
	// extends outside [0, Len).
	ErrIndexOutOfRange = errors.New("bar index out of range")

	// ErrInsufficientHistory is returned when fewer bars exist than a
	// fixed lookback requires.
	ErrInsufficientHistory = errors.New("insufficient bar history")
)

// timeDeltaSamples is the number of recent inter-bar gaps inspected when
// inferring the series' bar interval.
const timeDeltaSamples = 5

var seriesLog = logging.New("series")

// Series is a read-only view over an index-aligned bar snapshot.
// Index 0 is the oldest bar. Implementations guarantee Low <= Open,Close <= High
// and strictly increasing timestamps; callers must not mutate the snapshot
// while an analysis call is in flight.
type Series interface {
	Len() int
	At(i int) types.Bar
}

// Slice adapts a plain bar slice to the Series view.
type Slice []types.Bar

func (s Slice) Len() int           { return len(s) }
func (s Slice) At(i int) types.Bar { return s[i] }

// InRange reports whether i is a valid index for s.
func InRange(s Series, i int) bool {
	return i >= 0 && i < s.Len()
}

// LastIndex returns the index of the most recent bar. For an empty series it
// returns the length itself; callers relying on the degenerate zero-length
// case expect that sentinel.
func LastIndex(s Series) int {
	n := s.Len()
	if n == 0 {
		return n
	}
	return n - 1
}

// TimeDelta infers the bar interval by taking the most frequent of the last
// five inter-bar gaps. Ties go to the last-encountered gap among the
// maximum-count group. Returns ErrInsufficientHistory when fewer than five
// gaps exist.
func TimeDelta(s Series) (time.Duration, error) {
	n := s.Len()
	if n < timeDeltaSamples+1 {
		return 0, ErrInsufficientHistory
	}

	gaps := make([]time.Duration, 0, timeDeltaSamples)
	for k := 0; k < timeDeltaSamples; k++ {
		i := n - 1 - k
		gaps = append(gaps, s.At(i).Timestamp.Sub(s.At(i-1).Timestamp))
	}

	counts := make(map[time.Duration]int, timeDeltaSamples)
	for _, g := range gaps {
		counts[g]++
	}

	var best time.Duration
	bestCount := 0
	for _, g := range gaps {
		if counts[g] >= bestCount {
			best = g
			bestCount = counts[g]
		}
	}

	seriesLog.Debug("Inferred bar interval", "delta", best, "count", bestCount)
	return best, nil
}

// Calendar reports whether a day is a non-trading day. Only the calendar
// date matters; intraday times on the same day agree.
type Calendar func(t time.Time) bool

// Weekend is the default Calendar: Saturdays and Sundays are non-trading.
func Weekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// EstimateOpenTime returns the open time for a (possibly fractional) bar
// index. Indices at or before the last bar return the stored time. Indices
// beyond the series are extrapolated by adding the inferred bar interval per
// whole step, re-adding it while the landing date is a non-trading day, then
// interpolating the fractional remainder in minutes. A nil cal uses Weekend.
//
// This is an approximation of the trading calendar: holidays are not modeled.
func EstimateOpenTime(s Series, index float64, cal Calendar) (time.Time, error) {
	if index < 0 || s.Len() == 0 {
		return time.Time{}, ErrIndexOutOfRange
	}
	if cal == nil {
		cal = Weekend
	}

	last := LastIndex(s)
	if index <= float64(last) {
		return s.At(int(index)).Timestamp, nil
	}

	delta, err := TimeDelta(s)
	if err != nil {
		return time.Time{}, err
	}

	dist := index - float64(last)
	whole := int(dist)
	frac := dist - float64(whole)

	t := s.At(last).Timestamp
	for step := 0; step < whole; step++ {
		t = t.Add(delta)
		for cal(t) {
			t = t.Add(delta)
		}
	}
	if frac > 0 {
		t = t.Add(time.Duration(frac*delta.Minutes()) * time.Minute)
	}

	seriesLog.Debug("Extrapolated open time", "index", index, "time", t, "delta", delta)
	return t, nil
}
