package pattern

import (
	"github.com/jwtly10/barlens/internal/logging"
	"github.com/jwtly10/barlens/internal/series"
	"github.com/jwtly10/barlens/internal/types"
)

type BarType string

const (
	Up      BarType = "UP"
	Down    BarType = "DOWN"
	Neutral BarType = "NEUTRAL"
)

type Pattern string

const (
	Engulfing        Pattern = "ENGULFING"
	Rejection        Pattern = "REJECTION"
	Doji             Pattern = "DOJI"
	InsideBar        Pattern = "INSIDE_BAR"
	ThreeBarReversal Pattern = "THREE_BAR_REVERSAL"
)

const (
	// baselineLookback is the fixed number of bars, ending one bar before
	// the classified bar, whose mean shadow range anchors the Rejection and
	// Doji thresholds.
	baselineLookback = 50

	rejectionMaxBodyRatio = 0.3
	dojiMaxBodyRatio      = 0.5
)

var patternLog = logging.New("pattern")

// TypeOf classifies a bar by the relation of its close to its open.
func TypeOf(b types.Bar) BarType {
	switch {
	case b.Close > b.Open:
		return Up
	case b.Close < b.Open:
		return Down
	default:
		return Neutral
	}
}

// IsEngulfing reports whether the bar's body swallows the previous bar's
// full shadow while reversing direction.
func IsEngulfing(s series.Series, index int) (bool, error) {
	if !series.InRange(s, index-1) || !series.InRange(s, index) {
		return false, series.ErrIndexOutOfRange
	}
	cur, prev := s.At(index), s.At(index-1)
	return cur.BodyRange() > prev.ShadowRange() && TypeOf(cur) != TypeOf(prev), nil
}

// IsRejection reports whether the bar is a long-wicked rejection: a small
// body relative to an above-baseline shadow, with the body pushed into the
// outer quartile opposite the wick.
func IsRejection(s series.Series, index int) (bool, error) {
	if !series.InRange(s, index-1) || !series.InRange(s, index) {
		return false, series.ErrIndexOutOfRange
	}
	b := s.At(index)
	shadow := b.ShadowRange()
	if shadow <= 0 {
		return false, nil
	}
	if b.BodyRange()/shadow >= rejectionMaxBodyRatio {
		return false, nil
	}
	if shadow <= meanShadow(s, index) {
		return false, nil
	}

	mid := b.Low + 0.5*shadow
	q1 := b.Low + 0.25*shadow
	q3 := b.Low + 0.75*shadow

	switch TypeOf(b) {
	case Up:
		return b.Open > mid && b.Close > q3, nil
	case Down:
		return b.Open < mid && b.Close < q1, nil
	default:
		return false, nil
	}
}

// IsDoji reports whether the bar is a doji: a shadow well under the baseline
// mean range with a body under half of it.
func IsDoji(s series.Series, index int) (bool, error) {
	if !series.InRange(s, index) {
		return false, series.ErrIndexOutOfRange
	}
	b := s.At(index)
	shadow := b.ShadowRange()
	if shadow <= 0 {
		return false, nil
	}
	return shadow < meanShadow(s, index)/3 && b.BodyRange()/shadow < dojiMaxBodyRatio, nil
}

// IsInsideBar reports whether the bar trades entirely within the previous
// bar's shadow while reversing direction.
func IsInsideBar(s series.Series, index int) (bool, error) {
	if !series.InRange(s, index-1) || !series.InRange(s, index) {
		return false, series.ErrIndexOutOfRange
	}
	cur, prev := s.At(index), s.At(index-1)
	return cur.High < prev.High && cur.Low > prev.Low && TypeOf(cur) != TypeOf(prev), nil
}

// IsThreeBarReversal reports whether the last three bars form a reversal:
// two same-direction bars whose middle bar sets the extreme, followed by an
// opposite bar closing back past the middle bar's open.
func IsThreeBarReversal(s series.Series, index int) (bool, error) {
	if !series.InRange(s, index-2) || !series.InRange(s, index) {
		return false, series.ErrIndexOutOfRange
	}
	first, mid, last := s.At(index-2), s.At(index-1), s.At(index)

	bullish := TypeOf(first) == Down && TypeOf(mid) == Down && TypeOf(last) == Up &&
		mid.Low < first.Low && mid.Low < last.Low &&
		last.Close > mid.Open

	bearish := TypeOf(first) == Up && TypeOf(mid) == Up && TypeOf(last) == Down &&
		mid.High > first.High && mid.High > last.High &&
		last.Close < mid.Open

	return bullish || bearish, nil
}

// PatternsOf returns every pattern matching the bar, in a fixed order:
// Engulfing, Rejection, Doji, InsideBar, ThreeBarReversal.
func PatternsOf(s series.Series, index int) ([]Pattern, error) {
	checks := []struct {
		pattern Pattern
		fn      func(series.Series, int) (bool, error)
	}{
		{Engulfing, IsEngulfing},
		{Rejection, IsRejection},
		{Doji, IsDoji},
		{InsideBar, IsInsideBar},
		{ThreeBarReversal, IsThreeBarReversal},
	}

	var matched []Pattern
	for _, c := range checks {
		ok, err := c.fn(s, index)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, c.pattern)
		}
	}

	patternLog.Debug("Classified bar", "index", index, "patterns", matched)
	return matched, nil
}

// MatchesAny reports whether the bar matches at least one of the target
// patterns.
func MatchesAny(s series.Series, index int, targets []Pattern) (bool, error) {
	matched, err := PatternsOf(s, index)
	if err != nil {
		return false, err
	}
	for _, t := range targets {
		if contains(matched, t) {
			return true, nil
		}
	}
	return false, nil
}

// MatchesAll reports whether the bar matches every one of the target
// patterns.
func MatchesAll(s series.Series, index int, targets []Pattern) (bool, error) {
	matched, err := PatternsOf(s, index)
	if err != nil {
		return false, err
	}
	for _, t := range targets {
		if !contains(matched, t) {
			return false, nil
		}
	}
	return true, nil
}

func contains(patterns []Pattern, p Pattern) bool {
	for _, candidate := range patterns {
		if candidate == p {
			return true
		}
	}
	return false
}

// meanShadow is the mean shadow range over up to baselineLookback bars
// ending one bar before index. The window clamps to available history so
// early bars still classify; an empty window yields zero.
func meanShadow(s series.Series, index int) float64 {
	end := index - 1
	start := index - baselineLookback
	if start < 0 {
		start = 0
	}
	if end < start {
		return 0
	}

	sum := 0.0
	for i := start; i <= end; i++ {
		sum += s.At(i).ShadowRange()
	}
	return sum / float64(end-start+1)
}
