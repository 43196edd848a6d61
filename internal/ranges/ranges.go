package ranges

import (
	"errors"
	"math"

	"github.com/jwtly10/barlens/internal/series"
	"github.com/jwtly10/barlens/internal/symbol"
)

// ErrInvalidUnit is returned when an unrecognized conversion unit is
// requested.
var ErrInvalidUnit = errors.New("invalid range unit")

// Unit selects the measurement unit for a converted bar range.
type Unit string

const (
	Pips  Unit = "PIPS"
	Ticks Unit = "TICKS"
)

// BarRange returns the extent of a single bar: High-Low for the full shadow,
// or |Open-Close| when useBody is set. Never negative.
func BarRange(s series.Series, index int, useBody bool) (float64, error) {
	if !series.InRange(s, index) {
		return 0, series.ErrIndexOutOfRange
	}
	b := s.At(index)
	if useBody {
		return b.BodyRange(), nil
	}
	return b.ShadowRange(), nil
}

// BarRangeIn converts a bar range into pip or tick units via the symbol
// metadata. A nil symbol yields symbol.ErrMissing; an unknown unit yields
// ErrInvalidUnit.
func BarRangeIn(s series.Series, index int, useBody bool, sym symbol.Symbol, unit Unit) (float64, error) {
	r, err := BarRange(s, index, useBody)
	if err != nil {
		return 0, err
	}
	if sym == nil {
		return 0, symbol.ErrMissing
	}
	switch unit {
	case Pips:
		return sym.ToPips(r), nil
	case Ticks:
		return sym.ToTicks(r), nil
	default:
		return 0, ErrInvalidUnit
	}
}

// WindowMax returns the largest bar range over the inclusive window
// [index-periods, index].
func WindowMax(s series.Series, index, periods int, useBody bool) (float64, error) {
	max := math.Inf(-1)
	err := eachRange(s, index, periods, useBody, func(r float64) {
		if r > max {
			max = r
		}
	})
	if err != nil {
		return 0, err
	}
	return max, nil
}

// WindowMin returns the smallest bar range over the inclusive window
// [index-periods, index]. The running minimum starts at +Inf so any real
// range can beat it.
func WindowMin(s series.Series, index, periods int, useBody bool) (float64, error) {
	min := math.Inf(1)
	err := eachRange(s, index, periods, useBody, func(r float64) {
		if r < min {
			min = r
		}
	})
	if err != nil {
		return 0, err
	}
	return min, nil
}

// WindowMean returns the arithmetic mean bar range over the inclusive window
// [index-periods, index].
func WindowMean(s series.Series, index, periods int, useBody bool) (float64, error) {
	sum := 0.0
	err := eachRange(s, index, periods, useBody, func(r float64) {
		sum += r
	})
	if err != nil {
		return 0, err
	}
	return sum / float64(periods+1), nil
}

func eachRange(s series.Series, index, periods int, useBody bool, fn func(r float64)) error {
	if periods < 0 || !series.InRange(s, index-periods) || !series.InRange(s, index) {
		return series.ErrIndexOutOfRange
	}
	for i := index - periods; i <= index; i++ {
		r, err := BarRange(s, i, useBody)
		if err != nil {
			return err
		}
		fn(r)
	}
	return nil
}

// IntervalRange returns the price extent covered by bars in the inclusive
// interval [start, end]. With useBody the extremes are taken from bar bodies
// (the body's low and high according to each bar's direction) rather than
// shadows.
func IntervalRange(s series.Series, start, end int, useBody bool) (float64, error) {
	if start > end || !series.InRange(s, start) || !series.InRange(s, end) {
		return 0, series.ErrIndexOutOfRange
	}

	max := math.Inf(-1)
	min := math.Inf(1)
	for i := start; i <= end; i++ {
		b := s.At(i)
		hi, lo := b.High, b.Low
		if useBody {
			if b.Close >= b.Open {
				hi, lo = b.Close, b.Open
			} else {
				hi, lo = b.Open, b.Close
			}
		}
		if hi > max {
			max = hi
		}
		if lo < min {
			min = lo
		}
	}
	return max - min, nil
}

// IsFlat reports whether the interval trades sideways: the population
// standard deviation of the Highs and of the Lows must both stay within
// maxStdDev.
func IsFlat(s series.Series, start, end int, maxStdDev float64) (bool, error) {
	if start > end || !series.InRange(s, start) || !series.InRange(s, end) {
		return false, series.ErrIndexOutOfRange
	}

	highs := make([]float64, 0, end-start+1)
	lows := make([]float64, 0, end-start+1)
	for i := start; i <= end; i++ {
		b := s.At(i)
		highs = append(highs, b.High)
		lows = append(lows, b.Low)
	}

	return stdDev(highs) <= maxStdDev && stdDev(lows) <= maxStdDev, nil
}

// stdDev computes the population standard deviation.
func stdDev(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}
