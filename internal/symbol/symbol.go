package symbol

import (
	"errors"
	"fmt"
	"math"
)

// ErrMissing is returned by operations that need symbol metadata when none
// was supplied.
var ErrMissing = errors.New("symbol metadata not provided")

// Symbol provides the instrument metadata needed to bucket prices and
// convert price deltas into pip or tick units.
type Symbol interface {
	PipSize() float64
	Digits() int
	ToPips(priceDelta float64) float64
	ToTicks(priceDelta float64) float64
}

// Spec is a plain-value Symbol implementation.
type Spec struct {
	pipSize  float64
	tickSize float64
	digits   int
}

func NewSpec(pipSize, tickSize float64, digits int) (*Spec, error) {
	if pipSize <= 0 {
		return nil, fmt.Errorf("pip size must be positive, got %v", pipSize)
	}
	if tickSize <= 0 {
		return nil, fmt.Errorf("tick size must be positive, got %v", tickSize)
	}
	if digits < 0 {
		return nil, fmt.Errorf("digits must be non-negative, got %d", digits)
	}
	return &Spec{pipSize: pipSize, tickSize: tickSize, digits: digits}, nil
}

func (s *Spec) PipSize() float64 {
	return s.pipSize
}

func (s *Spec) Digits() int {
	return s.digits
}

func (s *Spec) ToPips(priceDelta float64) float64 {
	return priceDelta / s.pipSize
}

func (s *Spec) ToTicks(priceDelta float64) float64 {
	return priceDelta / s.tickSize
}

// Round rounds a price to this symbol's digit precision.
func (s *Spec) Round(price float64) float64 {
	return RoundTo(price, s.digits)
}

// RoundTo rounds a price to the given number of decimal digits.
func RoundTo(price float64, digits int) float64 {
	scale := math.Pow10(digits)
	return math.Round(price*scale) / scale
}
