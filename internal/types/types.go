package types

import "time"

// Bar is a single OHLCV record. Volume is tick volume.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// ShadowRange returns the full High-Low extent of the bar.
func (b Bar) ShadowRange() float64 {
	return b.High - b.Low
}

// BodyRange returns the absolute Open-Close extent of the bar.
func (b Bar) BodyRange() float64 {
	if b.Close > b.Open {
		return b.Close - b.Open
	}
	return b.Open - b.Close
}
