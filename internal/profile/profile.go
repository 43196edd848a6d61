package profile

import (
	"errors"
	"math"

	"github.com/jwtly10/barlens/internal/logging"
	"github.com/jwtly10/barlens/internal/series"
	"github.com/jwtly10/barlens/internal/symbol"
)

// ErrEmptyInput is returned when an aggregation or combination is invoked on
// an empty collection.
var ErrEmptyInput = errors.New("empty price level collection")

var profileLog = logging.New("profile")

// PriceLevel is one price bucket of an aggregation result. Level is the
// price rounded to the symbol's digit precision; levels within one result
// are distinct and appear in first-seen order. Profile carries the indices
// of bars that touched this level and is only populated by MarketProfile.
type PriceLevel struct {
	Level         float64
	BullishVolume int64
	BearishVolume int64
	Profile       []int
}

// levelSet upserts PriceLevels keyed by exact rounded price while keeping
// first-seen order.
type levelSet struct {
	byPrice map[float64]*PriceLevel
	order   []*PriceLevel
}

func newLevelSet() *levelSet {
	return &levelSet{byPrice: make(map[float64]*PriceLevel)}
}

func (ls *levelSet) get(price float64) *PriceLevel {
	if lvl, ok := ls.byPrice[price]; ok {
		return lvl
	}
	lvl := &PriceLevel{Level: price}
	ls.byPrice[price] = lvl
	ls.order = append(ls.order, lvl)
	return lvl
}

// VolumeProfile distributes each bar's estimated tick volume across the
// price levels its shadow touched, over the window [index-periods+1, index].
//
// The volume estimate is sym.ToTicks(shadow range). The bullish share is the
// fraction of the shadow below the close, the bearish share the fraction
// above it; both are normalized by the range in pips and scaled by
// stepInPips, so every touched level receives the same amount. Bars with a
// non-positive shadow range or estimated tick volume are skipped outright;
// this is aggregation policy, not a failure.
func VolumeProfile(s series.Series, sym symbol.Symbol, index, periods int, stepInPips float64) ([]*PriceLevel, error) {
	if err := checkWindow(s, sym, index, periods); err != nil {
		return nil, err
	}

	out := newLevelSet()
	step := stepInPips * sym.PipSize()

	for i := index - periods + 1; i <= index; i++ {
		b := s.At(i)
		shadow := b.ShadowRange()
		ticks := sym.ToTicks(shadow)
		if shadow <= 0 || ticks <= 0 {
			profileLog.Debug("Skipping degenerate bar", "index", i, "shadow", shadow, "ticks", ticks)
			continue
		}

		above := (b.High - b.Close) / shadow
		below := (b.Close - b.Low) / shadow
		rangePips := sym.ToPips(shadow)

		bullPerLevel := int64(math.Round(ticks * below / rangePips * stepInPips))
		bearPerLevel := int64(math.Round(ticks * above / rangePips * stepInPips))

		for price := b.Low; price < b.High; price += step {
			lvl := out.get(symbol.RoundTo(price, sym.Digits()))
			lvl.BullishVolume += bullPerLevel
			lvl.BearishVolume += bearPerLevel
		}
	}

	profileLog.Debug("Built volume profile", "index", index, "periods", periods, "levels", len(out.order))
	return out.order, nil
}

// MarketProfile records which bars spent time at each price level over the
// window [index-periods+1, index]: every level a bar's shadow touched gets
// that bar's index appended to its Profile. Zero-height bars touch no level.
func MarketProfile(s series.Series, sym symbol.Symbol, index, periods int, stepInPips float64) ([]*PriceLevel, error) {
	if err := checkWindow(s, sym, index, periods); err != nil {
		return nil, err
	}

	out := newLevelSet()
	step := stepInPips * sym.PipSize()

	for i := index - periods + 1; i <= index; i++ {
		b := s.At(i)
		for price := b.Low; price < b.High; price += step {
			lvl := out.get(symbol.RoundTo(price, sym.Digits()))
			lvl.Profile = append(lvl.Profile, i)
		}
	}

	profileLog.Debug("Built market profile", "index", index, "periods", periods, "levels", len(out.order))
	return out.order, nil
}

func checkWindow(s series.Series, sym symbol.Symbol, index, periods int) error {
	if sym == nil {
		return symbol.ErrMissing
	}
	if periods <= 0 || !series.InRange(s, index-periods+1) || !series.InRange(s, index) {
		return series.ErrIndexOutOfRange
	}
	return nil
}
