package profile

import "sort"

// Combine merges adjacent price levels into coarser bands. Levels are
// sorted ascending by price; a band is anchored at the first level and
// absorbs every level within [anchor, anchor+width], summing volumes and
// concatenating Profiles in order. A level past the anchor's width starts
// the next band. The input is never mutated and may mix VolumeProfile and
// MarketProfile entries.
func Combine(levels []*PriceLevel, width float64) ([]*PriceLevel, error) {
	if len(levels) == 0 {
		return nil, ErrEmptyInput
	}

	sorted := make([]*PriceLevel, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Level < sorted[j].Level
	})

	var bands []*PriceLevel
	band := cloneLevel(sorted[0])
	for _, lvl := range sorted[1:] {
		if lvl.Level <= band.Level+width {
			band.BullishVolume += lvl.BullishVolume
			band.BearishVolume += lvl.BearishVolume
			band.Profile = append(band.Profile, lvl.Profile...)
			continue
		}
		bands = append(bands, band)
		band = cloneLevel(lvl)
	}
	bands = append(bands, band)

	return bands, nil
}

func cloneLevel(lvl *PriceLevel) *PriceLevel {
	c := &PriceLevel{
		Level:         lvl.Level,
		BullishVolume: lvl.BullishVolume,
		BearishVolume: lvl.BearishVolume,
	}
	if len(lvl.Profile) > 0 {
		c.Profile = append([]int(nil), lvl.Profile...)
	}
	return c
}
