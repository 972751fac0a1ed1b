package facet

import "github.com/matst80/slask-wardrobe/pkg/types"

// ComparablePrice prefers the total amount, then the per unit amount. Nil means unpriced.
func ComparablePrice(price types.Price) *float64 {
	if price.AmountTotal != nil {
		return price.AmountTotal
	}
	if price.AmountPerUnit != nil {
		return price.AmountPerUnit
	}
	return nil
}

// BandContains checks value against the band using inclusive bounds, nil bounds are open.
func BandContains(band types.Band, value float64) bool {
	if band.MinAmount != nil && value < *band.MinAmount {
		return false
	}
	if band.MaxAmount != nil && value > *band.MaxAmount {
		return false
	}
	return true
}

// MatchesPriceBand is true when no band is selected, or when the value falls in any selected
// band. Unpriced values and selected ids missing from bands never match.
func MatchesPriceBand(selected types.IdList, bands Bands, value *float64) bool {
	if len(selected) == 0 {
		return true
	}
	if value == nil {
		return false
	}
	for id := range selected {
		band, ok := bands[id]
		if ok && BandContains(band, *value) {
			return true
		}
	}
	return false
}
