package domain

import "fmt"

type PriceBand string

const (
	BandUnder10 PriceBand = "under_10"
	Band10To20  PriceBand = "10_20"
	Band20To50  PriceBand = "20_50"
	BandOver50  PriceBand = "over_50"
)

var PriceBands = []PriceBand{BandUnder10, Band10To20, Band20To50, BandOver50}

// BandFor places a per-kg price in its band. Lower bounds are inclusive.
func BandFor(price float64) PriceBand {
	switch {
	case price < 10:
		return BandUnder10
	case price < 20:
		return Band10To20
	case price < 50:
		return Band20To50
	default:
		return BandOver50
	}
}

func ParsePriceBand(s string) (PriceBand, error) {
	for _, b := range PriceBands {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown price band %q", s)
}
