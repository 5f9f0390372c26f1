package domain

import (
	"strconv"
	"strings"
)

// PieceKg is the assumed weight of one piece (100g).
const PieceKg = 0.1

// WeightInKg converts a weight descriptor such as "500g", "1.5kg", "4 pieces" or "250ml"
// to kilograms. Millilitres are treated as grams. Unknown units and unparseable or
// non-positive magnitudes yield 0.
func WeightInKg(weight string) float64 {
	w := strings.TrimSpace(weight)

	switch {
	case strings.HasSuffix(w, "kg"):
		return magnitude(strings.TrimSuffix(w, "kg"), 1)
	case strings.HasSuffix(w, "ml"):
		return magnitude(strings.TrimSuffix(w, "ml"), 0.001)
	case strings.HasSuffix(w, "g"):
		return magnitude(strings.TrimSuffix(w, "g"), 0.001)
	case strings.HasSuffix(w, "pieces"):
		return magnitude(strings.TrimSuffix(w, "pieces"), PieceKg)
	}
	return 0
}

func magnitude(s string, factor float64) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n <= 0 {
		return 0
	}
	return n * factor
}
