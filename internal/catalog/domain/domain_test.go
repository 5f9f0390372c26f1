package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightInKg(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"500g", 0.5},
		{"1.5kg", 1.5},
		{"1kg", 1},
		{"4 pieces", 0.4},
		{"250ml", 0.25},
		{" 2kg ", 2},
		{"12 pieces", 1.2},
		{"1 tray", 0},
		{"kg", 0},
		{"abcg", 0},
		{"-1kg", 0},
		{"", 0},
	}
	for _, tc := range cases {
		t.Run(tc.in+" -> kg", func(t *testing.T) {
			assert.InDelta(t, tc.want, WeightInKg(tc.in), 1e-9)
		})
	}
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandUnder10, BandFor(0))
	assert.Equal(t, BandUnder10, BandFor(9.99))
	assert.Equal(t, Band10To20, BandFor(10.00))
	assert.Equal(t, Band10To20, BandFor(19.99))
	assert.Equal(t, Band20To50, BandFor(20))
	assert.Equal(t, BandOver50, BandFor(50))
	assert.Equal(t, BandOver50, BandFor(1000))
}

func TestParsePriceBand(t *testing.T) {
	b, err := ParsePriceBand("20_50")
	require.NoError(t, err)
	assert.Equal(t, Band20To50, b)

	_, err = ParsePriceBand("cheap")
	assert.Error(t, err)
}

func TestProductHelpers(t *testing.T) {
	cut := "Diced"
	p := Product{
		PricePerKg: 17.99,
		Images:     []string{"a.jpg", "b.jpg"},
		Badges:     []string{"Halal", "Grass Fed"},
		Variants: []Variant{
			{ID: "v1", Weight: "500g", Stock: 4},
			{ID: "v2", Weight: "1kg", Cut: &cut, Stock: 0, PriceModifier: -1},
		},
	}

	assert.True(t, p.Purchasable())
	assert.Equal(t, "a.jpg", p.PrimaryImage())
	assert.True(t, p.HasBadge("Halal"))
	assert.False(t, p.HasBadge("halal"))
	assert.True(t, p.InStock())
	assert.True(t, p.LowStock())

	v, ok := p.Variant("v2")
	require.True(t, ok)
	assert.InDelta(t, 16.99, p.EffectivePrice(v), 1e-9)
	assert.Equal(t, NoMarinade, v.MarinadeOrDefault())

	assert.InDelta(t, 17.99*0.5*4, p.InventoryValue(), 1e-9)

	assert.False(t, Product{}.Purchasable())
	assert.Equal(t, "", Product{}.PrimaryImage())
}

func TestProductClone(t *testing.T) {
	cut := "Diced"
	p := Product{
		Images:   []string{"a.jpg"},
		Badges:   []string{"Halal"},
		Variants: []Variant{{ID: "v1", Cut: &cut, Stock: 4}},
	}

	c := p.Clone()
	c.Images[0] = "x.jpg"
	c.Badges[0] = "x"
	c.Variants[0].Stock = 0
	*c.Variants[0].Cut = "Whole"

	assert.Equal(t, "a.jpg", p.Images[0])
	assert.Equal(t, "Halal", p.Badges[0])
	assert.Equal(t, 4, p.Variants[0].Stock)
	assert.Equal(t, "Diced", cut)

	assert.Nil(t, Product{}.Clone().Variants)
	assert.NotNil(t, Product{Variants: []Variant{}}.Clone().Variants)
}

func TestRoundPrice(t *testing.T) {
	assert.Equal(t, 26.99, RoundPrice(26.985000000000003))
	assert.Equal(t, 17.99, RoundPrice(17.99))
}
