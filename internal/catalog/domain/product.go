package domain

import (
	"math"
	"slices"
)

const NoMarinade = "None"

type Variant struct {
	ID            string  `json:"id"`
	Weight        string  `json:"weight"`
	Cut           *string `json:"cut"`
	Marinade      string  `json:"marinade"`
	Stock         int     `json:"stock"`
	SKU           string  `json:"sku"`
	PriceModifier float64 `json:"price_modifier"`
}

// MarinadeOrDefault reports the marinade label, mapping an empty label to NoMarinade.
func (v Variant) MarinadeOrDefault() string {
	if v.Marinade == "" {
		return NoMarinade
	}
	return v.Marinade
}

type Product struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	CookingTips    []string  `json:"cooking_tips"`
	PricePerKg     float64   `json:"price_per_kg"`
	Images         []string  `json:"images"`
	Halal          bool      `json:"halal_flag"`
	Origin         string    `json:"origin"`
	Badges         []string  `json:"badges"`
	MinOrderWeight string    `json:"min_order_weight"`
	Featured       bool      `json:"featured"`
	Active         bool      `json:"is_active"`
	Variants       []Variant `json:"variants"`
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	p.CookingTips = slices.Clone(p.CookingTips)
	p.Images = slices.Clone(p.Images)
	p.Badges = slices.Clone(p.Badges)
	p.Variants = slices.Clone(p.Variants)
	for i, v := range p.Variants {
		if v.Cut != nil {
			cut := *v.Cut
			p.Variants[i].Cut = &cut
		}
	}
	return p
}

// Purchasable reports whether the product has at least one priceable variant.
func (p Product) Purchasable() bool {
	return len(p.Variants) > 0
}

func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// EffectivePrice is the per-kg price of the product in the given variant.
func (p Product) EffectivePrice(v Variant) float64 {
	return p.PricePerKg + v.PriceModifier
}

func (p Product) HasBadge(badge string) bool {
	for _, b := range p.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// InStock reports whether any variant has stock.
func (p Product) InStock() bool {
	for _, v := range p.Variants {
		if v.Stock > 0 {
			return true
		}
	}
	return false
}

// LowStock reports whether any variant has between 1 and 9 units left.
func (p Product) LowStock() bool {
	for _, v := range p.Variants {
		if v.Stock > 0 && v.Stock < LowStockThreshold {
			return true
		}
	}
	return false
}

// InventoryValue sums effective price × kg × stock over the variants.
func (p Product) InventoryValue() float64 {
	var total float64
	for _, v := range p.Variants {
		total += p.EffectivePrice(v) * WeightInKg(v.Weight) * float64(v.Stock)
	}
	return total
}

const LowStockThreshold = 10

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	ImageURL     string `json:"image_url"`
	ProductCount int    `json:"product_count"`
}

// RoundPrice rounds to 2 decimals for display. Stored values keep full precision.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
