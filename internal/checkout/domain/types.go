package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Method string

const (
	MethodDelivery   Method = "delivery"
	MethodCollection Method = "collection"
)

func ParseMethod(s string) (Method, bool) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "", MethodDelivery:
		return MethodDelivery, true
	case MethodCollection:
		return MethodCollection, true
	}
	return "", false
}

type Zone struct {
	ID               string  `json:"id"`
	PostcodePrefix   string  `json:"postcode_prefix"`
	Name             string  `json:"zone_name"`
	DeliveryFee      float64 `json:"delivery_fee"`
	MinimumOrder     float64 `json:"minimum_order"`
	FreeDeliveryOver float64 `json:"free_delivery_over"`
}

// FeeFor is the delivery fee for a subtotal; orders at or above FreeDeliveryOver ship free.
func (z Zone) FeeFor(subtotal float64) float64 {
	if subtotal >= z.FreeDeliveryOver {
		return 0
	}
	return z.DeliveryFee
}

// NormalizePostcode trims, upper-cases and strips all whitespace.
func NormalizePostcode(postcode string) string {
	return strings.Join(strings.Fields(strings.ToUpper(postcode)), "")
}

// PostcodePrefix is the first three characters of the normalized postcode.
func PostcodePrefix(postcode string) string {
	clean := []rune(NormalizePostcode(postcode))
	if len(clean) > 3 {
		clean = clean[:3]
	}
	return string(clean)
}

// ResolveZone matches the postcode prefix against each zone's prefix, first match wins.
func ResolveZone(zones []Zone, postcode string) (Zone, bool) {
	prefix := PostcodePrefix(postcode)
	if prefix == "" {
		return Zone{}, false
	}
	for _, z := range zones {
		if strings.EqualFold(z.PostcodePrefix, prefix) {
			return z, true
		}
	}
	return Zone{}, false
}

type Line struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Weight      string  `json:"selected_weight"`
	Quantity    int     `json:"quantity"`
	ItemTotal   float64 `json:"item_total"`
}

type DeliveryRequest struct {
	Method   Method
	Postcode string
}

type Quote struct {
	Method      Method  `json:"method"`
	Lines       []Line  `json:"lines"`
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
	Zone        *Zone   `json:"zone,omitempty"`
	Postcode    string  `json:"postcode,omitempty"`
}

// ErrBelowMinimum matches any *MinimumOrderError under errors.Is.
var ErrBelowMinimum = errors.New("below minimum order")

// MinimumOrderError reports a delivery subtotal under the zone minimum.
type MinimumOrderError struct {
	Prefix   string
	Minimum  float64
	Subtotal float64
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("minimum order for %s is £%.2f", e.Prefix, e.Minimum)
}

func (e *MinimumOrderError) Is(target error) bool {
	return target == ErrBelowMinimum
}
