package domain

// Document is the bundled catalog JSON.
type Document struct {
	Metadata      Metadata       `json:"metadata"`
	Categories    []Category     `json:"categories"`
	Products      []Product      `json:"products"`
	Mappings      *Mappings      `json:"mappings,omitempty"`
	DeliveryZones []DeliveryZone `json:"delivery_zones"`
	SiteSettings  map[string]any `json:"site_settings,omitempty"`
}

type Metadata struct {
	Version         string `json:"version"`
	LastUpdated     string `json:"last_updated,omitempty"`
	TotalCategories int    `json:"total_categories"`
	TotalProducts   int    `json:"total_products"`
	TotalVariants   int    `json:"total_variants"`
}

// Mappings is the document's precomputed product-id index. It is advisory only.
type Mappings struct {
	ByCategory   map[string][]string `json:"by_category"`
	ByFeatured   map[string][]string `json:"by_featured"`
	ByPriceRange map[string][]string `json:"by_price_range"`
	ByOrigin     map[string][]string `json:"by_origin"`
	ByBadges     map[string][]string `json:"by_badges"`
}

type DeliveryZone struct {
	ID               string  `json:"id"`
	PostcodePrefix   string  `json:"postcode_prefix"`
	ZoneName         string  `json:"zone_name"`
	DeliveryFee      float64 `json:"delivery_fee"`
	MinimumOrder     float64 `json:"minimum_order"`
	FreeDeliveryOver float64 `json:"free_delivery_over"`
}
