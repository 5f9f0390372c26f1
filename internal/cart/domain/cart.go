package domain

import catalog "github.com/dwikikusuma/rajah-storefront/internal/catalog/domain"

// Line is one configured product in a cart. PricePerKg is frozen when the line is added.
type Line struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	ProductImage     string  `json:"product_image"`
	PricePerKg       float64 `json:"price_per_kg"`
	SelectedWeight   string  `json:"selected_weight"`
	SelectedCut      *string `json:"selected_cut"`
	SelectedMarinade string  `json:"selected_marinade"`
	Quantity         int     `json:"quantity"`
	ItemTotal        float64 `json:"item_total"`
}

// Candidate is what a shopper asks to add.
type Candidate struct {
	ProductID    string
	ProductName  string
	ProductImage string
	PricePerKg   float64
	Weight       string
	Cut          *string
	Marinade     string
	Quantity     int
}

func ItemTotal(pricePerKg float64, weight string, quantity int) float64 {
	return pricePerKg * catalog.WeightInKg(weight) * float64(quantity)
}

func (l Line) sameConfig(c Candidate) bool {
	return l.ProductID == c.ProductID &&
		l.SelectedWeight == c.Weight &&
		sameCut(l.SelectedCut, c.Cut) &&
		l.SelectedMarinade == marinadeOrDefault(c.Marinade)
}

func sameCut(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func marinadeOrDefault(m string) string {
	if m == "" {
		return catalog.NoMarinade
	}
	return m
}

type Cart struct {
	UserID string `json:"user_id"`
	Lines  []Line `json:"items"`
}

func New(userID string) Cart {
	return Cart{UserID: userID, Lines: []Line{}}
}

// Add merges c into a line with the same configuration, or appends a new line with id
// newID. It returns the resulting line.
func (c *Cart) Add(cand Candidate, newID func() string) Line {
	for i := range c.Lines {
		if c.Lines[i].sameConfig(cand) {
			c.Lines[i].Quantity += cand.Quantity
			c.Lines[i].ItemTotal = ItemTotal(c.Lines[i].PricePerKg, c.Lines[i].SelectedWeight, c.Lines[i].Quantity)
			return c.Lines[i]
		}
	}

	line := Line{
		ID:               newID(),
		ProductID:        cand.ProductID,
		ProductName:      cand.ProductName,
		ProductImage:     cand.ProductImage,
		PricePerKg:       cand.PricePerKg,
		SelectedWeight:   cand.Weight,
		SelectedCut:      cand.Cut,
		SelectedMarinade: marinadeOrDefault(cand.Marinade),
		Quantity:         cand.Quantity,
		ItemTotal:        ItemTotal(cand.PricePerKg, cand.Weight, cand.Quantity),
	}
	c.Lines = append(c.Lines, line)
	return line
}

// SetQuantity changes a line's quantity, removing it when qty <= 0. Unknown ids are
// ignored; the result reports whether the cart changed.
func (c *Cart) SetQuantity(lineID string, qty int) bool {
	if qty <= 0 {
		return c.Remove(lineID)
	}
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines[i].Quantity = qty
			c.Lines[i].ItemTotal = ItemTotal(c.Lines[i].PricePerKg, c.Lines[i].SelectedWeight, qty)
			return true
		}
	}
	return false
}

func (c *Cart) Remove(lineID string) bool {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c Cart) Line(lineID string) (Line, bool) {
	for _, l := range c.Lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return Line{}, false
}

// Count is the number of units across all lines.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.ItemTotal
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
