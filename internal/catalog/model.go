package catalog

// Category is the coarse menu classification of an item.
type Category string

const (
	CategoryMain    Category = "main"
	CategorySide    Category = "side"
	CategoryDrink   Category = "drink"
	CategoryDip     Category = "dip"
	CategoryDessert Category = "dessert"
	CategoryOther   Category = "other"
)

// Attribute is a boolean trait derived from the item name.
type Attribute string

const (
	AttrVegetarian Attribute = "vegetarian"
	AttrSpicy      Attribute = "spicy"
	AttrCombo      Attribute = "combo"
)

// Item is the canonical, immutable catalog entry.
// One distinct item string maps to exactly one category and attribute set.
type Item struct {
	Name       string      `json:"name"`
	Category   Category    `json:"category"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// HasAttribute reports whether the item carries the given attribute.
func (i *Item) HasAttribute(a Attribute) bool {
	for _, attr := range i.Attributes {
		if attr == a {
			return true
		}
	}
	return false
}

// RankedItem pairs an item with its occurrence count across all orders.
type RankedItem struct {
	Item  *Item `json:"item"`
	Count int   `json:"count"`
}
