package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryRule maps keyword matches to a category. Rules are evaluated in
// slice order; the first matching rule wins, so more specific vocabulary
// (dips, drinks) must come before broader vocabulary (mains).
type CategoryRule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// AttributeRule maps keyword matches to a boolean attribute.
type AttributeRule struct {
	Attribute Attribute `yaml:"attribute"`
	Keywords  []string  `yaml:"keywords"`
}

// RuleSet is the full classification table used by the tagger.
type RuleSet struct {
	Categories []CategoryRule  `yaml:"categories"`
	Attributes []AttributeRule `yaml:"attributes"`
}

// DefaultRules returns the built-in classification table.
// Priority order: dip > drink > dessert > side > main > other.
func DefaultRules() RuleSet {
	return RuleSet{
		Categories: []CategoryRule{
			{
				Category: CategoryDip,
				Keywords: []string{
					"ranch", "blue cheese", "bleu cheese", "honey mustard",
					"dip", "dipping", "cheese sauce", "marinara",
				},
			},
			{
				Category: CategoryDrink,
				Keywords: []string{
					"coke", "cola", "sprite", "fanta", "dr pepper", "pepsi",
					"tea", "lemonade", "soda", "water", "juice", "shake",
					"slush", "drink",
				},
			},
			{
				Category: CategoryDessert,
				Keywords: []string{
					"brownie", "cookie", "cake", "churro", "ice cream",
					"sundae", "pie", "dessert",
				},
			},
			{
				Category: CategorySide,
				Keywords: []string{
					"fries", "fry", "corn", "slaw", "onion ring", "roll",
					"bread", "tots", "sticks", "side",
				},
			},
			{
				Category: CategoryMain,
				Keywords: []string{
					"wings", "wing", "tender", "strips", "sandwich", "burger",
					"wrap", "chicken", "combo", "meal", "platter",
				},
			},
		},
		Attributes: []AttributeRule{
			{
				Attribute: AttrVegetarian,
				Keywords:  []string{"veg", "veggie", "vegetarian", "cauliflower"},
			},
			{
				Attribute: AttrSpicy,
				Keywords:  []string{"spicy", "hot", "cajun", "habanero", "fiery"},
			},
			{
				Attribute: AttrCombo,
				Keywords:  []string{"combo", "meal", "bundle", "platter", "pack"},
			},
		},
	}
}

// LoadRules reads a RuleSet override from a YAML file. Empty sections fall
// back to the defaults so a file can override only categories or only
// attributes.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}

	var rules RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RuleSet{}, fmt.Errorf("parse rules file: %w", err)
	}

	defaults := DefaultRules()
	if len(rules.Categories) == 0 {
		rules.Categories = defaults.Categories
	}
	if len(rules.Attributes) == 0 {
		rules.Attributes = defaults.Attributes
	}
	return rules, nil
}

// Classify resolves the category for an item name. The first rule whose
// keyword appears in the lowercased name wins; no match yields "other".
func (rs RuleSet) Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, rule := range rs.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return CategoryOther
}

// ItemAttributes resolves the attribute set for an item name.
func (rs RuleSet) ItemAttributes(name string) []Attribute {
	lower := strings.ToLower(name)
	var attrs []Attribute
	for _, rule := range rs.Attributes {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				attrs = append(attrs, rule.Attribute)
				break
			}
		}
	}
	return attrs
}
