// Package category assigns spending categories to transaction
// descriptions by ordered keyword matching. Match precedence is an
// observable contract: rules are scanned in declaration order and the
// first keyword hit wins, so the same description always yields the
// same category.
package category

import (
	"strings"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// Rule maps one category to its keyword list. Keywords are matched as
// case-insensitive substrings of the transaction description.
type Rule struct {
	Category model.Category `yaml:"category"`
	Keywords []string       `yaml:"keywords"`
}

// Classifier holds an ordered rule table.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier with the built-in rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: DefaultRules()}
}

// NewClassifierWithRules creates a Classifier with a custom rule table.
// Rule order is preserved as given.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Rules returns a copy of the rule table in match order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the category for a description. The description is
// lower-cased and scanned against each rule in order; no match or an
// empty description returns Others. Total function, never fails.
func (c *Classifier) Classify(description string) model.Category {
	desc := strings.ToLower(description)
	if desc == "" {
		return model.CategoryOthers
	}
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return rule.Category
			}
		}
	}
	return model.CategoryOthers
}

// Classify categorizes a description using the built-in rule table.
func Classify(description string) model.Category {
	return defaultClassifier.Classify(description)
}

var defaultClassifier = NewClassifier()
