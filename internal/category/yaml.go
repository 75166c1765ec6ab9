package category

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// rulesFile holds the on-disk form of categories.yaml.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads categories.yaml from a project root and returns a
// Classifier over its rules, preserving file order.
func Load(projectRoot string) (*Classifier, error) {
	path := filepath.Join(projectRoot, "categories.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category rules: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing category rules: %w", err)
	}

	for i, rule := range f.Rules {
		if !rule.Category.Valid() {
			return nil, fmt.Errorf("rule %d: unknown category %q", i+1, rule.Category)
		}
	}
	return NewClassifierWithRules(f.Rules), nil
}

// LoadOrDefault reads categories.yaml if present, otherwise returns the
// built-in classifier.
func LoadOrDefault(projectRoot string) (*Classifier, error) {
	path := filepath.Join(projectRoot, "categories.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewClassifier(), nil
	}
	return Load(projectRoot)
}

// Save writes the classifier's rule table to categories.yaml.
func (c *Classifier) Save(projectRoot string) error {
	data, err := yaml.Marshal(rulesFile{Rules: c.rules})
	if err != nil {
		return fmt.Errorf("marshaling category rules: %w", err)
	}

	path := filepath.Join(projectRoot, "categories.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing category rules: %w", err)
	}
	return nil
}
