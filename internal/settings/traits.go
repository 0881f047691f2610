package settings

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Separators of the persisted trait rule format:
//
//	pattern///Name,Value//||//pattern2///Name2,Value2
const (
	TraitRuleSeparator   = "//||//"
	TraitPatternSplitter = "///"
	TraitValueSplitter   = ","
)

// ErrInvalidTraitRule is returned for rules that cannot be parsed.
var ErrInvalidTraitRule = errors.New("invalid trait rule")

// RegexTraitRule assigns the trait Name=Value to every test whose name
// matches Pattern.
type RegexTraitRule struct {
	Pattern string `toml:"pattern" yaml:"pattern"`
	Name    string `toml:"name" yaml:"name"`
	Value   string `toml:"value" yaml:"value"`
}

// String renders the rule in its persisted form.
func (r RegexTraitRule) String() string {
	return r.Pattern + TraitPatternSplitter + r.Name + TraitValueSplitter + r.Value
}

// Validate checks that the pattern compiles and the trait has a name.
func (r RegexTraitRule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: %q has an empty trait name", ErrInvalidTraitRule, r.String())
	}
	if _, err := regexp.Compile(r.Pattern); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidTraitRule, r.String(), err)
	}
	return nil
}

// ParseTraitRules parses the persisted form. Blank input yields no rules;
// blank segments between separators are skipped.
func ParseTraitRules(s string) ([]RegexTraitRule, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var rules []RegexTraitRule
	for _, part := range strings.Split(s, TraitRuleSeparator) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		pattern, trait, ok := strings.Cut(part, TraitPatternSplitter)
		if !ok {
			return nil, fmt.Errorf("%w: %q: missing %q", ErrInvalidTraitRule, part, TraitPatternSplitter)
		}
		name, value, ok := strings.Cut(trait, TraitValueSplitter)
		if !ok {
			return nil, fmt.Errorf("%w: %q: missing %q", ErrInvalidTraitRule, part, TraitValueSplitter)
		}
		rule := RegexTraitRule{Pattern: pattern, Name: name, Value: value}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// FormatTraitRules is the inverse of ParseTraitRules.
func FormatTraitRules(rules []RegexTraitRule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, TraitRuleSeparator)
}
