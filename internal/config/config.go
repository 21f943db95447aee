// Package config loads the tool configuration from a YAML file and the
// environment.
package config

import (
	"fmt"

	"github.com/griffnb/core-tsdoc/internal/resolver"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = ".tsdoc.yaml"

// EnvPrefix prefixes the environment variables that override file values,
// e.g. TSDOC_INFO_TITLE.
const EnvPrefix = "TSDOC"

// Config the settings of one documentation run.
type Config struct {
	Info       InfoConfig       `mapstructure:"info"`
	Roots      []string         `mapstructure:"roots"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Hints      HintsConfig      `mapstructure:"hints"`
	Excludes   []string         `mapstructure:"excludes"`
	Extension  string           `mapstructure:"extension"`

	// ParseVendor whether node_modules is parsed
	ParseVendor bool `mapstructure:"parse_vendor"`
}

// InfoConfig the document's info block.
type InfoConfig struct {
	Title       string `mapstructure:"title"`
	Version     string `mapstructure:"version"`
	Description string `mapstructure:"description"`
}

// VocabularyConfig reference names with built-in meaning.
type VocabularyConfig struct {
	Binary         []string `mapstructure:"binary"`
	Async          []string `mapstructure:"async"`
	List           []string `mapstructure:"list"`
	Date           []string `mapstructure:"date"`
	StatusWrappers []string `mapstructure:"status_wrappers"`
}

// HintsConfig annotation names that narrow number and date types, checked
// in order.
type HintsConfig struct {
	Number []HintConfig `mapstructure:"number"`
	Date   []HintConfig `mapstructure:"date"`
}

// HintConfig one annotation name and the primitive it selects.
type HintConfig struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
}

var (
	numberPrimitives = []resolver.Primitive{resolver.Integer, resolver.Long, resolver.Float, resolver.Double}
	datePrimitives   = []resolver.Primitive{resolver.Date, resolver.DateTime}
)

// Validate checks that every hint selects a primitive of its category.
func (c *Config) Validate() error {
	if _, err := hints(c.Hints.Number, numberPrimitives); err != nil {
		return fmt.Errorf("hints.number: %w", err)
	}
	if _, err := hints(c.Hints.Date, datePrimitives); err != nil {
		return fmt.Errorf("hints.date: %w", err)
	}
	return nil
}

// ResolverVocabulary converts the configured names for the resolver.
func (c *Config) ResolverVocabulary() (resolver.Vocabulary, error) {
	number, err := hints(c.Hints.Number, numberPrimitives)
	if err != nil {
		return resolver.Vocabulary{}, fmt.Errorf("hints.number: %w", err)
	}
	date, err := hints(c.Hints.Date, datePrimitives)
	if err != nil {
		return resolver.Vocabulary{}, fmt.Errorf("hints.date: %w", err)
	}

	return resolver.Vocabulary{
		Binary:         c.Vocabulary.Binary,
		Async:          c.Vocabulary.Async,
		List:           c.Vocabulary.List,
		Date:           c.Vocabulary.Date,
		StatusWrappers: c.Vocabulary.StatusWrappers,
		NumberHints:    number,
		DateHints:      date,
	}, nil
}

// ExcludeSet returns the excludes as a set.
func (c *Config) ExcludeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Excludes))
	for _, e := range c.Excludes {
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

func hints(configured []HintConfig, allowed []resolver.Primitive) ([]resolver.Hint, error) {
	out := make([]resolver.Hint, 0, len(configured))
	for _, h := range configured {
		if h.Name == "" {
			return nil, fmt.Errorf("hint without a name")
		}
		p := resolver.Primitive(h.Type)
		if !allowedPrimitive(p, allowed) {
			return nil, fmt.Errorf("hint %s: unsupported type %q, expected one of %v", h.Name, h.Type, allowed)
		}
		out = append(out, resolver.Hint{Name: h.Name, Primitive: p})
	}
	return out, nil
}

func allowedPrimitive(p resolver.Primitive, allowed []resolver.Primitive) bool {
	for _, a := range allowed {
		if a == p {
			return true
		}
	}
	return false
}
