package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the recognition rules the engine applies: the digit-count and
// prefix families that tell SKUs and UPCs apart, the label vocabulary used to
// suppress template boilerplate, and the output limits. A Config is copied
// into the engine at construction time and never mutated afterwards, so a
// single engine is safe to share between goroutines.
type Config struct {
	// SKUMinDigits/SKUMaxDigits bound the digit count of an internal SKU.
	SKUMinDigits int `json:"sku_min_digits" yaml:"sku_min_digits"`
	SKUMaxDigits int `json:"sku_max_digits" yaml:"sku_max_digits"`

	// SKUPrefixes are the leading digit families assigned to internal
	// catalog ranges. A numeric token is only a SKU if it starts with one
	// of these.
	SKUPrefixes []string `json:"sku_prefixes" yaml:"sku_prefixes"`

	// UPCMinDigits/UPCMaxDigits bound the digit count of a UPC. Tokens that
	// also qualify as SKUs are always claimed as SKUs first.
	UPCMinDigits int `json:"upc_min_digits" yaml:"upc_min_digits"`
	UPCMaxDigits int `json:"upc_max_digits" yaml:"upc_max_digits"`

	// SkipWords is the case-insensitive label vocabulary. Lines equal to a
	// skip word, starting or ending with one next to a space or colon, or
	// containing a colon together with one anywhere, are dropped as
	// template headers.
	SkipWords []string `json:"skip_words" yaml:"skip_words"`

	// MinLineLen is the shortest line considered informative.
	MinLineLen int `json:"min_line_len" yaml:"min_line_len"`

	// MinNameLen is the shortest accepted product name after cleanup.
	MinNameLen int `json:"min_name_len" yaml:"min_name_len"`

	// MaxRecords caps the number of records a single extraction may return.
	MaxRecords int `json:"max_records" yaml:"max_records"`
}

// DefaultConfig returns the rules tuned for the planogram label sheets we see
// in the field.
func DefaultConfig() Config {
	return Config{
		SKUMinDigits: 11,
		SKUMaxDigits: 13,
		SKUPrefixes:  []string{"122", "124", "126", "128", "410"},
		UPCMinDigits: 12,
		UPCMaxDigits: 14,
		SkipWords: []string{
			"SHELF", "SHELVES", "DEPT", "DEPARTMENT", "LOCATION",
			"CATEGORY", "AISLE", "SECTION", "PLANOGRAM", "FIXTURE",
			"STORE", "PAGE", "DATE", "SKU", "SKU NO", "UPC", "NAME",
			"DESCRIPTION", "ITEM", "QTY", "SIZE", "PRICE", "TIER", "ROW",
		},
		MinLineLen: 5,
		MinNameLen: 5,
		MaxRecords: 100,
	}
}

// LoadConfig reads a YAML pattern file and overlays it on the defaults, so a
// file only needs to list the fields it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading pattern config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing pattern config: %w", err)
	}
	return cfg, nil
}

// validate rejects configurations the engine cannot apply consistently.
func (c Config) validate() error {
	if c.SKUMinDigits <= 0 || c.SKUMaxDigits < c.SKUMinDigits {
		return fmt.Errorf("invalid sku digit range %d-%d", c.SKUMinDigits, c.SKUMaxDigits)
	}
	if c.UPCMinDigits <= 0 || c.UPCMaxDigits < c.UPCMinDigits {
		return fmt.Errorf("invalid upc digit range %d-%d", c.UPCMinDigits, c.UPCMaxDigits)
	}
	if len(c.SKUPrefixes) == 0 {
		return fmt.Errorf("at least one sku prefix is required")
	}
	for _, p := range c.SKUPrefixes {
		if p == "" || len(p) > c.SKUMinDigits {
			return fmt.Errorf("sku prefix %q does not fit the digit range", p)
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return fmt.Errorf("sku prefix %q is not numeric", p)
			}
		}
	}
	if c.MinLineLen <= 0 {
		return fmt.Errorf("min line length must be positive")
	}
	if c.MinNameLen <= 0 {
		return fmt.Errorf("min name length must be positive")
	}
	if c.MaxRecords <= 0 {
		return fmt.Errorf("max records must be positive")
	}
	return nil
}
