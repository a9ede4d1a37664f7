package extract

import (
	"fmt"
	"strings"
	"time"
)

// Product is one extracted product record. Each field is independently
// optional; an empty string means the field was not recovered.
type Product struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
	UPC  string `json:"upc"`
}

// Result is the outcome of one extraction pass over a block of text.
type Result struct {
	Products         []Product `json:"products"`
	Confidence       float64   `json:"confidence"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
}

// Engine turns recognized planogram text into product records. An Engine is
// immutable after construction and safe for concurrent use.
type Engine struct {
	cfg  Config
	skip []string
}

// NewEngine validates the configuration and builds an engine from it. The
// config is copied, later changes to the caller's slices do not reach the
// engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid extraction config: %w", err)
	}
	cfg.SKUPrefixes = append([]string(nil), cfg.SKUPrefixes...)
	cfg.SkipWords = append([]string(nil), cfg.SkipWords...)

	skip := make([]string, len(cfg.SkipWords))
	for i, w := range cfg.SkipWords {
		skip[i] = strings.ToUpper(w)
	}
	return &Engine{cfg: cfg, skip: skip}, nil
}

// Extract runs the full pipeline over one block of recognized text: segment
// into lines, classify each line, assemble records from composite rows or by
// zipping the three columns, then finalize. It never fails; malformed input
// degrades to fewer or zero records.
func (e *Engine) Extract(text string) Result {
	start := time.Now()

	lines := splitLines(text)
	classes := make([]LineClass, len(lines))
	noise := 0
	for i, line := range lines {
		classes[i] = e.Classify(line)
		if classes[i].Kind == KindNoise {
			noise++
		}
	}

	products := assembleRows(classes)
	if len(products) == 0 {
		products = zipColumns(classes)
	}

	confidence := 0.0
	if len(lines) > 0 {
		confidence = float64(len(lines)-noise) / float64(len(lines))
	}

	return Result{
		Products:         e.finalize(products),
		Confidence:       confidence,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
}

// splitLines segments raw text into trimmed, non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
