package extract

import (
	"regexp"
	"strings"
)

var (
	reDigitRun  = regexp.MustCompile(`[0-9]+`)
	reAlphaRun5 = regexp.MustCompile(`[A-Za-z]{5,}`)
	reShortInt  = regexp.MustCompile(`^[0-9]{1,6}$`)
	reDecimal   = regexp.MustCompile(`^[0-9]+[.,][0-9]+$`)
	reLabelPair = regexp.MustCompile(`^[A-Za-z]+\s*:\s*[A-Za-z]+$`)
	reLowerWord = regexp.MustCompile(`^[a-z]{1,6}[0-9]*$`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

// minIdentDigits is the shortest digit run that can be part of a product
// identifier. Shorter runs are positions, quantities and prices.
const minIdentDigits = 8

// isSKU reports whether a digit run falls in the internal SKU ranges: the
// configured digit count with one of the configured prefixes.
func (e *Engine) isSKU(tok string) bool {
	if len(tok) < e.cfg.SKUMinDigits || len(tok) > e.cfg.SKUMaxDigits {
		return false
	}
	for _, p := range e.cfg.SKUPrefixes {
		if strings.HasPrefix(tok, p) {
			return true
		}
	}
	return false
}

// isUPC reports whether a digit run looks like a scannable barcode. SKU
// ranges take precedence: a token that qualifies as a SKU is never a UPC.
func (e *Engine) isUPC(tok string) bool {
	if e.isSKU(tok) {
		return false
	}
	return len(tok) >= e.cfg.UPCMinDigits && len(tok) <= e.cfg.UPCMaxDigits
}

// isIdentifier reports whether a digit run plausibly belongs to a product
// identifier, including fragments the OCR split or truncated.
func (e *Engine) isIdentifier(tok string) bool {
	return len(tok) >= minIdentDigits
}

// digitRuns returns the maximal digit runs of a line, in order.
func digitRuns(line string) []string {
	return reDigitRun.FindAllString(line, -1)
}

// hasReadableText reports whether the line carries a run of five or more
// letters, the shortest fragment we accept as part of a product name.
func hasReadableText(line string) bool {
	return reAlphaRun5.MatchString(line)
}

// cleanName strips identifier digit runs out of a line and normalizes the
// remaining whitespace, leaving the human-readable product name. Identifier
// runs are replaced with spaces rather than removed so that letter fragments
// on either side never fuse into a new word.
func (e *Engine) cleanName(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	last := 0
	for _, loc := range reDigitRun.FindAllStringIndex(line, -1) {
		if loc[1]-loc[0] < minIdentDigits {
			continue
		}
		b.WriteString(line[last:loc[0]])
		b.WriteByte(' ')
		last = loc[1]
	}
	b.WriteString(line[last:])

	name := reSpaces.ReplaceAllString(b.String(), " ")
	name = strings.TrimSpace(name)

	// A leading bare number is a row index, not part of the name.
	if loc := reDigitRun.FindStringIndex(name); loc != nil && loc[0] == 0 {
		rest := name[loc[1]:]
		if rest == "" || strings.HasPrefix(rest, " ") {
			name = strings.TrimSpace(rest)
		}
	}
	return name
}

// validName reports whether a cleaned-up line is usable as a product name.
// OCR garbage tends to be short, full of repeated dots, or a single
// lowercase fragment. Names that read as template labels once their digits
// are gone are rejected too, so classifying an emitted name never turns up
// a header.
func (e *Engine) validName(name string) bool {
	if len(name) < e.cfg.MinNameLen {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	if reLowerWord.MatchString(name) {
		return false
	}
	if e.isHeader(name) {
		return false
	}
	return true
}
