package extract

import "strings"

// LineKind is the classification assigned to one line of recognized text.
type LineKind int

const (
	// KindNoise lines carry no usable data and are dropped.
	KindNoise LineKind = iota
	// KindHeader lines match the template label vocabulary.
	KindHeader
	// KindSKUOnly lines consist of a SKU with no readable text.
	KindSKUOnly
	// KindUPCOnly lines consist of one or more UPCs with no readable text.
	KindUPCOnly
	// KindNameFragment lines carry readable text and no identifiers.
	KindNameFragment
	// KindCompositeRow lines carry a SKU, another identifier and readable
	// text together, a complete record on one line.
	KindCompositeRow
)

func (k LineKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSKUOnly:
		return "sku"
	case KindUPCOnly:
		return "upc"
	case KindNameFragment:
		return "name"
	case KindCompositeRow:
		return "row"
	default:
		return "noise"
	}
}

// LineClass is the outcome of classifying a single line: its kind plus
// whatever fields were recognized on it.
type LineClass struct {
	Kind LineKind
	Name string
	SKU  string
	UPCs []string
}

// Classify assigns one line of recognized text to a LineKind, applying the
// rules in strict order: template headers first, then shape-based noise and
// the minimum length gate, then token-based classification.
func (e *Engine) Classify(line string) LineClass {
	line = strings.TrimSpace(line)

	if e.isHeader(line) {
		return LineClass{Kind: KindHeader}
	}
	if isSkipShape(line) {
		return LineClass{Kind: KindNoise}
	}
	if len(line) < e.cfg.MinLineLen {
		return LineClass{Kind: KindNoise}
	}

	var skus, upcs, idents []string
	for _, tok := range digitRuns(line) {
		switch {
		case e.isSKU(tok):
			skus = append(skus, tok)
		case e.isUPC(tok):
			upcs = append(upcs, tok)
			idents = append(idents, tok)
		case e.isIdentifier(tok):
			idents = append(idents, tok)
		}
	}
	readable := hasReadableText(line)

	switch {
	case len(skus) > 0 && len(idents) > 0 && readable:
		// A full row: SKU, another identifier and a name on one line.
		name := e.cleanName(line)
		if !e.validName(name) {
			name = ""
		}
		return LineClass{Kind: KindCompositeRow, Name: name, SKU: skus[0], UPCs: idents[:1]}
	case len(skus) == 0 && len(upcs) == 0 && readable:
		name := e.cleanName(line)
		if e.validName(name) {
			return LineClass{Kind: KindNameFragment, Name: name}
		}
	case len(skus) > 0 && !readable:
		return LineClass{Kind: KindSKUOnly, SKU: skus[0]}
	case len(upcs) > 0 && !readable:
		return LineClass{Kind: KindUPCOnly, UPCs: upcs}
	}
	return LineClass{Kind: KindNoise}
}

// isHeader reports whether the line matches the label vocabulary: equal to a
// skip word, starting or ending with one next to a space or colon, or
// containing a colon together with one anywhere.
func (e *Engine) isHeader(line string) bool {
	u := strings.ToUpper(line)
	colon := strings.Contains(u, ":")
	for _, w := range e.skip {
		if u == w ||
			strings.HasPrefix(u, w+" ") || strings.HasPrefix(u, w+":") ||
			strings.HasSuffix(u, " "+w) || strings.HasSuffix(u, ":"+w) ||
			(colon && strings.Contains(u, w)) {
			return true
		}
	}
	return false
}

// isSkipShape reports whether the line is template residue by shape alone: a
// bare row or tier number, a bare decimal, or a label pair like "TIER: TOP".
func isSkipShape(line string) bool {
	return reShortInt.MatchString(line) ||
		reDecimal.MatchString(line) ||
		reLabelPair.MatchString(line)
}
