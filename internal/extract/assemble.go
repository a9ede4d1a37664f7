package extract

// assembleRows emits one record per composite row, in document order. When
// any composite rows exist they are the authoritative result: a line that
// carried all fields together needs no positional guessing.
func assembleRows(classes []LineClass) []Product {
	var products []Product
	for _, c := range classes {
		if c.Kind != KindCompositeRow {
			continue
		}
		p := Product{Name: c.Name, SKU: c.SKU}
		if len(c.UPCs) > 0 {
			p.UPC = c.UPCs[0]
		}
		products = append(products, p)
	}
	return products
}

// zipColumns is the fallback when no line carried a full record. It assumes
// the source table's three columns were read out as three contiguous runs of
// lines, each still in row order, and zips them back together positionally.
// Fields past the end of a shorter list stay empty; no cross-checking between
// zipped fields is attempted, so column misalignment shifts records rather
// than failing.
func zipColumns(classes []LineClass) []Product {
	var names, skus, upcs []string
	for _, c := range classes {
		switch c.Kind {
		case KindNameFragment:
			names = append(names, c.Name)
		case KindSKUOnly:
			skus = append(skus, c.SKU)
		case KindUPCOnly:
			upcs = append(upcs, c.UPCs...)
		}
	}

	n := max(len(names), len(skus), len(upcs))
	products := make([]Product, 0, n)
	for i := 0; i < n; i++ {
		var p Product
		if i < len(names) {
			p.Name = names[i]
		}
		if i < len(skus) {
			p.SKU = skus[i]
		}
		if i < len(upcs) {
			p.UPC = upcs[i]
		}
		products = append(products, p)
	}
	return products
}

// finalize drops records with every field empty and caps the list length,
// keeping duplicates.
func (e *Engine) finalize(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Name == "" && p.SKU == "" && p.UPC == "" {
			continue
		}
		out = append(out, p)
		if len(out) == e.cfg.MaxRecords {
			break
		}
	}
	return out
}
