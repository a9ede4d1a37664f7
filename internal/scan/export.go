package scan

import (
	"strings"

	"github.com/planoscan/planoscan/internal/extract"
)

// TSV renders product records as tab separated lines in name, SKU, UPC
// column order, ready to paste into a spreadsheet. No header row; consumers
// paste into sheets that already have one.
func TSV(products []extract.Product) string {
	var b strings.Builder
	for _, p := range products {
		b.WriteString(p.Name)
		b.WriteByte('\t')
		b.WriteString(p.SKU)
		b.WriteByte('\t')
		b.WriteString(p.UPC)
		b.WriteByte('\n')
	}
	return b.String()
}
