package scan

import (
	"time"

	"github.com/planoscan/planoscan/internal/extract"
)

// Scan represents one processed planogram sheet: the uploaded source file,
// the recognized text and the extracted product records. Products carry the
// same shape whether the engine extracted them or an operator corrected them
// by hand.
type Scan struct {
	ID               string            `json:"id"`
	Filename         string            `json:"filename"`
	ContentType      string            `json:"content_type"`
	RawText          string            `json:"raw_text"`
	Products         []extract.Product `json:"products"`
	Confidence       float64           `json:"confidence"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
