package ocr

// Recognition contains the outcome of one recognition call: the raw text
// plus the coarse quality signals the provider exposes.
type Recognition struct {
	// Text is the recognized text, empty when the provider could not read
	// the image.
	Text string
	// Overlay reports whether the provider returned positional overlay data.
	Overlay bool
	// Confidence is the provider's coarse quality estimate in [0,1].
	Confidence float64
	// Millis is the processing time reported by the provider, or the
	// measured round trip when the provider reports none.
	Millis int64
	// ErrorMessage describes a processing failure. A failed recognition is
	// not a transport error: Text is empty and this field says why.
	ErrorMessage string
}

// Confidence estimates for providers that expose only an overlay flag.
const (
	ConfidenceWithOverlay    = 0.9
	ConfidenceWithoutOverlay = 0.7
)

// Client defines the interface for text recognition providers.
type Client interface {
	// Recognize runs OCR over an image or PDF and returns the recognized
	// text. Processing failures are reported on the Recognition, not as
	// errors; errors mean the provider could not be reached at all.
	Recognize(image []byte, contentType string) (*Recognition, error)
	// Close releases provider resources.
	Close() error
}
