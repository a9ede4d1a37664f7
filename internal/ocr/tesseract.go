package ocr

import (
	"fmt"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements Client with a local Tesseract installation via
// gosseract. No data leaves the machine, at the cost of needing the
// tesseract libraries present.
type Tesseract struct {
	languages []string
}

// NewTesseract creates a new Tesseract client. languages is a comma
// separated list of tesseract language codes, defaulting to eng.
func NewTesseract(languages string) (*Tesseract, error) {
	langs := []string{"eng"}
	if languages != "" {
		langs = langs[:0]
		for _, l := range strings.Split(languages, ",") {
			if l = strings.TrimSpace(l); l != "" {
				langs = append(langs, l)
			}
		}
		if len(langs) == 0 {
			langs = []string{"eng"}
		}
	}
	return &Tesseract{languages: langs}, nil
}

// Recognize runs local OCR over the prepared image, using a fresh gosseract
// client per call.
func (t *Tesseract) Recognize(imageData []byte, contentType string) (*Recognition, error) {
	prepared, err := prepareImage(imageData, contentType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c := gosseract.NewClient()
	defer c.Close()

	if err := c.SetLanguage(t.languages...); err != nil {
		return nil, fmt.Errorf("setting languages: %w", err)
	}
	// Auto page segmentation with orientation detection, photographed
	// sheets arrive rotated more often than not.
	if err := c.SetPageSegMode(gosseract.PSM_AUTO_OSD); err != nil {
		return nil, fmt.Errorf("setting page segmentation: %w", err)
	}
	if err := c.SetImageFromBytes(prepared); err != nil {
		return nil, fmt.Errorf("setting image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognizing text: %w", err)
	}

	return &Recognition{
		Text:       strings.TrimSpace(text),
		Confidence: wordConfidence(c),
		Millis:     time.Since(start).Milliseconds(),
	}, nil
}

// wordConfidence averages tesseract's per-word confidences into [0,1].
func wordConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes))
}

// Close implements Client. Per-call clients are closed in Recognize.
func (t *Tesseract) Close() error {
	return nil
}
