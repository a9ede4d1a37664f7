package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// DefaultOCRSpaceURL is the public endpoint of the hosted OCR.Space service.
const DefaultOCRSpaceURL = "https://api.ocr.space/parse/image"

// OCRSpace implements Client against an OCR.Space compatible HTTP endpoint.
// Requests select the table-optimized engine with orientation detection.
type OCRSpace struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOCRSpace creates a new OCRSpace client. An empty baseURL selects the
// hosted service.
func NewOCRSpace(apiKey string, baseURL string) (*OCRSpace, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ocrspace api key is required")
	}
	if baseURL == "" {
		baseURL = DefaultOCRSpaceURL
	}

	return &OCRSpace{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText  string `json:"ParsedText"`
		TextOverlay struct {
			HasOverlay bool `json:"HasOverlay"`
		} `json:"TextOverlay"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing        bool       `json:"IsErroredOnProcessing"`
	ErrorMessage                 stringList `json:"ErrorMessage"`
	ProcessingTimeInMilliseconds string     `json:"ProcessingTimeInMilliseconds"`
}

// stringList absorbs the endpoint's two error shapes: a single string or a
// list of strings.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = stringList{single}
	return nil
}

// Recognize sends the prepared image to the endpoint and maps the response
// to a Recognition. Transport failures are retried before being surfaced;
// processing failures reported by the service are not errors.
func (o *OCRSpace) Recognize(imageData []byte, contentType string) (*Recognition, error) {
	prepared, err := prepareImage(imageData, contentType)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("base64Image", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(prepared))
	form.Set("language", "eng")
	form.Set("isOverlayRequired", "true")
	form.Set("detectOrientation", "true")
	form.Set("scale", "true")
	form.Set("OCREngine", "2")

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	start := time.Now()
	var parsed ocrSpaceResponse
	err = retry.Do(
		func() error { return o.post(ctx, form, &parsed) },
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(1*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("calling ocr endpoint: %w", err)
	}

	rec := &Recognition{Millis: time.Since(start).Milliseconds()}
	if ms, perr := strconv.ParseInt(parsed.ProcessingTimeInMilliseconds, 10, 64); perr == nil {
		rec.Millis = ms
	}

	if parsed.IsErroredOnProcessing {
		rec.ErrorMessage = strings.Join(parsed.ErrorMessage, "; ")
		if rec.ErrorMessage == "" {
			rec.ErrorMessage = "processing failed"
		}
		return rec, nil
	}
	if len(parsed.ParsedResults) == 0 {
		rec.ErrorMessage = "no parsed results"
		return rec, nil
	}

	first := parsed.ParsedResults[0]
	rec.Text = first.ParsedText
	rec.Overlay = first.TextOverlay.HasOverlay
	if rec.Overlay {
		rec.Confidence = ConfidenceWithOverlay
	} else {
		rec.Confidence = ConfidenceWithoutOverlay
	}
	return rec, nil
}

func (o *OCRSpace) post(ctx context.Context, form url.Values, out *ocrSpaceResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var r ocrSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	*out = r
	return nil
}

// Close implements Client. The HTTP client holds no resources to release.
func (o *OCRSpace) Close() error {
	return nil
}
