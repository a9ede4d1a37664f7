package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// transcribePrompt asks the model for a line-faithful transcript. Parsing is
// the extraction engine's job; the model must not interpret or reorder
// anything.
const transcribePrompt = `You are transcribing a photographed retail planogram or product label sheet.

Read every piece of text visible in the image and return it as plain text, top to bottom, one line of output per printed line.

Important:
- Transcribe lines exactly as printed, including codes, numbers and labels
- Keep digits together exactly as they appear; never insert or remove spaces inside a number
- Do not reorder, group, merge or interpret lines
- Do not add commentary, summaries or markdown
- Return plain text only`

// Gemini implements Client using Google Gemini vision transcription.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini client instance.
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Recognize transcribes the text visible in an image.
func (g *Gemini) Recognize(imageData []byte, contentType string) (*Recognition, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prepared, err := prepareImage(imageData, contentType)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	// prepareImage always yields PNG, so the format suffix is fixed.
	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData("png", prepared),
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return &Recognition{
			ErrorMessage: "no response from gemini",
			Millis:       time.Since(start).Milliseconds(),
		}, nil
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(b.String())
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	return &Recognition{
		Text:       strings.TrimSpace(text),
		Confidence: ConfidenceWithoutOverlay,
		Millis:     time.Since(start).Milliseconds(),
	}, nil
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
