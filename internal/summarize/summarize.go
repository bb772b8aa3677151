// Package summarize generates article summaries through a Gemini model and
// caches them by (content, model) so each article is summarized at most once
// per model.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when the configuration does not name one.
const DefaultModel = "gemini-1.5-flash"

// promptPrefix frames the summarization request. The article text is
// appended verbatim.
const promptPrefix = "Please summarize the following article concisely into bullet points:\n\n"

// Summarizer generates a summary for article text.
type Summarizer interface {
	// Summarize returns a summary of content.
	Summarize(ctx context.Context, content string) (string, error)
	// Model returns the model identifier summaries are cached under.
	Model() string
	// Close releases any resources held by the summarizer.
	Close() error
}

// GeminiSummarizer implements Summarizer against the Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

var _ Summarizer = (*GeminiSummarizer)(nil)

// NewGemini creates a Gemini-backed summarizer.
func NewGemini(ctx context.Context, apiKey, model string) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSummarizer{client: client, model: model}, nil
}

// Summarize implements Summarizer.
func (s *GeminiSummarizer) Summarize(ctx context.Context, content string) (string, error) {
	model := s.client.GenerativeModel(s.model)
	model.SetTemperature(0.1) // Low temperature for consistent output

	resp, err := model.GenerateContent(ctx, genai.Text(promptPrefix+content))
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	return extractTextFromResponse(resp)
}

// Model implements Summarizer.
func (s *GeminiSummarizer) Model() string {
	return s.model
}

// Close implements Summarizer.
func (s *GeminiSummarizer) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
