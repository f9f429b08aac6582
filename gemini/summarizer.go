package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fwojciec/brief"
	"google.golang.org/genai"
)

// DefaultModel is the model used unless WithModel is given.
const DefaultModel = "gemini-2.5-flash"

// temperature keeps summaries close to the source text.
const temperature = float32(0.2)

// Ensure Summarizer implements brief.Summarizer at compile time.
var _ brief.Summarizer = (*Summarizer)(nil)

// Summarizer implements brief.Summarizer using Google Gemini. The API key
// is supplied per call, so a client is built for each request.
type Summarizer struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel sets the Gemini model.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		s.model = model
	}
}

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(u string) Option {
	return func(s *Summarizer) {
		s.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Summarizer) {
		s.httpClient = c
	}
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(opts ...Option) *Summarizer {
	s := &Summarizer{model: DefaultModel}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize asks Gemini for a summary of text.
// Returns brief.NoSummary if the model answers without text.
func (s *Summarizer) Summarize(ctx context.Context, text string, kind brief.SummaryKind, apiKey string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", brief.Errorf(brief.EMISSINGCREDENTIAL, "%s", brief.MissingAPIKey)
	}
	if text == "" {
		return "", brief.Errorf(brief.EINVALID, "text required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  s.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: s.baseURL},
	})
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: brief.SummaryPrompt(kind, text)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", brief.Errorf(brief.EHTTP, "HTTP error! status: %d", apiErr.Code)
		}
		return "", err
	}
	if result == nil {
		return "", brief.Errorf(brief.EINTERNAL, "gemini returned nil result")
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return brief.NoSummary, nil
	}
	return summary, nil
}

// BuildConfig returns the GenerateContentConfig for summary requests.
func BuildConfig() *genai.GenerateContentConfig {
	temp := temperature
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
