package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/brief"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ brief.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens offline with the model's local tokenizer. No
// API key is needed; the tokenizer model is downloaded once and cached.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter returns a counter for model, or DefaultModel if empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model whose tokenizer is used.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the tokens of text sent as a single user turn.
// Blank text counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}, nil)
	if err != nil {
		return 0, fmt.Errorf("counting tokens: %w", err)
	}
	return int(result.TotalTokens), nil
}
