package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ankify/ankify-api/internal/config"
	"github.com/ankify/ankify-api/internal/generation"
	"github.com/ankify/ankify-api/internal/redact"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models the completer uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Completer implements generation.Completer using the Gemini API.
type Completer struct {
	logger *slog.Logger
	models contentGenerator
	model  string
}

var _ generation.Completer = (*Completer)(nil)

// NewCompleter validates cfg and creates a Gemini API client.
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newCompleter(logger, client.Models, cfg.ModelName), nil
}

func newCompleter(logger *slog.Logger, models contentGenerator, model string) *Completer {
	return &Completer{
		logger: logger.With("component", "gemini_completer"),
		models: models,
		model:  model,
	}
}

// Complete sends one request and concatenates the text parts of the first
// candidate.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", ErrEmptyPrompt
	}

	var genConfig *genai.GenerateContentConfig
	if systemPrompt != "" {
		genConfig = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			},
		}
	}

	c.logger.InfoContext(ctx, "Making Gemini API call",
		"model", c.model,
		"prompt_length", len(userPrompt))

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(userPrompt), genConfig)
	if err != nil {
		c.logger.ErrorContext(ctx, "Gemini API call error",
			"error", redact.Error(err))
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	text, err := responseText(resp)
	if err != nil {
		c.logger.WarnContext(ctx, "Gemini API returned no usable content",
			"error", err)
		return "", err
	}

	c.logger.InfoContext(ctx, "Gemini API call successful",
		"response_length", len(text))
	return text, nil
}

// responseText extracts the text of the first candidate or explains why
// there is none.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)",
			generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}
	return text, nil
}
