package extract

import (
	"context"
	stderrors "errors"
	"time"

	"google.golang.org/genai"

	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/logging"
)

const providerName = "gemini"

// generator is the part of the genai models service the adapter uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig configures the Gemini adapter.
type GeminiConfig struct {
	APIKey         string
	Model          string
	MaxPromptChars int
	Timeout        time.Duration
}

// Gemini extracts candidate events with the Gemini API and a JSON response schema.
type Gemini struct {
	models         generator
	model          string
	maxPromptChars int
	timeout        time.Duration
}

// NewGemini creates a Gemini adapter using the Gemini API backend.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, &errors.AuthenticationError{
			Provider: providerName,
			Method:   "api-key",
			Message:  "API key required - set GEMINI_API_KEY or gemini_api_key",
			Err:      errors.ErrAPIKeyRequired,
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		return nil, &errors.ConfigError{
			Component: providerName,
			Message:   "creating client",
			Err:       err,
		}
	}

	return newGemini(client.Models, cfg), nil
}

func newGemini(models generator, cfg GeminiConfig) *Gemini {
	g := &Gemini{
		models:         models,
		model:          cfg.Model,
		maxPromptChars: cfg.MaxPromptChars,
		timeout:        cfg.Timeout,
	}
	if g.model == "" {
		g.model = constants.DefaultModel
	}
	if g.maxPromptChars == 0 {
		g.maxPromptChars = constants.MaxPromptChars
	}
	if g.timeout == 0 {
		g.timeout = constants.ExtractionTimeout
	}
	return g
}

// Model returns the model name used for extraction.
func (g *Gemini) Model() string {
	return g.model
}

// Extract implements Extractor.
func (g *Gemini) Extract(ctx context.Context, text string, source events.Source) ([]events.CandidateEvent, error) {
	prompt, err := Prompt(source, Truncate(text, g.maxPromptChars))
	if err != nil {
		return nil, errors.NewExtractionError(source.String(), "llm", err)
	}
	schema, err := Schema(source)
	if err != nil {
		return nil, errors.NewExtractionError(source.String(), "llm", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	logger := logging.FromContext(ctx)
	start := time.Now()

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, errors.NewExtractionError(source.String(), "llm", g.classify(ctx, err))
	}

	candidates, err := Decode(resp.Text(), source)
	if err != nil {
		return nil, errors.NewExtractionError(source.String(), "llm", err)
	}

	logger.Debug().
		Str("source", source.String()).
		Str("model", g.model).
		Int("count", len(candidates)).
		Dur("duration", time.Since(start)).
		Msg("Extracted candidate events")

	return candidates, nil
}

// classify maps transport errors onto the shared error taxonomy.
func (g *Gemini) classify(ctx context.Context, err error) error {
	switch {
	case stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		return stderrors.Join(errors.ErrTimeout, err)
	case stderrors.Is(ctx.Err(), context.Canceled):
		return stderrors.Join(errors.ErrCanceled, err)
	}

	var apiErr genai.APIError
	if stderrors.As(err, &apiErr) {
		return &errors.APIError{
			Provider:   providerName,
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return err
}
