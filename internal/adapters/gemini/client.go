// Package gemini implements ports.TradeAnalyst on the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

const (
	DefaultModel             = "gemini-2.5-flash"
	defaultTimeout           = 60 * time.Second
	defaultRequestsPerMinute = 10
)

// contentGenerator is the subset of the genai models service used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements the ports.TradeAnalyst interface using the genai SDK.
type Client struct {
	models         contentGenerator
	model          string
	timeout        time.Duration
	requestLimiter *rate.Limiter
	logger         ports.Logger
}

// Config holds configuration specific to the Gemini adapter.
type Config struct {
	APIKey            string
	Model             string        // Defaults to gemini-2.5-flash
	Timeout           time.Duration // Per-request timeout
	RequestsPerMinute int           // Client-side request pacing
	Logger            ports.Logger
}

// New creates a Gemini analyst. Returns ports.ErrMissingCredential when no
// API key is configured.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Gemini client")
	}
	if cfg.APIKey == "" {
		return nil, ports.ErrMissingCredential
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newWithGenerator(genaiClient.Models, cfg), nil
}

func newWithGenerator(models contentGenerator, cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}

	cfg.Logger.Info(context.Background(), "Gemini analyst configured", map[string]interface{}{
		"model":               model,
		"requests_per_minute": rpm,
	})

	return &Client{
		models:         models,
		model:          model,
		timeout:        timeout,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		logger:         cfg.Logger,
	}
}

// Analyze asks the model to review the trades and returns its Markdown commentary.
func (c *Client) Analyze(ctx context.Context, trades []*domain.Trade) (string, error) {
	if len(trades) == 0 {
		return "", ports.ErrNoTrades
	}

	prompt, err := buildPrompt(trades)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrAnalysisFailed, err)
	}

	if err := c.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrRateLimited, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.models.GenerateContent(reqCtx, c.model, []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", ports.ErrTimeout, err)
		}
		c.logger.Error(ctx, err, "Gemini request failed", map[string]interface{}{"model": c.model, "trades": len(trades)})
		return "", fmt.Errorf("%w: %w", ports.ErrAnalysisFailed, err)
	}

	text := responseText(resp)
	c.logger.Debug(ctx, "Gemini analysis received", map[string]interface{}{
		"model":    c.model,
		"trades":   len(trades),
		"chars":    len(text),
		"duration": time.Since(start).String(),
	})
	if strings.TrimSpace(text) == "" {
		return "", ports.ErrEmptyAnalysis
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
