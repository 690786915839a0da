package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"

	"github.com/sundacoder/ZedID/internal/errors"
	"github.com/sundacoder/ZedID/internal/policy/domain"
)

const (
	systemPrompt = "You are ZedID, an expert in Zero Trust policy generation."

	// maxErrorBody bounds how much of a failed response is echoed into the error.
	maxErrorBody = 4096
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// HTTPRouterConfig configures the OpenAI-compatible router client.
type HTTPRouterConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	// Transport is the base round tripper. Nil means http.DefaultTransport.
	Transport http.RoundTripper
	// MeterProvider records client request metrics when set.
	MeterProvider metric.MeterProvider
}

type httpRouter struct {
	url    string
	apiKey string
	client *http.Client
	logger *slog.Logger
}

// NewHTTPRouter creates a Router posting chat completion requests to
// {Endpoint}/chat/completions.
func NewHTTPRouter(cfg HTTPRouterConfig, logger *slog.Logger) Router {
	var opts []otelhttp.Option
	if cfg.MeterProvider != nil {
		opts = append(opts, otelhttp.WithMeterProvider(cfg.MeterProvider))
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &httpRouter{
		url:    strings.TrimRight(cfg.Endpoint, "/") + "/chat/completions",
		apiKey: cfg.APIKey,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(base, opts...),
		},
		logger: logger,
	}
}

// ModelFor returns the model requested for kind.
func ModelFor(kind domain.Kind) string {
	switch kind {
	case domain.KindRego, domain.KindCedar:
		return "gpt-4o"
	default:
		return "gpt-4o-mini"
	}
}

func (h *httpRouter) Route(ctx context.Context, prompt string, kind domain.Kind) (*domain.RouteResult, error) {
	model := ModelFor(kind)

	body, err := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, errors.Wrapf(domain.ErrSerializationFailed, "failed to encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(domain.ErrRoutingFailed, "network error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	h.logger.Debug("routing policy generation request", slog.String("url", h.url), slog.String("model", model))

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrRoutingFailed, "network error: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.Wrap(domain.ErrRoutingFailed, fmt.Sprintf("status %d - %s", resp.StatusCode, text))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, errors.Wrapf(domain.ErrRoutingFailed, "parse error: %v", err)
	}

	result := &domain.RouteResult{Model: model}
	if len(completion.Choices) > 0 {
		result.Content = completion.Choices[0].Message.Content
	}
	if completion.Usage != nil {
		tokens := completion.Usage.TotalTokens
		result.Tokens = &tokens
	}
	return result, nil
}
