package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"steamlens/lib/telemetry"
)

var tracer = telemetry.Tracer("steamlens.lib.llm")

// Ollama talks to a local ollama server over its generate endpoint.
type Ollama struct {
	http  *resty.Client
	model string
}

type OllamaOptions struct {
	BaseUrl string
	Model   string
	// local inference latency is highly variable, so the timeout is
	// configurable; zero means the 120s default.
	Timeout time.Duration
}

func NewOllama(opts OllamaOptions) *Ollama {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 120
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetTimeout(timeout)
	telemetry.InstrumentResty(client, "steamlens.lib.llm.http")

	return &Ollama{
		http:  client,
		model: opts.Model,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Complete sends the prompt and returns the model's raw text reply.
// A failed call is retried once before the error is surfaced.
func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "ollama:Complete")
	defer span.End()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			slog.WarnContext(ctx, "retrying model call", "err", lastErr)
		}

		var out generateResponse
		res, err := o.http.R().
			SetContext(ctx).
			SetBody(generateRequest{
				Model:  o.model,
				Prompt: prompt,
				Stream: false,
			}).
			SetResult(&out).
			Post("/api/generate")
		if err != nil {
			lastErr = err
			continue
		}
		if res.IsError() {
			lastErr = fmt.Errorf("model call failed: %s", res.Status())
			continue
		}

		return out.Response, nil
	}

	return "", lastErr
}
