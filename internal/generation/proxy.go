package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"artgallery/internal/infra"
	"artgallery/internal/metrics"
	"artgallery/internal/providers/stability"
)

const (
	errPromptRequired = "Prompt is required"
	errMisconfigured  = "STABILITY_API_KEY is not configured"
	hintMisconfigured = "Please sign up at https://platform.stability.ai/ to get an API key"
	errRejected       = "Image generation failed"
	errNoResponse     = "No response from Stability AI API"
	detailNoResponse  = "The request was made but no response was received"
	errGeneric        = "Failed to generate image"
)

// Generator is the provider client contract the proxy depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*stability.Image, error)
}

// Response is a transport-ready status and JSON body.
type Response struct {
	Status int
	Body   any
}

// SuccessBody is returned with 200 when an image was produced.
type SuccessBody struct {
	Photo string `json:"photo"`
}

// ErrorBody is the stable error contract of the generate endpoint.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// Proxy validates prompts, delegates to the provider client, and maps the
// outcome onto HTTP status codes and bodies.
type Proxy struct {
	gen    Generator
	logger infra.Logger
}

func NewProxy(gen Generator, logger infra.Logger) *Proxy {
	return &Proxy{gen: gen, logger: logger}
}

// Handle never panics on provider failures; every path yields a Response.
func (p *Proxy) Handle(ctx context.Context, prompt string) Response {
	if strings.TrimSpace(prompt) == "" {
		return Response{Status: http.StatusBadRequest, Body: ErrorBody{Error: errPromptRequired}}
	}

	img, err := p.gen.Generate(ctx, prompt)
	if err == nil && img != nil {
		metrics.RecordGeneration("success")
		return Response{Status: http.StatusOK, Body: SuccessBody{Photo: img.DataURI()}}
	}

	var genErr *stability.GenerationError
	if !errors.As(err, &genErr) {
		genErr = &stability.GenerationError{Kind: stability.KindRequestError, Err: err}
		if err != nil {
			genErr.Detail = err.Error()
		} else {
			genErr.Detail = "provider returned neither image nor error"
		}
	}
	metrics.RecordGeneration(string(genErr.Kind))
	return p.failure(genErr)
}

func (p *Proxy) failure(e *stability.GenerationError) Response {
	switch e.Kind {
	case stability.KindMisconfigured:
		p.logger.Error().Str("kind", string(e.Kind)).Msg("generate: provider api key is not configured")
		return Response{
			Status: http.StatusInternalServerError,
			Body:   ErrorBody{Error: errMisconfigured, Message: hintMisconfigured},
		}
	case stability.KindProviderRejected:
		p.logger.Error().
			Str("kind", string(e.Kind)).
			Int("status", e.Status).
			Bytes("response", e.Body).
			Msg("generate: provider rejected request")
		return Response{
			Status: relayStatus(e.Status),
			Body:   ErrorBody{Error: errRejected, Details: providerDetails(e.Body), Status: e.Status},
		}
	case stability.KindNoResponse:
		p.logger.Error().Str("kind", string(e.Kind)).Err(e.Err).Msg("generate: no response from provider")
		return Response{
			Status: http.StatusInternalServerError,
			Body:   ErrorBody{Error: errNoResponse, Details: detailNoResponse},
		}
	default:
		p.logger.Error().Str("kind", string(e.Kind)).Str("detail", e.Detail).Msg("generate: request failed")
		return Response{
			Status: http.StatusInternalServerError,
			Body:   ErrorBody{Error: errGeneric, Details: e.Detail},
		}
	}
}

// providerDetails relays JSON bodies as raw JSON and anything else as text.
func providerDetails(body []byte) any {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	return trimmed
}

func relayStatus(status int) int {
	if status < 100 || status > 599 {
		return http.StatusBadGateway
	}
	return status
}
