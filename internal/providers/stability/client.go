package stability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"artgallery/internal/infra"
)

const (
	defaultBaseURL = "https://api.stability.ai"
	defaultEngine  = "stable-diffusion-xl-1024-v1-0"

	cfgScale     = 7
	imageSize    = 1024
	samplingStep = 30
	sampleCount  = 1
	promptWeight = 1
)

// Options configures the Stability AI text-to-image client.
type Options struct {
	APIKey         string
	BaseURL        string
	Engine         string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs single-shot calls to the Stability AI text-to-image API.
// It never retries; callers own any retry policy.
type Client struct {
	apiKey     string
	endpoint   string
	engine     string
	httpClient *http.Client
	logger     *infra.Logger
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type generationRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

// NewClient constructs a client with defaults applied.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	engine := strings.TrimSpace(opts.Engine)
	if engine == "" {
		engine = defaultEngine
	}
	logger := opts.Logger
	if logger == nil {
		nop := infra.NopLogger()
		logger = &nop
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		endpoint:   baseURL + "/v1/generation/" + engine + "/text-to-image",
		engine:     engine,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Engine returns the configured engine identifier.
func (c *Client) Engine() string {
	return c.engine
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c != nil && c.apiKey != ""
}

// Generate turns prompt into exactly one image. Every failure is returned as a
// *GenerationError; the image is non-nil if and only if the error is nil.
func (c *Client) Generate(ctx context.Context, prompt string) (*Image, error) {
	if !c.HasCredentials() {
		return nil, failure(KindMisconfigured, ErrMissingAPIKey)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, failure(KindRequestError, errors.New("prompt is required"))
	}

	body, err := json.Marshal(generationRequest{
		TextPrompts: []textPrompt{{Text: prompt, Weight: promptWeight}},
		CfgScale:    cfgScale,
		Height:      imageSize,
		Width:       imageSize,
		Samples:     sampleCount,
		Steps:       samplingStep,
	})
	if err != nil {
		return nil, failure(KindRequestError, fmt.Errorf("encode request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, failure(KindRequestError, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, failure(KindNoResponse, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failure(KindProviderProtocolError, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GenerationError{
			Kind:   KindProviderRejected,
			Status: resp.StatusCode,
			Body:   raw,
			Detail: strings.TrimSpace(string(raw)),
		}
	}

	img, err := firstArtifact(raw)
	if err != nil {
		return nil, failure(KindProviderProtocolError, err)
	}
	c.logger.Debug().
		Str("engine", c.engine).
		Int64("seed", img.Seed).
		Str("finish_reason", img.FinishReason).
		Msg("stability: generated image")
	return img, nil
}

func firstArtifact(raw []byte) (*Image, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("decode response: invalid json")
	}
	artifacts := gjson.GetBytes(raw, "artifacts")
	if !artifacts.IsArray() || len(artifacts.Array()) == 0 {
		return nil, errors.New("response contains no artifacts")
	}
	first := artifacts.Array()[0]
	b64 := strings.TrimSpace(first.Get("base64").String())
	if b64 == "" {
		return nil, errors.New("artifact has no image data")
	}
	return &Image{
		Base64:       b64,
		MIME:         "image/png",
		Seed:         first.Get("seed").Int(),
		FinishReason: first.Get("finishReason").String(),
	}, nil
}
