// Package generator talks to a Gemini-style generateContent API for text
// generation and speech synthesis.
package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/config"
)

// ErrGeneration is the failure kind for any text or speech service error.
var ErrGeneration = errors.New("generation failed")

// Client calls the generation service. Text and speech use the same
// generateContent endpoint with different models.
type Client struct {
	baseURL    string
	apiKey     string
	textModel  string
	ttsModel   string
	voice      string
	timeoutSec int
	client     *http.Client
	logger     *log.Logger
}

// NewClient creates a Client from the generation config.
func NewClient(cfg *config.GenerationConfig, apiKey string, logger *log.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     apiKey,
		textModel:  cfg.TextModel,
		ttsModel:   cfg.TTSModel,
		voice:      cfg.Voice,
		timeoutSec: cfg.TimeoutSec,
		client:     &http.Client{},
		logger:     logger,
	}
}

// Request/response shapes for the generateContent endpoint.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends the prompt to the text model and returns the generated
// text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	resp, err := c.generate(ctx, c.textModel, req)
	if err != nil {
		return "", err
	}

	for _, p := range resp.firstParts() {
		if p.Text != "" {
			return strings.TrimSpace(p.Text), nil
		}
	}
	return "", fmt.Errorf("%w: no text in response", ErrGeneration)
}

// GenerateSpeech synthesizes text with the TTS model and returns raw audio
// bytes (16-bit little-endian PCM, 24kHz, mono).
func (c *Client) GenerateSpeech(ctx context.Context, text string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: c.voice},
				},
			},
		},
	}

	resp, err := c.generate(ctx, c.ttsModel, req)
	if err != nil {
		return nil, err
	}

	for _, p := range resp.firstParts() {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: decode audio payload: %v", ErrGeneration, err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%w: no audio payload in response", ErrGeneration)
}

func (r *generateResponse) firstParts() []part {
	if len(r.Candidates) == 0 {
		return nil
	}
	return r.Candidates[0].Content.Parts
}

// generate posts a generateContent request for the given model.
func (c *Client) generate(ctx context.Context, model string, reqBody generateRequest) (*generateResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.timeoutSec)*time.Second)
	defer cancel()

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrGeneration, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	if c.logger != nil {
		c.logger.Printf("generate request: POST %s body_size=%d", url, len(bodyBytes))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrGeneration, err)
	}
	latency := time.Since(start)

	if c.logger != nil {
		c.logger.Printf("generate response: model=%s status=%d body_size=%d latency=%s",
			model, resp.StatusCode, len(respBody), latency.Round(time.Millisecond))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrGeneration, resp.StatusCode, truncateBody(respBody))
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGeneration, err)
	}
	return &out, nil
}

// truncateBody keeps error messages readable when the service returns a
// large payload.
func truncateBody(b []byte) string {
	const max = 512
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
