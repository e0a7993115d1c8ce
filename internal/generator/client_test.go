package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juberthmotta-oss/revelacao-de-hoje/internal/config"
)

func testClient(baseURL string) *Client {
	cfg := &config.GenerationConfig{
		BaseURL:    baseURL,
		TextModel:  "text-model",
		TTSModel:   "tts-model",
		Voice:      "Zephyr",
		TimeoutSec: 5,
	}
	return NewClient(cfg, "test-api-key", nil)
}

func TestGenerateText(t *testing.T) {
	var receivedPath string
	var receivedKey string
	var receivedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedKey = r.Header.Get("x-goog-api-key")
		receivedBody, _ = io.ReadAll(r.Body)

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"  Uma palavra de fé.  "}]}}]}`)
	}))
	defer server.Close()

	c := testClient(server.URL)
	text, err := c.GenerateText(context.Background(), "prompt here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "Uma palavra de fé." {
		t.Errorf("expected trimmed text, got %q", text)
	}
	if receivedPath != "/v1beta/models/text-model:generateContent" {
		t.Errorf("unexpected path: %s", receivedPath)
	}
	if receivedKey != "test-api-key" {
		t.Errorf("expected api key header, got %q", receivedKey)
	}

	var req generateRequest
	if err := json.Unmarshal(receivedBody, &req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected request shape: %s", receivedBody)
	}
	if req.Contents[0].Parts[0].Text != "prompt here" {
		t.Errorf("expected prompt in request, got %q", req.Contents[0].Parts[0].Text)
	}
	if req.GenerationConfig != nil {
		t.Error("text request must not carry a generation config")
	}
}

func TestGenerateTextNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).GenerateText(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestGenerateTextServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(server.URL).GenerateText(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestGenerateSpeech(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80}
	var receivedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/tts-model:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.Error(w, "not found", 404)
			return
		}
		receivedBody, _ = io.ReadAll(r.Body)

		resp := fmt.Sprintf(
			`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/L16;codec=pcm;rate=24000","data":%q}}]}}]}`,
			base64.StdEncoding.EncodeToString(pcm))
		fmt.Fprint(w, resp)
	}))
	defer server.Close()

	c := testClient(server.URL)
	raw, err := c.GenerateSpeech(context.Background(), "fala isso")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(raw, pcm) {
		t.Errorf("expected % x, got % x", pcm, raw)
	}

	var req generateRequest
	if err := json.Unmarshal(receivedBody, &req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if req.GenerationConfig == nil {
		t.Fatal("expected generation config in speech request")
	}
	if len(req.GenerationConfig.ResponseModalities) != 1 || req.GenerationConfig.ResponseModalities[0] != "AUDIO" {
		t.Errorf("expected AUDIO modality, got %v", req.GenerationConfig.ResponseModalities)
	}
	if got := req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName; got != "Zephyr" {
		t.Errorf("expected voice Zephyr, got %q", got)
	}
}

func TestGenerateSpeechNoAudioPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"sem audio"}]}}]}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).GenerateSpeech(context.Background(), "fala")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestGenerateSpeechBadBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/pcm","data":"!!!not-base64!!!"}}]}}]}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).GenerateSpeech(context.Background(), "fala")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestUnreachableService(t *testing.T) {
	// Port from a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testClient(server.URL).GenerateText(context.Background(), "p")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}
