package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	ElevenLabsBaseURL        = "https://api.elevenlabs.io/v1"
	ElevenLabsTTSEndpoint    = "/text-to-speech"
	ElevenLabsVoicesEndpoint = "/voices"

	// DefaultElevenLabsVoice is Rachel, a clear en-US narration voice.
	DefaultElevenLabsVoice = "21m00Tcm4TlvDq8ikWAM"
)

// ElevenLabsProvider implements the Provider interface for the
// ElevenLabs TTS API v1.
type ElevenLabsProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ElevenLabsProviderOption configures an ElevenLabsProvider.
type ElevenLabsProviderOption func(*ElevenLabsProvider)

// WithElevenLabsBaseURL points the provider at an alternate endpoint.
func WithElevenLabsBaseURL(baseURL string) ElevenLabsProviderOption {
	return func(p *ElevenLabsProvider) {
		p.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewElevenLabsProvider creates a new ElevenLabs TTS provider.
func NewElevenLabsProvider(apiKey string, opts ...ElevenLabsProviderOption) *ElevenLabsProvider {
	p := &ElevenLabsProvider{
		apiKey:  apiKey,
		baseURL: ElevenLabsBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // ElevenLabs can be slower than OpenAI
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the provider name.
func (p *ElevenLabsProvider) Name() string {
	return "elevenlabs"
}

// VoiceSettings controls ElevenLabs voice rendering.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style,omitempty"`
	UseSpeakerBoost bool    `json:"use_speaker_boost,omitempty"`
}

type elevenLabsVoice struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Labels      map[string]string `json:"labels"`
	Description string            `json:"description"`
}

type elevenLabsVoicesResponse struct {
	Voices []elevenLabsVoice `json:"voices"`
}

// ListVoices returns available ElevenLabs voices.
func (p *ElevenLabsProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+ElevenLabsVoicesEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create voices request: %w", err)
	}

	req.Header.Set("xi-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ElevenLabs API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var voicesResp elevenLabsVoicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&voicesResp); err != nil {
		return nil, fmt.Errorf("failed to decode voices response: %w", err)
	}

	voices := make([]Voice, 0, len(voicesResp.Voices))
	for _, v := range voicesResp.Voices {
		voices = append(voices, Voice{
			ID:          v.VoiceID,
			Name:        v.Name,
			Language:    v.Labels["language"],
			Gender:      v.Labels["gender"],
			Description: v.Description,
		})
	}

	log.Debug().Int("count", len(voices)).Msg("Listed ElevenLabs voices")
	return voices, nil
}

// Synthesize generates audio from text using the ElevenLabs API.
func (p *ElevenLabsProvider) Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("synthesis validation failed: text cannot be empty")
	}

	voiceID := options.Voice
	if voiceID == "" {
		voiceID = DefaultElevenLabsVoice
	}

	model := options.Model
	if model == "" {
		model = "eleven_monolingual_v1"
	}

	requestBody := map[string]interface{}{
		"text":     text,
		"model_id": model,
		"voice_settings": VoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
			UseSpeakerBoost: true,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s%s/%s", p.baseURL, ElevenLabsTTSEndpoint, voiceID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", p.apiKey)

	log.Debug().
		Str("voice_id", voiceID).
		Str("model", model).
		Msg("Making ElevenLabs TTS request")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ElevenLabs API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Msg("ElevenLabs TTS request successful")

	return resp.Body, nil
}

// IsAvailable checks if the ElevenLabs provider is usable.
func (p *ElevenLabsProvider) IsAvailable(ctx context.Context) bool {
	return p.apiKey != ""
}
