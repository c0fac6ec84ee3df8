package tts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider_Synthesize(t *testing.T) {
	t.Run("successful synthesis", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, OpenAITTSEndpoint, r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("fake-mp3-audio"))
		}))
		defer server.Close()

		provider := NewOpenAIProvider("test-key", WithOpenAIBaseURL(server.URL))

		audio, err := provider.Synthesize(context.Background(), "Hello world", SynthesizeOptions{})
		require.NoError(t, err)
		defer audio.Close()

		data, err := io.ReadAll(audio)
		require.NoError(t, err)
		assert.Equal(t, "fake-mp3-audio", string(data))

		assert.Equal(t, "tts-1", gotBody["model"])
		assert.Equal(t, "alloy", gotBody["voice"])
		assert.Equal(t, "mp3", gotBody["response_format"])
		assert.Equal(t, 1.0, gotBody["speed"])
	})

	t.Run("custom options are forwarded", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte("audio"))
		}))
		defer server.Close()

		provider := NewOpenAIProvider("test-key", WithOpenAIBaseURL(server.URL))

		audio, err := provider.Synthesize(context.Background(), "Hello", SynthesizeOptions{
			Voice: "nova",
			Model: "tts-1-hd",
			Speed: 1.5,
		})
		require.NoError(t, err)
		_ = audio.Close()

		assert.Equal(t, "nova", gotBody["voice"])
		assert.Equal(t, "tts-1-hd", gotBody["model"])
		assert.Equal(t, 1.5, gotBody["speed"])
	})

	t.Run("speed is clamped to API limits", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte("audio"))
		}))
		defer server.Close()

		provider := NewOpenAIProvider("test-key", WithOpenAIBaseURL(server.URL))

		audio, err := provider.Synthesize(context.Background(), "Hello", SynthesizeOptions{Speed: 10.0})
		require.NoError(t, err)
		_ = audio.Close()

		assert.Equal(t, 4.0, gotBody["speed"])
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		provider := NewOpenAIProvider("test-key")

		_, err := provider.Synthesize(context.Background(), "", SynthesizeOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "text cannot be empty")
	})

	t.Run("API error surfaces status and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": "rate limit exceeded"}`))
		}))
		defer server.Close()

		provider := NewOpenAIProvider("test-key", WithOpenAIBaseURL(server.URL))

		_, err := provider.Synthesize(context.Background(), "Hello", SynthesizeOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
		assert.Contains(t, err.Error(), "rate limit")
	})
}

func TestOpenAIProvider_ListVoices(t *testing.T) {
	provider := NewOpenAIProvider("test-key")

	voices, err := provider.ListVoices(context.Background())
	require.NoError(t, err)
	assert.Len(t, voices, 6)

	ids := make([]string, len(voices))
	for i, v := range voices {
		ids[i] = v.ID
	}
	assert.Contains(t, ids, "alloy")
	assert.Contains(t, ids, "nova")
}

func TestOpenAIProvider_IsAvailable(t *testing.T) {
	assert.True(t, NewOpenAIProvider("test-key").IsAvailable(context.Background()))
	assert.False(t, NewOpenAIProvider("").IsAvailable(context.Background()))
}

func TestWithOpenAIBaseURL(t *testing.T) {
	assert.Equal(t, OpenAIBaseURL, NewOpenAIProvider("k").baseURL)
	assert.Equal(t, "http://localhost:9999", NewOpenAIProvider("k", WithOpenAIBaseURL("http://localhost:9999/")).baseURL)
}

func TestClampSpeed(t *testing.T) {
	assert.Equal(t, 1.0, clampSpeed(0))
	assert.Equal(t, 1.0, clampSpeed(-2))
	assert.Equal(t, 0.25, clampSpeed(0.1))
	assert.Equal(t, 4.0, clampSpeed(9.9))
	assert.Equal(t, 1.5, clampSpeed(1.5))
}
