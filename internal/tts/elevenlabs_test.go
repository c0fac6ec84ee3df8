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

func TestElevenLabsProvider_Synthesize(t *testing.T) {
	t.Run("successful synthesis with default voice", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, ElevenLabsTTSEndpoint+"/"+DefaultElevenLabsVoice, r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
			assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("fake-mp3-audio"))
		}))
		defer server.Close()

		provider := NewElevenLabsProvider("test-key", WithElevenLabsBaseURL(server.URL))

		audio, err := provider.Synthesize(context.Background(), "Hello world", SynthesizeOptions{})
		require.NoError(t, err)
		defer audio.Close()

		data, err := io.ReadAll(audio)
		require.NoError(t, err)
		assert.Equal(t, "fake-mp3-audio", string(data))

		assert.Equal(t, "Hello world", gotBody["text"])
		assert.Equal(t, "eleven_monolingual_v1", gotBody["model_id"])

		settings, ok := gotBody["voice_settings"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 0.5, settings["stability"])
		assert.Equal(t, 0.5, settings["similarity_boost"])
	})

	t.Run("custom voice ID is used in path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, ElevenLabsTTSEndpoint+"/custom-voice", r.URL.Path)
			_, _ = w.Write([]byte("audio"))
		}))
		defer server.Close()

		provider := NewElevenLabsProvider("test-key", WithElevenLabsBaseURL(server.URL))

		audio, err := provider.Synthesize(context.Background(), "Hello", SynthesizeOptions{Voice: "custom-voice"})
		require.NoError(t, err)
		_ = audio.Close()
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		provider := NewElevenLabsProvider("test-key")

		_, err := provider.Synthesize(context.Background(), "", SynthesizeOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "text cannot be empty")
	})

	t.Run("API error surfaces status and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "invalid api key"}`))
		}))
		defer server.Close()

		provider := NewElevenLabsProvider("bad-key", WithElevenLabsBaseURL(server.URL))

		_, err := provider.Synthesize(context.Background(), "Hello", SynthesizeOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
		assert.Contains(t, err.Error(), "invalid api key")
	})
}

func TestElevenLabsProvider_ListVoices(t *testing.T) {
	t.Run("maps voice metadata", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, ElevenLabsVoicesEndpoint, r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"voices": [
					{
						"voice_id": "21m00Tcm4TlvDq8ikWAM",
						"name": "Rachel",
						"category": "premade",
						"labels": {"language": "en", "gender": "female"},
						"description": "Calm narration voice"
					}
				]
			}`))
		}))
		defer server.Close()

		provider := NewElevenLabsProvider("test-key", WithElevenLabsBaseURL(server.URL))

		voices, err := provider.ListVoices(context.Background())
		require.NoError(t, err)
		require.Len(t, voices, 1)

		assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", voices[0].ID)
		assert.Equal(t, "Rachel", voices[0].Name)
		assert.Equal(t, "en", voices[0].Language)
		assert.Equal(t, "female", voices[0].Gender)
	})

	t.Run("API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		provider := NewElevenLabsProvider("test-key", WithElevenLabsBaseURL(server.URL))

		_, err := provider.ListVoices(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})
}

func TestElevenLabsProvider_IsAvailable(t *testing.T) {
	assert.True(t, NewElevenLabsProvider("test-key").IsAvailable(context.Background()))
	assert.False(t, NewElevenLabsProvider("").IsAvailable(context.Background()))
}
