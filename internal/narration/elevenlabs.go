// README: ElevenLabs text-to-speech client returning complete MP3 payloads.
package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OutputFormat is the single audio profile the service produces.
const OutputFormat = "mp3_44100_128"

// SynthesisError is returned when the speech backend call fails or yields no audio.
type SynthesisError struct {
	Reason string
	Status int
	Err    error
}

func (e *SynthesisError) Error() string {
	msg := "synthesis failed: " + e.Reason
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// Client wraps the ElevenLabs text-to-speech REST API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	voiceID string
	modelID string
}

// NewClient builds an ElevenLabs client. baseURL is overridable for tests.
func NewClient(baseURL, apiKey, voiceID, modelID string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		voiceID: voiceID,
		modelID: modelID,
	}
}

type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`
}

// Synthesize converts text to MP3 bytes. One outbound request per call;
// the full payload is buffered before returning.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SynthesisError{Reason: "empty text"}
	}

	body, err := json.Marshal(ttsRequest{Text: text, ModelID: c.modelID})
	if err != nil {
		return nil, &SynthesisError{Reason: "encode request", Err: err}
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		c.baseURL, url.PathEscape(c.voiceID), OutputFormat)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &SynthesisError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &SynthesisError{Reason: "speech backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Error bodies are small JSON blobs; keep a bounded excerpt for the log line.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, &SynthesisError{
			Reason: fmt.Sprintf("speech backend error: %s", strings.TrimSpace(string(excerpt))),
			Status: resp.StatusCode,
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{Reason: "read audio payload", Err: err}
	}
	if len(audio) == 0 {
		return nil, &SynthesisError{Reason: "no audio returned"}
	}
	return audio, nil
}
