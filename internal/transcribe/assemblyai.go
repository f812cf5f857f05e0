package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type AssemblyAIClient struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
}

func NewAssemblyAIClient(apiKey string) *AssemblyAIClient {
	return &AssemblyAIClient{
		apiKey:       apiKey,
		baseURL:      "https://api.assemblyai.com/v2",
		client:       &http.Client{},
		pollInterval: time.Second,
	}
}

// Transcribe uploads the audio, creates a transcript job and polls it until
// the service reports completed or error.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio AudioPayload) (string, error) {
	if len(audio.Data) == 0 {
		return "", ErrEmptyAudio
	}

	audioURL, err := c.upload(ctx, audio)
	if err != nil {
		return "", err
	}

	id, err := c.createTranscript(ctx, audioURL)
	if err != nil {
		return "", err
	}

	return c.waitForTranscript(ctx, id)
}

func (c *AssemblyAIClient) upload(ctx context.Context, audio AudioPayload) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", bytes.NewReader(audio.Data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assemblyai upload: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{Detail: fmt.Sprintf("upload status %d: %s", resp.StatusCode, body)}
	}

	var parsed struct {
		UploadURL string `json:"upload_url"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return parsed.UploadURL, nil
}

func (c *AssemblyAIClient) createTranscript(ctx context.Context, audioURL string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"audio_url": audioURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcript", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcript: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{Detail: fmt.Sprintf("transcript status %d: %s", resp.StatusCode, body)}
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode transcript response: %w", err)
	}
	return parsed.ID, nil
}

func (c *AssemblyAIClient) waitForTranscript(ctx context.Context, id string) (string, error) {
	for {
		status, text, detail, err := c.pollTranscript(ctx, id)
		if err != nil {
			return "", err
		}

		switch status {
		case "completed":
			if text == "" {
				return NoTranscription, nil
			}
			return text, nil
		case "error":
			return "", &ServiceError{Detail: detail}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *AssemblyAIClient) pollTranscript(ctx context.Context, id string) (status, text, detail string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transcript/"+id, nil)
	if err != nil {
		return "", "", "", err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", "", fmt.Errorf("assemblyai poll: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", "", "", &ServiceError{Detail: fmt.Sprintf("poll status %d: %s", resp.StatusCode, body)}
	}

	var parsed struct {
		Status string `json:"status"`
		Text   string `json:"text"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", "", "", fmt.Errorf("decode poll response: %w", err)
	}
	return parsed.Status, parsed.Text, parsed.Error, nil
}
