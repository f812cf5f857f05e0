package synthesis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type TogetherClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewTogetherClient(apiKey, model string) *TogetherClient {
	return &TogetherClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.together.xyz/v1",
		client:  &http.Client{},
	}
}

// Synthesize requests one 1024x768 image for the prompt and returns its
// base64 payload.
func (c *TogetherClient) Synthesize(ctx context.Context, prompt string) (string, error) {
	payload, _ := json.Marshal(map[string]any{
		"model":           c.model,
		"prompt":          prompt,
		"width":           1024,
		"height":          768,
		"steps":           4,
		"n":               1,
		"response_format": "b64_json",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("together request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &ServiceError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}

	var parsed struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode together response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].B64JSON == "" {
		return "", ErrMalformedResponse
	}
	return parsed.Data[0].B64JSON, nil
}

// errorDetail pulls the upstream error message out of the body when it is
// parsable JSON, otherwise returns the raw body.
func errorDetail(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return string(body)
}
