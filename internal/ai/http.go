package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBytes bounds how much of a provider reply is read
const maxResponseBytes = 4 << 20

type jsonResponse struct {
	status int
	body   []byte
}

func (r jsonResponse) ok() bool {
	return r.status >= 200 && r.status < 300
}

// postJSON sends payload and returns the raw reply. Only transport failures are errors.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) (jsonResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return jsonResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return jsonResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return jsonResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return jsonResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	return jsonResponse{status: resp.StatusCode, body: data}, nil
}

// errorMessage extracts a human readable message from an error envelope, or falls back to the body
func errorMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			return envelope.Message
		case envelope.Detail != "":
			return envelope.Detail
		}
		switch e := envelope.Error.(type) {
		case string:
			if e != "" {
				return e
			}
		case map[string]any:
			if msg, ok := e["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return string(bytes.TrimSpace(body))
}
