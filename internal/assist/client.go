package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type logger interface {
	Printf(format string, v ...interface{})
}

// HTTPClient implementa Transport contra el endpoint HTTP del asistente.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger
}

// NewHTTPClient construye un cliente apuntando al endpoint de respuestas.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, log any) *HTTPClient {
	l, _ := log.(logger)
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  l,
	}
}

// Send despacha exactamente un POST y traduce la respuesta o su fallo.
func (c *HTTPClient) Send(ctx context.Context, payload Payload) (Reply, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return Reply{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/respond", bytes.NewReader(bodyBytes))
	if err != nil {
		return Reply{}, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Printf("assistant error status %d: %s", resp.StatusCode, string(respBody))
		}
		return Reply{}, fmt.Errorf("assistant http error: status=%d", resp.StatusCode)
	}

	var ar assistantResponse
	if err := json.Unmarshal(respBody, &ar); err != nil {
		return Reply{}, fmt.Errorf("unmarshal response: %w", err)
	}

	// reply puede venir vacío; el orquestador decide el texto de relleno.
	return Reply{Text: ar.Reply, Flagged: ar.Flagged}, nil
}

type assistantResponse struct {
	Reply   string `json:"reply"`
	Flagged bool   `json:"flagged"`
}
