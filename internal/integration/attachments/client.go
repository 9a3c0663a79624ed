package attachments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"talenthub/internal/common"
)

// Store is the contract the core consumes: blobs go in, an opaque reference
// comes back. The core never inspects file contents.
type Store interface {
	Store(ctx context.Context, candidateID, jobID common.UUID, filename string, blob io.Reader) (string, error)
	Retrieve(ctx context.Context, ref string) ([]byte, error)
}

type HTTPClient struct {
	baseURL     string
	internalKey string
	httpClient  *http.Client
}

func NewClient(baseURL, internalKey string, httpClient *http.Client) *HTTPClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:     trimmed,
		internalKey: strings.TrimSpace(internalKey),
		httpClient:  httpClient,
	}
}

type storeResponse struct {
	Ref string `json:"ref"`
}

func (c *HTTPClient) Store(ctx context.Context, candidateID, jobID common.UUID, filename string, blob io.Reader) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("attachment store is not configured")
	}
	data, err := io.ReadAll(blob)
	if err != nil {
		return "", fmt.Errorf("read attachment: %w", err)
	}
	endpoint := fmt.Sprintf("%s/attachments?candidate_id=%s&job_id=%s&filename=%s",
		c.baseURL, candidateID.String(), jobID.String(), filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.internalKey != "" {
		req.Header.Set("X-Internal-Key", c.internalKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send store request: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read store response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("attachment store error: status %d", resp.StatusCode)
	}
	var parsed storeResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("decode store response: %w", err)
	}
	if strings.TrimSpace(parsed.Ref) == "" {
		return "", fmt.Errorf("attachment store returned empty ref")
	}
	return parsed.Ref, nil
}

func (c *HTTPClient) Retrieve(ctx context.Context, ref string) ([]byte, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("attachment store is not configured")
	}
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("attachment ref is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/attachments/"+ref, nil)
	if err != nil {
		return nil, fmt.Errorf("create retrieve request: %w", err)
	}
	if c.internalKey != "" {
		req.Header.Set("X-Internal-Key", c.internalKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send retrieve request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("attachment store error: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 16<<20))
}
