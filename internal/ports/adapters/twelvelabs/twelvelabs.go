// Package twelvelabs is the HTTP adapter for the video analysis service: it
// asks the model-backed analyze endpoint for brand mentions and reads content
// metadata from the index listing.
package twelvelabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrnkim/creator-discovery/internal/ingest"
	"github.com/mrnkim/creator-discovery/internal/types"
)

const requestTimeout = 90 * time.Second

// mentionPrompt asks the analyze model for strictly-shaped JSON. The ingest
// layer still treats the answer as untrusted.
const mentionPrompt = `Detect every brand appearance in this video. Respond with a JSON array of objects with keys: brand, product, start, end, description, location. start and end are seconds from the beginning.`

type Adapter struct {
	key     string
	baseURL string
	indexID string
	client  *http.Client
}

func New(apiKey, baseURL, indexID string, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Adapter{
		key:     apiKey,
		baseURL: normalizeBaseURL(baseURL),
		indexID: indexID,
		client:  &http.Client{Timeout: timeout},
	}
}

// ExtractMentions calls the analyze endpoint for one content item and returns
// the raw, un-normalized mention list.
func (a *Adapter) ExtractMentions(ctx context.Context, contentID string) ([]ingest.RawMention, error) {
	payload := map[string]any{
		"video_id": contentID,
		"prompt":   mentionPrompt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	var resp struct {
		Data string `json:"data"`
	}
	if err := a.do(ctx, http.MethodPost, "/v1.3/analyze", body, &resp); err != nil {
		return nil, err
	}

	raw, err := extractJSONArray(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("analyze response for %s: %w", contentID, err)
	}
	var mentions []ingest.RawMention
	if err := json.Unmarshal([]byte(raw), &mentions); err != nil {
		return nil, fmt.Errorf("decode mentions for %s: %w", contentID, err)
	}
	return mentions, nil
}

// videoItem is the index listing entry shape.
type videoItem struct {
	ID             string `json:"_id"`
	SystemMetadata struct {
		Filename string  `json:"filename"`
		Duration float64 `json:"duration"`
	} `json:"system_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (v videoItem) toRawContent() ingest.RawContent {
	tags := map[string]any{"duration": v.SystemMetadata.Duration}
	for k, val := range v.UserMetadata {
		tags[k] = val
	}
	return ingest.RawContent{ID: v.ID, Name: v.SystemMetadata.Filename, Tags: tags}
}

// ListContent returns metadata for every item in the configured index.
func (a *Adapter) ListContent(ctx context.Context) ([]types.ContentMeta, error) {
	var resp struct {
		Data []videoItem `json:"data"`
	}
	path := fmt.Sprintf("/v1.3/indexes/%s/videos", a.indexID)
	if err := a.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]types.ContentMeta, 0, len(resp.Data))
	for _, v := range resp.Data {
		out = append(out, ingest.NormalizeContent(v.toRawContent()))
	}
	return out, nil
}

// GetContent returns metadata for a single content item.
func (a *Adapter) GetContent(ctx context.Context, contentID string) (types.ContentMeta, error) {
	var item videoItem
	path := fmt.Sprintf("/v1.3/indexes/%s/videos/%s", a.indexID, contentID)
	if err := a.do(ctx, http.MethodGet, path, nil, &item); err != nil {
		return types.ContentMeta{}, err
	}
	if item.ID == "" {
		item.ID = contentID
	}
	return ingest.NormalizeContent(item.toRawContent()), nil
}

func (a *Adapter) do(ctx context.Context, method, path string, body []byte, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, a.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", a.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("twelvelabs %s %s: %s", method, path, redactSecrets(err.Error(), a.key))
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("twelvelabs read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("twelvelabs %s %s: status %d: %s",
			method, path, resp.StatusCode, redactSecrets(truncate(string(rb), 512), a.key))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rb, out); err != nil {
		return fmt.Errorf("twelvelabs decode response: %w", err)
	}
	return nil
}

// extractJSONArray pulls the first JSON array out of a model answer that may
// be fenced or wrapped in prose.
func extractJSONArray(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty analyze answer")
	}
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON array in analyze answer")
	}
	return s[start : end+1], nil
}

func redactSecrets(s, apiKey string) string {
	if apiKey != "" {
		s = strings.ReplaceAll(s, apiKey, "[REDACTED]")
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
