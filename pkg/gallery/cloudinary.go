package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
)

// CloudinaryConfig holds the Admin API credentials.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string

	Timeout    time.Duration
	RetryCount int
}

// CloudinaryProvider queries the Cloudinary search API.
type CloudinaryProvider struct {
	cfg    CloudinaryConfig
	client *httpclient.Client
}

type searchRequest struct {
	Expression string              `json:"expression"`
	SortBy     []map[string]string `json:"sort_by"`
	MaxResults int                 `json:"max_results"`
}

type searchResponse struct {
	Resources []Image `json:"resources"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewCloudinaryProvider builds a provider with a retrying HTTP client.
func NewCloudinaryProvider(cfg CloudinaryConfig) *CloudinaryProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.cloudinary.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	}

	backoff := heimdall.NewConstantBackoff(200*time.Millisecond, 5*time.Millisecond)
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(cfg.Timeout),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(cfg.RetryCount),
	)

	return &CloudinaryProvider{cfg: cfg, client: client}
}

func (p *CloudinaryProvider) endpoint(path string) string {
	return fmt.Sprintf("%s/v1_1/%s/%s", strings.TrimRight(p.cfg.BaseURL, "/"), p.cfg.CloudName, path)
}

// call sends an authenticated Admin API request and returns the raw body of a successful response.
func (p *CloudinaryProvider) call(ctx context.Context, op, method, url string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(p.cfg.APIKey, p.cfg.APISecret)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary %s failed: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary %s: reading response: %w", op, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("cloudinary %s: %s: %s", op, resp.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("cloudinary %s: %s", op, resp.Status)
	}
	return body, nil
}

// ListImages returns up to max images in folder ordered by upload time, newest first.
func (p *CloudinaryProvider) ListImages(ctx context.Context, folder string, max int) ([]Image, error) {
	payload, err := json.Marshal(searchRequest{
		Expression: "folder:" + folder,
		SortBy:     []map[string]string{{"created_at": "desc"}},
		MaxResults: max,
	})
	if err != nil {
		return nil, err
	}

	body, err := p.call(ctx, "search", http.MethodPost, p.endpoint("resources/search"), payload)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("cloudinary search: decoding response: %w", err)
	}
	if max > 0 && len(result.Resources) > max {
		result.Resources = result.Resources[:max]
	}
	return result.Resources, nil
}

// RootFolders lists the top-level folders of the cloud.
func (p *CloudinaryProvider) RootFolders(ctx context.Context) ([]Folder, error) {
	body, err := p.call(ctx, "folders", http.MethodGet, p.endpoint("folders"), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Folders []Folder `json:"folders"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("cloudinary folders: decoding response: %w", err)
	}
	return result.Folders, nil
}

// UploadedIDs returns the public ids of up to max uploaded images, regardless of folder.
func (p *CloudinaryProvider) UploadedIDs(ctx context.Context, max int) ([]string, error) {
	url := p.endpoint("resources/image/upload")
	if max > 0 {
		url += "?max_results=" + strconv.Itoa(max)
	}
	body, err := p.call(ctx, "resources", http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("cloudinary resources: decoding response: %w", err)
	}
	ids := make([]string, 0, len(result.Resources))
	for _, r := range result.Resources {
		ids = append(ids, r.PublicID)
	}
	return ids, nil
}

var (
	_ Provider  = (*CloudinaryProvider)(nil)
	_ Inspector = (*CloudinaryProvider)(nil)
)
