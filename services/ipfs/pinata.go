package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const pinataBaseURL = "https://api.pinata.cloud"

// PinningService proxies uploads and pin management to a remote IPFS
// pinning provider.
type PinningService interface {
	PinFile(ctx context.Context, filename string, content io.Reader, metadata map[string]string) (*PinResult, error)
	GetMetadata(ctx context.Context, hash string) (*PinnedFile, error)
	ListFiles(ctx context.Context) ([]PinnedFile, error)
	Unpin(ctx context.Context, hash string) error
}

// PinResult is returned after a successful pin.
type PinResult struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// PinnedFile is one row of the provider's pin list.
type PinnedFile struct {
	IpfsHash string                 `json:"ipfs_pin_hash"`
	Size     int64                  `json:"size"`
	DatePin  string                 `json:"date_pinned"`
	Metadata map[string]interface{} `json:"metadata"`
}

// PinataClient implements PinningService against the Pinata REST API.
type PinataClient struct {
	APIKey    string
	APISecret string
	HTTP      *http.Client
	BaseURL   string
	Logger    *zap.Logger
}

// NewPinataClient configures a client with a sane request timeout.
func NewPinataClient(apiKey, apiSecret string, logger *zap.Logger) *PinataClient {
	return &PinataClient{
		APIKey:    apiKey,
		APISecret: apiSecret,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		BaseURL:   pinataBaseURL,
		Logger:    logger,
	}
}

func (c *PinataClient) authorize(req *http.Request) {
	req.Header.Set("pinata_api_key", c.APIKey)
	req.Header.Set("pinata_secret_api_key", c.APISecret)
}

// PinFile uploads a file through pinFileToIPFS.
func (c *PinataClient) PinFile(ctx context.Context, filename string, content io.Reader, metadata map[string]string) (*PinResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}

	if len(metadata) > 0 {
		meta := map[string]interface{}{"name": filename, "keyvalues": metadata}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to encode pin metadata: %w", err)
		}
		if err := writer.WriteField("pinataMetadata", string(metaJSON)); err != nil {
			return nil, fmt.Errorf("failed to write pin metadata: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/pinning/pinFileToIPFS", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinata upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError("pinFileToIPFS", resp)
	}

	var result PinResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode pinata response: %w", err)
	}

	c.Logger.Info("file pinned", zap.String("hash", result.IpfsHash), zap.String("filename", filename))
	return &result, nil
}

// GetMetadata returns pin-list metadata for a single hash, or nil when the
// hash is not pinned.
func (c *PinataClient) GetMetadata(ctx context.Context, hash string) (*PinnedFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/data/pinList?hashContains=%s&status=pinned", c.BaseURL, hash), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinata metadata lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError("pinList", resp)
	}

	var result struct {
		Rows []PinnedFile `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode pinata response: %w", err)
	}
	if len(result.Rows) == 0 {
		return nil, nil
	}
	return &result.Rows[0], nil
}

// ListFiles returns all currently pinned files.
func (c *PinataClient) ListFiles(ctx context.Context) ([]PinnedFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/data/pinList?status=pinned", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinata list failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError("pinList", resp)
	}

	var result struct {
		Rows []PinnedFile `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode pinata response: %w", err)
	}
	return result.Rows, nil
}

// Unpin removes a pin.
func (c *PinataClient) Unpin(ctx context.Context, hash string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/pinning/unpin/"+hash, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("pinata unpin failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.upstreamError("unpin", resp)
	}

	c.Logger.Info("file unpinned", zap.String("hash", hash))
	return nil
}

func (c *PinataClient) upstreamError(op string, resp *http.Response) error {
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("pinata %s returned %d: %s", op, resp.StatusCode, string(detail))
}
