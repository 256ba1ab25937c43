// Package drive is a minimal REST client for the document vault's object
// storage. It uploads a file, grants public read access, and returns the
// shareable link.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const maxResponseSizeBytes = 1 << 20

type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true" default:"https://www.googleapis.com"`
	AccessToken string        `envconfig:"ACCESS_TOKEN" split_words:"true" required:"true"`
	FolderID    string        `envconfig:"FOLDER_ID" split_words:"true" required:"true"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

type Client struct {
	baseURL    string
	token      string
	folderID   string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("drive base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid drive base url: %w", err)
	}
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" {
		return nil, errors.New("drive access token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		token:      token,
		folderID:   strings.TrimSpace(cfg.FolderID),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Upload stores the file, makes it publicly readable, and returns the
// public view link.
func (c *Client) Upload(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	id, err := c.create(ctx, name, contentType, content)
	if err != nil {
		return "", err
	}
	if err := c.allowPublicRead(ctx, id); err != nil {
		return "", err
	}
	return c.publicLink(ctx, id)
}

func (c *Client) create(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	metadata := map[string]any{"name": name, "mimeType": contentType}
	if c.folderID != "" {
		metadata["parents"] = []string{c.folderID}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("marshal file metadata: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := mw.CreatePart(metaHeader)
	if err != nil {
		return "", fmt.Errorf("create metadata part: %w", err)
	}
	if _, err := metaPart.Write(metaJSON); err != nil {
		return "", fmt.Errorf("write metadata part: %w", err)
	}

	mediaHeader := textproto.MIMEHeader{}
	mediaHeader.Set("Content-Type", contentType)
	mediaPart, err := mw.CreatePart(mediaHeader)
	if err != nil {
		return "", fmt.Errorf("create media part: %w", err)
	}
	if _, err := io.Copy(mediaPart, content); err != nil {
		return "", fmt.Errorf("write media part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	uploadURL := c.baseURL + "/upload/drive/v3/files?uploadType=multipart&fields=id"
	raw, err := c.do(ctx, http.MethodPost, uploadURL, "multipart/related; boundary="+mw.Boundary(), &body)
	if err != nil {
		return "", err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if created.ID == "" {
		return "", errors.New("upload returned no file id")
	}
	return created.ID, nil
}

func (c *Client) allowPublicRead(ctx context.Context, fileID string) error {
	payload := []byte(`{"role":"reader","type":"anyone"}`)
	permissionsURL := fmt.Sprintf("%s/drive/v3/files/%s/permissions", c.baseURL, url.PathEscape(fileID))
	_, err := c.do(ctx, http.MethodPost, permissionsURL, "application/json", bytes.NewReader(payload))
	return err
}

func (c *Client) publicLink(ctx context.Context, fileID string) (string, error) {
	fileURL := fmt.Sprintf("%s/drive/v3/files/%s?fields=webViewLink", c.baseURL, url.PathEscape(fileID))
	raw, err := c.do(ctx, http.MethodGet, fileURL, "", nil)
	if err != nil {
		return "", err
	}

	var file struct {
		WebViewLink string `json:"webViewLink"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return "", fmt.Errorf("decode file response: %w", err)
	}
	if file.WebViewLink == "" {
		return "", errors.New("file has no public link")
	}
	return file.WebViewLink, nil
}

func (c *Client) do(ctx context.Context, method, rawURL, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("build drive request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute drive request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read drive response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("drive http status=%d body=%s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
