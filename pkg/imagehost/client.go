package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client uploads images to a hosted image service and returns the persistent
// URL. The service never sees the order API; the returned URL is stored
// verbatim as the order's productImage field.
type Client struct {
	UploadURL    string
	UploadPreset string
	HTTPClient   *http.Client
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(uploadURL, uploadPreset string) *Client {
	return &Client{
		UploadURL:    uploadURL,
		UploadPreset: uploadPreset,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Upload sends the file to the hosted service and returns its URL.
func (c *Client) Upload(ctx context.Context, filename string, fileBytes []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(fileBytes); err != nil {
		return "", fmt.Errorf("failed to write file payload: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.UploadPreset); err != nil {
		return "", fmt.Errorf("failed to write upload preset: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies are not always JSON; a proxy may answer with HTML.
		var rejection uploadResponse
		if err := json.Unmarshal(body, &rejection); err == nil && rejection.Error.Message != "" {
			return "", fmt.Errorf("upload rejected: %s", rejection.Error.Message)
		}
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	var response uploadResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	url := response.SecureURL
	if url == "" {
		url = response.URL
	}
	if url == "" {
		return "", fmt.Errorf("upload response contained no URL")
	}
	return url, nil
}
