package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned when the server reports that no order exists for
// the given id.
var ErrNotFound = errors.New("order not found")

// Order mirrors the wire format of the order endpoints.
type Order struct {
	ID           uint      `json:"id"`
	CustomerName string    `json:"customerName"`
	Product      string    `json:"product"`
	ProductImage string    `json:"productImage,omitempty"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateOrderRequest is the POST /orders payload.
type CreateOrderRequest struct {
	CustomerName string   `json:"customerName"`
	Product      string   `json:"product"`
	ProductImage string   `json:"productImage,omitempty"`
	Quantity     *int     `json:"quantity"`
	Price        *float64 `json:"price"`
}

// UpdateOrderRequest is the PUT /orders/:id payload; nil fields are omitted
// and keep their stored values.
type UpdateOrderRequest struct {
	CustomerName *string  `json:"customerName,omitempty"`
	Product      *string  `json:"product,omitempty"`
	ProductImage *string  `json:"productImage,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	Price        *float64 `json:"price,omitempty"`
}

// DeleteOrderResponse is the DELETE /orders/:id response body.
type DeleteOrderResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Get(ctx context.Context, id uint) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Create(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Update(ctx context.Context, id uint, req *UpdateOrderRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Delete(ctx context.Context, id uint) (*DeleteOrderResponse, error) {
	var resp DeleteOrderResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		var apiErr errorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server rejected request: %s", apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if dest != nil {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
