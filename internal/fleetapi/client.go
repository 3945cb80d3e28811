// Package fleetapi is a typed client for the bus configuration API served by
// this module. The editor uses it when it submits to a remote deployment.
package fleetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
)

// APIError is returned for every non-2xx response. Message is the server's
// message when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ListParams struct {
	Page    int
	PerPage int
	BusType string
	Search  string
}

func (p ListParams) query() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.BusType != "" {
		q.Set("bus_type", p.BusType)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

type ConfigurationPage = response.PaginatedResponse[response.BusConfigurationResponse]

func (c *Client) List(ctx context.Context, params ListParams) (*ConfigurationPage, error) {
	var page ConfigurationPage
	if err := c.do(ctx, http.MethodGet, "/bus-configurations"+params.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Get(ctx context.Context, id string) (*response.BusConfigurationResponse, error) {
	var cfg response.BusConfigurationResponse
	if err := c.do(ctx, http.MethodGet, "/bus-configurations/"+url.PathEscape(id), nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) Create(ctx context.Context, req *request.BusConfigurationRequest) (*response.BusConfigurationResponse, error) {
	var cfg response.BusConfigurationResponse
	if err := c.do(ctx, http.MethodPost, "/bus-configurations", req, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) Update(ctx context.Context, id string, req *request.BusConfigurationUpdateRequest) (*response.BusConfigurationResponse, error) {
	var cfg response.BusConfigurationResponse
	if err := c.do(ctx, http.MethodPatch, "/bus-configurations/"+url.PathEscape(id), req, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bus-configurations/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Validate(ctx context.Context, req *request.BusConfigurationRequest) (*response.ConfigurationValidationResponse, error) {
	var res response.ConfigurationValidationResponse
	if err := c.do(ctx, http.MethodPost, "/bus-configurations/validate", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Clone(ctx context.Context, id, name string) (*response.BusConfigurationResponse, error) {
	var cfg response.BusConfigurationResponse
	body := request.CloneConfigurationRequest{Name: name}
	if err := c.do(ctx, http.MethodPost, "/bus-configurations/"+url.PathEscape(id)+"/clone", body, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envelope is the server's response wrapper. Data is decoded lazily into the
// caller's type.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
		}
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}
