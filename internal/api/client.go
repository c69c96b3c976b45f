// Package api is the HTTP client for the paper generation service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds the service endpoints and timeouts.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8000/api".
	BaseURL string

	// DirectLoginURL is tried when a login through BaseURL times out.
	DirectLoginURL string

	// Timeout bounds preview, export and attempt calls. Default: 60s.
	Timeout time.Duration

	// PresetTimeout bounds preset loading. Default: 10s.
	PresetTimeout time.Duration

	// LoginTimeout bounds each login attempt. Default: 10s.
	LoginTimeout time.Duration

	// Token is sent as a bearer token when set.
	Token string
}

// DefaultConfig returns a Config pointing at a local service.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://localhost:8000/api",
		DirectLoginURL: "http://localhost:8000/api/users/login",
		Timeout:        60 * time.Second,
		PresetTimeout:  10 * time.Second,
		LoginTimeout:   10 * time.Second,
	}
}

// Client talks to the generation service.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client. Zero fields of cfg take their defaults.
func New(cfg Config, opts ...Option) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.PresetTimeout <= 0 {
		cfg.PresetTimeout = def.PresetTimeout
	}
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = def.LoginTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{cfg: cfg, http: &http.Client{}, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token for later requests.
func (c *Client) SetToken(token string) {
	c.cfg.Token = token
}

func (c *Client) url(path string) string {
	return c.cfg.BaseURL + path
}

// send performs one request and returns the 2xx body.
func (c *Client) send(ctx context.Context, method, url string, in any, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		if isTimeout(err) {
			return nil, fmt.Errorf("%s %s: %w", method, url, ErrTimeout)
		}
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	data, err := readBody(resp)
	c.log.Debug("request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)
	return data, err
}

// call sends a JSON request, validates the response against schema and
// decodes it into out.
func (c *Client) call(ctx context.Context, method, path string, in any, timeout time.Duration, schema string, out any) error {
	data, err := c.send(ctx, method, c.url(path), in, timeout)
	if err != nil {
		return err
	}
	return decodeValidated(data, schema, out)
}

func decodeValidated(data []byte, schema string, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return invalidResponse(data, msgEmptyResponse)
	}
	if schema != "" {
		if err := validate(schema, data); err != nil {
			return err
		}
	}
	return decodeJSON(data, out)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
