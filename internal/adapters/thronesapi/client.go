package thronesapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
	"github.com/baditaflorin/go_thrones_audit/internal/ports"
)

// Default client configuration
const (
	DefaultBaseURL = "https://thronesapi.com/api/v2"
	DefaultTimeout = 10 * time.Second

	charactersPath = "/Characters"

	// maxRedirects bounds the redirects followed by a GET.
	maxRedirects = 30
)

// ErrUnexpectedStatus is wrapped by StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// StatusError reports a non-200 response where a body was expected.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %v %d", e.Method, e.URL, ErrUnexpectedStatus, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Config holds configuration for the catalog client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}
	return nil
}

// Client talks to the Thrones character catalog over HTTP.
type Client struct {
	config Config
	http   *fasthttp.Client
	logger ports.Logger
}

var _ ports.CharacterSource = (*Client)(nil)

// NewClient creates a catalog client. A nil httpClient selects a default fasthttp.Client.
func NewClient(config Config, logger ports.Logger, httpClient *fasthttp.Client) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "go_thrones_audit",
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: 30 * time.Second,
		}
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		http:   httpClient,
		logger: logger,
	}, nil
}

// Status issues a GET for path and returns the response status code.
func (c *Client) Status(ctx context.Context, path string) (int, error) {
	code, _, err := c.do(ctx, fasthttp.MethodGet, c.config.BaseURL+path, nil, false)
	return code, err
}

// ListCharacters fetches every character in the catalog.
func (c *Client) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	var characters []domain.Character
	if err := c.getJSON(ctx, c.config.BaseURL+charactersPath, &characters); err != nil {
		return nil, err
	}
	return characters, nil
}

// GetCharacter fetches one character by ID.
func (c *Client) GetCharacter(ctx context.Context, id int) (domain.Character, error) {
	var character domain.Character
	url := c.config.BaseURL + charactersPath + "/" + strconv.Itoa(id)
	if err := c.getJSON(ctx, url, &character); err != nil {
		return domain.Character{}, err
	}
	return character, nil
}

// CreateCharacter POSTs character as JSON, or an empty body when character is
// nil. Any response status is returned without error.
func (c *Client) CreateCharacter(ctx context.Context, character *domain.Character) (int, error) {
	var body []byte
	if character != nil {
		var err error
		body, err = json.Marshal(character)
		if err != nil {
			return 0, fmt.Errorf("failed to encode character: %w", err)
		}
	}
	code, _, err := c.do(ctx, fasthttp.MethodPost, c.config.BaseURL+charactersPath, body, false)
	return code, err
}

// ProbeURL checks url with HEAD and, when that returns 200, follows up with a GET.
func (c *Client) ProbeURL(ctx context.Context, url string) (ports.ImageProbe, error) {
	probe := ports.ImageProbe{URL: url}

	head, _, err := c.do(ctx, fasthttp.MethodHead, url, nil, false)
	if err != nil {
		return probe, err
	}
	probe.HeadStatus = head
	if head != fasthttp.StatusOK {
		return probe, nil
	}
	probe.Exists = true

	get, _, err := c.do(ctx, fasthttp.MethodGet, url, nil, false)
	if err != nil {
		return probe, err
	}
	probe.GetStatus = get
	return probe, nil
}

func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	code, body, err := c.do(ctx, fasthttp.MethodGet, url, nil, true)
	if err != nil {
		return err
	}
	if code != fasthttp.StatusOK {
		return &StatusError{Method: fasthttp.MethodGet, URL: url, Code: code}
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

// do performs a request. The body is copied out only when wantBody is set.
func (c *Client) do(ctx context.Context, method, url string, body []byte, wantBody bool) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	timeout := c.config.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if method == fasthttp.MethodPost {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}
	if method == fasthttp.MethodHead {
		resp.SkipBody = true
	}

	start := time.Now()
	var err error
	if method == fasthttp.MethodGet {
		// GETs follow redirects and report the final status; HEAD and POST do not.
		req.SetTimeout(timeout)
		err = c.http.DoRedirects(req, resp, maxRedirects)
	} else {
		err = c.http.DoTimeout(req, resp, timeout)
	}
	if err != nil {
		c.logger.Error("Request failed", "method", method, "url", url, "error", err)
		return 0, nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	code := resp.StatusCode()
	c.logger.Debug("Request processed",
		"method", method,
		"url", url,
		"status", code,
		"duration", time.Since(start),
	)

	var out []byte
	if wantBody {
		out = append([]byte(nil), resp.Body()...)
	}
	return code, out, nil
}
