// Package client provides the HTTP client for PokeAPI style REST APIs,
// a generic resource client on top of it and the classification of
// transport and server failures into typed errors.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for API client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokedex_requests_total",
		Help: "Total API requests by resource and status",
	}, []string{"resource", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pokedex_request_duration_seconds",
		Help:    "API request duration in seconds by resource",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"resource"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokedex_errors_total",
		Help: "Total API errors by class",
	}, []string{"class"})

	pagesFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokedex_pages_fetched_total",
		Help: "Total collection pages fetched by resource",
	}, []string{"resource"})
)

// Default values used by DefaultConfig.
const (
	DefaultTimeout  = 1 * time.Second
	DefaultPageSize = 20
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is prepended to every resource path, e.g. "https://pokeapi.co/api/v2".
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Timeout bounds a single request including reading the body.
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`

	// User-Agent header (REQUIRED)
	UserAgent string `mapstructure:"user_agent" validate:"required"`

	// Sent as X-API-Client-Name and X-API-Client-Version when set.
	ClientName    string `mapstructure:"client_name"`
	ClientVersion string `mapstructure:"client_version"`

	// PageSize is used by GetAll and by GetMany when no limit is given.
	PageSize int `mapstructure:"page_size" validate:"gte=0,lte=1000"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig(baseURL, userAgent string) Config {
	return Config{
		BaseURL:   baseURL,
		Timeout:   DefaultTimeout,
		UserAgent: userAgent,
		PageSize:  DefaultPageSize,
	}
}

// Response is a successful (2xx) response with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client performs GET requests against the configured base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	config     Config
	logger     zerolog.Logger
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	logger := log.With().Str("component", "pokedex-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		config:  cfg,
		logger:  logger,
	}, nil
}

// Get performs a GET request for path relative to the base URL.
//
// A 2xx response is returned with its body. A response with status >= 400
// yields a *StatusError and a failed round trip a *TransportError; neither
// is classified here.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.config.ClientName != "" {
		req.Header.Set("X-API-Client-Name", c.config.ClientName)
	}
	if c.config.ClientVersion != "" {
		req.Header.Set("X-API-Client-Version", c.config.ClientVersion)
	}

	c.logger.Debug().
		Str("url", endpoint).
		Str("request_id", requestID).
		Msg("Executing API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode >= 400 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        endpoint,
			Header:     resp.Header,
			Body:       body,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report mapstructure names so messages match config keys
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

func validateConfig(cfg Config) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("client: invalid config: %w", err)
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, e.Field()+" "+formatValidationError(e))
	}
	return fmt.Errorf("client: invalid config: %s", strings.Join(messages, "; "))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	default:
		return "is invalid"
	}
}

func statusLabel(code int) string {
	return strconv.Itoa(code)
}
