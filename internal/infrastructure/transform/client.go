// Package transform is the HTTP client for the image transformation backend.
package transform

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/logging"
)

const (
	transformPath    = "/v1/transform"
	maxResponseBytes = 64 << 20
	maxErrorBody     = 4 << 10
)

// Options configures a Client.
type Options struct {
	BaseURL            string
	APIKey             string
	Timeout            time.Duration
	RequestsPerMinute  int // 0 disables the limiter
	Burst              int
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
	OutputDir          string
}

// StatusError is returned for non-2xx backend responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// clientFault reports errors the backend will answer the same way on retry.
// They do not count against the breaker.
func (e *StatusError) clientFault() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

type transformRequest struct {
	Prompt   string `json:"prompt"`
	Image    string `json:"image,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type transformResponse struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

var _ port.ImageTransformer = (*Client)(nil)

// Client implements port.ImageTransformer.
type Client struct {
	opts    Options
	http    *http.Client
	fs      afero.Fs
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[*port.TransformResult]
}

// NewClient creates a client. The context supplies the logger used for
// breaker state changes.
func NewClient(ctx context.Context, fs afero.Fs, opts Options) *Client {
	log := logging.FromContext(ctx).With().Str("component", "transform").Logger()

	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	if opts.BreakerMaxFailures == 0 {
		opts.BreakerMaxFailures = 3
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}

	maxFailures := opts.BreakerMaxFailures
	breaker := gobreaker.NewCircuitBreaker[*port.TransformResult](gobreaker.Settings{
		Name:        "transform:" + opts.BaseURL,
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
		IsSuccessful: func(err error) bool {
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.clientFault()
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Client{
		opts: opts,
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		fs:      fs,
		limiter: rate.NewLimiter(limit, opts.Burst),
		breaker: breaker,
	}
}

// Transform sends the image and prompt and writes the returned image to
// OutputDir/<record id>.<ext>.
func (c *Client) Transform(ctx context.Context, req port.TransformRequest) (*port.TransformResult, error) {
	log := logging.FromContext(ctx)

	body, err := c.buildRequest(req)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result, err := c.breaker.Execute(func() (*port.TransformResult, error) {
		return c.do(ctx, req.RecordID, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("backend %s unavailable, circuit open: %w", c.opts.BaseURL, err)
		}
		return nil, err
	}

	log.Info().
		Str("remote_id", result.RemoteID).
		Str("output", result.OutputPath).
		Msg("transformation complete")
	return result, nil
}

// State returns the breaker state for the status line.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) buildRequest(req port.TransformRequest) ([]byte, error) {
	payload := transformRequest{Prompt: req.Prompt}

	ref := req.ImageRef
	switch {
	case ref == "":
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		payload.ImageURL = ref
	default:
		path := strings.TrimPrefix(ref, "file://")
		data, err := afero.ReadFile(c.fs, path)
		if err != nil {
			return nil, fmt.Errorf("read image %s: %w", path, err)
		}
		payload.Image = base64.StdEncoding.EncodeToString(data)
		payload.MimeType = http.DetectContentType(data)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, recordID string, body []byte) (*port.TransformResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+transformPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.opts.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var decoded transformResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Image == "" {
		return nil, errors.New("backend response has no image")
	}

	image, err := base64.StdEncoding.DecodeString(decoded.Image)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	mimeType := decoded.MimeType
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	out, err := c.writeOutput(recordID, decoded.ID, mimeType, image)
	if err != nil {
		return nil, err
	}
	return &port.TransformResult{RemoteID: decoded.ID, OutputPath: out, MimeType: mimeType}, nil
}

func (c *Client) writeOutput(recordID, remoteID, mimeType string, image []byte) (string, error) {
	name := recordID
	if name == "" {
		name = remoteID
	}
	if name == "" {
		name = "output-" + time.Now().UTC().Format("20060102-150405")
	}

	if err := c.fs.MkdirAll(c.opts.OutputDir, 0o750); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(c.opts.OutputDir, filepath.Base(name)+extensionFor(mimeType))
	if err := afero.WriteFile(c.fs, path, image, 0o600); err != nil {
		return "", fmt.Errorf("write output image: %w", err)
	}
	return path, nil
}

func extensionFor(mimeType string) string {
	switch strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]) {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
