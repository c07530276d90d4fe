package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ankify/ankify-api/internal/config"
	"github.com/ankify/ankify-api/internal/redact"
)

// MinTranscriptLength is the shortest transcript, in characters after
// trimming, worth generating flashcards from.
const MinTranscriptLength = 50

const (
	transcriptPath = "/api/v2/youtube/transcript"
	maxErrorBody   = 4 << 10
	maxBody        = 16 << 20
)

// Client fetches transcripts over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the client's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a transcript client from cfg.
func New(cfg config.TranscriptConfig, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errMissingAPIKey
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errMissingBaseURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = client.logger.With("component", "transcript_client")
	return client, nil
}

// Fetch returns the transcript of the video at videoURL as one
// space-joined string.
func (c *Client) Fetch(ctx context.Context, videoURL string) (string, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return "", errMissingVideoURL
	}

	endpoint, err := url.Parse(c.baseURL + transcriptPath)
	if err != nil {
		return "", fmt.Errorf("parse transcript url: %w", err)
	}
	params := url.Values{}
	params.Set("video_url", videoURL)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.InfoContext(ctx, "fetching transcript", "video_url", videoURL)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w (latency=%v)", ErrTimeout, latency)
		}
		c.logger.ErrorContext(ctx, "transcript request failed", "error", redact.Error(err))
		return "", fmt.Errorf("%w: execute request (latency=%v): %v", ErrUpstream, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if isTimeout(err) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}

	transcript, err := decode(body)
	if err != nil {
		c.logger.WarnContext(ctx, "unexpected transcript response",
			"error", err,
			"body_prefix", redact.String(prefix(body, 200)))
		return "", err
	}

	trimmed := strings.TrimSpace(transcript)
	if trimmed == "" {
		return "", ErrNoSpeech
	}
	if utf8.RuneCountInString(trimmed) < MinTranscriptLength {
		return "", ErrTooLittleSpeech
	}

	c.logger.InfoContext(ctx, "transcript fetched",
		"length", len(transcript),
		"latency", latency)
	return transcript, nil
}

// statusError maps a non-2xx response onto a sentinel.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return fmt.Errorf("%w: %s", ErrUpstream, payload.Message)
		}
		if payload.Error != "" {
			return fmt.Errorf("%w: %s", ErrUpstream, payload.Error)
		}
	}
	return fmt.Errorf("%w: API error (%d)", ErrUpstream, resp.StatusCode)
}

type segment struct {
	Text       string `json:"text"`
	Transcript string `json:"transcript"`
}

// decode accepts the response shapes the service is known to return:
// {"transcript":[{"text":...}]}, {"text":"..."}, a bare array of segments,
// a JSON string, or a plain-text body.
func decode(body []byte) (string, error) {
	trimmed := strings.TrimSpace(string(body))
	if !json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	switch {
	case strings.HasPrefix(trimmed, "{"):
		var obj struct {
			Transcript json.RawMessage `json:"transcript"`
			Text       string          `json:"text"`
		}
		if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
		var segments []segment
		if len(obj.Transcript) > 0 && json.Unmarshal(obj.Transcript, &segments) == nil {
			return joinSegments(segments, false), nil
		}
		if obj.Text != "" {
			return obj.Text, nil
		}
	case strings.HasPrefix(trimmed, "["):
		var segments []segment
		if err := json.Unmarshal([]byte(trimmed), &segments); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
		if len(segments) > 0 {
			return joinSegments(segments, true), nil
		}
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
		return s, nil
	}

	return "", ErrUnexpectedFormat
}

// joinSegments trims each segment's text, drops blanks and joins the rest
// with single spaces. allowTranscriptField accepts "transcript" as an
// alternative to "text".
func joinSegments(segments []segment, allowTranscriptField bool) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		text := s.Text
		if text == "" && allowTranscriptField {
			text = s.Transcript
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func prefix(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
