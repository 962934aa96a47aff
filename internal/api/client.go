package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TokenSource provides the bearer token of the current session, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the typed REST client for the hotel booking backend. All calls
// are context-bound; mutating calls carry a fresh X-Request-ID so the backend
// can correlate retries.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Tokens  TokenSource
}

// New builds a client against the given base URL.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger, tokens TokenSource) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    httpClient,
		Logger:  logger,
		Tracer:  otel.Tracer("stayfront/api"),
		Tokens:  tokens,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	ctx, span := c.tracer().Start(ctx, op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: %s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	if c.Tokens != nil {
		if token, ok := c.Tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logError(op, err)
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		backendErr := &BackendError{Op: op, Status: resp.StatusCode, Message: decodeMessage(resp.Body)}
		span.SetStatus(codes.Error, backendErr.Message)
		c.logError(op, backendErr)
		return backendErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logError(op, err)
			return fmt.Errorf("api: %s: decode response: %w", op, err)
		}
	}
	return nil
}

// decodeMessage pulls the backend's {"message": ...} out of an error body.
// Anything unparseable collapses to an empty message and the caller's
// fallback text.
func decodeMessage(body io.Reader) string {
	snippet, err := io.ReadAll(io.LimitReader(body, 1024))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(snippet, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func (c *Client) tracer() trace.Tracer {
	if c.Tracer == nil {
		c.Tracer = otel.Tracer("stayfront/api")
	}
	return c.Tracer
}

func (c *Client) logError(op string, err error) {
	if c.Logger != nil {
		c.Logger.Error("api call failed", "op", op, "error", err)
	}
}
