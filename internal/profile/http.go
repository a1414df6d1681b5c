package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/retry"
	"github.com/zjrosen/vitrine/internal/tracing"
)

// RequestIDHeader carries the per-fetch request ID.
const RequestIDHeader = "X-Request-ID"

// maxBody bounds the profile response read.
const maxBody = 1 << 20

// HTTPSource fetches the profile as JSON over HTTP.
type HTTPSource struct {
	url    string
	client *http.Client
	retry  retry.Config
	tracer trace.Tracer
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithRetry sets the retry policy.
func WithRetry(c retry.Config) HTTPOption {
	return func(s *HTTPSource) { s.retry = c }
}

// WithTracer records a client span per fetch.
func WithTracer(t trace.Tracer) HTTPOption {
	return func(s *HTTPSource) {
		if t != nil {
			s.tracer = t
		}
	}
}

// NewHTTPSource creates a source for url.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		retry:  retry.DefaultConfig(),
		tracer: noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSource) Kind() string { return "http" }

// Fetch GETs the profile, retrying transient failures.
func (s *HTTPSource) Fetch(ctx context.Context) (Profile, error) {
	requestID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, tracing.SpanProfileFetch,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrRequestID, requestID),
			attribute.String(tracing.AttrProfileSource, s.Kind()),
			attribute.String(tracing.AttrProfileURL, s.url),
		))
	defer span.End()

	var p Profile
	attempts := 0
	err := retry.Do(ctx, s.retry, nil, func() error {
		attempts++
		var err error
		p, err = s.fetchOnce(ctx, requestID, span)
		return err
	})
	span.SetAttributes(attribute.Int(tracing.AttrAttempts, attempts))

	if err == nil && p.BaseColor == "" {
		err = ErrNoBaseColor
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Profile{}, err
	}

	span.SetAttributes(attribute.String(tracing.AttrBaseColor, p.BaseColor))
	span.SetStatus(codes.Ok, "")
	log.Debug(log.CatProfile, "Fetched profile", "requestID", requestID, "attempts", attempts)
	return p, nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context, requestID string, span trace.Span) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("building profile request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := s.client.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("fetching profile: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int(tracing.AttrHTTPStatus, resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return Profile{}, fmt.Errorf("fetching profile: %w", &retry.StatusError{Code: resp.StatusCode})
	}

	var p Profile
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decoding profile: %w", err)
	}
	return p, nil
}
