// Package client talks to the registration (mint) and lookup (search)
// services. Clients return the upstream status and body unchanged and leave
// their interpretation to the caller.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName   = "maintain/charge/client"
	maxBodyBytes = 4 << 20
)

// Response is an upstream reply as received.
type Response struct {
	Status int
	Body   []byte
}

// MintClient posts charges to the registration service.
type MintClient struct {
	url        string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewMintClient creates a client posting to url. A nil httpClient uses
// http.DefaultClient.
func NewMintClient(url string, httpClient *http.Client) *MintClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &MintClient{url: url, httpClient: httpClient, tracer: otel.Tracer(tracerName)}
}

// AddToRegister sends an already serialised charge.
func (c *MintClient) AddToRegister(ctx context.Context, payload []byte) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "mint.add_to_register", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fail(span, fmt.Errorf("build mint request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	return do(c.httpClient, req, span)
}

// SearchClient looks charges up in the search service.
type SearchClient struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewSearchClient creates a client for the search service rooted at baseURL.
func NewSearchClient(baseURL string, httpClient *http.Client) *SearchClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SearchClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tracer:     otel.Tracer(tracerName),
	}
}

// GetCharge fetches the charge with the given public reference.
func (c *SearchClient) GetCharge(ctx context.Context, ref string) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "search.get_charge",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("charge.ref", ref)),
	)
	defer span.End()

	endpoint := fmt.Sprintf("%s/search/local_land_charges/%s", c.baseURL, url.PathEscape(ref))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fail(span, fmt.Errorf("build search request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	return do(c.httpClient, req, span)
}

func do(httpClient *http.Client, req *http.Request, span trace.Span) (*Response, error) {
	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", req.URL.String()),
	)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fail(span, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fail(span, fmt.Errorf("read %s response: %w", req.URL.Host, err))
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return &Response{Status: resp.StatusCode, Body: body}, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
