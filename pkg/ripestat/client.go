/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package ripestat is a client for the RIPEstat data API (https://stat.ripe.net/docs/data_api).
package ripestat

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/rsaw/pkg/logger"
)

const (
	dataSuffix      = "data.json"
	defaultMaxBody  = 32 << 20
	maxErrorBodyLen = 512
	tracerName      = "github.com/carverauto/rsaw/pkg/ripestat"
)

// Client talks to RIPEstat over HTTP. It implements Getter.
type Client struct {
	config     *Config
	httpClient HTTPClient
	logger     logger.Logger
	tracer     trace.Tracer
	maxBody    int64
}

var _ Getter = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTracer replaces the tracer taken from the global TracerProvider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// NewClient creates a Client. A nil cfg uses DefaultConfig and a nil log
// discards output.
func NewClient(cfg *Config, log logger.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conf := *cfg
	conf.applyDefaults()

	if log == nil {
		log = logger.NewTestLogger()
	}

	c := &Client{
		config:  &conf,
		logger:  log,
		maxBody: defaultMaxBody,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: conf.Timeout.Std()}
	}

	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}

	return c, nil
}

// URL returns the full request URL for a data call.
func (c *Client) URL(path string, params Params) string {
	u := c.config.BaseURL + path + dataSuffix
	if q := c.withSourceApp(params).Encode(); q != "" {
		u += "?" + q
	}

	return u
}

func (c *Client) withSourceApp(params Params) Params {
	if c.config.SourceApp == "" {
		return params
	}

	if _, ok := params["sourceapp"]; ok {
		return params
	}

	p := params.Clone()
	p["sourceapp"] = c.config.SourceApp

	return p
}

// Get performs the data call at path. HTTP failures, non-200 responses and
// envelopes whose status is not "ok" are returned as errors.
func (c *Client) Get(ctx context.Context, path string, params Params) (*Output, error) {
	reqURL := c.URL(path, params)

	ctx, span := c.tracer.Start(ctx, "ripestat.get", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("ripestat.path", path),
		attribute.String("url.full", reqURL),
	)

	out, err := c.do(ctx, reqURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(
		attribute.String("ripestat.query_id", out.QueryID),
		attribute.Bool("ripestat.cached", out.Cached),
	)

	return out, nil
}

func (c *Client) do(ctx context.Context, reqURL string) (*Output, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", reqURL).Msg("RIPEstat request failed")

		return nil, err
	}
	defer c.closeResponse(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody)
	}

	c.logger.Debug().
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("RIPEstat response")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d, response: %s", ErrUnexpectedStatusCode,
			resp.StatusCode, truncate(body, maxErrorBodyLen))
	}

	out, err := NewOutput(reqURL, body)
	if err != nil {
		return nil, err
	}

	for _, w := range out.MessagesOf("warning") {
		c.logger.Warn().Str("url", reqURL).Msg(w)
	}

	if err := out.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// closeResponse closes the HTTP response body, logging any errors.
func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}

	return string(b[:n]) + "..."
}
