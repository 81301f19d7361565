// Package inference posts MNIST samples to the embedded classifier endpoint.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/infra/httpclient"
	"github.com/aalvaropc/digitprobe/internal/infra/logger"
	"github.com/aalvaropc/digitprobe/internal/ports"
)

// Request is the wire payload: the flattened image, row-major.
type Request struct {
	Pixels []int `json:"pixels"`
}

type Client struct {
	exec *httpclient.Executor
	log  *slog.Logger
}

type Option func(*Client)

func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) { c.exec = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(opts ...Option) *Client {
	c := &Client{
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.exec == nil {
		c.exec = httpclient.NewExecutor(httpclient.WithTimeout(domain.DefaultInferTimeout))
	}
	return c
}

var _ ports.Classifier = (*Client)(nil)

// Predict performs one POST of the sample pixels. It never retries.
func (c *Client) Predict(ctx context.Context, url string, sample domain.Sample) (domain.Prediction, error) {
	if len(sample.Image.Pix) == 0 {
		return domain.Prediction{}, &domain.OpError{
			Op:   "inference.predict",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrNoSample,
		}
	}

	req, err := httpclient.BuildJSONRequest(ctx, http.MethodPost, url, Request{Pixels: sample.Image.Flatten()})
	if err != nil {
		return domain.Prediction{}, err
	}

	c.log.Debug("inference.request.start", "url", url, "pixels", len(sample.Image.Pix), "index", sample.Index)

	resp, err := c.exec.Do(ctx, req)
	if err != nil {
		ne := classify(err)
		c.log.Warn("inference.request.failed", "url", url, "kind", string(ne.Kind), "error", ne.Message)
		return domain.Prediction{}, &domain.OpError{
			Op:   "inference.predict",
			Kind: domain.KindNetwork,
			Path: url,
			Err:  ne,
		}
	}

	if resp.Status < 200 || resp.Status > 299 {
		ne := &domain.NetError{
			Kind:    domain.NetErrorHTTP,
			Status:  resp.Status,
			Message: http.StatusText(resp.Status),
		}
		c.log.Warn("inference.request.failed", "url", url, "kind", string(ne.Kind), "status", resp.Status)
		return domain.Prediction{}, &domain.OpError{
			Op:   "inference.predict",
			Kind: domain.KindNetwork,
			Path: url,
			Err:  ne,
		}
	}

	fields, err := decodeObject(resp.BodyBytes)
	if err != nil {
		c.log.Warn("inference.response.invalid", "url", url, "error", err.Error(), "truncated", resp.Truncated)
		return domain.Prediction{}, &domain.OpError{
			Op:   "inference.decode",
			Kind: domain.KindInvalidResponse,
			Path: url,
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err),
		}
	}

	c.log.Info("inference.request.done", "url", url, "status", resp.Status, "latency_ms", resp.Duration.Milliseconds())

	return domain.Prediction{
		Fields:     fields,
		Body:       bytes.TrimSpace(resp.BodyBytes),
		StatusCode: resp.Status,
		LatencyMS:  resp.Duration.Milliseconds(),
	}, nil
}

// decodeObject accepts only a JSON object; arrays, scalars and trailing data are rejected.
func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("response body is not valid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("response body has trailing data")
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response body is %T, want a JSON object", doc)
	}
	return obj, nil
}
