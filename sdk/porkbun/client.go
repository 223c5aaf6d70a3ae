package porkbun

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// DefaultEndpoint is the production API base URL. The IPv4-pinned host
	// keeps /ping/ answering with an IPv4 address on dual-stack machines.
	DefaultEndpoint = "https://api-ipv4.porkbun.com/api/json/v3"

	// Code identifies this provider in logs and webhook payloads.
	Code = "porkbun"
)

// Registrar status values. Every response body carries one.
const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Credentials authenticate every API call. They are injected into request
// payloads at send time and are never part of a Record or Target.
type Credentials struct {
	APIKey       string
	SecretAPIKey string
	Endpoint     string
}

// Client talks to the Porkbun v3 API. It is stateless aside from the held
// credentials; no timeout is enforced unless the supplied http.Client has one.
type Client struct {
	creds      Credentials
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Callers that need
// bounded latency configure the timeout here.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New returns a Client for the given credentials. An empty endpoint falls
// back to DefaultEndpoint.
func New(creds Credentials, opts ...Option) *Client {
	if creds.Endpoint == "" {
		creds.Endpoint = DefaultEndpoint
	}
	c := &Client{
		creds:      creds,
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the API base URL this client targets.
func (c *Client) Endpoint() string { return c.creds.Endpoint }

func (c *Client) String() string { return Code }

// payload is one outbound request body. A fresh value is built per call;
// payloads are never shared between invocations.
type payload map[string]any

// authenticate merges the credential fields into a copy of data. The
// configured identity always wins over caller-supplied keys.
func (c *Client) authenticate(data payload) payload {
	merged := make(payload, len(data)+3)
	for k, v := range data {
		merged[k] = v
	}
	// The endpoint field mimics the official porkbun ddns script; the API
	// accepts requests without it.
	merged["endpoint"] = c.creds.Endpoint
	merged["apikey"] = c.creds.APIKey
	merged["secretapikey"] = c.creds.SecretAPIKey
	return merged
}

// Send posts the authenticated payload to endpoint+path and returns the raw
// body once it is known to be a top-level JSON object. Callers decode it and
// inspect the status field themselves. No retries happen at this layer.
func (c *Client) Send(ctx context.Context, path string, data payload) (json.RawMessage, error) {
	url := c.creds.Endpoint + path
	body, err := json.Marshal(c.authenticate(data))
	if err != nil {
		return nil, errors.Wrap(err, "encoding request payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("path", path).Msg("sending api request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &DecodeError{Reason: "response body is not a JSON object", Err: err}
	}
	if obj == nil {
		return nil, &DecodeError{Reason: "response body is not a JSON object"}
	}
	return raw, nil
}

// call sends and decodes the response into out.
func (c *Client) call(ctx context.Context, path string, data payload, out any) error {
	raw, err := c.Send(ctx, path, data)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Reason: "decoding api response", Err: err}
	}
	return nil
}
