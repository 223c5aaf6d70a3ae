package porkbun

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMergesCredentials(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"status":"SUCCESS"}`))
	}))
	defer srv.Close()

	client := New(Credentials{APIKey: "pk", SecretAPIKey: "sk", Endpoint: srv.URL})

	// A caller-supplied apikey must never override the configured identity.
	_, err := client.Send(context.Background(), "/ping/", payload{
		"apikey":       "attacker",
		"secretapikey": "attacker",
		"endpoint":     "https://evil.example",
		"name":         "www",
	})
	require.NoError(t, err)

	assert.Equal(t, "pk", got["apikey"])
	assert.Equal(t, "sk", got["secretapikey"])
	assert.Equal(t, srv.URL, got["endpoint"])
	assert.Equal(t, "www", got["name"])
}

func TestSendDoesNotMutateCallerPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"SUCCESS"}`))
	}))
	defer srv.Close()

	client := New(Credentials{APIKey: "pk", SecretAPIKey: "sk", Endpoint: srv.URL})
	data := payload{"name": "www"}
	_, err := client.Send(context.Background(), "/x", data)
	require.NoError(t, err)
	assert.Equal(t, payload{"name": "www"}, data)
}

func TestSendHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down for maintenance"))
	}))
	defer srv.Close()

	client := New(Credentials{APIKey: "pk", SecretAPIKey: "sk", Endpoint: srv.URL})
	_, err := client.Send(context.Background(), "/ping/", nil)

	var httpErr *APIHTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, "down for maintenance", httpErr.Body)
}

func TestSendDecodeError(t *testing.T) {
	for _, body := range []string{"[1,2,3]", `"oink"`, "null", "not json at all"} {
		body := body
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client := New(Credentials{APIKey: "pk", SecretAPIKey: "sk", Endpoint: srv.URL})
			_, err := client.Send(context.Background(), "/ping/", nil)

			var decodeErr *DecodeError
			assert.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestSendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := New(Credentials{APIKey: "pk", SecretAPIKey: "sk", Endpoint: srv.URL})
	_, err := client.Send(context.Background(), "/ping/", nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotNil(t, errors.Unwrap(transportErr))
}

func TestNewDefaultsEndpoint(t *testing.T) {
	client := New(Credentials{APIKey: "pk", SecretAPIKey: "sk"})
	assert.Equal(t, DefaultEndpoint, client.Endpoint())
}
