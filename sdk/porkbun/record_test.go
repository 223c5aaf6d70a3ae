package porkbun

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFQDN(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   string
	}{
		{"", "example.com", "example.com"},
		{"www", "example.com", "www.example.com"},
		{"www", "Example.com", "www.example.com"},
		{"WWW", "EXAMPLE.COM", "www.example.com"},
		{"_acme-challenge", "example.com", "_acme-challenge.example.com"},
		{"a.b", "example.com", "a.b.example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fqdn(tt.name, tt.domain), "fqdn(%q, %q)", tt.name, tt.domain)
	}
}

func TestTargetNormalized(t *testing.T) {
	target := Target{Domain: "Example.COM", Name: "WWW", Type: "txt"}.normalized()
	assert.Equal(t, "example.com", target.Domain)
	assert.Equal(t, "www", target.Name)
	assert.Equal(t, "TXT", target.Type)
}

func TestFindMatches(t *testing.T) {
	records := []Record{
		{ID: "1", Name: "www.example.com", Type: "A", Content: "1.2.3.4"},
		{ID: "2", Name: "www.example.com", Type: "TXT", Content: "abc"},
		{ID: "3", Name: "other.example.com", Type: "A", Content: "1.2.3.4"},
		{ID: "4", Name: "www.example.com", Type: "A", Content: "5.6.7.8"},
	}

	matches := FindMatches(records, "www.example.com", "a")
	require.Len(t, matches, 2)
	assert.Equal(t, "1", matches[0].ID)
	assert.Equal(t, "4", matches[1].ID)

	// No suffix matching: "example.com" must not pick up subdomains.
	assert.Empty(t, FindMatches(records, "example.com", "A"))
	assert.Empty(t, FindMatches(records, "www.example.com", "AAAA"))
}

func TestCreatePayloadOmitsUnsetOptionals(t *testing.T) {
	target := Target{
		Domain:  "example.com",
		Name:    "www",
		Type:    "A",
		Content: "1.2.3.4",
	}

	// Check the serialized form, not the struct: the registrar treats an
	// explicit null differently from an absent key.
	byt, err := json.Marshal(target.createPayload())
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(byt, &got))

	assert.NotContains(t, got, "ttl")
	assert.NotContains(t, got, "prio")
	assert.Equal(t, "www", got["name"])
	assert.Equal(t, "A", got["type"])
	assert.Equal(t, "1.2.3.4", got["content"])
}

func TestCreatePayloadKeepsSetOptionals(t *testing.T) {
	target := Target{Domain: "example.com", Name: "mail", Type: "MX", Content: "mx.example.com", TTL: "600", Prio: "10"}
	p := target.createPayload()
	assert.Equal(t, "600", p["ttl"])
	assert.Equal(t, "10", p["prio"])
}
