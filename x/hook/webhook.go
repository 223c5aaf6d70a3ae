package hook

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jxo-me/porkbun/config"
	"github.com/jxo-me/porkbun/consts"
	"github.com/rs/zerolog"
)

// Webhook notifies an external URL after each DDNS run. The URL and body
// may carry #{domain}, #{ip} and #{status} placeholders.
type Webhook struct {
	URL         string
	RequestBody string
	Headers     string

	client *http.Client
	log    zerolog.Logger
}

// New returns nil when no webhook URL is configured, so callers can keep a
// plain nil check.
func New(cfg *config.Webhook, log zerolog.Logger) *Webhook {
	if cfg == nil || cfg.URL == "" {
		return nil
	}
	return &Webhook{
		URL:         cfg.URL,
		RequestBody: cfg.RequestBody,
		Headers:     cfg.Headers,
		client:      &http.Client{},
		log:         log,
	}
}

// Exec fires the webhook. Both successful and failed updates trigger it;
// failures of the webhook itself are logged and swallowed.
func (w *Webhook) Exec(domain, ip string, status consts.UpdateStatusType) {
	method := http.MethodGet
	body := ""
	contentType := "application/x-www-form-urlencoded"
	if w.RequestBody != "" {
		method = http.MethodPost
		body = w.replacePlaceholders(w.RequestBody, domain, ip, status)
		if json.Valid([]byte(body)) {
			contentType = "application/json"
		}
	}
	url := w.replacePlaceholders(w.URL, domain, ip, status)

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		w.log.Err(err).Str("url", url).Msg("failed to build webhook request")
		return
	}
	for key, value := range ParseHeaders(w.Headers) {
		req.Header.Add(key, value)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.Err(err).Str("url", url).Msg("webhook call failed")
		return
	}
	defer resp.Body.Close()
	w.log.Info().Str("url", url).Int("code", resp.StatusCode).Msg("webhook called")
}

func (w *Webhook) replacePlaceholders(s, domain, ip string, status consts.UpdateStatusType) string {
	s = strings.ReplaceAll(s, "#{domain}", domain)
	s = strings.ReplaceAll(s, "#{ip}", ip)
	s = strings.ReplaceAll(s, "#{status}", string(status))
	return s
}

// ParseHeaders parses "Key: Value" lines into a header map. Malformed
// lines are skipped.
func ParseHeaders(headerStr string) map[string]string {
	headers := make(map[string]string)
	for _, line := range strings.Split(headerStr, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers
}
