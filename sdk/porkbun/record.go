package porkbun

import "strings"

// Record types understood by the registrar.
const (
	TypeA     = "A"
	TypeAAAA  = "AAAA"
	TypeCNAME = "CNAME"
	TypeALIAS = "ALIAS"
	TypeTXT   = "TXT"
	TypeMX    = "MX"
	TypeNS    = "NS"
	TypeSRV   = "SRV"
)

// Record is the registrar's view of one DNS entry. Records are never
// mutated in place; an update deletes one by id and creates a replacement.
type Record struct {
	ID      string `json:"id"`
	Name    string `json:"name"` // fully qualified, lowercase
	Type    string `json:"type"`
	Content string `json:"content"`
	TTL     string `json:"ttl,omitempty"`
	Prio    string `json:"prio,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Target is the desired end state for exactly one record identity, where
// identity is the (FQDN, type) pair. TTL and Prio are optional and an empty
// value means unset.
type Target struct {
	Domain  string
	Name    string // subdomain label, empty for the apex
	Type    string
	Content string
	TTL     string
	Prio    string
}

// normalized case-folds the fields the registrar matches case-sensitively.
func (t Target) normalized() Target {
	t.Domain = strings.ToLower(t.Domain)
	t.Name = strings.ToLower(t.Name)
	t.Type = strings.ToUpper(t.Type)
	return t
}

// FQDN returns the fully qualified name this target addresses.
func (t Target) FQDN() string {
	return fqdn(t.Name, t.Domain)
}

// createPayload builds the create request body. Unset optionals are left
// out entirely: the API treats an explicit null differently from an absent
// key.
func (t Target) createPayload() payload {
	p := payload{
		"name":    t.Name,
		"type":    t.Type,
		"content": t.Content,
	}
	if t.TTL != "" {
		p["ttl"] = t.TTL
	}
	if t.Prio != "" {
		p["prio"] = t.Prio
	}
	return p
}

// fqdn joins a subdomain label and a root domain into the lowercase fully
// qualified name the registrar reports. An empty label yields the apex
// without a leading dot.
func fqdn(name, domain string) string {
	return strings.Trim(strings.ToLower(name)+"."+strings.ToLower(domain), ".")
}

// FindMatches filters records by exact FQDN and type equality. There is no
// wildcard or suffix matching; an empty result is not an error.
func FindMatches(records []Record, name, recordType string) []Record {
	recordType = strings.ToUpper(recordType)
	var matches []Record
	for _, rec := range records {
		if rec.Name == name && rec.Type == recordType {
			matches = append(matches, rec)
		}
	}
	return matches
}
