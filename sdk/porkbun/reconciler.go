package porkbun

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
)

// DynamicTTL is the short TTL applied to address records maintained by a
// DDNS loop.
const DynamicTTL = "300"

// Response is the envelope every registrar reply carries.
type Response struct {
	Status string `json:"status"`
}

type retrieveResponse struct {
	Response
	Records []Record `json:"records"`
}

type pingResponse struct {
	Response
	YourIP string `json:"yourIp"`
}

// SSLBundle is the certificate bundle the registrar issues for a domain.
type SSLBundle struct {
	Status                  string `json:"status"`
	IntermediateCertificate string `json:"intermediatecertificate"`
	CertificateChain        string `json:"certificatechain"`
	PrivateKey              string `json:"privatekey"`
	PublicKey               string `json:"publickey"`
}

// UpsertResult reports both halves of a delete-then-create update. Deleted
// is nil when no prior record matched.
type UpsertResult struct {
	Deleted *Response
	Created Response
}

// retrieveError covers every cause the registrar lumps into a failed
// retrieve: wrong domain, API access not enabled, or no such domain.
func retrieveError(path, domain string) *RegistrarError {
	return &RegistrarError{
		Path:   path,
		Domain: domain,
		Message: fmt.Sprintf("failed to get records: make sure %q is the correct domain, "+
			"that API access has been enabled for it, and that it is a valid domain", domain),
	}
}

// ListRecords fetches every record for domain. The result is fetched fresh
// on each call and never cached.
func (c *Client) ListRecords(ctx context.Context, domain string) ([]Record, error) {
	domain = strings.ToLower(domain)
	path := "/dns/retrieve/" + domain
	var out retrieveResponse
	if err := c.call(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Status == StatusError {
		return nil, retrieveError(path, domain)
	}
	return out.Records, nil
}

// GetRecord fetches a single record by id.
func (c *Client) GetRecord(ctx context.Context, domain, id string) ([]Record, error) {
	domain = strings.ToLower(domain)
	path := "/dns/retrieve/" + domain + "/" + id
	var out retrieveResponse
	if err := c.call(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Status == StatusError {
		return nil, retrieveError(path, domain)
	}
	return out.Records, nil
}

// CreateRecord creates the record described by target. Optional fields left
// unset never appear in the request body.
func (c *Client) CreateRecord(ctx context.Context, target Target) (Response, error) {
	target = target.normalized()
	path := "/dns/create/" + target.Domain
	var out Response
	if err := c.call(ctx, path, target.createPayload(), &out); err != nil {
		return Response{}, err
	}
	if out.Status != StatusSuccess {
		return out, &RegistrarError{
			Path:    path,
			Domain:  target.Domain,
			Message: fmt.Sprintf("registrar refused to create %s record %q", target.Type, target.FQDN()),
		}
	}
	c.log.Info().
		Str("type", target.Type).
		Str("name", target.FQDN()).
		Str("content", target.Content).
		Msg("created record")
	return out, nil
}

// DeleteRecord deletes one record by id. A missing id is the registrar's
// concern and comes back as a RegistrarError; nothing is retried locally.
func (c *Client) DeleteRecord(ctx context.Context, domain, id string) (Response, error) {
	domain = strings.ToLower(domain)
	path := "/dns/delete/" + domain + "/" + id
	var out Response
	if err := c.call(ctx, path, nil, &out); err != nil {
		return Response{}, err
	}
	if out.Status != StatusSuccess {
		return out, &RegistrarError{
			Path:    path,
			Domain:  domain,
			Message: fmt.Sprintf("registrar refused to delete record %s", id),
		}
	}
	return out, nil
}

// UpsertRecord makes the (FQDN, type) identity described by target reflect
// its content, using delete-then-create since the API has no atomic update.
//
// Only the first matching record is deleted before the create: the record
// identity is assumed to occupy a single slot. This is deliberately
// narrower than UpsertAddressRecord, which purges every conflicting type.
// A failed delete aborts the whole operation so a create can never produce
// a duplicate next to a record that should have gone away.
func (c *Client) UpsertRecord(ctx context.Context, target Target) (UpsertResult, error) {
	target = target.normalized()

	records, err := c.ListRecords(ctx, target.Domain)
	if err != nil {
		return UpsertResult{}, err
	}

	var res UpsertResult
	name := target.FQDN()
	for _, rec := range records {
		if rec.Name == name && rec.Type == target.Type {
			c.log.Info().
				Str("type", rec.Type).
				Str("name", rec.Name).
				Str("id", rec.ID).
				Msg("deleting existing record")
			deleted, err := c.DeleteRecord(ctx, target.Domain, rec.ID)
			if err != nil {
				return res, err
			}
			res.Deleted = &deleted
			break
		}
	}

	created, err := c.CreateRecord(ctx, target)
	if err != nil {
		return res, err
	}
	res.Created = created
	return res, nil
}

// conflictingTypes are the record types that collide with a new address
// record at the same name.
var conflictingTypes = map[string]bool{
	TypeA:     true,
	TypeAAAA:  true,
	TypeALIAS: true,
	TypeCNAME: true,
}

// UpsertAddressRecord points an A or AAAA record (chosen by the address
// family of ip) at the given name. Unlike UpsertRecord it purges every
// pre-existing A, AAAA, ALIAS and CNAME record at the FQDN first, since any
// of those would conflict with the new address record. The created record
// carries DynamicTTL.
func (c *Client) UpsertAddressRecord(ctx context.Context, domain string, ip netip.Addr, subdomain string) (UpsertResult, error) {
	domain = strings.ToLower(domain)
	name := strings.ToLower(subdomain)
	ip = ip.Unmap()

	recordType := TypeAAAA
	if ip.Is4() {
		recordType = TypeA
	}
	fq := fqdn(name, domain)

	records, err := c.ListRecords(ctx, domain)
	if err != nil {
		return UpsertResult{}, err
	}

	var res UpsertResult
	for _, rec := range records {
		if rec.Name == fq && conflictingTypes[rec.Type] {
			c.log.Info().
				Str("type", rec.Type).
				Str("name", rec.Name).
				Str("id", rec.ID).
				Msg("deleting conflicting record")
			deleted, err := c.DeleteRecord(ctx, domain, rec.ID)
			if err != nil {
				return res, err
			}
			res.Deleted = &deleted
		}
	}

	created, err := c.CreateRecord(ctx, Target{
		Domain:  domain,
		Name:    name,
		Type:    recordType,
		Content: ip.String(),
		TTL:     DynamicTTL,
	})
	if err != nil {
		return res, err
	}
	res.Created = created
	return res, nil
}

// ResolvePublicIP asks the API which address this machine appears as.
func (c *Client) ResolvePublicIP(ctx context.Context) (netip.Addr, error) {
	const path = "/ping/"
	var out pingResponse
	if err := c.call(ctx, path, nil, &out); err != nil {
		return netip.Addr{}, err
	}
	if out.Status != StatusSuccess {
		return netip.Addr{}, &RegistrarError{Path: path, Message: "ping request failed"}
	}
	addr, err := netip.ParseAddr(out.YourIP)
	if err != nil {
		return netip.Addr{}, &DecodeError{
			Reason: fmt.Sprintf("ping returned %q, which is not an IP address", out.YourIP),
			Err:    err,
		}
	}
	return addr, nil
}

// RetrieveSSL fetches the SSL certificate bundle the registrar holds for
// domain.
func (c *Client) RetrieveSSL(ctx context.Context, domain string) (SSLBundle, error) {
	domain = strings.ToLower(domain)
	path := "/ssl/retrieve/" + domain
	var out SSLBundle
	if err := c.call(ctx, path, nil, &out); err != nil {
		return SSLBundle{}, err
	}
	if out.Status != StatusSuccess {
		return SSLBundle{}, &RegistrarError{
			Path:    path,
			Domain:  domain,
			Message: "failed to retrieve the certificate bundle",
		}
	}
	return out, nil
}
