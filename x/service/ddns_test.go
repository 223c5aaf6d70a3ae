package service

import (
	"context"
	"net/netip"
	"testing"

	"github.com/jxo-me/porkbun/config"
	"github.com/jxo-me/porkbun/sdk/porkbun"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUpdater struct {
	ip         netip.Addr
	resolveErr error
	upsertErr  error

	resolves int
	upserts  []string // "domain/subdomain/ip" per call
}

func (m *mockUpdater) ResolvePublicIP(context.Context) (netip.Addr, error) {
	m.resolves++
	return m.ip, m.resolveErr
}

func (m *mockUpdater) UpsertAddressRecord(_ context.Context, domain string, ip netip.Addr, subdomain string) (porkbun.UpsertResult, error) {
	m.upserts = append(m.upserts, domain+"/"+subdomain+"/"+ip.String())
	return porkbun.UpsertResult{Created: porkbun.Response{Status: porkbun.StatusSuccess}}, m.upsertErr
}

func newTestService(u Updater) *DDNSService {
	return NewDDNS(u, config.DDNS{Domain: "example.com", Subdomain: "home"}, zerolog.Nop())
}

func TestRunOnceUpdates(t *testing.T) {
	u := &mockUpdater{ip: netip.MustParseAddr("1.2.3.4")}
	s := newTestService(u)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []string{"example.com/home/1.2.3.4"}, u.upserts)
}

func TestRunOnceSkipsUnchangedIP(t *testing.T) {
	u := &mockUpdater{ip: netip.MustParseAddr("1.2.3.4")}
	s := newTestService(u)

	require.NoError(t, s.RunOnce(context.Background()))
	require.NoError(t, s.RunOnce(context.Background()))

	assert.Equal(t, 2, u.resolves)
	assert.Len(t, u.upserts, 1, "unchanged IP must not hit the registrar again")
}

func TestRunOnceUpdatesWhenIPChanges(t *testing.T) {
	u := &mockUpdater{ip: netip.MustParseAddr("1.2.3.4")}
	s := newTestService(u)

	require.NoError(t, s.RunOnce(context.Background()))
	u.ip = netip.MustParseAddr("5.6.7.8")
	require.NoError(t, s.RunOnce(context.Background()))

	assert.Len(t, u.upserts, 2)
	assert.Equal(t, "example.com/home/5.6.7.8", u.upserts[1])
}

func TestRunOnceResolveFailure(t *testing.T) {
	u := &mockUpdater{resolveErr: assert.AnError}
	s := newTestService(u)

	assert.Error(t, s.RunOnce(context.Background()))
	assert.Empty(t, u.upserts)
}

func TestRunOnceFailedUpdateRetriesNextRun(t *testing.T) {
	u := &mockUpdater{ip: netip.MustParseAddr("1.2.3.4"), upsertErr: assert.AnError}
	s := newTestService(u)

	assert.Error(t, s.RunOnce(context.Background()))

	// The cache was reset on failure, so the very next run retries even
	// though the IP is unchanged.
	u.upsertErr = nil
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Len(t, u.upserts, 2)
}

func TestSetConfigResetsCacheOnNewTarget(t *testing.T) {
	u := &mockUpdater{ip: netip.MustParseAddr("1.2.3.4")}
	s := newTestService(u)

	require.NoError(t, s.RunOnce(context.Background()))
	s.SetConfig(config.DDNS{Domain: "example.org", Subdomain: "home"})
	require.NoError(t, s.RunOnce(context.Background()))

	require.Len(t, u.upserts, 2)
	assert.Equal(t, "example.org/home/1.2.3.4", u.upserts[1])
}
