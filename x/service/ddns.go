package service

import (
	"context"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jxo-me/porkbun/config"
	"github.com/jxo-me/porkbun/consts"
	"github.com/jxo-me/porkbun/sdk/cache"
	"github.com/jxo-me/porkbun/sdk/porkbun"
	"github.com/jxo-me/porkbun/x/hook"
	"github.com/rs/zerolog"
)

// Updater performs one address-record reconciliation. Satisfied by
// *porkbun.Client.
type Updater interface {
	ResolvePublicIP(ctx context.Context) (netip.Addr, error)
	UpsertAddressRecord(ctx context.Context, domain string, ip netip.Addr, subdomain string) (porkbun.UpsertResult, error)
}

// DDNSService keeps one address record pointed at the machine's current
// public IP on a timer. Runs are strictly sequential; the IP cache only
// suppresses registrar round trips, it is never the source of truth.
type DDNSService struct {
	updater Updater
	cache   *cache.IPCache
	delay   time.Duration
	stop    chan chan struct{}
	status  int32
	log     zerolog.Logger

	mu      sync.Mutex
	conf    config.DDNS
	webhook *hook.Webhook
}

// NewDDNS is a standard constructor.
func NewDDNS(u Updater, conf config.DDNS, log zerolog.Logger) *DDNSService {
	delay := consts.DefaultDaemonDelay
	if conf.Delay > 0 {
		delay = time.Duration(conf.Delay) * time.Second
	}
	return &DDNSService{
		updater: u,
		cache:   &cache.IPCache{},
		delay:   delay,
		stop:    make(chan chan struct{}),
		status:  consts.StatusRunning,
		log:     log,
		conf:    conf,
		webhook: hook.New(conf.Webhook, log),
	}
}

// SetConfig swaps the reconciliation target under live reload. The delay
// of a running timer is left alone.
func (s *DDNSService) SetConfig(conf config.DDNS) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conf.Domain != s.conf.Domain || conf.Subdomain != s.conf.Subdomain {
		s.cache.Reset()
	}
	s.conf = conf
	s.webhook = hook.New(conf.Webhook, s.log)
}

// RunOnce performs a single DDNS cycle: resolve the public IP, skip if it
// is unchanged, otherwise reconcile the address record and fire the
// webhook.
func (s *DDNSService) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	conf := s.conf
	webhook := s.webhook
	s.mu.Unlock()

	ip, err := s.updater.ResolvePublicIP(ctx)
	if err != nil {
		return err
	}
	if !s.cache.Check(ip.String()) {
		s.log.Debug().Str("ip", ip.String()).Msg("public IP unchanged, skipping update")
		return nil
	}

	status := consts.UpdatedSuccess
	_, err = s.updater.UpsertAddressRecord(ctx, conf.Domain, ip, conf.Subdomain)
	if err != nil {
		// Forget the cached address so the next run retries.
		s.cache.Reset()
		status = consts.UpdatedFailed
	}
	if webhook != nil {
		webhook.Exec(conf.Domain, ip.String(), status)
	}
	return err
}

// Start runs the timer loop until Stop is called. The first cycle runs
// immediately rather than waiting a full interval.
func (s *DDNSService) Start() error {
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	if err := s.RunOnce(context.Background()); err != nil {
		s.log.Err(err).Msg("ddns update failed")
	}

	for {
		select {
		case <-ticker.C:
			switch atomic.LoadInt32(&s.status) {
			case consts.StatusRunning:
				if err := s.RunOnce(context.Background()); err != nil {
					s.log.Err(err).Msg("ddns update failed")
				}
			case consts.StatusStopped:
				// Keep ticking without doing work until closed.
			}
		case confirm := <-s.stop:
			close(confirm)
			return nil
		}
	}
}

// Stop halts the timer loop and waits for confirmation.
func (s *DDNSService) Stop() error {
	atomic.StoreInt32(&s.status, consts.StatusClosed)
	confirm := make(chan struct{})
	s.stop <- confirm
	<-confirm
	return nil
}
