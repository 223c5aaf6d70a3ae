package main

import (
	"github.com/judwhite/go-svc"
	"github.com/jxo-me/porkbun/config"
	"github.com/jxo-me/porkbun/pkg/watcher"
	"github.com/jxo-me/porkbun/sdk/porkbun"
	"github.com/jxo-me/porkbun/x/service"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// program runs the DDNS service under go-svc so daemon mode behaves as a
// proper service on every platform, including the Windows service manager.
type program struct {
	service *service.DDNSService
	manager *config.FileManager
	log     zerolog.Logger
}

func (p *program) Init(_ svc.Environment) error { return nil }

func (p *program) Start() error {
	if p.manager != nil {
		go func() {
			if err := p.manager.Start(p); err != nil {
				p.log.Err(err).Msg("config reload manager failed to start")
			}
		}()
	}
	go func() {
		if err := p.service.Start(); err != nil {
			p.log.Err(err).Msg("ddns service stopped with an error")
		}
	}()
	return nil
}

func (p *program) Stop() error {
	if p.manager != nil {
		p.manager.Shutdown()
	}
	return p.service.Stop()
}

// ConfigDidUpdate is the live-reload callback from the FileManager.
func (p *program) ConfigDidUpdate(cfg config.Config) {
	if cfg.DDNS != nil {
		p.service.SetConfig(*cfg.DDNS)
	}
}

func runDaemon(c *cli.Context, client *porkbun.Client, conf config.DDNS, log zerolog.Logger) error {
	p := &program{
		service: service.NewDDNS(client, conf, log),
		log:     log,
	}

	// Watch the config file for live reload when one is in use.
	if path := configPath(c); path != "" {
		f, err := watcher.NewFile()
		if err != nil {
			return cli.Exit(err, 1)
		}
		manager, err := config.NewFileManager(f, path, &log)
		if err != nil {
			return cli.Exit(err, 1)
		}
		p.manager = manager
		log.Info().Str("path", path).Msg("monitoring config file")
	}

	if err := svc.Run(p); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}
