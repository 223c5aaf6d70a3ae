package main

import (
	"context"
	"net/netip"

	"github.com/jxo-me/porkbun/config"
	"github.com/urfave/cli/v2"
)

func ddnsCommand() *cli.Command {
	return &cli.Command{
		Name:      "ddns",
		Usage:     "point an A/AAAA record at this machine's public IP",
		ArgsUsage: "DOMAIN",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "subdomain",
				Usage: "subdomain label(s), without the root domain; empty targets the apex",
			},
			&cli.StringFlag{
				Name:  "ip",
				Usage: "skip auto-detection and use this IP for the record",
			},
			&cli.BoolFlag{
				Name:  "daemon",
				Usage: "keep running, re-checking the public IP on an interval",
			},
			&cli.Int64Flag{
				Name:  "delay",
				Usage: "seconds between daemon runs",
			},
		},
		Action: ddnsAction,
	}
}

func ddnsAction(c *cli.Context) error {
	cfg, client, log, err := setup(c)
	if err != nil {
		return err
	}

	conf := config.DDNS{}
	if cfg.DDNS != nil {
		conf = *cfg.DDNS
	}
	if c.NArg() > 1 {
		return cli.Exit("at most one root domain argument is allowed", 1)
	}
	if c.NArg() == 1 {
		conf.Domain = c.Args().First()
	}
	if v := c.String("subdomain"); v != "" {
		conf.Subdomain = v
	}
	if v := c.Int64("delay"); v > 0 {
		conf.Delay = v
	}
	if conf.Domain == "" {
		return cli.Exit("a root domain is required, as an argument or in the configuration file", 1)
	}

	if c.Bool("daemon") {
		return runDaemon(c, client, conf, log)
	}

	ctx := context.Background()
	var ip netip.Addr
	if s := c.String("ip"); s != "" {
		ip, err = netip.ParseAddr(s)
		if err != nil {
			return cli.Exit("--ip is not a valid IP address: "+s, 1)
		}
	} else {
		ip, err = client.ResolvePublicIP(ctx)
		if err != nil {
			return cli.Exit(err, 1)
		}
		log.Info().Str("ip", ip.String()).Msg("resolved public IP")
	}

	res, err := client.UpsertAddressRecord(ctx, conf.Domain, ip, conf.Subdomain)
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.Info().
		Str("domain", conf.Domain).
		Str("subdomain", conf.Subdomain).
		Str("ip", ip.String()).
		Str("status", res.Created.Status).
		Msg("address record updated")
	return nil
}
