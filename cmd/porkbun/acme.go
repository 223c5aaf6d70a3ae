package main

import (
	"context"
	"time"

	"github.com/jxo-me/porkbun/consts"
	"github.com/jxo-me/porkbun/sdk/porkbun"
	"github.com/urfave/cli/v2"
)

func acmeCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "domain",
			Usage:   "domain being validated",
			EnvVars: []string{"CERTBOT_DOMAIN"},
		},
		&cli.StringFlag{
			Name:    "validation",
			Usage:   "validation token assigned by the ACME server",
			EnvVars: []string{"CERTBOT_VALIDATION"},
		},
	}
	return &cli.Command{
		Name:  "acme",
		Usage: "publish and clean up DNS-01 challenge records (certbot hook)",
		Subcommands: []*cli.Command{
			{
				Name:  "auth",
				Usage: "publish the challenge TXT record and wait for propagation",
				Flags: append([]cli.Flag{
					&cli.DurationFlag{
						Name:  "wait",
						Usage: "propagation delay before returning",
						Value: consts.DefaultPropagationDelay,
					},
				}, flags...),
				Action: acmeAuthAction,
			},
			{
				Name:   "cleanup",
				Usage:  "remove the challenge TXT record after validation",
				Flags:  flags,
				Action: acmeCleanupAction,
			},
		},
	}
}

func acmeAuthAction(c *cli.Context) error {
	_, client, log, err := setup(c)
	if err != nil {
		return err
	}
	domain := c.String("domain")
	validation := c.String("validation")
	if domain == "" || validation == "" {
		return cli.Exit("both --domain and --validation are required (certbot sets CERTBOT_DOMAIN and CERTBOT_VALIDATION)", 1)
	}

	res, err := client.UpsertRecord(context.Background(), porkbun.Target{
		Domain:  domain,
		Name:    consts.AcmeChallengeLabel,
		Type:    porkbun.TypeTXT,
		Content: validation,
		TTL:     consts.AcmeTTL,
	})
	if err != nil {
		return cli.Exit(err, 1)
	}

	log.Info().
		Str("domain", domain).
		Bool("replaced", res.Deleted != nil).
		Str("status", res.Created.Status).
		Msg("challenge record published")

	// The calling certificate tool expects the hook to return only once the
	// record is visible to resolvers.
	wait := c.Duration("wait")
	if wait > 0 {
		log.Info().Dur("wait", wait).Msg("waiting for DNS propagation")
		time.Sleep(wait)
	}
	return nil
}

func acmeCleanupAction(c *cli.Context) error {
	_, client, log, err := setup(c)
	if err != nil {
		return err
	}
	domain := c.String("domain")
	if domain == "" {
		return cli.Exit("--domain is required (certbot sets CERTBOT_DOMAIN)", 1)
	}

	ctx := context.Background()
	records, err := client.ListRecords(ctx, domain)
	if err != nil {
		return cli.Exit(err, 1)
	}

	validation := c.String("validation")
	name := porkbun.Target{Domain: domain, Name: consts.AcmeChallengeLabel}.FQDN()
	removed := 0
	for _, rec := range porkbun.FindMatches(records, name, porkbun.TypeTXT) {
		if validation != "" && rec.Content != validation {
			continue
		}
		if _, err := client.DeleteRecord(ctx, domain, rec.ID); err != nil {
			return cli.Exit(err, 1)
		}
		removed++
	}
	log.Info().Str("domain", domain).Int("removed", removed).Msg("challenge records cleaned up")
	return nil
}
