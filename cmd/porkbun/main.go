package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"
)

var (
	Version   = "DEV"
	BuildTime = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "porkbun",
		Usage:   "command-line client for the Porkbun DNS record store",
		Version: fmt.Sprintf("%s (built %s, %s %s/%s)", Version, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH),
		Description: `porkbun reconciles DNS records against the Porkbun registrar API.

It keeps an A/AAAA record pointed at this machine's public IP (ddns mode),
publishes one-time TXT records for ACME DNS-01 challenges (acme mode), and
fetches the SSL certificate bundle the registrar holds for a domain.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"C"},
				Usage:   "path to the configuration file",
			},
			&cli.StringFlag{
				Name:  "key",
				Usage: "API key (overrides the configuration file)",
			},
			&cli.StringFlag{
				Name:  "seckey",
				Usage: "secret API key (overrides the configuration file)",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "API endpoint (overrides the configuration file)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: trace, debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format: console or json",
			},
		},
		Commands: []*cli.Command{
			ddnsCommand(),
			acmeCommand(),
			sslCommand(),
			configCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
