package main

import (
	"fmt"
	"os"

	"github.com/jxo-me/porkbun/config"
	"github.com/urfave/cli/v2"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "manage the configuration file",
		Subcommands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "write a starting configuration file",
				Action: configInitAction,
			},
		},
	}
}

func configInitAction(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		path = config.FindConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		return cli.Exit(fmt.Sprintf("refusing to overwrite existing config file %s", path), 1)
	}

	cfg := &config.Config{
		APIKey:       c.String("key"),
		SecretAPIKey: c.String("seckey"),
		Endpoint:     c.String("endpoint"),
		DDNS: &config.DDNS{
			Domain:    "example.com",
			Subdomain: "",
			Delay:     300,
		},
		Log: &config.Log{Level: "info", Format: "console"},
	}
	if err := cfg.Save(path); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintf(os.Stdout, "config file written to %s\n", path)
	return nil
}
