package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func sslCommand() *cli.Command {
	return &cli.Command{
		Name:      "ssl",
		Usage:     "fetch the SSL certificate bundle for a domain",
		ArgsUsage: "DOMAIN",
		Action:    sslAction,
	}
}

func sslAction(c *cli.Context) error {
	_, client, _, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return cli.Exit("exactly one root domain argument is required", 1)
	}

	bundle, err := client.RetrieveSSL(context.Background(), c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
