package main

import (
	"os"

	"github.com/jxo-me/porkbun/config"
	"github.com/jxo-me/porkbun/pkg/logger"
	"github.com/jxo-me/porkbun/sdk/porkbun"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// configPath resolves the config file to read: the -C flag when given,
// otherwise the default location if a file exists there.
func configPath(c *cli.Context) string {
	if path := c.String("config"); path != "" {
		return path
	}
	def := config.FindConfigPath()
	if _, err := os.Stat(def); err == nil {
		return def
	}
	return ""
}

// loadConfig reads the configuration and layers the command-line overrides
// on top before validating. Flags beat the file, the file beats defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadFile(configPath(c))
	if err != nil {
		return nil, err
	}
	if v := c.String("key"); v != "" {
		cfg.APIKey = v
	}
	if v := c.String("seckey"); v != "" {
		cfg.SecretAPIKey = v
	}
	if v := c.String("endpoint"); v != "" {
		cfg.Endpoint = v
	}
	if cfg.Log == nil {
		cfg.Log = &config.Log{}
	}
	if v := c.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := c.String("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup builds the logger and authenticated client every command starts
// from.
func setup(c *cli.Context) (*config.Config, *porkbun.Client, zerolog.Logger, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, zerolog.Nop(), cli.Exit(err, 1)
	}
	log := logger.FromConfig(cfg.Log)
	client := porkbun.New(cfg.Credentials(), porkbun.WithLogger(log))
	return cfg, client, log, nil
}
