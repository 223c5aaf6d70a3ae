package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/jxo-me/porkbun/sdk/porkbun"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix scopes the environment variables the loader reads, e.g.
	// PORKBUN_API_KEY and PORKBUN_SECRET_API_KEY.
	EnvPrefix = "PORKBUN"

	// ConfigFilePathENV overrides the default config file location.
	ConfigFilePathENV = "PORKBUN_CONFIG_FILE"

	defaultFileName = ".porkbun.yaml"
)

// requiredFields is the static schema of credential keys that must be
// present after loading. Everything else is optional.
var requiredFields = []string{"api_key", "secret_api_key"}

// MissingFieldsError reports every required field absent from the loaded
// configuration.
type MissingFieldsError struct {
	Path   string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	msg := fmt.Sprintf("all of the following config fields are required: %s",
		strings.Join(e.Fields, ", "))
	if e.Path != "" {
		msg += " (in " + e.Path + ")"
	}
	return msg
}

// Webhook is called after each DDNS run.
type Webhook struct {
	URL         string `mapstructure:"url" yaml:"url,omitempty"`
	RequestBody string `mapstructure:"request_body" yaml:"request_body,omitempty"`
	Headers     string `mapstructure:"headers" yaml:"headers,omitempty"`
}

// DDNS configures the dynamic-record mode.
type DDNS struct {
	Domain    string   `mapstructure:"domain" yaml:"domain,omitempty"`
	Subdomain string   `mapstructure:"subdomain" yaml:"subdomain,omitempty"`
	Delay     int64    `mapstructure:"delay" yaml:"delay,omitempty"` // seconds between daemon runs
	Webhook   *Webhook `mapstructure:"webhook" yaml:"webhook,omitempty"`
}

// Rotation configures log file rotation.
type Rotation struct {
	MaxSize    int  `mapstructure:"max_size" yaml:"max_size,omitempty"` // megabytes
	MaxAge     int  `mapstructure:"max_age" yaml:"max_age,omitempty"`   // days
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups,omitempty"`
	Compress   bool `mapstructure:"compress" yaml:"compress,omitempty"`
}

// Log configures the process logger.
type Log struct {
	Level    string    `mapstructure:"level" yaml:"level,omitempty"`
	Format   string    `mapstructure:"format" yaml:"format,omitempty"` // console or json
	Output   string    `mapstructure:"output" yaml:"output,omitempty"` // stderr, stdout, none, or a file path
	Rotation *Rotation `mapstructure:"rotation" yaml:"rotation,omitempty"`
}

// Config is the full tool configuration. The credential triple is consumed
// by the API client; the rest configures the surrounding tooling.
type Config struct {
	APIKey       string `mapstructure:"api_key" yaml:"api_key"`
	SecretAPIKey string `mapstructure:"secret_api_key" yaml:"secret_api_key"`
	Endpoint     string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	DDNS         *DDNS  `mapstructure:"ddns" yaml:"ddns,omitempty"`
	Log          *Log   `mapstructure:"log" yaml:"log,omitempty"`

	sourceFile string
}

// Source returns the file this config was read from, if any.
func (c *Config) Source() string { return c.sourceFile }

// Credentials returns the authentication triple for the API client.
func (c *Config) Credentials() porkbun.Credentials {
	return porkbun.Credentials{
		APIKey:       c.APIKey,
		SecretAPIKey: c.SecretAPIKey,
		Endpoint:     c.Endpoint,
	}
}

// Validate checks the static required-field schema and reports every
// missing field at once.
func (c *Config) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, requiredFields[0])
	}
	if c.SecretAPIKey == "" {
		missing = append(missing, requiredFields[1])
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Path: c.sourceFile, Fields: missing}
	}
	return nil
}

// LoadFile reads the config file at path, merged with PORKBUN_* environment
// variables, without validating it. An empty path reads the environment
// alone. The file format follows the extension; both YAML and TOML work.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("endpoint", porkbun.DefaultEndpoint)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	cfg := &Config{sourceFile: path}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	// AutomaticEnv only resolves keys on direct lookup, so the scalar
	// credential fields are read explicitly.
	cfg.APIKey = v.GetString("api_key")
	cfg.SecretAPIKey = v.GetString("secret_api_key")
	cfg.Endpoint = v.GetString("endpoint")
	return cfg, nil
}

// Load reads and validates the configuration in one step.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path. Used by `config init` to scaffold a
// starting file.
func (c *Config) Save(path string) error {
	byt, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := os.WriteFile(path, byt, 0o600); err != nil {
		return errors.Wrapf(err, "writing config file %s", path)
	}
	return nil
}

// FindConfigPath returns the config file location: the override from the
// environment when set, otherwise a dotfile in the user's home directory.
func FindConfigPath() string {
	if path := os.Getenv(ConfigFilePathENV); path != "" {
		return path
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return defaultFileName
	}
	return dir + string(os.PathSeparator) + defaultFileName
}
