package config

import (
	"github.com/jxo-me/porkbun/pkg/watcher"
	"github.com/rs/zerolog"
)

// Notifier receives config updates pushed by a FileManager.
type Notifier interface {
	ConfigDidUpdate(Config)
}

// FileManager watches the config file and pushes fresh configurations to
// its Notifier whenever the file changes on disk. Daemon mode uses it for
// live reload.
type FileManager struct {
	watcher    watcher.Notifier
	configPath string
	log        *zerolog.Logger
	notifier   Notifier

	// ReadConfig is swappable for tests.
	ReadConfig func(configPath string, log *zerolog.Logger) (Config, error)
}

// NewFileManager watches configPath for changes.
func NewFileManager(w watcher.Notifier, configPath string, log *zerolog.Logger) (*FileManager, error) {
	m := &FileManager{
		watcher:    w,
		configPath: configPath,
		log:        log,
		ReadConfig: readConfig,
	}
	if err := w.Add(configPath); err != nil {
		return nil, err
	}
	return m, nil
}

// Start blocks pumping config updates to the notifier. The current config
// is pushed once up front so the notifier always starts from a known state.
func (m *FileManager) Start(notifier Notifier) error {
	m.notifier = notifier

	cfg, err := m.GetConfig()
	if err != nil {
		return err
	}
	notifier.ConfigDidUpdate(cfg)

	m.watcher.Start(m)
	return nil
}

// GetConfig reads the current configuration from disk.
func (m *FileManager) GetConfig() (Config, error) {
	return m.ReadConfig(m.configPath, m.log)
}

// Shutdown stops the file watcher.
func (m *FileManager) Shutdown() {
	m.watcher.Shutdown()
}

// WatcherItemDidChange is the file watcher callback.
func (m *FileManager) WatcherItemDidChange(string) {
	cfg, err := m.GetConfig()
	if err != nil {
		m.log.Err(err).Msg("failed to read new config")
		return
	}
	m.log.Info().Msg("config file has been updated")
	m.notifier.ConfigDidUpdate(cfg)
}

// WatcherDidError is the file watcher error callback.
func (m *FileManager) WatcherDidError(err error) {
	m.log.Err(err).Msg("config watcher encountered an error")
}

func readConfig(configPath string, _ *zerolog.Logger) (Config, error) {
	c, err := Load(configPath)
	if err != nil {
		return Config{}, err
	}
	return *c, nil
}
