package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/jxo-me/porkbun/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FromConfig builds the process logger from the log section of the
// configuration. A nil section yields console output at info level.
func FromConfig(cfg *config.Log) zerolog.Logger {
	if cfg == nil {
		cfg = &config.Log{}
	}

	var out io.Writer = os.Stderr
	switch cfg.Output {
	case "none", "null":
		return zerolog.Nop()
	case "stdout":
		out = os.Stdout
	case "stderr", "":
		out = os.Stderr
	default:
		if cfg.Rotation != nil {
			out = &lumberjack.Logger{
				Filename:   cfg.Output,
				MaxSize:    cfg.Rotation.MaxSize,
				MaxAge:     cfg.Rotation.MaxAge,
				MaxBackups: cfg.Rotation.MaxBackups,
				Compress:   cfg.Rotation.Compress,
			}
		} else {
			_ = os.MkdirAll(filepath.Dir(cfg.Output), 0o755)
			f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
			if err == nil {
				out = f
			}
		}
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if l, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = l
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
