package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bielborgesc/piggino/config"
)

var log zerolog.Logger

func init() {
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init reconfigura o logger global de acordo com o ambiente:
// console colorido em desenvolvimento, JSON em produção.
func Init(cfg *config.Config) {
	level := zerolog.InfoLevel
	if cfg.App.Debug {
		level = zerolog.DebugLevel
	}

	if cfg.App.Environment == "production" {
		log = zerolog.New(os.Stdout).
			Level(level).
			With().
			Timestamp().
			Str("app", cfg.App.Name).
			Logger()
		return
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
