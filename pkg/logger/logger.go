// Package logger — структурированное логирование на базе zerolog.
// JSON для production, pretty-print для разработки.
// Сообщения логов пишутся на русском языке.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// log — глобальный логгер. До вызова Init настроен из LOG_LEVEL и LOG_PRETTY.
var log zerolog.Logger

// Config — настройки логгера.
type Config struct {
	// Level: "trace", "debug", "info", "warn", "error". По умолчанию "info".
	Level string

	// Pretty включает цветной вывод для разработки.
	Pretty bool

	// Service добавляется в каждую запись полем service.
	Service string

	// Output — куда писать. По умолчанию os.Stdout.
	Output io.Writer
}

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	Init(Config{
		Level:  level,
		Pretty: strings.EqualFold(os.Getenv("LOG_PRETTY"), "true"),
	})
}

// Init настраивает глобальный логгер. Вызывается в начале main.
func Init(cfg Config) {
	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	level := parseLevel(cfg.Level)

	ctx := zerolog.New(output).Level(level).With().Timestamp().Caller()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	log = ctx.Logger()

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
}

// parseLevel возвращает InfoLevel для неизвестных значений.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug — детали для отладки.
// Пример: logger.Debug().Str("mode", "psp").Msg("Заказ собран")
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info — штатная работа.
func Info() *zerolog.Event {
	return log.Info()
}

// Warn — потенциальные проблемы: отклонённые webhooks, пустой allow-list.
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error — ошибки, после которых сервис продолжает работу.
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal пишет запись и завершает процесс с кодом 1.
func Fatal() *zerolog.Event {
	return log.Fatal()
}

// With возвращает контекст для дочернего логгера с дополнительными полями.
func With() zerolog.Context {
	return log.With()
}

// Logger возвращает глобальный логгер.
func Logger() zerolog.Logger {
	return log
}

// SetGlobalLogger подменяет глобальный логгер (используется в тестах).
func SetGlobalLogger(l zerolog.Logger) {
	log = l
}
