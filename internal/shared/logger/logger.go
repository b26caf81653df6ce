package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/ninepay-go/ninepay/internal/shared/config"
	"github.com/ninepay-go/ninepay/internal/shared/utils/logutil"
)

var (
	Logger      *slog.Logger
	atomicLevel *slog.LevelVar
	mu          sync.Mutex
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Init(cfg *config.LoggerConfig) error {
	level := parseLevel(cfg.Level)

	var writer io.Writer
	switch strings.ToLower(cfg.OutputPath) {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writer = file
	}

	mu.Lock()
	defer mu.Unlock()

	atomicLevel = new(slog.LevelVar)
	atomicLevel.Set(level)
	Logger = slog.New(newHandler(writer, cfg.Format, level))
	slog.SetDefault(Logger)

	return nil
}

// newHandler builds the handler chain. Source location is attached to warn and
// error records only, unless the level is debug.
func newHandler(writer io.Writer, format string, level slog.Level) slog.Handler {
	showSourceLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if level == slog.LevelDebug {
		showSourceLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	}

	if format == "json" {
		baseHandler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level:       atomicLevel,
			AddSource:   false,
			ReplaceAttr: redactAttr,
		})
		return NewConditionalSourceHandler(baseHandler, showSourceLevels...)
	}

	baseHandler := tint.NewHandler(writer, &tint.Options{
		Level:       atomicLevel,
		TimeFormat:  time.DateTime,
		AddSource:   false,
		NoColor:     !isTerminal(writer),
		ReplaceAttr: replaceErrorAttr,
	})
	return NewConditionalSourceHandler(baseHandler, showSourceLevels...)
}

func replaceErrorAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" && a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return tint.Err(err)
		}
	}
	return redactAttr(groups, a)
}

// redactAttr masks string attributes whose key names a credential or signature.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString && logutil.IsSensitiveKey(a.Key) {
		return slog.String(a.Key, logutil.MaskSecret(a.Value.String()))
	}
	return a
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if Logger == nil {
		atomicLevel = new(slog.LevelVar)
		atomicLevel.Set(slog.LevelInfo)
		Logger = slog.New(newHandler(os.Stderr, "console", slog.LevelInfo))
	}
	return Logger
}
