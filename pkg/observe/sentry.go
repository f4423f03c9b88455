package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"

	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
)

// SentryHook is an io.Writer fed with the zap JSON stream; error-level lines
// are forwarded to Sentry as events. Wire it as an extra writer to
// NewZapLogger in prod/dev zones.
type SentryHook struct {
	appZone string
	appName string
}

func NewSentryHook(appZone, appName, dsn string, isDebug bool) *SentryHook {
	if dsn == "" {
		log.Println("sentry init skipped: no DSN")
		return &SentryHook{appZone: appZone, appName: appName}
	}

	transport := sentry.NewHTTPTransport()
	transport.Timeout = _sentryServerRequestTimeout

	if err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appZone,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        transport,
	}); err != nil {
		log.Println("sentry init error:", err.Error())
	}

	return &SentryHook{appZone: appZone, appName: appName}
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal
	}
	return sentry.LevelDebug
}

type logLine struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	AppZone    string `json:"app_zone"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

func (h *SentryHook) Write(p []byte) (n int, err error) {
	if h.appZone != "prod" && h.appZone != "dev" {
		return len(p), nil
	}

	var t logLine
	if err := json.Unmarshal(p, &t); err != nil {
		log.Println(errors.Wrap(err, "[SentryHook] unmarshal log line").Error())
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(t.Level)
	if err != nil || len(t.Message) == 0 {
		return len(p), nil
	}

	switch level {
	case zapcore.ErrorLevel, zapcore.FatalLevel, zapcore.PanicLevel:
		timestamp, _ := time.Parse("2006-01-02T15-04-05.000", t.Timestamp)

		event := sentry.NewEvent()
		event.Environment = h.appZone
		event.Level = h.mapLevel(level)
		event.Timestamp = timestamp
		event.Message = t.Message
		event.Extra["AppName"] = h.appName
		event.Extra["Error"] = t.Error
		event.Extra["CallerFile"] = t.CallerFile
		event.Extra["CallerLine"] = t.CallerLine
		event.Extra["CallerFunc"] = t.CallerFunc
		event.Extra["Stack"] = t.Stack
		event.Exception = append(event.Exception, sentry.Exception{
			Type:       t.Message,
			Value:      t.Error,
			Stacktrace: sentry.NewStacktrace(),
		})
		sentry.CaptureEvent(event)
	}

	return len(p), nil
}

// Flush drains pending events; call it on shutdown.
func (h *SentryHook) Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
