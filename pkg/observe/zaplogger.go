package observe

import (
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with the app identity fields and caller metadata every
// log line carries. Handlers and services depend on this type, not on zap.
type Logger struct {
	appEnv  string
	appName string
	l       *zap.Logger
}

func NewZapLogger(appName, appEnv string, writers ...io.Writer) *Logger {
	var syncers []zapcore.WriteSyncer

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15-04-05.000")
	cfg.TimeKey = "timestamp"

	if len(writers) == 0 {
		syncers = append(syncers, os.Stdout)
	} else {
		for _, w := range writers {
			syncers = append(syncers, zapcore.AddSync(w))
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.NewMultiWriteSyncer(syncers...),
		zapcore.DebugLevel,
	)

	return &Logger{
		appEnv:  appEnv,
		appName: appName,
		l:       zap.New(core),
	}
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	extra := []zap.Field{
		zap.String("error", err.Error()),
		zap.Stack("stack"),
	}
	l.log(zapcore.ErrorLevel, err.Error(), fields, extra...)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.log(zapcore.WarnLevel, msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.log(zapcore.InfoLevel, msg, fields)
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.log(zapcore.DebugLevel, msg, fields)
}

func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.log(zapcore.FatalLevel, msg, fields)
}

func (l *Logger) log(level zapcore.Level, msg string, fields []map[string]any, extra ...zap.Field) {
	file, line, funcName := callerParams()

	zapFields := make([]zap.Field, 0, 8)
	if len(fields) > 0 {
		for k, v := range fields[0] {
			zapFields = append(zapFields, zap.Any(k, v))
		}
	}

	zapFields = append(zapFields,
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	)
	zapFields = append(zapFields, extra...)

	if ce := l.l.Check(level, msg); ce != nil {
		ce.Write(zapFields...)
	}
}

func callerParams() (file string, line int, funcName string) {
	// Caller(3): callerParams -> log -> level method -> call site.
	pc, file, line, ok := runtime.Caller(3)
	if !ok {
		return "not_defined", 0, "not_defined"
	}
	return file, line, runtime.FuncForPC(pc).Name()
}
