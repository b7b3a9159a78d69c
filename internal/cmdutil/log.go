package cmdutil

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel, when set to a zap level name, sets the default log level.
const EnvLogLevel = "FAIDX_LOG_LEVEL"

// cliEncoder is for human eyes on stderr; nothing parses it.
var cliEncoder = zapcore.EncoderConfig{
	LevelKey:       "L",
	NameKey:        "N",
	MessageKey:     "M",
	TimeKey:        zapcore.OmitKey,
	CallerKey:      zapcore.OmitKey,
	FunctionKey:    zapcore.OmitKey,
	StacktraceKey:  zapcore.OmitKey,
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
}

// LevelFor picks the logger level: quiet wins over verbose, and an explicit
// env level applies only when neither flag is set.
func LevelFor(quiet, verbose bool, env string) zapcore.Level {
	switch {
	case quiet:
		return zapcore.ErrorLevel
	case verbose:
		return zapcore.DebugLevel
	}
	var l zapcore.Level
	if env != "" && l.UnmarshalText([]byte(env)) == nil {
		return l
	}
	return zapcore.InfoLevel
}

// NewLogger returns a console logger writing to dst at level.
func NewLogger(dst io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cliEncoder), zapcore.AddSync(dst), level)
	return zap.New(core).Named("faidx")
}
