package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Init()

	Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Debugf(template string, args ...any)

	Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Infof(template string, args ...any)

	Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Warnf(template string, args ...any)

	Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Errorf(template string, args ...any)

	Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Fatalf(template string, args ...any)
}

type LoggerConfig struct {
	FilePath string
	Encoding string
	Level    string
	Logger   string
	AppName  string
}

func NewDefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		FilePath: "",
		Encoding: "json",
		Level:    "debug",
		Logger:   "zap",
		AppName:  "game-socket-server",
	}
}

func NewLogger(cfg *LoggerConfig) Logger {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}

	var l Logger
	switch cfg.Logger {
	case "zap", "":
		l = newZapLogger(cfg)
	case "zerolog":
		l = newZeroLogger(cfg)
	default:
		panic(fmt.Sprintf("logger not supported: %q: supported loggers: [zap, zerolog]", cfg.Logger))
	}

	l.Init()
	return l
}

// output returns a rotating file when FilePath is set, stdout otherwise.
func output(cfg *LoggerConfig) io.Writer {
	if cfg.FilePath == "" {
		return os.Stdout
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.FilePath, cfg.AppName+".log"),
		MaxSize:    10,
		MaxAge:     20,
		MaxBackups: 5,
		LocalTime:  true,
		Compress:   true,
	}
}
