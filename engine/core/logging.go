package core

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type LogLevel = log.Level

const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
	FatalLevel = log.FatalLevel
)

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	once.Do(
		func() {
			l := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Prefix:          "Engine 🎥 ",
				CallerOffset:    1,
			})
			l.SetLevel(log.InfoLevel)
			singleton = &logger{l}
		})
	return singleton
}

// ParseLogLevel turns a config value such as "debug" or "warn" into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	l, err := log.ParseLevel(level)
	if err != nil {
		return InfoLevel, fmt.Errorf("%w: log level %q", ErrInvalidConfig, level)
	}
	return l, nil
}

func SetLogLevel(level LogLevel) {
	getLogger().SetLevel(level)
}

// SetLogOutput redirects the engine logger, mostly useful in tests.
func SetLogOutput(w io.Writer) {
	getLogger().SetOutput(w)
}

// LogFile mirrors the engine log into a file next to stderr.
type LogFile struct {
	file *os.File
}

// OpenLogFile truncates path and tees every following log line into it.
// Close restores stderr as the only output.
func OpenLogFile(path string) (*LogFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	SetLogOutput(io.MultiWriter(os.Stderr, f))
	LogInfo("log file %s started, local time %s", path, time.Now().Format(time.RFC1123))
	return &LogFile{file: f}, nil
}

func (lf *LogFile) Close() error {
	SetLogOutput(os.Stderr)
	return lf.file.Close()
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
