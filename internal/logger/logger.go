package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Leveled writes every message at a fixed logrus level.
type Leveled struct {
	log   *logrus.Logger
	level logrus.Level
}

func (l *Leveled) Printf(format string, args ...interface{}) {
	l.log.Logf(l.level, format, args...)
}

func (l *Leveled) Println(args ...interface{}) {
	l.log.Logln(l.level, args...)
}

var (
	Info    *Leveled
	Warn    *Leveled
	Debug   *Leveled
	Verbose *Leveled
	Error   *Leveled
	Always  *Leveled // Always logs to file regardless of log level

	base    *logrus.Logger
	errs    *logrus.Logger
	always  *logrus.Logger
	logFile *os.File

	// Current log level for filtering
	currentLogLevel string
)

func init() {
	configure("info", os.Stderr, os.Stderr)
}

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "vanilla.log")
}

// InitWithConfig sends leveled output to logFilePath; errors are also
// copied to stderr.
func InitWithConfig(logLevel, logFilePath string) error {
	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	configure(logLevel, f, io.MultiWriter(os.Stderr, f))
	return nil
}

// InitWithWriter is InitWithConfig for an arbitrary writer.
func InitWithWriter(logLevel string, w io.Writer) {
	configure(logLevel, w, w)
}

func configure(logLevel string, out, errOut io.Writer) {
	currentLogLevel = logLevel
	formatter := &logrus.TextFormatter{FullTimestamp: true, DisableColors: true}

	base = logrus.New()
	base.SetOutput(out)
	base.SetFormatter(formatter)
	base.SetLevel(ParseLevel(logLevel))

	errs = logrus.New()
	errs.SetOutput(errOut)
	errs.SetFormatter(formatter)
	errs.SetReportCaller(true)

	always = logrus.New()
	always.SetOutput(out)
	always.SetFormatter(formatter)
	always.SetLevel(logrus.TraceLevel)

	Info = &Leveled{log: base, level: logrus.InfoLevel}
	Warn = &Leveled{log: base, level: logrus.WarnLevel}
	Debug = &Leveled{log: base, level: logrus.DebugLevel}
	Verbose = &Leveled{log: base, level: logrus.TraceLevel}
	Error = &Leveled{log: errs, level: logrus.ErrorLevel}
	Always = &Leveled{log: always, level: logrus.InfoLevel}
}

// WithFields returns a structured entry on the leveled logger.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return base.WithFields(fields)
}

// ParseLevel maps error|warn|info|debug|verbose to logrus levels, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch level {
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	case "verbose":
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

// Enabled reports whether messages at level are written under the current level.
func Enabled(level string) bool {
	levels := map[string]int{
		"error":   0,
		"warn":    1,
		"info":    2,
		"debug":   3,
		"verbose": 4,
	}

	currentLevel, exists := levels[currentLogLevel]
	if !exists {
		currentLevel = 2 // default to info
	}

	requiredLevel, exists := levels[level]
	if !exists {
		return false
	}

	return currentLevel >= requiredLevel
}
