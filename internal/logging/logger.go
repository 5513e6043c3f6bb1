package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/fitbase/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultServiceName = "fitbase"

	productionTracesSampleRate = 0.2
)

type LoggerSetupParams struct {
	// ServiceName names the log file when LogFileName is a directory and
	// tags every sentry event.
	ServiceName string
	// Release is the running version, usually the last commit hash.
	Release string

	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	Environment   string
	SentryEnabled bool
	SentryDSN     string
}

func (p LoggerSetupParams) production() bool {
	switch strings.ToLower(p.Environment) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

func (p LoggerSetupParams) serviceName() string {
	if p.ServiceName == "" {
		return defaultServiceName
	}
	return p.ServiceName
}

// level falls back to info in production and trace elsewhere.
func (p LoggerSetupParams) level() logrus.Level {
	if strings.TrimSpace(p.LogLevel) == "" && p.production() {
		return logrus.InfoLevel
	}
	return GetLevel(p.LogLevel)
}

// logFilePath resolves the lumberjack target. A directory gets
// <service>.log inside it, an empty name means stdout only.
func (p LoggerSetupParams) logFilePath() string {
	name := strings.TrimSpace(p.LogFileName)
	if name == "" {
		return ""
	}

	isDir := strings.HasSuffix(name, string(os.PathSeparator))
	if !isDir {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			isDir = true
		}
	}
	if isDir {
		return filepath.Join(name, p.serviceName()+".log")
	}

	if !strings.HasSuffix(name, ".log") {
		name += ".log"
	}
	return name
}

func (p LoggerSetupParams) sentryOptions() sentry.ClientOptions {
	sampleRate := 1.0
	if p.production() {
		sampleRate = productionTracesSampleRate
	}

	tags := map[string]string{
		"service":     p.serviceName(),
		"environment": p.Environment,
	}
	if p.Release != "" {
		tags["release"] = p.Release
	}

	return sentry.ClientOptions{
		Dsn:              p.SentryDSN,
		Environment:      p.Environment,
		Release:          p.Release,
		ServerName:       p.serviceName(),
		TracesSampleRate: sampleRate,
		Tags:             tags,
	}
}

// Setup configures the global logrus logger. Production always logs JSON.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON || params.production() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if params.SentryEnabled {
		if err := sentry.Init(params.sentryOptions()); err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		}

		hook := NewSentryHook([]logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		logrus.AddHook(hook)

		logrus.Infof("sentry set up for [%s] in [%s]", params.serviceName(), params.Environment)
	}

	logrus.SetLevel(params.level())

	logFilePath := params.logFilePath()
	if logFilePath == "" {
		logrus.SetOutput(os.Stdout)
		logrus.Println("writing logs only to STDOUT")
		return
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    50,    // megabytes
		LocalTime:  false, // false -> use UTC
		Compress:   true,
		MaxBackups: 30,
		MaxAge:     90, // days
	}

	if params.LogToStdout {
		logrus.SetOutput(
			pkg.NewCombinedWriter(os.Stdout, lumberJackLogger),
		)
		logrus.Printf("writing logs to [%s] and STDOUT", logFilePath)
	} else {
		logrus.SetOutput(lumberJackLogger)
	}
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn":
		return logrus.WarnLevel
	default:
		return logrus.TraceLevel
	}
}
