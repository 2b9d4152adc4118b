// Package logging configures the server's structured logger: a colored
// "[HH:MM:SS] LEVEL: message" console format, mirrored to a timestamped
// file under logs/, with source locations enabled by the LOG_DEBUG
// environment variable.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Init configures logrus's standard logger and returns the opened log
// file so the caller can close it on shutdown.
func Init() (*os.File, error) {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}

	name := filepath.Join("logs", time.Now().UTC().Format("2006-01-02_15-04-05")+".log")
	file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	debug := os.Getenv("LOG_DEBUG") == "1" || os.Getenv("LOG_DEBUG") == "true"

	logrus.SetOutput(io.MultiWriter(os.Stdout, file))
	logrus.SetFormatter(&consoleFormatter{includeCaller: debug})
	logrus.SetReportCaller(debug)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.Warn("LOG_DEBUG is set: logs will include source file and line numbers")
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	return file, nil
}

// consoleFormatter renders entries as "[HH:MM:SS] LEVEL: message",
// colored by level, optionally followed by the caller location.
type consoleFormatter struct {
	includeCaller bool
}

var levelColor = map[logrus.Level]string{
	logrus.ErrorLevel: "\x1b[31m",
	logrus.WarnLevel:  "\x1b[33m",
	logrus.InfoLevel:  "\x1b[32m",
	logrus.DebugLevel: "\x1b[34m",
	logrus.TraceLevel: "\x1b[90m",
}

const colorReset = "\x1b[0m"
const colorDim = "\x1b[90m"

func (f *consoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf []byte
	buf = append(buf, colorDim...)
	buf = append(buf, '[')
	buf = entry.Time.AppendFormat(buf, "15:04:05")
	buf = append(buf, ']')
	buf = append(buf, colorReset...)
	buf = append(buf, ' ')

	color := levelColor[entry.Level]
	buf = append(buf, color...)
	buf = append(buf, entry.Level.String()...)
	buf = append(buf, colorReset...)

	if f.includeCaller && entry.Caller != nil {
		buf = append(buf, colorDim...)
		buf = append(buf, fmt.Sprintf(" %s:%d", entry.Caller.File, entry.Caller.Line)...)
		buf = append(buf, colorReset...)
	}

	buf = append(buf, colorDim...)
	buf = append(buf, ": "...)
	buf = append(buf, colorReset...)
	buf = append(buf, entry.Message...)

	for k, v := range entry.Data {
		buf = append(buf, fmt.Sprintf(" %s=%v", k, v)...)
	}

	buf = append(buf, '\n')
	return buf, nil
}
