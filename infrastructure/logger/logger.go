package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	// stdout by default so container runtimes collect the stream,
	// LOG_TO_FILE=true switches to a dated file under ./logs
	logger.Out = os.Stdout
	if os.Getenv("LOG_TO_FILE") == "true" {
		if f, err := openLogFile(); err != nil {
			log.Warnf("open log file: %v, keeping stdout", err)
		} else {
			logger.Out = f
		}
	}

	logger.Formatter = &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}
	logger.SetLevel(log.DebugLevel)
}

func openLogFile() (*os.File, error) {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, err
	}
	env := os.Getenv("ENV")
	if env == "" {
		env = "dev"
	}
	name := fmt.Sprintf("%s-%s.log", time.Now().Format("2006-01-02"), env)
	return os.OpenFile(filepath.Join("logs", name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
}

// GetLogger returns an entry annotated with the calling site
func GetLogger() *log.Entry {
	pc, file, line, _ := runtime.Caller(1)
	return logger.WithFields(log.Fields{
		"function": runtime.FuncForPC(pc).Name(),
		"file":     filepath.Base(file),
		"line":     line,
	})
}
