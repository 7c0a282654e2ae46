package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is usable before InitLogger runs.
var Log = logrus.New()

func InitLogger(level string) {
	// Output to stdout instead of the default stderr
	Log.Out = os.Stdout

	// Set JSON formatter for structured logging
	Log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithField("level", level).Warn("Unknown log level, falling back to info")
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}
