package logutils

import (
	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger from a textual level.
// Unknown levels fall back to info.
func Setup(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', defaulting to 'info'", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
