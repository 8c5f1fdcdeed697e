package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/sapper/internal/config"
)

// New builds the process logger: coloured text on stderr, debug level in
// development, and JSON lines to a rotating file when one is configured.
func New(c *config.Config) (*logrus.Logger, error) {
	log := logrus.New()

	logLevel := logrus.InfoLevel
	if c.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: c.Development()})

	if c.Log.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   c.Log.File,
			MaxSize:    c.Log.MaxSize,
			MaxBackups: c.Log.MaxBackups,
			MaxAge:     c.Log.MaxAge,
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open log file %s: %w", c.Log.File, err)
		}
		log.AddHook(hook)
	}

	return log, nil
}
