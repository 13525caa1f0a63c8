package common

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// InitLogging sets up the standard logrus logger used by the commands
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	log.SetLevel(log.InfoLevel)
}

// SetLogLevel parses one of DEBUG, INFO, WARN, ERROR, FATAL. verbose forces
// DEBUG.
func SetLogLevel(level string, verbose bool) error {
	if verbose {
		log.SetLevel(log.DebugLevel)
		return nil
	}
	switch strings.ToUpper(level) {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO", "":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}
