package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is a wrapper around the log.Logger from the charmbracelet/log package.
type Logger struct {
	*log.Logger
}

// New sets up the process logger. Setting DEBUG=1 enables debug level
// output with caller and timestamp reporting.
func New() *Logger {
	base := log.New(os.Stderr)

	if os.Getenv("DEBUG") == "1" {
		base = log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			Prefix:          "upload-gateway",
		})
		base.SetLevel(log.DebugLevel)
	} else {
		base.SetLevel(log.InfoLevel)
	}

	return &Logger{Logger: base}
}
