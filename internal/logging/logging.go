package logging

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

const format = `%{time:2006-01-02 15:04:05} %{level:.5s}     %{module}: %{message}`

// InitLogger sets the go-logging backend to write to stderr at the given level.
// The level is parsed as a go-logging level name; an invalid name returns an error.
func InitLogger(logLevel string) error {
	return InitLoggerTo(os.Stderr, logLevel)
}

// InitLoggerTo is InitLogger with an explicit destination
func InitLoggerTo(w io.Writer, logLevel string) error {
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}

	baseBackend := logging.NewLogBackend(w, "", 0)
	backendFormatter := logging.NewBackendFormatter(baseBackend, logging.MustStringFormatter(format))

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}
