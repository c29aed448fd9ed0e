package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"

	"github.com/pencroft/musepad/notes"
)

// setupLogger initializes musepad's logger (logrus). Warnings and errors go
// to musepad.log, verbose logs to musepad-debug.log, both inside the state
// directory.
func setupLogger(logger *logrus.Logger, dir string) (*os.File, *os.File, error) {
	logPath := filepath.Join(dir, "musepad.log")
	debugLogPath := filepath.Join(dir, "musepad-debug.log")

	// Open the log file and create if it does not exist.
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
	if err != nil {
		fmt.Printf("Logger error, exiting: %s", err)
		return nil, nil, err
	}

	// Create a separate log file for verbose logs.
	debugLogFile, err := os.OpenFile(debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
	if err != nil {
		fmt.Printf("Logger error, exiting: %s", err)
		return nil, nil, err
	}

	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&writer.Hook{
		Writer: logFile,
		LogLevels: []logrus.Level{
			logrus.WarnLevel,
			logrus.ErrorLevel,
			logrus.FatalLevel,
			logrus.PanicLevel,
		},
	})
	logger.AddHook(&writer.Hook{
		Writer: debugLogFile,
		LogLevels: []logrus.Level{
			logrus.TraceLevel,
			logrus.DebugLevel,
			logrus.InfoLevel,
		},
	})

	return logFile, debugLogFile, nil
}

// closeLogFiles closes the log files created at startup.
// closeLogFiles is meant to be used for defer calls.
func closeLogFiles(logFile, debugLogFile *os.File) {
	if err := logFile.Close(); err != nil {
		fmt.Printf("Failed to close log file: %s", err)
		return
	}

	if err := debugLogFile.Close(); err != nil {
		fmt.Printf("Failed to close debug log file: %s", err)
		return
	}
}

// logDoc "prints" the notes document state to the logs.
// The default behavior for logDoc is to NOT log anything, to keep the log
// files small; it can be toggled via the `-debug` flag.
func logDoc(doc notes.Document) {
	if flags.Debug {
		logger.Infof("---DOCUMENT STATE---")
		for i, s := range notes.Spans(doc) {
			logger.Infof("index: %v  mark: %v  start: %v  end: %v  text: %q", i, s.Mark, s.Start, s.End, s.Text)
		}
	}
}
