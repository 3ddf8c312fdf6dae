package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger. Output goes to a rotated log file only:
// stdout and stderr belong to the TUI. An empty file path (or an unwritable
// log directory) silences the logger instead of failing startup.
func New(level, file string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	if file == "" {
		log.SetOutput(io.Discard)
		return log
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})
	return log
}
