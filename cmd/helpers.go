package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/config"
	"github.com/xiaorui77/ifacex-watch/internal/storage"
	"github.com/xiaorui77/ifacex-watch/internal/utils/logx_hooks"
)

var logFile *os.File

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func mustStore() storage.Store {
	store, err := storage.NewStore(conf.Storage)
	if err != nil {
		fatal("Failed to open credential store: %v", err)
	}
	return store
}

// setupLogger writes logs to the UI panel when one is given, and to
// log.file when configured. With neither, logs go to stderr.
func setupLogger(conf *config.Config, panel io.Writer) {
	level, err := logrus.ParseLevel(conf.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableQuote: true})
	logrus.StandardLogger().ReplaceHooks(logrus.LevelHooks{})
	logrus.AddHook(logx_hooks.NewPostFormat())

	var writers []io.Writer
	if panel != nil {
		writers = append(writers, panel)
	}
	if conf.Log.File != "" && logFile == nil {
		logFile, err = os.OpenFile(conf.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file failed: %v\n", err)
		}
	}
	if logFile != nil {
		writers = append(writers, logFile)
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}
	logrus.SetOutput(io.MultiWriter(writers...))
}
