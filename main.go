package main

import (
	"os"

	"github.com/Ahmed-Sermani/go-pagerank/cmd"
	"github.com/sirupsen/logrus"
)

var (
	appName = "pagerank"
	appSha  = ""
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := cmd.Execute(logger); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
