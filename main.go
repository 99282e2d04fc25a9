package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/go-mimedb"

	"gitlab.com/forked-pages/forked-pages/internal/config"
	"gitlab.com/forked-pages/forked-pages/internal/errortracking"
	"gitlab.com/forked-pages/forked-pages/internal/logging"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func initErrorReporting(cfg *config.Config) error {
	return errortracking.Initialize(
		cfg.Sentry.DSN,
		cfg.Sentry.Environment,
		fmt.Sprintf("%s-%s", VERSION, REVISION),
	)
}

func appMain() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	printVersion(cfg.General.ShowVersion, VERSION)

	if err := logging.ConfigureLogging(cfg.Log.Format, cfg.Log.Verbose); err != nil {
		log.WithError(err).Fatal("Failed to initialize logging")
	}

	if err := initErrorReporting(cfg); err != nil {
		log.WithError(err).Warn("Failed to initialize error reporting")
	}

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
	}).Info("forked pages server")

	config.LogConfig(cfg)

	if err := mimedb.LoadTypes(); err != nil {
		log.WithError(err).Warn("Loading mimedb types")
	}
	addExtraMIMETypes()

	a, err := newApp(cfg)
	if err != nil {
		capturingFatal(err, "could not create the server")
	}

	printBanner(os.Stdout, cfg.Listeners.HTTP)

	if err := a.Run(); err != nil {
		capturingFatal(err, "server stopped with an error")
	}
}

func printVersion(showVersion bool, version string) {
	if showVersion {
		fmt.Fprintf(os.Stdout, "%s\n", version)
		os.Exit(0)
	}
}

func main() {
	log.SetOutput(os.Stdout)

	appMain()
}
