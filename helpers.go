package main

import (
	log "github.com/sirupsen/logrus"

	"gitlab.com/forked-pages/forked-pages/internal/errortracking"
)

func capturingFatal(err error, message string) {
	errortracking.CaptureErrWithStackTrace(err)
	log.WithError(err).Fatal(message)
}
