package main

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

// applyAccessHandlers wraps the composed router with access logging and panic
// recovery, so a misbehaving handler can't take the whole process down.
func applyAccessHandlers(h http.Handler, logger *logrus.Logger) http.Handler {
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger),
		handlers.PrintRecoveryStack(true),
	)(h)
	return handlers.LoggingHandler(logger.Writer(), h)
}
