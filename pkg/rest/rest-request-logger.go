package rest

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

type loggerContextKey struct{}

// RequestLogger tags each request with a unique ID and attaches a request-scoped
// field logger to the context, for handlers to retrieve with GetLogger.
func (e *Engine) RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			reqUUID, err := uuid.NewV4()
			if err != nil {
				e.baseLogger.WithError(err).Error("can't generate a request UUID")
				writer.WriteHeader(http.StatusInternalServerError)
				return
			}

			var logger = e.baseLogger.WithFields(logrus.Fields{
				"reqid":     reqUUID.String(),
				"remote-ip": request.RemoteAddr,
				"method":    request.Method,
				"path":      request.URL.Path,
			})

			next.ServeHTTP(writer, request.WithContext(
				context.WithValue(request.Context(), loggerContextKey{}, logger)))
		})
	}
}

// GetLogger returns the request-scoped logger, or nil when the logging middleware wasn't applied.
// Callers tolerate a nil logger, so routes remain testable without the full middleware chain.
func GetLogger(request *http.Request) logrus.FieldLogger {
	if logger, ok := request.Context().Value(loggerContextKey{}).(logrus.FieldLogger); ok {
		return logger
	}
	return nil
}
