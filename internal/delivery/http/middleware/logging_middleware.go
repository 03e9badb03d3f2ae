package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type LoggingMiddleware struct {
	log *logrus.Logger
}

func NewLoggingMiddleware(log *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		log: log,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (m *LoggingMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		m.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
