package middlewares

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
)

const txnIDHeader = "X-Txn-ID"

// Captures the status and size of a response, optionally logging the body
type auditWriter struct {
	http.ResponseWriter

	statusCode       int
	size             int
	logData          bool
	ctx              context.Context
	hasLoggedHeaders bool
}

func newAuditWriter(ctx context.Context, logData bool, rw http.ResponseWriter) *auditWriter {
	return &auditWriter{
		ResponseWriter: rw,
		statusCode:     http.StatusOK,
		logData:        logData,
		ctx:            ctx,
	}
}

func (rw *auditWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *auditWriter) Write(b []byte) (int, error) {
	if rw.logData && !rw.hasLoggedHeaders {
		logging.Logger(rw.ctx).Debugf("response headers: %+v", rw.ResponseWriter.Header())
		rw.hasLoggedHeaders = true
	}

	size, err := rw.ResponseWriter.Write(b)
	rw.size += size

	if err == nil && rw.logData {
		logging.Logger(rw.ctx).Debugf("response body (%d bytes): %s", size, b[:size])
	}
	return size, err
}

// Wrapper around the request body that logs every read as a string
type bodyLogger struct {
	io.ReadCloser
	ctx context.Context
}

func (bl bodyLogger) Read(b []byte) (size int, err error) {
	size, err = bl.ReadCloser.Read(b)
	if size > 0 {
		logging.Logger(bl.ctx).Debugf("request body (%d bytes): %s", size, b[:size])
	}

	return size, err
}

// LoggingMw tags each request with a transaction ID and writes one audit
// entry per request once it has been answered
type LoggingMw struct {
	logRequests bool
	next        http.Handler
}

func NewLoggingMw(logRequests bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return NewLogging(logRequests, next)
	}
}

func NewLogging(logRequests bool, next http.Handler) *LoggingMw {
	return &LoggingMw{next: next, logRequests: logRequests}
}

func (mw *LoggingMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	txnID := uuid.New().String()
	startTime := time.Now()

	// Set the output header now before something writes any response body
	rw.Header().Set(txnIDHeader, txnID)

	r = r.WithContext(logging.WithTxnID(r.Context(), txnID))

	if mw.logRequests {
		logging.Logger(r.Context()).Debugf("request headers: %+v", r.Header)
		r.Body = bodyLogger{ReadCloser: r.Body, ctx: r.Context()}
	}

	aw := newAuditWriter(r.Context(), mw.logRequests, rw)
	mw.next.ServeHTTP(aw, r)

	logging.Logger(r.Context()).WithFields(
		logrus.Fields{
			"entrytype": "audit",
			"status":    aw.statusCode,
			"method":    r.Method,
			"proto":     r.Proto,
			"host":      r.Host,
			"remote":    r.RemoteAddr,
			"useragent": r.UserAgent(),
			"start":     startTime.Format(time.RFC3339Nano),
			"duration":  time.Since(startTime),
			"path":      r.URL.String(),
			"size":      aw.size,
		},
	).Info(http.StatusText(aw.statusCode))
}
