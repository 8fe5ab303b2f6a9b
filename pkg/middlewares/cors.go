package middlewares

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
)

// CorsMw lets browser based consoles post directives for testing.  The
// assistant itself never needs it.
type CorsMw struct {
	h http.Handler
}

// NewCorsMw allows POSTs of JSON bodies from the given origins
func NewCorsMw(origins []string) mux.MiddlewareFunc {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Correlation-ID"},
		ExposedHeaders: []string{"X-Txn-ID", "X-Correlation-ID"},
		MaxAge:         600,
	}

	return func(next http.Handler) http.Handler {
		return NewCors(opts, next)
	}
}

// Called once for each middleware chain
func NewCors(opts cors.Options, next http.Handler) *CorsMw {
	c := cors.New(opts)

	return &CorsMw{
		h: c.Handler(next),
	}
}

// This should be the first Middleware in the chain
func (mw *CorsMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" {
		logging.Logger(r.Context()).Debugf("cross-origin %s from %s", r.Method, origin)
	}

	mw.h.ServeHTTP(rw, r)
}
