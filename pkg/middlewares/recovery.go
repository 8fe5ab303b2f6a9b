package middlewares

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"

	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
)

type RecoveryMw struct {
	next http.Handler
}

func NewRecoveryMw() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return NewRecovery(next)
	}
}

func NewRecovery(next http.Handler) *RecoveryMw {
	return &RecoveryMw{next: next}
}

type recoveryBody struct {
	Error string `json:"error"`
	TxnID string `json:"txnId,omitempty"`
}

// Panics outside the dispatcher end up here.  The body is JSON so callers
// that only parse JSON still see a reason.
func (mw *RecoveryMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			logging.Logger(r.Context()).Errorf("caught panic: %v : %s", err, debug.Stack())

			rw.Header().Set("Content-Type", "application/json")
			rw.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(rw).Encode(recoveryBody{
				Error: http.StatusText(http.StatusInternalServerError),
				TxnID: rw.Header().Get(txnIDHeader),
			})
		}
	}()

	mw.next.ServeHTTP(rw, r)
}
