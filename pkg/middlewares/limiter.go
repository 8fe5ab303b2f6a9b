package middlewares

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/korovkin/limiter"

	"github.com/jake-scott/alexa-eolia/internal/pkg/logging"
)

// LimiterMw caps the number of requests being handled at once.  Requests
// over the cap wait for a slot rather than being rejected, the assistant
// does not retry.
type LimiterMw struct {
	limit *limiter.ConcurrencyLimiter
	next  http.Handler
}

// NewLimiterMw shares one limiter between every route it wraps
func NewLimiterMw(maxInFlight int) mux.MiddlewareFunc {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	limit := limiter.NewConcurrencyLimiter(maxInFlight)

	return func(next http.Handler) http.Handler {
		return &LimiterMw{limit: limit, next: next}
	}
}

func (mw *LimiterMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	done := make(chan struct{})

	// The job runs on the limiter's goroutine; a panic there is carried back
	// so outer middlewares can recover it
	var caught interface{}
	ticket := mw.limit.ExecuteWithTicket(func(ticket int) {
		defer func() {
			caught = recover()
			close(done)
		}()

		mw.next.ServeHTTP(rw, r)
	})
	logging.Logger(r.Context()).Debugf("handling with limiter ticket %d", ticket)

	<-done
	if caught != nil {
		panic(caught)
	}
}
