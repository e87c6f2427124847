package bfhl

import (
	"net/http"
	"time"

	"bfhl-service/bfhl/application"
	"bfhl-service/bfhl/infra"
)

type ConcurrencyOptions struct {
	Max            int
	AcquireTimeout time.Duration
}

// ConcurrencyMiddleware limita requisições simultâneas. Max <= 0 desliga o limite.
// Sem vaga dentro do AcquireTimeout responde 503 com envelope de falha.
func ConcurrencyMiddleware(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	return limitSlots(newSlotPool(opts), opts.AcquireTimeout)
}

func newSlotPool(opts ConcurrencyOptions) *infra.ChanPool {
	if opts.Max <= 0 {
		return nil
	}
	return infra.NewChanPool(opts.Max)
}

func limitSlots(pool *infra.ChanPool, timeout time.Duration) func(next http.Handler) http.Handler {
	if pool == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	slots := application.Slots{Pool: pool, AcquireTimeout: timeout}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, err := slots.Acquire(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
