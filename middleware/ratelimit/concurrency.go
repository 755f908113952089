package ratelimit

import (
	"net/http"
	"time"

	"divisors-gateway/middleware/ratelimit/application"
	"divisors-gateway/middleware/ratelimit/domain"
	"divisors-gateway/middleware/ratelimit/infra"
)

type ConcurrencyOptions struct {
	Max int
	// Pool substitui o pool criado a partir de Max (ex.: para expor a ocupação no /health).
	Pool           domain.SlotPool
	RejectStatus   int
	AcquireTimeout time.Duration
	JSONErrors     bool
}

func ConcurrencyMiddleware(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	if opts.Pool == nil {
		if opts.Max <= 0 {
			return func(next http.Handler) http.Handler { return next }
		}
		opts.Pool = infra.NewChanPool(opts.Max)
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}

	svc := application.ConcurrencyService{
		Pool:           opts.Pool,
		AcquireTimeout: opts.AcquireTimeout,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, ok := svc.Acquire(r.Context())
			if !ok {
				writeReject(w, opts.RejectStatus, opts.JSONErrors)
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
