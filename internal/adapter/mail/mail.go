// Package mail provides the outbound email transports behind the
// port.Mailer interface: AWS SES v2 and plain SMTP. Both are fronted by
// a token-bucket rate limiter so the sustained request rate presented to
// the provider stays below its quota regardless of dispatch batching.
package mail

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"bookpress/internal/config/configs"
	"bookpress/internal/core/port"
)

// New builds the configured Mailer implementation.
func New(ctx context.Context, cfg configs.Mail) (port.Mailer, error) {
	limiter := newLimiter(cfg.RatePerSecond)
	switch cfg.Provider {
	case "ses":
		return NewSESMailer(ctx, cfg, limiter)
	case "smtp":
		return NewSMTPMailer(cfg, limiter), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
