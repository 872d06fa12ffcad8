package transport

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ReconnectConfig bounds the exponential backoff applied between reconnect
// attempts after an unexpected transport loss.
type ReconnectConfig struct {
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration // 0 means retry indefinitely
}

// newBackOff builds a cenkalti/backoff ExponentialBackOff from config,
// falling back to its documented defaults for any zero field.
func newBackOff(cfg ReconnectConfig) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	}
	if cfg.Multiplier > 0 {
		b.Multiplier = cfg.Multiplier
	}
	if cfg.MaxInterval > 0 {
		b.MaxInterval = cfg.MaxInterval
	}
	b.MaxElapsedTime = cfg.MaxElapsedTime
	return b
}

// Reconnect retries dial until it succeeds, ctx is canceled, or the
// configured MaxElapsedTime is exceeded (if non-zero).
func Reconnect(ctx context.Context, dialer Dialer, cfg ReconnectConfig, onAttemptFailed func(err error, next time.Duration)) (Conn, error) {
	b := backoff.WithContext(newBackOff(cfg), ctx)

	var conn Conn
	op := func() error {
		c, err := dialer.Dial(ctx)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}

	notify := func(err error, next time.Duration) {
		if onAttemptFailed != nil {
			onAttemptFailed(err, next)
		}
	}

	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, err
	}
	return conn, nil
}
