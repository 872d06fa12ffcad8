package transport

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flakyDialer struct {
	failuresBeforeSuccess int
	attempts              int
}

func (d *flakyDialer) Dial(ctx context.Context) (Conn, error) {
	d.attempts++
	if d.attempts <= d.failuresBeforeSuccess {
		return nil, errors.New("connection refused")
	}
	return &fakeConn{}, nil
}

type fakeConn struct{ closed bool }

func (c *fakeConn) WriteFrame(frame []byte) error           { return nil }
func (c *fakeConn) ReadChunk(ctx context.Context) ([]byte, error) { return nil, nil }
func (c *fakeConn) Close() error                             { c.closed = true; return nil }

func TestReconnect_SucceedsAfterTransientFailures(t *testing.T) {
	dialer := &flakyDialer{failuresBeforeSuccess: 2}
	cfg := ReconnectConfig{InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}

	var failures int
	conn, err := Reconnect(context.Background(), dialer, cfg, func(err error, next time.Duration) {
		failures++
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn == nil {
		t.Fatalf("expected a connection")
	}
	if failures != 2 {
		t.Fatalf("expected 2 reported failures, got %d", failures)
	}
	if dialer.attempts != 3 {
		t.Fatalf("expected 3 dial attempts, got %d", dialer.attempts)
	}
}

func TestReconnect_RespectsContextCancellation(t *testing.T) {
	dialer := &flakyDialer{failuresBeforeSuccess: 1000}
	cfg := ReconnectConfig{InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Reconnect(ctx, dialer, cfg, nil)
	if err == nil {
		t.Fatalf("expected an error once context is canceled")
	}
}
