// Package transport is the transport adapter (C6): a byte-oriented
// connection the session actor writes framed messages to and reads framed
// messages from, plus reconnection backoff. It knows nothing about FIX
// semantics — framing is the wire package's job (wire.Framer); this package
// only moves bytes.
package transport

import (
	"context"
	"io"
)

// Conn is the minimal surface the session actor needs from a transport
// connection: write a complete frame, read whatever bytes are currently
// available, and close. Implementations (TCPConn, and tests' in-memory
// pipes) satisfy this without pulling the session package into an import
// cycle.
type Conn interface {
	io.Closer
	// WriteFrame writes a complete, already-encoded wire frame.
	WriteFrame(frame []byte) error
	// ReadChunk blocks until at least one byte is available or ctx is
	// done, returning whatever arrived. The caller feeds it to a
	// wire.Framer to extract complete frames.
	ReadChunk(ctx context.Context) ([]byte, error)
}

// Dialer opens a new Conn to a remote endpoint. TCPDialer is the production
// implementation; tests supply their own.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}
