package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

// TCPConfig configures a TCPDialer.
type TCPConfig struct {
	Host string
	Port int
	// UseTLS wraps the connection in TLS once the TCP handshake completes.
	UseTLS bool
	// TLSConfig is used when UseTLS is true; a nil value uses Go's default
	// (system root CAs, no client cert).
	TLSConfig *tls.Config
	// MaxFrameSize bounds a single ReadChunk/frame, matching wire.Framer's
	// own cap so a misbehaving peer can't exhaust memory.
	MaxFrameSize int
	// ConnectTimeout bounds the TCP (and TLS, if enabled) handshake.
	ConnectTimeout time.Duration
}

// TCPDialer is the production Dialer: plain or TLS-wrapped TCP.
type TCPDialer struct {
	Config TCPConfig
}

func (d TCPDialer) Dial(ctx context.Context) (Conn, error) {
	addr := fmt.Sprintf("%s:%d", d.Config.Host, d.Config.Port)
	dialer := &net.Dialer{Timeout: d.Config.ConnectTimeout}

	raw, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	var nc net.Conn = raw
	if d.Config.UseTLS {
		tlsConn := tls.Client(raw, d.Config.TLSConfig)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = raw.Close()
			return nil, fmt.Errorf("tls handshake %s: %w", addr, err)
		}
		nc = tlsConn
	}

	maxFrame := d.Config.MaxFrameSize
	if maxFrame <= 0 {
		maxFrame = 16 * 1024 * 1024
	}
	return &TCPConn{conn: nc, readBuf: make([]byte, 64*1024), maxFrame: maxFrame}, nil
}

// TCPConn adapts a net.Conn (plain or TLS) to the Conn interface.
type TCPConn struct {
	conn     net.Conn
	readBuf  []byte
	maxFrame int
}

func (c *TCPConn) WriteFrame(frame []byte) error {
	_, err := c.conn.Write(frame)
	return err
}

func (c *TCPConn) ReadChunk(ctx context.Context) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetReadDeadline(deadline)
	} else {
		_ = c.conn.SetReadDeadline(time.Time{})
	}
	n, err := c.conn.Read(c.readBuf)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.readBuf[:n])
	return out, nil
}

func (c *TCPConn) Close() error {
	return c.conn.Close()
}
