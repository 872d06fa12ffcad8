// Package config holds the engine's ambient stack: connection and session
// parameters the embedder supplies, plus the Clock and Logger seams that
// let tests and alternate deployments swap in their own implementations.
package config

import (
	"crypto/tls"
	"time"
)

// Config is every knob the embedder needs to set to stand up a session
// against Deribit's FIX gateway. It is a plain struct, owned and
// constructed by the caller — this engine never reads environment
// variables or config files itself.
type Config struct {
	Host string
	Port int
	UseTLS    bool
	TLSConfig *tls.Config

	SenderCompID string
	TargetCompID string

	APIKey    string
	APISecret string

	HeartBtInt          int // seconds; 30 is Deribit's documented default
	ResetSeqNumOnLogon  bool
	CancelOnDisconnect  bool

	ConnectTimeout time.Duration
	LogonTimeout   time.Duration
	LogoutTimeout  time.Duration
	TestRequestGrace time.Duration

	// ResendWindowCap bounds how many messages a single ResendRequest may
	// ask for in one go; 0 means no cap.
	ResendWindowCap uint64

	MaxFrameSize int

	Reconnect ReconnectConfig

	// QuoteGroupingSimplified selects Deribit's flattened MassQuote layout
	// instead of the standard nested NoQuoteSets/NoQuoteEntries groups.
	QuoteGroupingSimplified bool

	// StatePath, if non-empty, persists sequence counters and retained
	// messages to a SQLite file at this path so a restarted process can
	// resume without a ResetSeqNumFlag Logon. Empty means in-memory only.
	StatePath string
}

// ReconnectConfig mirrors transport.ReconnectConfig so callers don't need
// to import the transport package just to configure it.
type ReconnectConfig struct {
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultHeartBtInt is Deribit's documented default heartbeat interval.
const DefaultHeartBtInt = 30

// Clock abstracts wall-clock access so tests can inject deterministic
// times for SendingTime/TransactTime stamping.
type Clock interface {
	NowUTC() time.Time
}

// SystemClock is the production Clock, backed by time.Now.
type SystemClock struct{}

func (SystemClock) NowUTC() time.Time { return time.Now().UTC() }

// FixTimestamp formats t per FIX 4.4's UTCTimestamp data type
// (YYYYMMDD-HH:MM:SS.sss).
func FixTimestamp(t time.Time) string {
	return t.UTC().Format("20060102-15:04:05.000")
}
