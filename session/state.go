// Package session is the session state machine (C5): a pure
// (state, event) -> (state, outputs) transition function plus the timers
// and injected auth scheme that drive it. It owns no I/O itself — the
// transport adapter (C6) and client surface (C7) feed it events and act on
// its outputs.
package session

// State is one of the session's lifecycle states.
type State int

const (
	// Disconnected: no transport connection exists.
	Disconnected State = iota
	// Connecting: transport connect is in flight.
	Connecting
	// LogonSent: transport is up, our Logon has been sent, awaiting the
	// peer's Logon in reply.
	LogonSent
	// LoggedIn: both sides have exchanged Logon; heartbeats and business
	// traffic flow normally.
	LoggedIn
	// ResendInProgress: a gap was detected and a ResendRequest is
	// outstanding; inbound application messages are not buffered and are
	// processed as they arrive.
	ResendInProgress
	// LogoutSent: we initiated Logout and are waiting for the peer's
	// Logout reply before tearing down transport.
	LogoutSent
	// Failed: a fatal protocol violation occurred; the session will not
	// recover without a fresh Connect.
	Failed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case LogonSent:
		return "LogonSent"
	case LoggedIn:
		return "LoggedIn"
	case ResendInProgress:
		return "ResendInProgress"
	case LogoutSent:
		return "LogoutSent"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}
