package session

import "time"

// Timers holds the session's liveness and handshake timers. The session
// actor selects on their channels in its event loop; Transition never sees
// a raw timer, only the Event it produces.
type Timers struct {
	HeartbeatInterval time.Duration
	TestRequestGrace  time.Duration
	LogonTimeout      time.Duration

	heartbeat    *time.Timer
	testRequest  *time.Timer
	logonTimeout *time.Timer
}

// NewTimers returns a Timers with no timer currently running.
func NewTimers(heartbeatInterval, testRequestGrace, logonTimeout time.Duration) *Timers {
	return &Timers{
		HeartbeatInterval: heartbeatInterval,
		TestRequestGrace:  testRequestGrace,
		LogonTimeout:      logonTimeout,
	}
}

// StartHeartbeat (re)arms the heartbeat interval timer.
func (t *Timers) StartHeartbeat() <-chan time.Time {
	stopTimer(t.heartbeat)
	t.heartbeat = time.NewTimer(t.HeartbeatInterval)
	return t.heartbeat.C
}

// StartTestRequestTimeout arms the grace period for a TestRequest to be
// answered before the session is declared Failed.
func (t *Timers) StartTestRequestTimeout() <-chan time.Time {
	stopTimer(t.testRequest)
	t.testRequest = time.NewTimer(t.TestRequestGrace)
	return t.testRequest.C
}

// StartLogonTimeout arms the window a Logon reply must arrive within.
func (t *Timers) StartLogonTimeout() <-chan time.Time {
	stopTimer(t.logonTimeout)
	t.logonTimeout = time.NewTimer(t.LogonTimeout)
	return t.logonTimeout.C
}

// CancelAll stops every running timer, used on any transition out of
// LoggedIn/LogonSent that doesn't immediately rearm one.
func (t *Timers) CancelAll() {
	stopTimer(t.heartbeat)
	stopTimer(t.testRequest)
	stopTimer(t.logonTimeout)
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
