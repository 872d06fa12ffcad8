package session

import "testing"

func hasOutput(outputs []Output, kind OutputKind) bool {
	for _, o := range outputs {
		if o.Kind == kind {
			return true
		}
	}
	return false
}

func TestTransition_LogonHandshake(t *testing.T) {
	state := Disconnected
	state, outputs := Transition(state, Event{Kind: EventConnectSucceeded})
	if state != LogonSent {
		t.Fatalf("expected LogonSent, got %v", state)
	}
	if !hasOutput(outputs, OutputSendLogon) {
		t.Fatalf("expected SendLogon output, got %+v", outputs)
	}

	state, outputs = Transition(state, Event{Kind: EventLogonReceived})
	if state != LoggedIn {
		t.Fatalf("expected LoggedIn, got %v", state)
	}
	if !hasOutput(outputs, OutputStartHeartbeatTimer) {
		t.Fatalf("expected StartHeartbeatTimer output, got %+v", outputs)
	}
}

func TestTransition_LogonRejectedGoesFailed(t *testing.T) {
	state := LogonSent
	state, outputs := Transition(state, Event{Kind: EventLogonRejected, Detail: "bad credentials"})
	if state != Failed {
		t.Fatalf("expected Failed, got %v", state)
	}
	if !hasOutput(outputs, OutputCloseTransport) {
		t.Fatalf("expected CloseTransport output, got %+v", outputs)
	}
}

func TestTransition_HeartbeatLiveness(t *testing.T) {
	state := LoggedIn
	state, outputs := Transition(state, Event{Kind: EventHeartbeatIntervalElapsed})
	if state != LoggedIn {
		t.Fatalf("expected to remain LoggedIn, got %v", state)
	}
	if !hasOutput(outputs, OutputSendHeartbeat) {
		t.Fatalf("expected SendHeartbeat output, got %+v", outputs)
	}
}

func TestTransition_TestRequestTimeoutFails(t *testing.T) {
	state := LoggedIn
	state, outputs := Transition(state, Event{Kind: EventTestRequestTimedOut})
	if state != Failed {
		t.Fatalf("expected Failed, got %v", state)
	}
	if !hasOutput(outputs, OutputEmitFatal) {
		t.Fatalf("expected EmitFatal output, got %+v", outputs)
	}
}

func TestTransition_SeqGapEntersResend(t *testing.T) {
	state := LoggedIn
	state, outputs := Transition(state, Event{Kind: EventSeqGapDetected, Detail: "from=5 to=9"})
	if state != ResendInProgress {
		t.Fatalf("expected ResendInProgress, got %v", state)
	}
	if !hasOutput(outputs, OutputSendResendRequest) {
		t.Fatalf("expected SendResendRequest output, got %+v", outputs)
	}

	state, _ = Transition(state, Event{Kind: EventResendCompleted})
	if state != LoggedIn {
		t.Fatalf("expected back to LoggedIn after resend, got %v", state)
	}
}

func TestTransition_GracefulLogout(t *testing.T) {
	state := LoggedIn
	state, outputs := Transition(state, Event{Kind: EventLogoutRequested})
	if state != LogoutSent {
		t.Fatalf("expected LogoutSent, got %v", state)
	}
	if !hasOutput(outputs, OutputSendLogout) {
		t.Fatalf("expected SendLogout output, got %+v", outputs)
	}

	state, outputs = Transition(state, Event{Kind: EventLogoutReceived})
	if state != Disconnected {
		t.Fatalf("expected Disconnected, got %v", state)
	}
	if !hasOutput(outputs, OutputCloseTransport) {
		t.Fatalf("expected CloseTransport output, got %+v", outputs)
	}
}

func TestTransition_PeerInitiatedLogoutEchoesBack(t *testing.T) {
	state := LoggedIn
	state, outputs := Transition(state, Event{Kind: EventLogoutReceived})
	if state != Disconnected {
		t.Fatalf("expected Disconnected, got %v", state)
	}
	if !hasOutput(outputs, OutputSendLogout) {
		t.Fatalf("expected an echoed SendLogout output, got %+v", outputs)
	}
}

func TestTransition_FailedStateIsTerminal(t *testing.T) {
	state := Failed
	next, outputs := Transition(state, Event{Kind: EventLogonReceived})
	if next != Failed {
		t.Fatalf("expected Failed to stay terminal, got %v", next)
	}
	if len(outputs) != 0 {
		t.Fatalf("expected no outputs from terminal state, got %+v", outputs)
	}
}

func TestDefaultSHA256Auth_Deterministic(t *testing.T) {
	auth := DefaultSHA256Auth{}
	raw1, pw1 := auth.Sign("key", "secret", "1700000000000", "nonce-1")
	raw2, pw2 := auth.Sign("key", "secret", "1700000000000", "nonce-1")
	if raw1 != raw2 || pw1 != pw2 {
		t.Fatalf("expected deterministic signing for identical inputs")
	}
	if raw1 != "nonce-1" {
		t.Fatalf("expected RawData to echo the nonce, got %s", raw1)
	}
	_, pw3 := auth.Sign("key", "secret", "1700000000001", "nonce-1")
	if pw1 == pw3 {
		t.Fatalf("expected different timestamp to change the derived password")
	}
}
