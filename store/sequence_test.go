package store

import "testing"

func TestSequenceState_NoGapOnExactMatch(t *testing.T) {
	s := NewSequenceState()
	exp := s.Expect(1)
	if exp.Kind != NoGap {
		t.Fatalf("expected NoGap, got %v", exp.Kind)
	}
	s.Accept(1)
	if s.NextIn != 2 {
		t.Fatalf("expected next_in 2, got %d", s.NextIn)
	}
}

func TestSequenceState_DetectsGapTooHigh(t *testing.T) {
	s := NewSequenceState()
	exp := s.Expect(5)
	if exp.Kind != TooHigh {
		t.Fatalf("expected TooHigh, got %v", exp.Kind)
	}
	if exp.GapFrom != 1 || exp.GapTo != 4 {
		t.Fatalf("expected gap range [1,4], got [%d,%d]", exp.GapFrom, exp.GapTo)
	}
}

func TestSequenceState_DetectsTooLow(t *testing.T) {
	s := NewSequenceState()
	s.Accept(1)
	s.Accept(2)
	exp := s.Expect(1)
	if exp.Kind != TooLow {
		t.Fatalf("expected TooLow, got %v", exp.Kind)
	}
}

func TestSequenceState_ResetIncomingRejectsRewind(t *testing.T) {
	s := NewSequenceState()
	s.Accept(1)
	s.Accept(2)
	if err := s.ResetIncoming(1); err == nil {
		t.Fatalf("expected error rewinding next_in")
	}
	if err := s.ResetIncoming(10); err != nil {
		t.Fatalf("unexpected error advancing next_in: %v", err)
	}
	if s.NextIn != 10 {
		t.Fatalf("expected next_in 10, got %d", s.NextIn)
	}
}

func TestSequenceState_AllocateOutgoingIncrements(t *testing.T) {
	s := NewSequenceState()
	first := s.AllocateOutgoing()
	second := s.AllocateOutgoing()
	if first != 1 || second != 2 {
		t.Fatalf("expected 1 then 2, got %d then %d", first, second)
	}
}

func TestSequenceState_ResetBothReinitializes(t *testing.T) {
	s := NewSequenceState()
	s.Accept(1)
	s.AllocateOutgoing()
	s.ResetBoth()
	if s.NextIn != 1 || s.NextOut != 1 {
		t.Fatalf("expected counters reset to 1, got next_in=%d next_out=%d", s.NextIn, s.NextOut)
	}
}

func TestMemoryRetainedStore_PutAndRange(t *testing.T) {
	rs := NewMemoryRetainedStore()
	for i := uint64(1); i <= 5; i++ {
		if err := rs.Put(RetainedMessage{SeqNum: i, MsgType: "D", Raw: []byte("frame")}); err != nil {
			t.Fatalf("unexpected put error: %v", err)
		}
	}
	got, err := rs.Range(2, 4)
	if err != nil {
		t.Fatalf("unexpected range error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	if got[0].SeqNum != 2 || got[2].SeqNum != 4 {
		t.Fatalf("unexpected range contents: %+v", got)
	}
}

func TestMemoryRetainedStore_Clear(t *testing.T) {
	rs := NewMemoryRetainedStore()
	_ = rs.Put(RetainedMessage{SeqNum: 1, MsgType: "D", Raw: []byte("x")})
	if err := rs.Clear(); err != nil {
		t.Fatalf("unexpected clear error: %v", err)
	}
	got, _ := rs.Range(1, 1)
	if len(got) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(got))
	}
}
