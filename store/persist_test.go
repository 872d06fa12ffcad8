package store

import "testing"

func testIdentity() SessionIdentity {
	return SessionIdentity{BeginString: "FIX.4.4", SenderCompID: "CLIENT", TargetCompID: "DERIBITSERVER"}
}

func TestPersistedStore_SequenceRoundTrip(t *testing.T) {
	ps, err := NewPersistedStore(":memory:", testIdentity())
	if err != nil {
		t.Fatalf("unexpected error opening store: %v", err)
	}
	defer ps.Close()

	if _, found, err := ps.LoadSequence(); err != nil || found {
		t.Fatalf("expected no persisted sequence yet, found=%v err=%v", found, err)
	}

	seq := &SequenceState{NextOut: 5, NextIn: 7}
	if err := ps.SaveSequence(seq); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, found, err := ps.LoadSequence()
	if err != nil || !found {
		t.Fatalf("expected persisted sequence, found=%v err=%v", found, err)
	}
	if loaded.NextOut != 5 || loaded.NextIn != 7 {
		t.Fatalf("unexpected loaded sequence: %+v", loaded)
	}
}

func TestPersistedStore_RetainedRangeAndClear(t *testing.T) {
	ps, err := NewPersistedStore(":memory:", testIdentity())
	if err != nil {
		t.Fatalf("unexpected error opening store: %v", err)
	}
	defer ps.Close()

	for i := uint64(1); i <= 3; i++ {
		if err := ps.Put(RetainedMessage{SeqNum: i, MsgType: "D", Raw: []byte("frame")}); err != nil {
			t.Fatalf("unexpected put error: %v", err)
		}
	}

	got, err := ps.Range(1, 2)
	if err != nil {
		t.Fatalf("unexpected range error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 retained messages, got %d", len(got))
	}

	if err := ps.Clear(); err != nil {
		t.Fatalf("unexpected clear error: %v", err)
	}
	got, _ = ps.Range(1, 3)
	if len(got) != 0 {
		t.Fatalf("expected empty range after clear, got %d", len(got))
	}
}
