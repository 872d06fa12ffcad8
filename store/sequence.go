// Package store is the sequence and retention layer (C4): monotonic
// inbound/outbound sequence counters, gap detection against the peer's
// MsgSeqNum, and a retained-message store used to answer ResendRequest.
package store

import "fmt"

// GapKind classifies what SequenceState.Expect found wrong with an inbound
// MsgSeqNum, if anything.
type GapKind int

const (
	// NoGap means the inbound seqnum matched next_in exactly.
	NoGap GapKind = iota
	// TooHigh means the peer skipped ahead; the caller must issue a
	// ResendRequest for the missing range before accepting anything newer.
	TooHigh
	// TooLow means the peer resent a seqnum already consumed. Only
	// tolerable when PossDupFlag is set on the message (a replay); anything
	// else is a fatal session violation per the reject policy (C8).
	TooLow
)

// Expectation reports what SequenceState.Expect found.
type Expectation struct {
	Kind GapKind
	// GapFrom..GapTo is the inclusive range to resend-request when Kind is
	// TooHigh. GapTo is the seqnum just below the one that arrived.
	GapFrom, GapTo uint64
}

// SequenceState holds one session's next_out/next_in counters. It is not
// safe for concurrent use; the session actor (C5) is the sole owner.
type SequenceState struct {
	NextOut uint64
	NextIn  uint64
}

// NewSequenceState returns counters starting at 1, the FIX default for a
// freshly reset session.
func NewSequenceState() *SequenceState {
	return &SequenceState{NextOut: 1, NextIn: 1}
}

// AllocateOutgoing returns the seqnum to stamp on the next outbound message
// and advances next_out.
func (s *SequenceState) AllocateOutgoing() uint64 {
	n := s.NextOut
	s.NextOut++
	return n
}

// Expect compares an inbound MsgSeqNum against next_in without consuming it;
// the caller decides, based on the Expectation, whether to accept, queue for
// resend, or reject the message.
func (s *SequenceState) Expect(seqNum uint64) Expectation {
	switch {
	case seqNum == s.NextIn:
		return Expectation{Kind: NoGap}
	case seqNum > s.NextIn:
		return Expectation{Kind: TooHigh, GapFrom: s.NextIn, GapTo: seqNum - 1}
	default:
		return Expectation{Kind: TooLow}
	}
}

// Accept records that a message with the given seqnum has been consumed,
// advancing next_in. Callers must only call this after Expect reported NoGap
// (or after a gap was resolved by replay/gap-fill up through this seqnum).
func (s *SequenceState) Accept(seqNum uint64) {
	if seqNum >= s.NextIn {
		s.NextIn = seqNum + 1
	}
}

// ResetOutgoing sets next_out, used when sending (or receiving) a
// SequenceReset-Reset.
func (s *SequenceState) ResetOutgoing(newSeqNo uint64) {
	s.NextOut = newSeqNo
}

// ResetIncoming sets next_in; SequenceReset must only ever advance it (§4.4)
// — a peer asking to rewind next_in is a protocol violation the caller
// should reject rather than apply.
func (s *SequenceState) ResetIncoming(newSeqNo uint64) error {
	if newSeqNo < s.NextIn {
		return fmt.Errorf("sequence reset to %d would rewind next_in from %d", newSeqNo, s.NextIn)
	}
	s.NextIn = newSeqNo
	return nil
}

// ResetBoth reinitializes both counters to 1, used on a Logon carrying
// ResetSeqNumFlag=Y.
func (s *SequenceState) ResetBoth() {
	s.NextOut = 1
	s.NextIn = 1
}
