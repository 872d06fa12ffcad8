// Package reject is the recovery and reject policy (C8): it classifies
// protocol violations into a session-level Reject (3), a
// BusinessMessageReject (j), or a fatal error that drives the session to
// Failed, and builds the corresponding outbound message.
package reject

import (
	"github.com/joaquinbejar/deribit-fix-sub001/catalog"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// Verdict is the policy's decision for one inbound violation.
type Verdict struct {
	// Fatal means the session cannot continue; the caller should drive a
	// session.EventFatalProtocolError and close the transport after
	// sending (if possible) the message below.
	Fatal bool
	// Message is the session-level Reject or BusinessMessageReject to send
	// in response, or nil if nothing should be sent (e.g. the transport is
	// already gone).
	Message *wire.Message
	Reason  string
}

// ClassifyCodecError maps a wire-layer decode failure to a session-level
// Reject (3). Framing and checksum/body-length violations are treated as
// fatal: the codec cannot trust anything else on the connection once the
// length law is broken (§4.8).
func ClassifyCodecError(cerr *wire.CodecError, refSeqNum uint64) Verdict {
	if cerr == nil {
		return Verdict{}
	}
	switch cerr.Kind {
	case wire.ErrChecksumMismatch:
		return Verdict{
			Fatal:   true,
			Message: catalog.BuildReject(refSeqNum, 0, cerr.MsgType, catalog.SessionRejectReasonIncorrectDataFormat, cerr.Error()),
			Reason:  "checksum mismatch",
		}
	case wire.ErrBodyLengthMismatch, wire.ErrFraming:
		return Verdict{
			Fatal:   true,
			Message: catalog.BuildReject(refSeqNum, 0, cerr.MsgType, catalog.SessionRejectReasonIncorrectDataFormat, cerr.Error()),
			Reason:  "framing violation",
		}
	case wire.ErrMalformedGroup, wire.ErrMalformedField:
		return Verdict{
			Fatal:   false,
			Message: catalog.BuildReject(refSeqNum, cerr.Tag, cerr.MsgType, catalog.SessionRejectReasonIncorrectDataFormat, cerr.Error()),
			Reason:  "malformed group or field",
		}
	case wire.ErrMissingRequired:
		return Verdict{
			Fatal:   false,
			Message: catalog.BuildReject(refSeqNum, cerr.Tag, cerr.MsgType, catalog.SessionRejectReasonRequiredTagMissing, cerr.Error()),
			Reason:  "required tag missing",
		}
	case wire.ErrUnknownMsgType:
		return Verdict{
			Fatal:   false,
			Message: catalog.BuildBusinessMessageReject(cerr.MsgType, "", catalog.BusinessRejectReasonUnsupportedMsgType, cerr.Error()),
			Reason:  "unsupported msg type",
		}
	case wire.ErrInvalidEnum:
		return Verdict{
			Fatal:   false,
			Message: catalog.BuildReject(refSeqNum, cerr.Tag, cerr.MsgType, catalog.SessionRejectReasonValueOutOfRange, cerr.Error()),
			Reason:  "value out of range",
		}
	default:
		return Verdict{
			Fatal:   false,
			Message: catalog.BuildReject(refSeqNum, cerr.Tag, cerr.MsgType, catalog.SessionRejectReasonInvalidTag, cerr.Error()),
			Reason:  "unclassified codec error",
		}
	}
}

// ClassifySequenceTooLow decides what to do when an inbound MsgSeqNum is
// below next_in. A replay (PossDupFlag=Y) is legitimate and not fatal; any
// other too-low seqnum means the peer and this engine have irreconcilably
// diverged, which the reject policy treats as fatal (§4.4/§4.8).
func ClassifySequenceTooLow(possDup bool, refSeqNum uint64) Verdict {
	if possDup {
		return Verdict{Fatal: false, Reason: "tolerated replay (PossDupFlag=Y)"}
	}
	return Verdict{
		Fatal:   true,
		Message: catalog.BuildLogout("MsgSeqNum too low, no PossDupFlag"),
		Reason:  "sequence number too low without PossDupFlag",
	}
}

// ClassifyUnsolicitedLogout decides how to react to a Logout received while
// LoggedIn without this engine having requested one: always non-fatal from
// the policy's point of view (the session machine tears down gracefully),
// but callers may want to surface it distinctly from a requested logout.
func ClassifyUnsolicitedLogout(text string) Verdict {
	return Verdict{Fatal: false, Reason: "peer-initiated logout: " + text}
}

// ClassifyValidationError maps a catalog.ValidationError (a builder that
// refused to emit) to a BusinessMessageReject, used when validation is
// discovered on an inbound message this engine is about to relay up to the
// client surface (C7) rather than on an outbound build, which the builder
// itself already refused.
func ClassifyValidationError(verr *catalog.ValidationError) Verdict {
	if verr == nil {
		return Verdict{}
	}
	return Verdict{
		Fatal:   false,
		Message: catalog.BuildBusinessMessageReject(verr.MsgType, "", catalog.BusinessRejectReasonCondRequiredMissing, verr.Error()),
		Reason:  "inbound message missing required tag",
	}
}
