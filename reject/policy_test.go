package reject

import (
	"testing"

	"github.com/joaquinbejar/deribit-fix-sub001/catalog"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

func TestClassifyCodecError_ChecksumIsFatal(t *testing.T) {
	cerr := &wire.CodecError{Kind: wire.ErrChecksumMismatch, MsgType: "D", Detail: "bad checksum"}
	v := ClassifyCodecError(cerr, 42)
	if !v.Fatal {
		t.Fatalf("expected checksum mismatch to be fatal")
	}
	if v.Message == nil {
		t.Fatalf("expected a Reject message to be built")
	}
	if msgType := v.Message.MsgType(); msgType != "" {
		t.Fatalf("BuildReject should not stamp MsgType itself, got %s", msgType)
	}
}

func TestClassifyCodecError_MissingRequiredIsNotFatal(t *testing.T) {
	cerr := &wire.CodecError{Kind: wire.ErrMissingRequired, Tag: 44, MsgType: "D", Detail: "Price missing"}
	v := ClassifyCodecError(cerr, 7)
	if v.Fatal {
		t.Fatalf("expected missing-required to be non-fatal")
	}
	if v.Message == nil {
		t.Fatalf("expected a Reject message to be built")
	}
}

func TestClassifyCodecError_UnknownMsgTypeBuildsBusinessReject(t *testing.T) {
	cerr := &wire.CodecError{Kind: wire.ErrUnknownMsgType, MsgType: "ZZ", Detail: "unrecognized"}
	v := ClassifyCodecError(cerr, 1)
	if v.Fatal {
		t.Fatalf("expected unknown msg type to be non-fatal")
	}
	br := catalog.ParseBusinessMessageReject(v.Message)
	if br.RefMsgType != "ZZ" {
		t.Fatalf("expected RefMsgType ZZ, got %s", br.RefMsgType)
	}
}

func TestClassifySequenceTooLow_ReplayIsTolerated(t *testing.T) {
	v := ClassifySequenceTooLow(true, 5)
	if v.Fatal {
		t.Fatalf("expected PossDup replay to be tolerated")
	}
	if v.Message != nil {
		t.Fatalf("expected no message for a tolerated replay")
	}
}

func TestClassifySequenceTooLow_WithoutPossDupIsFatal(t *testing.T) {
	v := ClassifySequenceTooLow(false, 5)
	if !v.Fatal {
		t.Fatalf("expected sequence-too-low without PossDup to be fatal")
	}
	if v.Message == nil {
		t.Fatalf("expected a Logout message to be built")
	}
}

func TestClassifyValidationError_NilIsZeroVerdict(t *testing.T) {
	v := ClassifyValidationError(nil)
	if v.Fatal || v.Message != nil {
		t.Fatalf("expected zero verdict for nil error, got %+v", v)
	}
}
