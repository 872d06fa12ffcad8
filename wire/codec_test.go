package wire

import (
	"strings"
	"testing"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
)

func buildSample(t *testing.T) []byte {
	t.Helper()
	body := New().
		Set(dictionary.TagHeartBtInt, "30").
		Set(dictionary.TagResetSeqNumFlag, "Y")
	return Encode("A", "CLIENT", "DERIBITSERVER", 1, "20241201-10:00:00.000", nil, body)
}

func TestEncode_HeaderOrderAndChecksumLaw(t *testing.T) {
	raw := buildSample(t)
	s := string(raw)

	if !strings.HasPrefix(s, "8=FIX.4.4\x01") {
		t.Fatalf("expected frame to start with BeginString, got %q", s[:20])
	}
	if !strings.Contains(s, "\x0135=A\x01") {
		t.Fatalf("expected MsgType=A in header, got %q", s)
	}

	checksumIdx := strings.LastIndex(s, "10=")
	if checksumIdx < 0 {
		t.Fatalf("missing checksum field")
	}
	declared := s[checksumIdx+3 : len(s)-1]
	computed := FormatChecksum(Checksum([]byte(s[:checksumIdx])))
	if declared != computed {
		t.Fatalf("checksum law violated: declared=%s computed=%s", declared, computed)
	}
}

func TestEncode_BodyLengthLaw(t *testing.T) {
	raw := buildSample(t)
	s := string(raw)

	afterBegin := strings.Index(s, "\x01") + 1
	bodyLenFieldEnd := strings.Index(s[afterBegin:], "\x01")
	declaredStr := s[afterBegin+2 : afterBegin+bodyLenFieldEnd] // skip "9="
	bodyStart := afterBegin + bodyLenFieldEnd + 1
	checksumStart := strings.LastIndex(s, "10=")

	measured := checksumStart - bodyStart
	if declaredStr != FormatChecksumlessInt(measured) {
		t.Fatalf("BodyLength law violated: declared=%s measured=%d", declaredStr, measured)
	}
}

// FormatChecksumlessInt avoids pulling strconv into the test just to format
// one int for comparison.
func FormatChecksumlessInt(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestDecode_RoundTrip(t *testing.T) {
	raw := buildSample(t)
	msg, cerr := Decode(raw)
	if cerr != nil {
		t.Fatalf("unexpected decode error: %v", cerr)
	}
	if msg.MsgType() != "A" {
		t.Fatalf("expected MsgType A, got %s", msg.MsgType())
	}
	if v, _ := msg.Get(dictionary.TagHeartBtInt); v != "30" {
		t.Fatalf("expected HeartBtInt 30, got %s", v)
	}
	seq, ok := msg.SeqNum()
	if !ok || seq != 1 {
		t.Fatalf("expected seqnum 1, got %d ok=%v", seq, ok)
	}
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	raw := buildSample(t)
	corrupted := append([]byte{}, raw...)
	// Flip the last digit of the checksum.
	corrupted[len(corrupted)-2] = '9'
	if corrupted[len(corrupted)-2] == raw[len(raw)-2] {
		corrupted[len(corrupted)-2] = '0'
	}
	_, cerr := Decode(corrupted)
	if cerr == nil || cerr.Kind != ErrChecksumMismatch {
		t.Fatalf("expected ChecksumMismatch, got %v", cerr)
	}
}

func TestDecode_BodyLengthMismatch(t *testing.T) {
	body := New().Set(dictionary.TagHeartBtInt, "30")
	raw := Encode("A", "CLIENT", "SERVER", 1, "20241201-10:00:00.000", nil, body)
	s := string(raw)
	// Increment the declared BodyLength digit without touching the body.
	idx := strings.Index(s, "9=")
	corrupted := s[:idx+2] + "9" + s[idx+2:]
	_, cerr := Decode([]byte(corrupted))
	if cerr == nil || cerr.Kind != ErrBodyLengthMismatch {
		t.Fatalf("expected BodyLengthMismatch, got %v", cerr)
	}
}

func TestFramer_ExtractsSingleFrame(t *testing.T) {
	raw := buildSample(t)
	f := NewFramer(0)
	f.Feed(raw)

	frame, cerr, ok := f.Next()
	if !ok || cerr != nil {
		t.Fatalf("expected a frame, got ok=%v err=%v", ok, cerr)
	}
	if string(frame) != string(raw) {
		t.Fatalf("frame mismatch")
	}

	_, _, ok = f.Next()
	if ok {
		t.Fatalf("expected no further frame available")
	}
}

func TestFramer_SplitAcrossFeeds(t *testing.T) {
	raw := buildSample(t)
	f := NewFramer(0)
	f.Feed(raw[:10])
	if _, _, ok := f.Next(); ok {
		t.Fatalf("expected incomplete frame to not be extracted yet")
	}
	f.Feed(raw[10:])
	frame, cerr, ok := f.Next()
	if !ok || cerr != nil || string(frame) != string(raw) {
		t.Fatalf("expected full frame once fed, ok=%v err=%v", ok, cerr)
	}
}

func TestFramer_RecoversFromGarbage(t *testing.T) {
	raw := buildSample(t)
	f := NewFramer(0)
	f.Feed([]byte("garbage-not-fix"))
	f.Feed(raw)

	// First call(s) should not find a frame in the garbage prefix; once the
	// BeginString is located the frame extracts normally.
	frame, cerr, ok := f.Next()
	if !ok || cerr != nil {
		t.Fatalf("expected recovery to find the frame, got ok=%v err=%v", ok, cerr)
	}
	if string(frame) != string(raw) {
		t.Fatalf("frame mismatch after garbage prefix")
	}
}

func TestFramer_DiscardsOversizedBody(t *testing.T) {
	f := NewFramer(8)
	body := New().Set(dictionary.TagHeartBtInt, "30")
	raw := Encode("A", "C", "S", 1, "20241201-10:00:00.000", nil, body)
	f.Feed(raw)

	_, cerr, ok := f.Next()
	if !ok || cerr == nil || cerr.Kind != ErrFraming {
		t.Fatalf("expected a framing error for oversized body, got ok=%v err=%v", ok, cerr)
	}
}

func TestGroup_EncodeDecodeRoundTrip(t *testing.T) {
	schema := GroupSchema{
		CountTag:     dictionary.TagNoMdEntries,
		DelimiterTag: dictionary.TagMdEntryType,
		Elements:     []dictionary.Tag{dictionary.TagMdEntryType, dictionary.TagMdEntryPx, dictionary.TagMdEntrySize},
	}
	elements := []GroupElement{
		{Fields: []Field{
			{Tag: dictionary.TagMdEntryType, Value: "0"},
			{Tag: dictionary.TagMdEntryPx, Value: "50000.00"},
			{Tag: dictionary.TagMdEntrySize, Value: "1.5"},
		}},
		{Fields: []Field{
			{Tag: dictionary.TagMdEntryType, Value: "1"},
			{Tag: dictionary.TagMdEntryPx, Value: "50010.00"},
			{Tag: dictionary.TagMdEntrySize, Value: "2.0"},
		}},
	}

	encoded := EncodeGroup(schema, elements)
	// Simulate the group sitting inside a larger field list.
	fields := append([]Field{{Tag: dictionary.TagSymbol, Value: "BTC-PERPETUAL"}}, encoded...)
	fields = append(fields, Field{Tag: dictionary.TagText, Value: "trailer"})

	decoded, nextIdx, cerr := DecodeGroup(fields, 1, schema)
	if cerr != nil {
		t.Fatalf("unexpected decode error: %v", cerr)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(decoded))
	}
	if px, _ := decoded[1].Get(dictionary.TagMdEntryPx); px != "50010.00" {
		t.Fatalf("expected second element px 50010.00, got %s", px)
	}
	if fields[nextIdx].Tag != dictionary.TagText {
		t.Fatalf("expected decode to stop before trailer field")
	}
}

func TestGroup_MalformedMissingDelimiter(t *testing.T) {
	schema := GroupSchema{
		CountTag:     dictionary.TagNoMdEntries,
		DelimiterTag: dictionary.TagMdEntryType,
		Elements:     []dictionary.Tag{dictionary.TagMdEntryType, dictionary.TagMdEntryPx},
	}
	fields := []Field{
		{Tag: dictionary.TagNoMdEntries, Value: "1"},
		{Tag: dictionary.TagMdEntryPx, Value: "50000.00"}, // wrong: not the delimiter
	}
	_, _, cerr := DecodeGroup(fields, 0, schema)
	if cerr == nil || cerr.Kind != ErrMalformedGroup {
		t.Fatalf("expected MalformedGroup, got %v", cerr)
	}
}
