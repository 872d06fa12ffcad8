package wire

import (
	"strconv"
	"strings"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
)

// Decode parses one complete frame (as produced by Framer.Next) into a
// Message, validating header ordering, checksum, and body length per §4.2.
func Decode(frame []byte) (*Message, *CodecError) {
	s := string(frame)
	// Trailing SOH after the final field leaves one empty element; drop it.
	parts := strings.Split(s, string(SOH))
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 4 {
		return nil, newErr(ErrMalformedField, 0, "", "frame has too few fields")
	}

	fields := make([]Field, 0, len(parts))
	for _, p := range parts {
		tagStr, val, ok := splitField([]byte(p))
		if !ok {
			return nil, newErr(ErrMalformedField, 0, "", "field missing '=': "+p)
		}
		tagNum, err := strconv.Atoi(tagStr)
		if err != nil {
			return nil, newErr(ErrMalformedField, 0, "", "non-numeric tag: "+tagStr)
		}
		fields = append(fields, Field{Tag: dictionary.Tag(tagNum), Value: val})
	}

	if fields[0].Tag != dictionary.TagBeginString {
		return nil, newErr(ErrFraming, int(dictionary.TagBeginString), "", "tag 8 not in position 0")
	}
	if fields[1].Tag != dictionary.TagBodyLength {
		return nil, newErr(ErrFraming, int(dictionary.TagBodyLength), "", "tag 9 not in position 1")
	}
	if fields[2].Tag != dictionary.TagMsgType {
		return nil, newErr(ErrMissingRequired, int(dictionary.TagMsgType), "", "tag 35 not in position 2")
	}
	last := fields[len(fields)-1]
	if last.Tag != dictionary.TagCheckSum {
		return nil, newErr(ErrFraming, int(dictionary.TagCheckSum), fields[2].Value, "tag 10 not last field")
	}

	declaredLen, err := strconv.Atoi(fields[1].Value)
	if err != nil {
		return nil, newErr(ErrBodyLengthMismatch, int(dictionary.TagBodyLength), fields[2].Value, "BodyLength is not numeric")
	}
	afterBeginIdx := strings.Index(s, string(SOH)) + 1
	bodyLenFieldEnd := strings.Index(s[afterBeginIdx:], string(SOH))
	bodyStart := afterBeginIdx + bodyLenFieldEnd + 1
	checksumFieldStr := "10=" + last.Value + string(SOH)
	bodyEnd := len(s) - len(checksumFieldStr)
	if bodyEnd < bodyStart {
		return nil, newErr(ErrBodyLengthMismatch, int(dictionary.TagBodyLength), fields[2].Value, "frame shorter than header implies")
	}
	measuredLen := bodyEnd - bodyStart
	if measuredLen != declaredLen {
		return nil, newErr(ErrBodyLengthMismatch, int(dictionary.TagBodyLength), fields[2].Value,
			"declared "+fields[1].Value+" measured "+strconv.Itoa(measuredLen))
	}

	declaredSum, err := strconv.Atoi(last.Value)
	if err != nil || len(last.Value) != 3 {
		return nil, newErr(ErrChecksumMismatch, int(dictionary.TagCheckSum), fields[2].Value, "CheckSum is not 3 digits")
	}
	computedSum := Checksum([]byte(s[:bodyEnd]))
	if computedSum != declaredSum {
		return nil, newErr(ErrChecksumMismatch, int(dictionary.TagCheckSum), fields[2].Value,
			"declared "+last.Value+" computed "+FormatChecksum(computedSum))
	}

	return &Message{Fields: fields}, nil
}
