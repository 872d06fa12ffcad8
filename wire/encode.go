package wire

import (
	"strconv"
	"strings"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
)

// Encode serializes a message: header tags 8, 9 (placeholder), 35, 49, 56,
// 34, 52 in that fixed order, then headerExtra (e.g. PossDupFlag/
// OrigSendingTime on a replay), then the body fields in the order the
// builder produced them, then BodyLength and CheckSum.
//
// Timestamps are expected to already be UTC with millisecond precision
// (constants.FixTimeFormat / the session's clock is responsible for that).
func Encode(msgType, senderCompID, targetCompID string, seqNum uint64, sendingTime string, headerExtra []Field, body *Message) []byte {
	var rest strings.Builder
	writeField(&rest, dictionary.TagMsgType, msgType)
	writeField(&rest, dictionary.TagSenderCompID, senderCompID)
	writeField(&rest, dictionary.TagTargetCompID, targetCompID)
	writeField(&rest, dictionary.TagMsgSeqNum, strconv.FormatUint(seqNum, 10))
	writeField(&rest, dictionary.TagSendingTime, sendingTime)
	for _, f := range headerExtra {
		writeField(&rest, f.Tag, f.Value)
	}
	for _, f := range body.Fields {
		writeField(&rest, f.Tag, f.Value)
	}

	bodyBytes := rest.String()
	bodyLength := len(bodyBytes)

	var out strings.Builder
	writeField(&out, dictionary.TagBeginString, BeginString)
	writeField(&out, dictionary.TagBodyLength, strconv.Itoa(bodyLength))
	out.WriteString(bodyBytes)

	checksum := Checksum([]byte(out.String()))
	writeField(&out, dictionary.TagCheckSum, FormatChecksum(checksum))

	return []byte(out.String())
}

// EncodeMessage is a convenience wrapper returning the logical Message (for
// retention/inspection) alongside the wire bytes.
func EncodeMessage(msgType, senderCompID, targetCompID string, seqNum uint64, sendingTime string, headerExtra []Field, body *Message) (*Message, []byte) {
	raw := Encode(msgType, senderCompID, targetCompID, seqNum, sendingTime, headerExtra, body)
	full := &Message{}
	full.Set(dictionary.TagBeginString, BeginString)
	full.Set(dictionary.TagMsgType, msgType)
	full.Set(dictionary.TagSenderCompID, senderCompID)
	full.Set(dictionary.TagTargetCompID, targetCompID)
	full.SetInt(dictionary.TagMsgSeqNum, int64(seqNum))
	full.Set(dictionary.TagSendingTime, sendingTime)
	for _, f := range headerExtra {
		full.Fields = append(full.Fields, f)
	}
	full.Fields = append(full.Fields, body.Fields...)
	return full, raw
}

func writeField(b *strings.Builder, tag dictionary.Tag, value string) {
	b.WriteString(strconv.Itoa(int(tag)))
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteByte(SOH)
}
