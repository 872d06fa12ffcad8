// Package wire is the wire codec (C2): frame detection on a byte stream,
// tag=value encoding/decoding with SOH separators, checksum and body-length
// computation, and a schema-driven repeating-group parser/encoder.
package wire

import (
	"strconv"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
)

// SOH is the ASCII field separator (0x01).
const SOH = byte(0x01)

// BeginString is the only FIX version this engine speaks.
const BeginString = "FIX.4.4"

// Field is a single (tag, raw value) pair. Values never contain SOH.
type Field struct {
	Tag   dictionary.Tag
	Value string
}

// Message is an ordered list of fields, exactly as it appears on (or will
// appear on) the wire. Order matters for header placement and for
// repeating-group elements; it is irrelevant for most other optional
// fields, but the codec never reorders fields it did not itself place.
type Message struct {
	Fields []Field
}

// New returns an empty message.
func New() *Message {
	return &Message{}
}

// Set appends a field. Builders call this in the exact order they want the
// field to appear on the wire.
func (m *Message) Set(tag dictionary.Tag, value string) *Message {
	m.Fields = append(m.Fields, Field{Tag: tag, Value: value})
	return m
}

// SetIfNotEmpty appends a field only when value is non-empty, mirroring the
// catalog's conditional/optional field convention.
func (m *Message) SetIfNotEmpty(tag dictionary.Tag, value string) *Message {
	if value != "" {
		m.Set(tag, value)
	}
	return m
}

// SetInt appends an integer field.
func (m *Message) SetInt(tag dictionary.Tag, value int64) *Message {
	return m.Set(tag, strconv.FormatInt(value, 10))
}

// Get returns the first occurrence of tag, and whether it was present.
func (m *Message) Get(tag dictionary.Tag) (string, bool) {
	for _, f := range m.Fields {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return "", false
}

// GetAll returns every occurrence of tag in wire order (used for repeated
// optional tags outside of a formal group, which FIX 4.4 permits).
func (m *Message) GetAll(tag dictionary.Tag) []string {
	var out []string
	for _, f := range m.Fields {
		if f.Tag == tag {
			out = append(out, f.Value)
		}
	}
	return out
}

// MsgType returns the tag-35 value, if present.
func (m *Message) MsgType() string {
	v, _ := m.Get(dictionary.TagMsgType)
	return v
}

// SeqNum returns the tag-34 value as an integer. Returns 0, false if absent
// or malformed.
func (m *Message) SeqNum() (uint64, bool) {
	v, ok := m.Get(dictionary.TagMsgSeqNum)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Clone returns a deep-enough copy (fields are value types, so a slice copy
// suffices) for safe mutation by a caller (e.g. stamping PossDupFlag on a
// replay).
func (m *Message) Clone() *Message {
	out := &Message{Fields: make([]Field, len(m.Fields))}
	copy(out.Fields, m.Fields)
	return out
}
