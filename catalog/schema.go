package catalog

import (
	"fmt"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// Schema declares what a message type requires: its required tags,
// recognized optional tags, and conditional rules that depend on other
// field values (e.g. "Price required when OrdType=Limit").
type Schema struct {
	MsgType      string
	Required     []dictionary.Tag
	Optional     []dictionary.Tag
	Conditionals []Conditional
}

// Conditional expresses a tag that is required only when Predicate(msg) is
// true — e.g. Price (44) is required when OrdType (40) is Limit or
// StopLimit.
type Conditional struct {
	Tag       dictionary.Tag
	Predicate func(*wire.Message) bool
	Reason    string
}

// ValidationError reports a missing required or conditionally-required
// field, carrying enough to build a BusinessMessageReject (§4.8).
type ValidationError struct {
	MsgType string
	Tag     dictionary.Tag
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required tag %d (%s): %s", e.MsgType, e.Tag, dictionary.Name(e.Tag), e.Reason)
}

// Validate checks msg (the body fields a builder has assembled) against the
// schema. It is the mechanism behind "builder refuses to emit if a
// required tag is absent, unless explicitly conditional" (§4.3).
func (s Schema) Validate(msg *wire.Message) error {
	for _, tag := range s.Required {
		if _, ok := msg.Get(tag); !ok {
			return &ValidationError{MsgType: s.MsgType, Tag: tag, Reason: "required"}
		}
	}
	for _, c := range s.Conditionals {
		if c.Predicate(msg) {
			if _, ok := msg.Get(c.Tag); !ok {
				return &ValidationError{MsgType: s.MsgType, Tag: c.Tag, Reason: c.Reason}
			}
		}
	}
	return nil
}
