package client

import (
	"github.com/joaquinbejar/deribit-fix-sub001/catalog"
	"github.com/joaquinbejar/deribit-fix-sub001/session"
)

// EventKind names the kind of event delivered on a Client's event channel.
type EventKind int

const (
	EventSessionStateChanged EventKind = iota
	EventExecutionReport
	EventOrderCancelReject
	EventMarketDataSnapshot
	EventMarketDataIncremental
	EventMarketDataRequestReject
	EventPositionReport
	EventQuoteStatusReport
	EventQuoteRequestReject
	EventMassQuoteAcknowledgement
	EventSessionReject
	EventBusinessReject
	EventTransportError
)

// Event is one item from a Client's event stream. Exactly one of the
// payload fields is populated, matching Kind.
type Event struct {
	Kind EventKind

	SessionState session.State

	ExecutionReport     *catalog.ExecutionReport
	OrderCancelReject   *catalog.OrderCancelReject
	MarketDataSnapshot  *catalog.MarketDataSnapshot
	MarketDataIncremental *catalog.MarketDataIncrementalRefresh
	MarketDataReject    *catalog.MarketDataRequestReject
	PositionReport      *catalog.PositionReport
	QuoteStatusReport   *catalog.QuoteStatusReport
	QuoteRequestReject  *catalog.QuoteRequestReject
	MassQuoteAck        *catalog.MassQuoteAcknowledgement
	SessionReject       *catalog.Reject
	BusinessReject      *catalog.BusinessMessageReject

	Err error
}

// EventSink is a lazy, single-consumer sequence of Events: Client owns the
// producer side and never blocks on a full channel, so a stalled consumer
// cannot wedge the session actor.
type EventSink struct {
	ch chan Event
}

// NewEventSink returns an EventSink buffering up to capacity events before
// Publish starts dropping the oldest ones. Dropped events are not reported.
func NewEventSink(capacity int) *EventSink {
	if capacity <= 0 {
		capacity = 256
	}
	return &EventSink{ch: make(chan Event, capacity)}
}

// Events returns the receive-only channel callers range over.
func (s *EventSink) Events() <-chan Event {
	return s.ch
}

// Publish delivers ev without blocking. If the buffer is full it discards
// the oldest buffered event to make room; no event reports the discard.
func (s *EventSink) Publish(ev Event) {
	select {
	case s.ch <- ev:
	default:
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- ev:
		default:
		}
	}
}

// Close shuts down the event channel; callers must stop reading after this.
func (s *EventSink) Close() {
	close(s.ch)
}
