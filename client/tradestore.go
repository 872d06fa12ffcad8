package client

import (
	"sync"
	"time"

	"github.com/joaquinbejar/deribit-fix-sub001/catalog"
)

// Trade is one market data entry (book level, trade print, or incremental
// action) received for a subscribed symbol.
type Trade struct {
	ReceivedAt time.Time
	Symbol     string
	EntryType  string // catalog.MDEntryType*
	Px         string
	Size       string
	EntryTime  string
	IsSnapshot bool
}

// Subscription tracks one active market data subscription.
type Subscription struct {
	MdReqID          string
	Symbol           string
	RequestType      string // catalog.SubscriptionRequestType*
	LastUpdate       time.Time
	TotalUpdates     int64
	SnapshotReceived bool
}

// TradeStore is a fixed-capacity ring buffer of recently received market
// data entries, avoiding unbounded growth on a long-running subscription
// while still letting callers inspect recent history.
type TradeStore struct {
	mu            sync.RWMutex
	trades        []Trade
	head          int
	count         int
	maxSize       int
	subscriptions map[string]*Subscription
}

// NewTradeStore returns a TradeStore whose ring buffer holds at most
// maxSize entries.
func NewTradeStore(maxSize int) *TradeStore {
	return &TradeStore{
		trades:        make([]Trade, maxSize),
		maxSize:       maxSize,
		subscriptions: make(map[string]*Subscription),
	}
}

// Subscribe registers a new subscription so subsequent AddEntries calls
// for mdReqID update its metadata.
func (ts *TradeStore) Subscribe(mdReqID, symbol, requestType string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.subscriptions[mdReqID] = &Subscription{MdReqID: mdReqID, Symbol: symbol, RequestType: requestType}
}

// Unsubscribe discards a subscription's metadata; in-flight ring buffer
// entries already recorded under it are left alone.
func (ts *TradeStore) Unsubscribe(mdReqID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.subscriptions, mdReqID)
}

// AddEntries inserts decoded market data entries for symbol into the ring
// buffer, overwriting the oldest entries once the buffer is full.
func (ts *TradeStore) AddEntries(mdReqID, symbol string, entries []catalog.MDEntry, isSnapshot bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if sub, ok := ts.subscriptions[mdReqID]; ok {
		sub.LastUpdate = time.Now()
		sub.TotalUpdates += int64(len(entries))
		if isSnapshot {
			sub.SnapshotReceived = true
		}
	}

	now := time.Now()
	for _, e := range entries {
		trade := Trade{
			ReceivedAt: now,
			Symbol:     symbol,
			EntryType:  e.MdEntryType,
			Px:         e.MdEntryPx,
			Size:       e.MdEntrySize,
			EntryTime:  e.MdEntryTime,
			IsSnapshot: isSnapshot,
		}
		writeIdx := (ts.head + ts.count) % ts.maxSize
		ts.trades[writeIdx] = trade
		if ts.count < ts.maxSize {
			ts.count++
		} else {
			ts.head = (ts.head + 1) % ts.maxSize
		}
	}
}

// Recent returns, oldest first, up to limit of the most recently recorded
// entries for symbol.
func (ts *TradeStore) Recent(symbol string, limit int) []Trade {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if ts.count == 0 {
		return nil
	}

	matched := 0
	for i := 0; i < ts.count && matched < limit; i++ {
		idx := (ts.head + ts.count - 1 - i) % ts.maxSize
		if ts.trades[idx].Symbol == symbol {
			matched++
		}
	}

	out := make([]Trade, matched)
	pos := matched - 1
	for i := 0; i < ts.count && pos >= 0; i++ {
		idx := (ts.head + ts.count - 1 - i) % ts.maxSize
		if ts.trades[idx].Symbol == symbol {
			out[pos] = ts.trades[idx]
			pos--
		}
	}
	return out
}
