// Package client is the client API surface (C7): connect/session lifecycle,
// order entry, market data subscriptions, and the supporting order/trade/
// quote stores that correlate inbound reports back to the request that
// caused them.
package client

import (
	"sync"

	"github.com/joaquinbejar/deribit-fix-sub001/catalog"
	"github.com/joaquinbejar/deribit-fix-sub001/config"
)

// Order is one order's current state as tracked by the client, built up
// from the ExecutionReports correlated to its ClOrdID.
type Order struct {
	ClOrdID     string
	OrderID     string
	Symbol      string
	Side        string
	OrdType     string
	TimeInForce string
	OrdStatus   string
	ExecType    string

	OrderQty  string
	Price     string
	StopPx    string
	AvgPx     string
	CumQty    string
	LeavesQty string

	LastPx     string
	LastShares string
	ExecID     string

	OrdRejReason string
	Text         string
	Account      string
}

// openStatuses are the OrdStatus values that mean an order is still live.
var openStatuses = map[string]bool{
	catalog.OrdStatusNew:             true,
	catalog.OrdStatusPartiallyFilled: true,
	catalog.OrdStatusPendingCancel:   true,
	catalog.OrdStatusPendingNew:      true,
	catalog.OrdStatusPendingReplace:  true,
}

// OrderStore is thread-safe storage for orders, correlated by ClOrdID
// (client-assigned) and OrderID (exchange-assigned).
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*Order
	clock  config.Clock
}

// NewOrderStore returns an empty OrderStore. A nil clock defaults to
// config.SystemClock.
func NewOrderStore(clock config.Clock) *OrderStore {
	if clock == nil {
		clock = config.SystemClock{}
	}
	return &OrderStore{orders: make(map[string]*Order), clock: clock}
}

// ApplyExecutionReport folds an inbound Execution Report (8) into the order
// tracked under its ClOrdID, creating one if this is the first report seen
// for it.
func (s *OrderStore) ApplyExecutionReport(er catalog.ExecutionReport) *Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[er.ClOrdID]
	if !ok {
		order = &Order{ClOrdID: er.ClOrdID}
		s.orders[er.ClOrdID] = order
	}

	order.OrderID = er.OrderID
	order.Symbol = er.Symbol
	order.Side = er.Side
	order.OrdType = er.OrdType
	order.OrdStatus = er.OrdStatus
	order.ExecType = er.ExecType
	order.Account = er.Account

	setIfNotEmpty(&order.OrderQty, er.OrderQty)
	setIfNotEmpty(&order.Price, er.Price)
	setIfNotEmpty(&order.StopPx, er.StopPx)
	setIfNotEmpty(&order.AvgPx, er.AvgPx)
	setIfNotEmpty(&order.CumQty, er.CumQty)
	setIfNotEmpty(&order.LeavesQty, er.LeavesQty)
	setIfNotEmpty(&order.LastPx, er.LastPx)
	setIfNotEmpty(&order.LastShares, er.LastShares)
	setIfNotEmpty(&order.ExecID, er.ExecID)
	setIfNotEmpty(&order.OrdRejReason, er.OrdRejReason)
	setIfNotEmpty(&order.Text, er.Text)

	out := *order
	return &out
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Get returns the order tracked under clOrdID, or nil if none exists.
func (s *OrderStore) Get(clOrdID string) *Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[clOrdID]
	if !ok {
		return nil
	}
	out := *order
	return &out
}

// GetByOrderID returns the order tracked under the exchange-assigned
// OrderID, or nil if none exists.
func (s *OrderStore) GetByOrderID(orderID string) *Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.orders {
		if order.OrderID == orderID {
			out := *order
			return &out
		}
	}
	return nil
}

// All returns a snapshot of every tracked order.
func (s *OrderStore) All() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Order, 0, len(s.orders))
	for _, order := range s.orders {
		copied := *order
		out = append(out, &copied)
	}
	return out
}

// Open returns a snapshot of every order whose OrdStatus is still live.
func (s *OrderStore) Open() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Order, 0)
	for _, order := range s.orders {
		if openStatuses[order.OrdStatus] {
			copied := *order
			out = append(out, &copied)
		}
	}
	return out
}

// Remove discards the tracked order, e.g. once a terminal status is
// processed and the caller no longer needs it in memory.
func (s *OrderStore) Remove(clOrdID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, clOrdID)
}
