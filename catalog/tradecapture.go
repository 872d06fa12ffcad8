package catalog

import (
	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// BuildTradeCaptureReportRequest constructs a Trade Capture Report Request
// (AD).
func BuildTradeCaptureReportRequest(tradeRequestID, tradeRequestType, symbol string) *wire.Message {
	m := wire.New().
		Set(dictionary.TagTradeRequestID, tradeRequestID).
		Set(dictionary.TagTradeRequestType, tradeRequestType)
	m.SetIfNotEmpty(dictionary.TagSymbol, symbol)
	return m
}

// TradeCaptureReportAck is the parsed view of an inbound Trade Capture
// Report Request Ack (AQ).
type TradeCaptureReportAck struct {
	TradeRequestID string
	TradeRequestType string
	Text           string
}

func ParseTradeCaptureReportAck(m *wire.Message) TradeCaptureReportAck {
	var out TradeCaptureReportAck
	out.TradeRequestID, _ = m.Get(dictionary.TagTradeRequestID)
	out.TradeRequestType, _ = m.Get(dictionary.TagTradeRequestType)
	out.Text, _ = m.Get(dictionary.TagText)
	return out
}

// TradeCaptureReport is the parsed view of an inbound Trade Capture Report
// (AE).
type TradeCaptureReport struct {
	TradeReportID        string
	ExecRefID            string
	Symbol               string
	LastPx               string
	LastShares           string
	TrdType              string
	TradeReportTransType string
}

func ParseTradeCaptureReport(m *wire.Message) TradeCaptureReport {
	var out TradeCaptureReport
	out.TradeReportID, _ = m.Get(dictionary.TagTradeReportID)
	out.ExecRefID, _ = m.Get(dictionary.TagExecRefID)
	out.Symbol, _ = m.Get(dictionary.TagSymbol)
	out.LastPx, _ = m.Get(dictionary.TagLastPx)
	out.LastShares, _ = m.Get(dictionary.TagLastShares)
	out.TrdType, _ = m.Get(dictionary.TagTrdType)
	out.TradeReportTransType, _ = m.Get(dictionary.TagTradeReportTransType)
	return out
}
