package catalog

import (
	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// BuildRequestForPositions constructs a Request For Positions (AN).
func BuildRequestForPositions(posReqID, posReqType, account string) *wire.Message {
	return wire.New().
		Set(dictionary.TagPosReqID, posReqID).
		Set(dictionary.TagPosReqType, posReqType).
		SetIfNotEmpty(dictionary.TagAccount, account)
}

// PositionReport is the parsed view of an inbound Position Report (AP).
type PositionReport struct {
	PosMaintRptID string
	PosReqID      string
	Symbol        string
	LongQty       string
	ShortQty      string
	PosType       string
	Account       string
}

func ParsePositionReport(m *wire.Message) PositionReport {
	var out PositionReport
	out.PosMaintRptID, _ = m.Get(dictionary.TagPosMaintRptID)
	out.PosReqID, _ = m.Get(dictionary.TagPosReqID)
	out.Symbol, _ = m.Get(dictionary.TagSymbol)
	out.LongQty, _ = m.Get(dictionary.TagLongQty)
	out.ShortQty, _ = m.Get(dictionary.TagShortQty)
	out.PosType, _ = m.Get(dictionary.TagPosType)
	out.Account, _ = m.Get(dictionary.TagAccount)
	return out
}
