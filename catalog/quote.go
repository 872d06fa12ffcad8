package catalog

import (
	"strconv"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// QuoteRequestEntry is one instrument leg of a Quote Request (R), carried in
// the NoRelatedSym repeating group.
type QuoteRequestEntry struct {
	Symbol   string
	Side     string // optional, "" for two-sided
	OrderQty string // optional
}

var quoteRelatedSymSchema = wire.GroupSchema{
	CountTag:     dictionary.TagNoRelatedSym,
	DelimiterTag: dictionary.TagSymbol,
	Elements:     []dictionary.Tag{dictionary.TagSymbol, dictionary.TagSide, dictionary.TagOrderQty},
}

var QuoteRequestSchema = Schema{
	MsgType:  MsgTypeQuoteRequest,
	Required: []dictionary.Tag{dictionary.TagQuoteReqID, dictionary.TagNoRelatedSym},
}

// BuildQuoteRequest constructs a Quote Request (R) carrying one or more
// instrument legs in the NoRelatedSym group.
func BuildQuoteRequest(quoteReqID string, entries []QuoteRequestEntry) (*wire.Message, error) {
	elements := make([]wire.GroupElement, 0, len(entries))
	for _, e := range entries {
		elem := wire.GroupElement{Fields: []wire.Field{{Tag: dictionary.TagSymbol, Value: e.Symbol}}}
		if e.Side != "" {
			elem.Fields = append(elem.Fields, wire.Field{Tag: dictionary.TagSide, Value: e.Side})
		}
		if e.OrderQty != "" {
			elem.Fields = append(elem.Fields, wire.Field{Tag: dictionary.TagOrderQty, Value: e.OrderQty})
		}
		elements = append(elements, elem)
	}

	m := wire.New().Set(dictionary.TagQuoteReqID, quoteReqID)
	m.Fields = append(m.Fields, wire.EncodeGroup(quoteRelatedSymSchema, elements)...)

	if err := QuoteRequestSchema.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseQuoteRequest reads the body of a decoded Quote Request (R), including
// its NoRelatedSym group.
func ParseQuoteRequest(m *wire.Message) (quoteReqID string, entries []QuoteRequestEntry, cerr *wire.CodecError) {
	quoteReqID, _ = m.Get(dictionary.TagQuoteReqID)
	for i, f := range m.Fields {
		if f.Tag == dictionary.TagNoRelatedSym {
			groupElems, _, gerr := wire.DecodeGroup(m.Fields, i, quoteRelatedSymSchema)
			if gerr != nil {
				return quoteReqID, nil, gerr
			}
			for _, ge := range groupElems {
				var entry QuoteRequestEntry
				entry.Symbol, _ = ge.Get(dictionary.TagSymbol)
				entry.Side, _ = ge.Get(dictionary.TagSide)
				entry.OrderQty, _ = ge.Get(dictionary.TagOrderQty)
				entries = append(entries, entry)
			}
			break
		}
	}
	return quoteReqID, entries, nil
}

// QuoteRequestReject is the parsed view of an inbound Quote Request Reject
// (AG).
type QuoteRequestReject struct {
	QuoteReqID         string
	QuoteRejectReason  string
	Text               string
}

func ParseQuoteRequestReject(m *wire.Message) QuoteRequestReject {
	var out QuoteRequestReject
	out.QuoteReqID, _ = m.Get(dictionary.TagQuoteReqID)
	out.QuoteRejectReason, _ = m.Get(dictionary.TagQuoteRejectReason)
	out.Text, _ = m.Get(dictionary.TagText)
	return out
}

// QuoteStatusReport is the parsed view of an inbound Quote Status Report
// (AI).
type QuoteStatusReport struct {
	QuoteID     string
	QuoteReqID  string
	Symbol      string
	BidPx       string
	OfferPx     string
	QuoteStatus string
	Text        string
}

func ParseQuoteStatusReport(m *wire.Message) QuoteStatusReport {
	var out QuoteStatusReport
	out.QuoteID, _ = m.Get(dictionary.TagQuoteID)
	out.QuoteReqID, _ = m.Get(dictionary.TagQuoteReqID)
	out.Symbol, _ = m.Get(dictionary.TagSymbol)
	out.BidPx, _ = m.Get(dictionary.TagBidPx)
	out.OfferPx, _ = m.Get(dictionary.TagOfferPx)
	out.QuoteStatus, _ = m.Get(dictionary.TagQuoteStatus)
	out.Text, _ = m.Get(dictionary.TagText)
	return out
}

// QuoteGroupingMode selects how BuildMassQuote lays out quote entries on the
// wire. Deribit's gateway accepts a flattened custom-tag form alongside the
// standard nested NoQuoteSets/NoQuoteEntries groups from the FIX 4.4
// dictionary; which one a given counterparty expects is a deployment detail,
// not a protocol constant, so callers choose per message.
type QuoteGroupingMode int

const (
	// QuoteGroupingStandard emits the full NoQuoteSets -> NoQuoteEntries
	// nested repeating-group structure.
	QuoteGroupingStandard QuoteGroupingMode = iota
	// QuoteGroupingSimplified emits a single flat NoQuoteEntries group with
	// no quote-set nesting, matching Deribit's simplified single-set form.
	QuoteGroupingSimplified
)

// MassQuoteEntry is one two-sided quote.
type MassQuoteEntry struct {
	QuoteEntryID string
	Symbol       string
	BidPx        string
	OfferPx      string
	BidSize      string
	OfferSize    string
}

var massQuoteEntrySchema = wire.GroupSchema{
	CountTag:     dictionary.TagNoQuoteEntries,
	DelimiterTag: dictionary.TagQuoteEntryID,
	Elements: []dictionary.Tag{
		dictionary.TagQuoteEntryID, dictionary.TagSymbol, dictionary.TagBidPx,
		dictionary.TagOfferPx, dictionary.TagBidSize, dictionary.TagOfferSize,
	},
}

var massQuoteSetSchema = wire.GroupSchema{
	CountTag:     dictionary.TagNoQuoteSets,
	DelimiterTag: dictionary.TagQuoteSetID,
	Elements:     []dictionary.Tag{dictionary.TagQuoteSetID},
	Nested:       map[dictionary.Tag]wire.GroupSchema{dictionary.TagNoQuoteEntries: massQuoteEntrySchema},
}

var MassQuoteSchema = Schema{
	MsgType:  MsgTypeMassQuote,
	Required: []dictionary.Tag{dictionary.TagQuoteID},
}

func entryFields(e MassQuoteEntry) []wire.Field {
	fields := []wire.Field{{Tag: dictionary.TagQuoteEntryID, Value: e.QuoteEntryID}}
	if e.Symbol != "" {
		fields = append(fields, wire.Field{Tag: dictionary.TagSymbol, Value: e.Symbol})
	}
	if e.BidPx != "" {
		fields = append(fields, wire.Field{Tag: dictionary.TagBidPx, Value: e.BidPx})
	}
	if e.OfferPx != "" {
		fields = append(fields, wire.Field{Tag: dictionary.TagOfferPx, Value: e.OfferPx})
	}
	if e.BidSize != "" {
		fields = append(fields, wire.Field{Tag: dictionary.TagBidSize, Value: e.BidSize})
	}
	if e.OfferSize != "" {
		fields = append(fields, wire.Field{Tag: dictionary.TagOfferSize, Value: e.OfferSize})
	}
	return fields
}

// BuildMassQuote constructs a Mass Quote (i) in either the standard nested
// quote-set form or Deribit's simplified flat form, per mode.
func BuildMassQuote(quoteID string, entries []MassQuoteEntry, mode QuoteGroupingMode) (*wire.Message, error) {
	m := wire.New().Set(dictionary.TagQuoteID, quoteID)

	switch mode {
	case QuoteGroupingSimplified:
		elements := make([]wire.GroupElement, 0, len(entries))
		for _, e := range entries {
			elements = append(elements, wire.GroupElement{Fields: entryFields(e)})
		}
		m.Fields = append(m.Fields, wire.EncodeGroup(massQuoteEntrySchema, elements)...)
	default: // QuoteGroupingStandard
		quoteEntryElems := make([]wire.GroupElement, 0, len(entries))
		for _, e := range entries {
			quoteEntryElems = append(quoteEntryElems, wire.GroupElement{Fields: entryFields(e)})
		}
		setElem := wire.GroupElement{
			Fields: []wire.Field{{Tag: dictionary.TagQuoteSetID, Value: "1"}},
			Nested: map[dictionary.Tag][]wire.GroupElement{dictionary.TagNoQuoteEntries: quoteEntryElems},
		}
		m.Fields = append(m.Fields, wire.EncodeGroup(massQuoteSetSchema, []wire.GroupElement{setElem})...)
	}

	if err := MassQuoteSchema.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseMassQuote reads a Mass Quote (i) body, detecting whichever grouping
// mode the counterparty used by inspecting which count tag is present.
func ParseMassQuote(m *wire.Message) (quoteID string, entries []MassQuoteEntry, cerr *wire.CodecError) {
	quoteID, _ = m.Get(dictionary.TagQuoteID)
	for i, f := range m.Fields {
		switch f.Tag {
		case dictionary.TagNoQuoteEntries:
			groupElems, _, gerr := wire.DecodeGroup(m.Fields, i, massQuoteEntrySchema)
			if gerr != nil {
				return quoteID, nil, gerr
			}
			entries = append(entries, entriesFromGroup(groupElems)...)
			return quoteID, entries, nil
		case dictionary.TagNoQuoteSets:
			setElems, _, gerr := wire.DecodeGroup(m.Fields, i, massQuoteSetSchema)
			if gerr != nil {
				return quoteID, nil, gerr
			}
			for _, set := range setElems {
				entries = append(entries, entriesFromGroup(set.Nested[dictionary.TagNoQuoteEntries])...)
			}
			return quoteID, entries, nil
		}
	}
	return quoteID, nil, nil
}

func entriesFromGroup(groupElems []wire.GroupElement) []MassQuoteEntry {
	out := make([]MassQuoteEntry, 0, len(groupElems))
	for _, ge := range groupElems {
		var e MassQuoteEntry
		e.QuoteEntryID, _ = ge.Get(dictionary.TagQuoteEntryID)
		e.Symbol, _ = ge.Get(dictionary.TagSymbol)
		e.BidPx, _ = ge.Get(dictionary.TagBidPx)
		e.OfferPx, _ = ge.Get(dictionary.TagOfferPx)
		e.BidSize, _ = ge.Get(dictionary.TagBidSize)
		e.OfferSize, _ = ge.Get(dictionary.TagOfferSize)
		out = append(out, e)
	}
	return out
}

// MassQuoteAcknowledgement is the parsed view of an inbound Mass Quote
// Acknowledgement (b).
type MassQuoteAcknowledgement struct {
	QuoteID        string
	QuoteStatus    string
	QuoteRejectReason string
	Text           string
}

func ParseMassQuoteAcknowledgement(m *wire.Message) MassQuoteAcknowledgement {
	var out MassQuoteAcknowledgement
	out.QuoteID, _ = m.Get(dictionary.TagQuoteID)
	out.QuoteStatus, _ = m.Get(dictionary.TagQuoteStatus)
	out.QuoteRejectReason, _ = m.Get(dictionary.TagQuoteRejectReason)
	out.Text, _ = m.Get(dictionary.TagText)
	return out
}

// BuildQuoteCancel constructs a Quote Cancel (Z) cancelling quoteID, or all
// quotes when cancelType is QuoteCancelTypeCancelAllQuotes.
func BuildQuoteCancel(quoteID, cancelType string) *wire.Message {
	return wire.New().
		SetIfNotEmpty(dictionary.TagQuoteID, quoteID).
		Set(dictionary.TagQuoteCancelType, cancelType)
}

// BuildRFQRequest constructs an RFQ Request (AH): a passive solicitation for
// market makers to stream quotes on the given symbols, distinct from a Quote
// Request in that it names no side or size.
func BuildRFQRequest(rfqReqID string, symbols []string) *wire.Message {
	schema := wire.GroupSchema{
		CountTag:     dictionary.TagNoRelatedSym,
		DelimiterTag: dictionary.TagSymbol,
		Elements:     []dictionary.Tag{dictionary.TagSymbol},
	}
	elements := make([]wire.GroupElement, 0, len(symbols))
	for _, s := range symbols {
		elements = append(elements, wire.GroupElement{Fields: []wire.Field{{Tag: dictionary.TagSymbol, Value: s}}})
	}
	m := wire.New().Set(dictionary.TagRFQReqID, rfqReqID)
	m.Fields = append(m.Fields, wire.EncodeGroup(schema, elements)...)
	return m
}

// formatUint is a small shared helper, kept local to avoid a stutter import
// of strconv across every catalog file that only needs this one call.
func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
