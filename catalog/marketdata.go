package catalog

import (
	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// mdEntryTypesSchema describes the NoMDEntryTypes group every Market Data
// Request (V) carries: which book sides/trades the caller wants.
var mdEntryTypesSchema = wire.GroupSchema{
	CountTag:     dictionary.TagNoMdEntryTypes,
	DelimiterTag: dictionary.TagMdEntryType,
	Elements:     []dictionary.Tag{dictionary.TagMdEntryType},
}

// mdRelatedSymSchema describes the NoRelatedSym group: the instruments a
// request applies to.
var mdRelatedSymSchema = wire.GroupSchema{
	CountTag:     dictionary.TagNoRelatedSym,
	DelimiterTag: dictionary.TagSymbol,
	Elements:     []dictionary.Tag{dictionary.TagSymbol},
}

// mdEntriesSchema describes the NoMDEntries group carried by a snapshot or
// incremental refresh: one element per book level, trade print, or
// incremental action.
var mdEntriesSchema = wire.GroupSchema{
	CountTag:     dictionary.TagNoMdEntries,
	DelimiterTag: dictionary.TagMdEntryType,
	Elements: []dictionary.Tag{
		dictionary.TagMdEntryType, dictionary.TagMdEntryPx, dictionary.TagMdEntrySize,
		dictionary.TagMdEntryDate, dictionary.TagMdEntryTime, dictionary.TagMdEntryID,
		dictionary.TagMdUpdateAction, dictionary.TagMdEntryPositionNo, dictionary.TagSymbol,
	},
}

// MarketDataRequestParams are the parameters for a Market Data Request (V).
type MarketDataRequestParams struct {
	MdReqID                 string
	SubscriptionRequestType  string // SubscriptionRequestType*
	MarketDepth              int
	MdUpdateType             string
	EntryTypes               []string // MDEntryType* values
	Symbols                  []string
}

var MarketDataRequestSchema = Schema{
	MsgType: MsgTypeMarketDataRequest,
	Required: []dictionary.Tag{
		dictionary.TagMdReqID, dictionary.TagSubscriptionRequestType, dictionary.TagMarketDepth,
		dictionary.TagNoMdEntryTypes, dictionary.TagNoRelatedSym,
	},
}

// BuildMarketDataRequest constructs a Market Data Request (V) subscribing to
// (or unsubscribing from) the given symbols for the given entry types.
func BuildMarketDataRequest(p MarketDataRequestParams) (*wire.Message, error) {
	m := wire.New().
		Set(dictionary.TagMdReqID, p.MdReqID).
		Set(dictionary.TagSubscriptionRequestType, p.SubscriptionRequestType).
		SetInt(dictionary.TagMarketDepth, int64(p.MarketDepth))
	m.SetIfNotEmpty(dictionary.TagMdUpdateType, p.MdUpdateType)

	entryElems := make([]wire.GroupElement, 0, len(p.EntryTypes))
	for _, et := range p.EntryTypes {
		entryElems = append(entryElems, wire.GroupElement{Fields: []wire.Field{{Tag: dictionary.TagMdEntryType, Value: et}}})
	}
	m.Fields = append(m.Fields, wire.EncodeGroup(mdEntryTypesSchema, entryElems)...)

	symElems := make([]wire.GroupElement, 0, len(p.Symbols))
	for _, s := range p.Symbols {
		symElems = append(symElems, wire.GroupElement{Fields: []wire.Field{{Tag: dictionary.TagSymbol, Value: s}}})
	}
	m.Fields = append(m.Fields, wire.EncodeGroup(mdRelatedSymSchema, symElems)...)

	if err := MarketDataRequestSchema.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseMarketDataRequest reads the body of a decoded Market Data Request.
func ParseMarketDataRequest(m *wire.Message) (MarketDataRequestParams, *wire.CodecError) {
	var out MarketDataRequestParams
	out.MdReqID, _ = m.Get(dictionary.TagMdReqID)
	out.SubscriptionRequestType, _ = m.Get(dictionary.TagSubscriptionRequestType)
	if v, ok := m.Get(dictionary.TagMarketDepth); ok {
		out.MarketDepth = atoiOrZero(v)
	}
	out.MdUpdateType, _ = m.Get(dictionary.TagMdUpdateType)

	for i, f := range m.Fields {
		if f.Tag == dictionary.TagNoMdEntryTypes {
			elems, _, cerr := wire.DecodeGroup(m.Fields, i, mdEntryTypesSchema)
			if cerr != nil {
				return out, cerr
			}
			for _, e := range elems {
				v, _ := e.Get(dictionary.TagMdEntryType)
				out.EntryTypes = append(out.EntryTypes, v)
			}
		}
		if f.Tag == dictionary.TagNoRelatedSym {
			elems, _, cerr := wire.DecodeGroup(m.Fields, i, mdRelatedSymSchema)
			if cerr != nil {
				return out, cerr
			}
			for _, e := range elems {
				v, _ := e.Get(dictionary.TagSymbol)
				out.Symbols = append(out.Symbols, v)
			}
		}
	}
	return out, nil
}

// MarketDataRequestReject is the parsed view of an inbound Market Data
// Request Reject (Y).
type MarketDataRequestReject struct {
	MdReqID        string
	MdReqRejReason string
	Text           string
}

func ParseMarketDataRequestReject(m *wire.Message) MarketDataRequestReject {
	var out MarketDataRequestReject
	out.MdReqID, _ = m.Get(dictionary.TagMdReqID)
	out.MdReqRejReason, _ = m.Get(dictionary.TagMdReqRejReason)
	out.Text, _ = m.Get(dictionary.TagText)
	return out
}

// MDEntry is one decoded book level, trade print, or incremental action
// within a snapshot or incremental refresh.
type MDEntry struct {
	MdEntryType    string
	Symbol         string
	MdEntryPx      string
	MdEntrySize    string
	MdEntryDate    string
	MdEntryTime    string
	MdEntryID      string
	MdUpdateAction string
}

func parseMDEntries(m *wire.Message) ([]MDEntry, *wire.CodecError) {
	var out []MDEntry
	for i, f := range m.Fields {
		if f.Tag != dictionary.TagNoMdEntries {
			continue
		}
		elems, _, cerr := wire.DecodeGroup(m.Fields, i, mdEntriesSchema)
		if cerr != nil {
			return nil, cerr
		}
		for _, e := range elems {
			var entry MDEntry
			entry.MdEntryType, _ = e.Get(dictionary.TagMdEntryType)
			entry.Symbol, _ = e.Get(dictionary.TagSymbol)
			entry.MdEntryPx, _ = e.Get(dictionary.TagMdEntryPx)
			entry.MdEntrySize, _ = e.Get(dictionary.TagMdEntrySize)
			entry.MdEntryDate, _ = e.Get(dictionary.TagMdEntryDate)
			entry.MdEntryTime, _ = e.Get(dictionary.TagMdEntryTime)
			entry.MdEntryID, _ = e.Get(dictionary.TagMdEntryID)
			entry.MdUpdateAction, _ = e.Get(dictionary.TagMdUpdateAction)
			out = append(out, entry)
		}
		break
	}
	return out, nil
}

// MarketDataSnapshot is the parsed view of an inbound Market Data Snapshot
// Full Refresh (W).
type MarketDataSnapshot struct {
	MdReqID string
	Symbol  string
	Entries []MDEntry
}

// ParseMarketDataSnapshot reads a decoded Market Data Snapshot (W), including
// its NoMDEntries group.
func ParseMarketDataSnapshot(m *wire.Message) (MarketDataSnapshot, *wire.CodecError) {
	var out MarketDataSnapshot
	out.MdReqID, _ = m.Get(dictionary.TagMdReqID)
	out.Symbol, _ = m.Get(dictionary.TagSymbol)
	entries, cerr := parseMDEntries(m)
	if cerr != nil {
		return out, cerr
	}
	out.Entries = entries
	return out, nil
}

// MarketDataIncrementalRefresh is the parsed view of an inbound Market Data
// Incremental Refresh (X).
type MarketDataIncrementalRefresh struct {
	Entries []MDEntry
}

// ParseMarketDataIncrementalRefresh reads a decoded Market Data Incremental
// Refresh (X), including its NoMDEntries group.
func ParseMarketDataIncrementalRefresh(m *wire.Message) (MarketDataIncrementalRefresh, *wire.CodecError) {
	var out MarketDataIncrementalRefresh
	entries, cerr := parseMDEntries(m)
	if cerr != nil {
		return out, cerr
	}
	out.Entries = entries
	return out, nil
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
