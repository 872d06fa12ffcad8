package catalog

import (
	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// BuildSecurityListRequest constructs a Security List Request (x).
func BuildSecurityListRequest(secReqID, securityType string) *wire.Message {
	m := wire.New().Set(dictionary.TagSecurityReqID, secReqID)
	m.SetIfNotEmpty(dictionary.TagSecurityType, securityType)
	return m
}

// SecurityListEntry is one instrument in a Security List (y).
type SecurityListEntry struct {
	Symbol       string
	SecurityType string
}

var secListRelatedSymSchema = wire.GroupSchema{
	CountTag:     dictionary.TagNoRelatedSymSecList,
	DelimiterTag: dictionary.TagSymbol,
	Elements:     []dictionary.Tag{dictionary.TagSymbol, dictionary.TagSecurityType},
}

// SecurityList is the parsed view of an inbound Security List (y).
type SecurityList struct {
	SecurityResponseID string
	Entries            []SecurityListEntry
}

// ParseSecurityList reads a decoded Security List (y), including its
// NoRelatedSym group.
func ParseSecurityList(m *wire.Message) (SecurityList, *wire.CodecError) {
	var out SecurityList
	out.SecurityResponseID, _ = m.Get(dictionary.TagSecurityResponseID)
	for i, f := range m.Fields {
		if f.Tag != dictionary.TagNoRelatedSymSecList {
			continue
		}
		elems, _, cerr := wire.DecodeGroup(m.Fields, i, secListRelatedSymSchema)
		if cerr != nil {
			return out, cerr
		}
		for _, e := range elems {
			var entry SecurityListEntry
			entry.Symbol, _ = e.Get(dictionary.TagSymbol)
			entry.SecurityType, _ = e.Get(dictionary.TagSecurityType)
			out.Entries = append(out.Entries, entry)
		}
		break
	}
	return out, nil
}

// BuildSecurityDefinitionRequest constructs a Security Definition Request
// (c).
func BuildSecurityDefinitionRequest(secReqID, symbol, securityRequestType string) *wire.Message {
	return wire.New().
		Set(dictionary.TagSecurityReqID, secReqID).
		SetIfNotEmpty(dictionary.TagSymbol, symbol).
		Set(dictionary.TagSecurityRequestType, securityRequestType)
}

// SecurityDefinition is the parsed view of an inbound Security Definition
// (d).
type SecurityDefinition struct {
	SecurityResponseID string
	Symbol             string
	SecurityType       string
}

func ParseSecurityDefinition(m *wire.Message) SecurityDefinition {
	var out SecurityDefinition
	out.SecurityResponseID, _ = m.Get(dictionary.TagSecurityResponseID)
	out.Symbol, _ = m.Get(dictionary.TagSymbol)
	out.SecurityType, _ = m.Get(dictionary.TagSecurityType)
	return out
}

// BuildSecurityStatusRequest constructs a Security Status Request (e).
func BuildSecurityStatusRequest(secStatusReqID, symbol, subscriptionRequestType string) *wire.Message {
	return wire.New().
		Set(dictionary.TagSecurityStatusReqID, secStatusReqID).
		Set(dictionary.TagSymbol, symbol).
		SetIfNotEmpty(dictionary.TagSubscriptionRequestType, subscriptionRequestType)
}

// SecurityStatus is the parsed view of an inbound Security Status (f).
type SecurityStatus struct {
	SecurityStatusReqID string
	Symbol               string
	SecurityStatus       string
}

func ParseSecurityStatus(m *wire.Message) SecurityStatus {
	var out SecurityStatus
	out.SecurityStatusReqID, _ = m.Get(dictionary.TagSecurityStatusReqID)
	out.Symbol, _ = m.Get(dictionary.TagSymbol)
	out.SecurityStatus, _ = m.Get(dictionary.TagSecurityStatus)
	return out
}
