package catalog

import (
	"testing"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

func TestBuildLogon_MissingHeartBtInt(t *testing.T) {
	t.Helper()
	// BuildLogon always writes 108 (HeartBtInt=0 is legal and disables
	// liveness), so check the Logon schema against a body lacking it.
	err := LogonSchema.Validate(wire.New().Set(dictionary.TagEncryptMethod, "0"))
	if err == nil {
		t.Fatalf("expected validation error for missing HeartBtInt")
	}
}

func TestBuildNewOrderSingle_LimitRequiresPrice(t *testing.T) {
	_, err := BuildNewOrderSingle(NewOrderParams{
		ClOrdID: "c1", Symbol: "BTC-PERPETUAL", Side: SideBuy,
		OrdType: OrdTypeLimit, OrderQty: "10", TransactTime: "20241201-10:00:00.000",
	})
	if err == nil {
		t.Fatalf("expected validation error: Limit order missing Price")
	}

	msg, err := BuildNewOrderSingle(NewOrderParams{
		ClOrdID: "c1", Symbol: "BTC-PERPETUAL", Side: SideBuy,
		OrdType: OrdTypeLimit, OrderQty: "10", Price: "50000",
		TransactTime: "20241201-10:00:00.000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := msg.Get(dictionary.TagPrice); v != "50000" {
		t.Fatalf("expected Price 50000, got %s", v)
	}
}

func TestBuildNewOrderSingle_MarketOrderNoPriceNeeded(t *testing.T) {
	_, err := BuildNewOrderSingle(NewOrderParams{
		ClOrdID: "c2", Symbol: "BTC-PERPETUAL", Side: SideSell,
		OrdType: OrdTypeMarket, OrderQty: "5", TransactTime: "20241201-10:00:00.000",
	})
	if err != nil {
		t.Fatalf("unexpected error for market order: %v", err)
	}
}

func TestParseExecutionReport_PreservesUnknownTags(t *testing.T) {
	m, err := BuildNewOrderSingle(NewOrderParams{
		ClOrdID: "c3", Symbol: "ETH-PERPETUAL", Side: SideBuy,
		OrdType: OrdTypeMarket, OrderQty: "1", TransactTime: "20241201-10:00:00.000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Simulate an inbound execution report echoing the order plus an
	// unrecognized custom tag.
	m.Set(dictionary.TagOrderID, "o1")
	m.Set(dictionary.TagExecID, "e1")
	m.Set(dictionary.TagExecType, ExecTypeNew)
	m.Set(dictionary.TagOrdStatus, OrdStatusNew)
	m.Set(dictionary.Tag(99999), "surprise")

	er := ParseExecutionReport(m)
	if er.OrderID != "o1" || er.ExecID != "e1" {
		t.Fatalf("unexpected parsed report: %+v", er)
	}
	if len(er.Extra) != 1 || er.Extra[0].Value != "surprise" {
		t.Fatalf("expected unknown tag preserved in Extra, got %+v", er.Extra)
	}
}

func TestQuoteRequest_RoundTrip(t *testing.T) {
	built, err := BuildQuoteRequest("qr1", []QuoteRequestEntry{
		{Symbol: "BTC-PERPETUAL", Side: SideBuy, OrderQty: "10"},
		{Symbol: "ETH-PERPETUAL"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reqID, entries, cerr := ParseQuoteRequest(built)
	if cerr != nil {
		t.Fatalf("unexpected decode error: %v", cerr)
	}
	if reqID != "qr1" {
		t.Fatalf("expected reqID qr1, got %s", reqID)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Symbol != "BTC-PERPETUAL" || entries[0].OrderQty != "10" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Symbol != "ETH-PERPETUAL" || entries[1].Side != "" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestMassQuote_StandardAndSimplifiedGrouping(t *testing.T) {
	entries := []MassQuoteEntry{
		{QuoteEntryID: "e1", Symbol: "BTC-PERPETUAL", BidPx: "49900", OfferPx: "50100", BidSize: "1", OfferSize: "1"},
		{QuoteEntryID: "e2", Symbol: "ETH-PERPETUAL", BidPx: "2990", OfferPx: "3010", BidSize: "5", OfferSize: "5"},
	}

	standard, err := BuildMassQuote("mq1", entries, QuoteGroupingStandard)
	if err != nil {
		t.Fatalf("unexpected error building standard mass quote: %v", err)
	}
	quoteID, parsed, cerr := ParseMassQuote(standard)
	if cerr != nil {
		t.Fatalf("unexpected decode error (standard): %v", cerr)
	}
	if quoteID != "mq1" || len(parsed) != 2 {
		t.Fatalf("unexpected standard parse result: id=%s entries=%d", quoteID, len(parsed))
	}

	simplified, err := BuildMassQuote("mq2", entries, QuoteGroupingSimplified)
	if err != nil {
		t.Fatalf("unexpected error building simplified mass quote: %v", err)
	}
	quoteID2, parsed2, cerr := ParseMassQuote(simplified)
	if cerr != nil {
		t.Fatalf("unexpected decode error (simplified): %v", cerr)
	}
	if quoteID2 != "mq2" || len(parsed2) != 2 {
		t.Fatalf("unexpected simplified parse result: id=%s entries=%d", quoteID2, len(parsed2))
	}
	if parsed2[1].Symbol != "ETH-PERPETUAL" || parsed2[1].BidPx != "2990" {
		t.Fatalf("unexpected simplified second entry: %+v", parsed2[1])
	}
}

func TestMarketDataRequest_RoundTrip(t *testing.T) {
	built, err := BuildMarketDataRequest(MarketDataRequestParams{
		MdReqID: "md1", SubscriptionRequestType: SubscriptionRequestTypeSubscribe,
		MarketDepth: 10, EntryTypes: []string{MDEntryTypeBid, MDEntryTypeOffer},
		Symbols: []string{"BTC-PERPETUAL"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, cerr := ParseMarketDataRequest(built)
	if cerr != nil {
		t.Fatalf("unexpected decode error: %v", cerr)
	}
	if parsed.MdReqID != "md1" || parsed.MarketDepth != 10 {
		t.Fatalf("unexpected parsed request: %+v", parsed)
	}
	if len(parsed.EntryTypes) != 2 || len(parsed.Symbols) != 1 {
		t.Fatalf("unexpected groups: entryTypes=%v symbols=%v", parsed.EntryTypes, parsed.Symbols)
	}
}

func TestMMProtectionLimits_RequiresIntervalAndLimit(t *testing.T) {
	_, err := BuildMMProtectionLimits(MMProtectionLimitsParams{Symbol: "BTC"})
	if err == nil {
		t.Fatalf("expected validation error for missing MMPLimit/Interval")
	}

	msg, err := BuildMMProtectionLimits(MMProtectionLimitsParams{
		Symbol: "BTC", MMPLimit: "5", Interval: "60",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := msg.Get(dictionary.TagDeribitMMPLimit); v != "5" {
		t.Fatalf("expected MMPLimit 5, got %s", v)
	}
}
