package main

import (
	"fmt"

	"github.com/joaquinbejar/deribit-fix-sub001/client"
)

func displayHelp() {
	fmt.Print(`Commands:
  --- Market Data ---
  md <symbol> [--subscribe|--snapshot] [--depth N] [--trades|--book]
  unsubscribe <mdReqId> <symbol>
  status                          - session state

  --- Order Entry ---
  order <buy|sell> <symbol> <qty> [price] [--type market|limit|stop] [--tif gtc|ioc|fok|gtd] [--postonly]
  cancel <origClOrdId> <symbol> [side]
  replace <origClOrdId> <symbol> [--qty Q] [--price P]
  ordstatus <symbol>               - mass order status request
  masscancel <symbol>
  orders                           - list tracked orders

  --- Quoting / RFQ ---
  rfq <buy|sell|both> <symbol> [qty]
  quote <symbol> <bidPx> <offerPx> [bidSize] [offerSize]
  cancelquote <quoteId>
  quotes                           - list tracked quotes

  --- Account ---
  positions [account]
  seclist [securityType]
  secdef <symbol>
  userreq [userRequestType]
  mmpset <symbol> [--limit N] [--interval secs] [--frozen secs]
  mmpreset <symbol>

  --- General ---
  help, version, exit
`)
}

func displayOrders(orders []*client.Order) {
	if len(orders) == 0 {
		fmt.Println("no tracked orders")
		return
	}
	fmt.Printf("%-36s %-12s %-6s %-8s %-10s %10s %10s\n",
		"ClOrdID", "Symbol", "Side", "Status", "OrdType", "CumQty", "LeavesQty")
	for _, o := range orders {
		fmt.Printf("%-36s %-12s %-6s %-8s %-10s %10s %10s\n",
			o.ClOrdID, o.Symbol, sideName(o.Side), o.OrdStatus, o.OrdType, o.CumQty, o.LeavesQty)
	}
}

func displayQuotes(quotes []*client.Quote) {
	if len(quotes) == 0 {
		fmt.Println("no tracked quotes")
		return
	}
	fmt.Printf("%-36s %-12s %10s %10s %-10s\n", "QuoteReqID", "Symbol", "Bid", "Offer", "Status")
	for _, q := range quotes {
		fmt.Printf("%-36s %-12s %10s %10s %-10s\n", q.QuoteReqID, q.Symbol, q.BidPx, q.OfferPx, q.Status)
	}
}

func sideName(side string) string {
	switch side {
	case "1":
		return "buy"
	case "2":
		return "sell"
	default:
		return side
	}
}

func displayEvent(ev client.Event) {
	switch ev.Kind {
	case client.EventSessionStateChanged:
		fmt.Printf("[session] state -> %s\n", ev.SessionState)
	case client.EventExecutionReport:
		er := ev.ExecutionReport
		fmt.Printf("[exec] ClOrdID=%s OrderID=%s %s status=%s cum=%s leaves=%s\n",
			er.ClOrdID, er.OrderID, er.Symbol, er.OrdStatus, er.CumQty, er.LeavesQty)
	case client.EventOrderCancelReject:
		r := ev.OrderCancelReject
		fmt.Printf("[cancel-reject] ClOrdID=%s reason=%s text=%s\n", r.ClOrdID, r.CxlRejReason, r.Text)
	case client.EventMarketDataSnapshot:
		md := ev.MarketDataSnapshot
		fmt.Printf("[md-snapshot] %s entries=%d\n", md.Symbol, len(md.Entries))
	case client.EventMarketDataIncremental:
		md := ev.MarketDataIncremental
		fmt.Printf("[md-incremental] entries=%d\n", len(md.Entries))
	case client.EventMarketDataRequestReject:
		r := ev.MarketDataReject
		fmt.Printf("[md-reject] reqId=%s reason=%s text=%s\n", r.MdReqID, r.MdReqRejReason, r.Text)
	case client.EventPositionReport:
		p := ev.PositionReport
		fmt.Printf("[position] account=%s symbol=%s qty=%s\n", p.Account, p.Symbol, p.LongQty)
	case client.EventQuoteStatusReport:
		q := ev.QuoteStatusReport
		fmt.Printf("[quote-status] QuoteID=%s symbol=%s status=%s\n", q.QuoteID, q.Symbol, q.QuoteStatus)
	case client.EventQuoteRequestReject:
		r := ev.QuoteRequestReject
		fmt.Printf("[quote-reject] QuoteReqID=%s reason=%s\n", r.QuoteReqID, r.QuoteRejectReason)
	case client.EventMassQuoteAcknowledgement:
		fmt.Println("[mass-quote-ack]", ev.MassQuoteAck.QuoteID)
	case client.EventSessionReject:
		r := ev.SessionReject
		fmt.Printf("[session-reject] refSeqNum=%d reason=%s text=%s\n", r.RefSeqNum, r.SessionRejectReason, r.Text)
	case client.EventBusinessReject:
		r := ev.BusinessReject
		fmt.Printf("[business-reject] refMsgType=%s reason=%s text=%s\n", r.RefMsgType, r.BusinessRejectReason, r.Text)
	case client.EventTransportError:
		fmt.Println("[transport-error]", ev.Err)
	}
}
