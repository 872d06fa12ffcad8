package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/joaquinbejar/deribit-fix-sub001/catalog"
	"github.com/joaquinbejar/deribit-fix-sub001/client"
	"github.com/joaquinbejar/deribit-fix-sub001/config"
)

// app wires a client.Client to the interactive console.
type app struct {
	client *client.Client
	cfg    config.Config
}

func newApp(cl *client.Client, cfg config.Config) *app {
	return &app{client: cl, cfg: cfg}
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("md",
			readline.PcItem("--snapshot"), readline.PcItem("--subscribe"), readline.PcItem("--depth"),
		),
		readline.PcItem("unsubscribe"),
		readline.PcItem("status"),
		readline.PcItem("order",
			readline.PcItem("buy"), readline.PcItem("sell"),
		),
		readline.PcItem("cancel"),
		readline.PcItem("replace"),
		readline.PcItem("ordstatus"),
		readline.PcItem("masscancel"),
		readline.PcItem("orders"),
		readline.PcItem("rfq",
			readline.PcItem("buy"), readline.PcItem("sell"),
		),
		readline.PcItem("quote"),
		readline.PcItem("cancelquote"),
		readline.PcItem("quotes"),
		readline.PcItem("positions"),
		readline.PcItem("seclist"),
		readline.PcItem("secdef"),
		readline.PcItem("userreq"),
		readline.PcItem("mmpset"),
		readline.PcItem("mmpreset"),
		readline.PcItem("help"),
		readline.PcItem("version"),
		readline.PcItem("exit"),
	)
}

// runREPL drives the interactive command loop until the user exits or the
// session disconnects.
func (a *app) runREPL() {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "deribit-fix> ",
		HistoryFile:     "/tmp/deribitfixctl_history",
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Println("readline init failed:", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		if cmd == "exit" || cmd == "quit" {
			break
		}
		a.dispatch(cmd, args)

		if !a.client.IsConnected() {
			fmt.Println("session no longer connected, exiting")
			break
		}
	}

	_ = a.client.Disconnect(a.cfg.LogoutTimeout)
}

func (a *app) dispatch(cmd string, args []string) {
	switch cmd {
	case "help":
		displayHelp()
	case "version":
		fmt.Println("deribitfixctl", version)
	case "status":
		a.handleStatus()
	case "md":
		a.handleMarketDataRequest(args)
	case "unsubscribe":
		a.handleUnsubscribe(args)
	case "order":
		a.handleOrder(args)
	case "cancel":
		a.handleCancel(args)
	case "replace":
		a.handleReplace(args)
	case "ordstatus":
		a.handleOrdStatus(args)
	case "masscancel":
		a.handleMassCancel(args)
	case "orders":
		a.handleOrders()
	case "rfq":
		a.handleRfq(args)
	case "quote":
		a.handleMassQuote(args)
	case "cancelquote":
		a.handleCancelQuote(args)
	case "quotes":
		a.handleQuotes()
	case "positions":
		a.handlePositions(args)
	case "seclist":
		a.handleSecurityList(args)
	case "secdef":
		a.handleSecurityDefinition(args)
	case "userreq":
		a.handleUserRequest(args)
	case "mmpset":
		a.handleMMPSet(args)
	case "mmpreset":
		a.handleMMPReset(args)
	default:
		fmt.Printf("unknown command: %s (try 'help')\n", cmd)
	}
}

func (a *app) handleStatus() {
	fmt.Printf("State: %s  Connected: %v  LoggedIn: %v\n",
		a.client.State(), a.client.IsConnected(), a.client.IsLoggedIn())
}

func (a *app) handleMarketDataRequest(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: md <symbol> [--subscribe|--snapshot] [--depth N]")
		return
	}
	symbol := args[0]
	depth := 1
	entryTypes := []string{catalog.MDEntryTypeTrade}
	subscribe := true

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--snapshot":
			subscribe = false
		case "--subscribe":
			subscribe = true
		case "--depth":
			if i+1 < len(args) {
				i++
				if d, err := strconv.Atoi(args[i]); err == nil {
					depth = d
				}
			}
		case "--trades":
			entryTypes = []string{catalog.MDEntryTypeTrade}
		case "--book":
			entryTypes = []string{catalog.MDEntryTypeBid, catalog.MDEntryTypeOffer}
		}
	}

	if subscribe {
		reqID, err := a.client.SubscribeMarketData(symbol, depth, entryTypes)
		if err != nil {
			fmt.Println("market data request failed:", err)
			return
		}
		fmt.Printf("subscribed %s (depth=%d, reqId=%s)\n", symbol, depth, reqID)
		return
	}
	reqID, err := a.client.SubscribeMarketData(symbol, depth, entryTypes)
	if err != nil {
		fmt.Println("snapshot request failed:", err)
		return
	}
	fmt.Printf("snapshot requested for %s (reqId=%s)\n", symbol, reqID)
}

func (a *app) handleUnsubscribe(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: unsubscribe <mdReqId> <symbol>")
		return
	}
	if err := a.client.UnsubscribeMarketData(args[0], args[1]); err != nil {
		fmt.Println("unsubscribe failed:", err)
		return
	}
	fmt.Println("unsubscribe request sent")
}

func (a *app) handleOrder(args []string) {
	if len(args) < 3 {
		fmt.Println("usage: order <buy|sell> <symbol> <qty> [price] [--type market|limit|stop] [--tif gtc|ioc|fok|gtd] [--postonly]")
		return
	}
	side := sideFromWord(args[0])
	if side == "" {
		fmt.Println("side must be buy or sell")
		return
	}
	symbol := args[1]
	qty := args[2]

	params := catalog.NewOrderParams{Symbol: symbol, Side: side, OrdType: catalog.OrdTypeMarket, OrderQty: qty}

	rest := args[3:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "--") {
		params.Price = rest[0]
		params.OrdType = catalog.OrdTypeLimit
		rest = rest[1:]
	}
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--type":
			if i+1 < len(rest) {
				i++
				params.OrdType = parseOrdType(rest[i])
			}
		case "--tif":
			if i+1 < len(rest) {
				i++
				params.TimeInForce = parseTif(rest[i])
			}
		case "--postonly":
			params.PostOnly = true
		}
	}

	clOrdID, err := a.client.PlaceOrder(params)
	if err != nil {
		fmt.Println("order submission failed:", err)
		return
	}
	fmt.Printf("order submitted: ClOrdID=%s %s %s qty=%s\n", clOrdID, side, symbol, qty)
}

func (a *app) handleCancel(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: cancel <origClOrdId> <symbol> [side]")
		return
	}
	side := catalog.SideBuy
	if len(args) > 2 {
		if s := sideFromWord(args[2]); s != "" {
			side = s
		}
	}
	clOrdID, err := a.client.CancelOrder(catalog.CancelOrderParams{
		OrigClOrdID: args[0], Symbol: args[1], Side: side,
	})
	if err != nil {
		fmt.Println("cancel failed:", err)
		return
	}
	fmt.Printf("cancel request sent: ClOrdID=%s\n", clOrdID)
}

func (a *app) handleReplace(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: replace <origClOrdId> <symbol> [--qty Q] [--price P]")
		return
	}
	params := catalog.ReplaceOrderParams{OrigClOrdID: args[0], Symbol: args[1], Side: catalog.SideBuy, OrdType: catalog.OrdTypeLimit}
	for i := 2; i < len(args); i++ {
		switch args[i] {
		case "--qty":
			if i+1 < len(args) {
				i++
				params.OrderQty = args[i]
			}
		case "--price":
			if i+1 < len(args) {
				i++
				params.Price = args[i]
			}
		}
	}
	clOrdID, err := a.client.ReplaceOrder(params)
	if err != nil {
		fmt.Println("replace failed:", err)
		return
	}
	fmt.Printf("replace request sent: ClOrdID=%s\n", clOrdID)
}

func (a *app) handleOrdStatus(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: ordstatus <symbol>")
		return
	}
	reqID, err := a.client.MassStatus(args[0])
	if err != nil {
		fmt.Println("order status request failed:", err)
		return
	}
	fmt.Printf("mass status requested (reqId=%s)\n", reqID)
}

func (a *app) handleMassCancel(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: masscancel <symbol>")
		return
	}
	clOrdID, err := a.client.MassCancel(args[0])
	if err != nil {
		fmt.Println("mass cancel failed:", err)
		return
	}
	fmt.Printf("mass cancel sent: ClOrdID=%s\n", clOrdID)
}

func (a *app) handleOrders() {
	displayOrders(a.client.Orders.All())
}

func (a *app) handleRfq(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: rfq <buy|sell|both> <symbol> [qty]")
		return
	}
	entry := catalog.QuoteRequestEntry{Symbol: args[1]}
	if side := sideFromWord(args[0]); side != "" {
		entry.Side = side
	}
	if len(args) > 2 {
		entry.OrderQty = args[2]
	}
	reqID, err := a.client.RequestQuote([]catalog.QuoteRequestEntry{entry})
	if err != nil {
		fmt.Println("quote request failed:", err)
		return
	}
	fmt.Printf("quote requested (reqId=%s)\n", reqID)
}

func (a *app) handleMassQuote(args []string) {
	if len(args) < 3 {
		fmt.Println("usage: quote <symbol> <bidPx> <offerPx> [bidSize] [offerSize]")
		return
	}
	q := client.MassQuoteInput{Symbol: args[0], BidPx: args[1], OfferPx: args[2], BidSize: "1", OfferSize: "1"}
	if len(args) > 3 {
		q.BidSize = args[3]
	}
	if len(args) > 4 {
		q.OfferSize = args[4]
	}
	quoteID, err := a.client.SendMassQuote([]client.MassQuoteInput{q})
	if err != nil {
		fmt.Println("mass quote failed:", err)
		return
	}
	fmt.Printf("mass quote sent: QuoteID=%s\n", quoteID)
}

func (a *app) handleCancelQuote(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: cancelquote <quoteId>")
		return
	}
	if err := a.client.CancelQuote(args[0]); err != nil {
		fmt.Println("cancel quote failed:", err)
		return
	}
	fmt.Println("quote cancel sent")
}

func (a *app) handleQuotes() {
	displayQuotes(a.client.Quotes.All())
}

func (a *app) handlePositions(args []string) {
	account := ""
	if len(args) > 0 {
		account = args[0]
	}
	reqID, err := a.client.RequestPositions(account)
	if err != nil {
		fmt.Println("position request failed:", err)
		return
	}
	fmt.Printf("positions requested (reqId=%s)\n", reqID)
}

func (a *app) handleSecurityList(args []string) {
	secType := ""
	if len(args) > 0 {
		secType = args[0]
	}
	reqID, err := a.client.RequestSecurityList(secType)
	if err != nil {
		fmt.Println("security list request failed:", err)
		return
	}
	fmt.Printf("security list requested (reqId=%s)\n", reqID)
}

func (a *app) handleSecurityDefinition(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: secdef <symbol>")
		return
	}
	reqID, err := a.client.RequestSecurityDefinition(args[0])
	if err != nil {
		fmt.Println("security definition request failed:", err)
		return
	}
	fmt.Printf("security definition requested (reqId=%s)\n", reqID)
}

func (a *app) handleUserRequest(args []string) {
	userReqType := "1"
	if len(args) > 0 {
		userReqType = args[0]
	}
	reqID, err := a.client.UserRequest(userReqType)
	if err != nil {
		fmt.Println("user request failed:", err)
		return
	}
	fmt.Printf("user request sent (reqId=%s)\n", reqID)
}

func (a *app) handleMMPSet(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: mmpset <symbol> [--limit N] [--interval secs] [--frozen secs]")
		return
	}
	params := catalog.MMProtectionLimitsParams{Symbol: args[0]}
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--limit":
			if i+1 < len(args) {
				i++
				params.MMPLimit = args[i]
			}
		case "--interval":
			if i+1 < len(args) {
				i++
				params.Interval = args[i]
			}
		case "--frozen":
			if i+1 < len(args) {
				i++
				params.FrozenTime = args[i]
			}
		}
	}
	if err := a.client.SetMMProtectionLimits(params); err != nil {
		fmt.Println("mm protection set failed:", err)
		return
	}
	fmt.Println("mm protection limits sent")
}

func (a *app) handleMMPReset(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: mmpreset <symbol>")
		return
	}
	if err := a.client.ResetMMProtection(args[0]); err != nil {
		fmt.Println("mm protection reset failed:", err)
		return
	}
	fmt.Println("mm protection reset sent")
}

// consumeEvents renders inbound session/business events as they arrive,
// for as long as the event sink stays open.
func (a *app) consumeEvents() {
	for ev := range a.client.Events() {
		displayEvent(ev)
	}
}

func sideFromWord(w string) string {
	switch strings.ToLower(w) {
	case "buy":
		return catalog.SideBuy
	case "sell":
		return catalog.SideSell
	default:
		return ""
	}
}

func parseOrdType(w string) string {
	switch strings.ToLower(w) {
	case "market":
		return catalog.OrdTypeMarket
	case "limit":
		return catalog.OrdTypeLimit
	case "stop":
		return catalog.OrdTypeStop
	case "stoplimit":
		return catalog.OrdTypeStopLimit
	default:
		return catalog.OrdTypeLimit
	}
}

func parseTif(w string) string {
	switch strings.ToLower(w) {
	case "gtc":
		return catalog.TimeInForceGTC
	case "ioc":
		return catalog.TimeInForceIOC
	case "fok":
		return catalog.TimeInForceFOK
	case "gtd":
		return catalog.TimeInForceGTD
	default:
		return ""
	}
}
