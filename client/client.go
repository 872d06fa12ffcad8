package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joaquinbejar/deribit-fix-sub001/catalog"
	"github.com/joaquinbejar/deribit-fix-sub001/config"
	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/reject"
	"github.com/joaquinbejar/deribit-fix-sub001/session"
	"github.com/joaquinbejar/deribit-fix-sub001/store"
	"github.com/joaquinbejar/deribit-fix-sub001/transport"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// Client is the engine's public API surface (C7): connect/disconnect, order
// entry, market data subscriptions, quoting, and positions, backed by the
// session state machine (C5), wire codec (C2), and message catalog (C3).
// One Client owns one FIX session; it is not safe for concurrent use from
// multiple goroutines issuing requests simultaneously with Run. The methods
// below run on the caller's goroutine; they take the client's mutex only
// around shared state such as the connection and sequence counters.
type Client struct {
	cfg    config.Config
	dialer transport.Dialer
	auth   session.Auth
	clock  config.Clock
	logger config.Logger

	Orders *OrderStore
	Trades *TradeStore
	Quotes *QuoteStore
	events *EventSink

	mu     sync.Mutex
	conn   transport.Conn
	seq    *store.SequenceState
	store  store.RetainedStore
	state  session.State
	timers *session.Timers
	framer *wire.Framer

	// inboundSignal is nudged (non-blocking) whenever the read loop frames
	// any inbound bytes, so heartbeatLoop can reset its silence clock
	// without contending for events meant for external consumers.
	inboundSignal chan struct{}

	cancel context.CancelFunc
}

// New constructs a Client from cfg. dialer is typically a
// transport.TCPDialer; auth is typically session.DefaultSHA256Auth{}.
func New(cfg config.Config, dialer transport.Dialer, auth session.Auth, logger config.Logger) *Client {
	if logger == nil {
		logger = config.NopLogger{}
	}
	var retained store.RetainedStore = store.NewMemoryRetainedStore()
	if cfg.StatePath != "" {
		if ps, err := store.NewPersistedStore(cfg.StatePath, store.SessionIdentity{
			BeginString: wire.BeginString, SenderCompID: cfg.SenderCompID, TargetCompID: cfg.TargetCompID,
		}); err == nil {
			retained = ps
		} else {
			logger.Warnf("falling back to in-memory store: %v", err)
		}
	}

	seq := store.NewSequenceState()
	if ps, ok := retained.(*store.PersistedStore); ok && !cfg.ResetSeqNumOnLogon {
		if loaded, found, err := ps.LoadSequence(); err != nil {
			logger.Warnf("load persisted sequence, starting fresh: %v", err)
		} else if found {
			seq = loaded
		}
	}

	// HeartBtInt*1.2 of silence triggers a TestRequest (§4.5); TestRequestGrace
	// is the further silence tolerated before the session is declared Failed,
	// defaulting to HeartBtInt*0.8 so the two together land on the
	// documented HeartBtInt*2 total (§8).
	testRequestGrace := cfg.TestRequestGrace
	if testRequestGrace <= 0 {
		testRequestGrace = time.Duration(float64(cfg.HeartBtInt) * 0.8 * float64(time.Second))
	}

	return &Client{
		cfg:    cfg,
		dialer: dialer,
		auth:   auth,
		clock:  config.SystemClock{},
		logger: logger,
		Orders: NewOrderStore(config.SystemClock{}),
		Trades: NewTradeStore(10000),
		Quotes: NewQuoteStore(),
		events: NewEventSink(256),
		seq:    seq,
		store:  retained,
		state:  session.Disconnected,
		timers: session.NewTimers(
			time.Duration(cfg.HeartBtInt)*time.Second,
			testRequestGrace,
			cfg.LogonTimeout,
		),
		framer:        wire.NewFramer(cfg.MaxFrameSize),
		inboundSignal: make(chan struct{}, 1),
	}
}

// Events returns the channel of inbound business/session events.
func (c *Client) Events() <-chan Event {
	return c.events.Events()
}

// State returns the current session state.
func (c *Client) State() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected reports whether a transport connection currently exists.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// IsLoggedIn reports whether the session has completed the Logon handshake.
func (c *Client) IsLoggedIn() bool {
	return c.State() == session.LoggedIn
}

// setState is the one place state is assigned outside of fire: entering
// Connecting is bookkeeping for a dial attempt in flight, not itself a
// modeled transition (the machine only reacts once the dial resolves).
func (c *Client) setState(s session.State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.events.Publish(Event{Kind: EventSessionStateChanged, SessionState: s})
}

// fire is the session actor's sole entry point into the state machine
// (C5/§9): it hands (current state, event) to session.Transition, commits
// the returned state, and executes every resulting Output. Nothing in this
// file mutates c.state other than here and setState.
func (c *Client) fire(ev session.Event) session.State {
	c.mu.Lock()
	cur := c.state
	next, outputs := session.Transition(cur, ev)
	c.state = next
	c.mu.Unlock()
	for _, out := range outputs {
		c.execute(out, next)
	}
	return next
}

// execute performs one Output emitted by Transition. The machine itself
// never touches I/O; this is the only place that translates its decisions
// into sends, timer actions, and published events.
func (c *Client) execute(out session.Output, state session.State) {
	switch out.Kind {
	case session.OutputSendLogon:
		if err := c.sendLogon(); err != nil {
			c.logger.Warnf("send logon: %v", err)
			c.fire(session.Event{Kind: session.EventFatalProtocolError, Detail: err.Error()})
		}
	case session.OutputSendHeartbeat:
		_, _ = c.send(catalog.MsgTypeHeartbeat, catalog.BuildHeartbeat(out.Detail))
	case session.OutputSendTestRequest:
		_, _ = c.send(catalog.MsgTypeTestRequest, catalog.BuildTestRequest(out.Detail))
	case session.OutputSendResendRequest:
		from, to := parseGapRange(out.Detail)
		_, _ = c.send(catalog.MsgTypeResendRequest, catalog.BuildResendRequest(from, to))
	case session.OutputSendLogout:
		_, _ = c.send(catalog.MsgTypeLogout, catalog.BuildLogout(out.Detail))
	case session.OutputCloseTransport:
		_ = c.closeTransport()
	case session.OutputCancelTimers:
		c.timers.CancelAll()
	case session.OutputEmitStateChanged:
		c.events.Publish(Event{Kind: EventSessionStateChanged, SessionState: state})
	case session.OutputEmitFatal:
		c.logger.Warnf("session failed: %s", out.Detail)
	case session.OutputStartHeartbeatTimer, session.OutputStartLogonTimeoutTimer:
		// Timers.Start* return a channel the owning loop must select on
		// (heartbeatLoop, Connect's logon wait); there is nothing for a
		// fire-and-forget execute call to hold onto, so those loops arm
		// their own timers directly instead of reacting to this Output.
	}
}

func parseGapRange(detail string) (uint64, uint64) {
	var from, to uint64
	_, _ = fmt.Sscanf(detail, "%d:%d", &from, &to)
	return from, to
}

// Connect dials the gateway, sends Logon, and blocks until the handshake
// completes, the logon timeout elapses, or ctx is canceled. On success it
// starts the background read and heartbeat loops that drive the rest of
// the session, including any later reconnect.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(session.Connecting)
	conn, err := c.dialer.Dial(ctx)
	if err != nil {
		c.fire(session.Event{Kind: session.EventConnectFailed, Detail: err.Error()})
		return fmt.Errorf("connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.readLoop(runCtx)
	go c.heartbeatLoop(runCtx)

	c.fire(session.Event{Kind: session.EventConnectSucceeded})

	logonCtx := ctx
	if c.cfg.LogonTimeout > 0 {
		var logonCancel context.CancelFunc
		logonCtx, logonCancel = context.WithTimeout(ctx, c.cfg.LogonTimeout)
		defer logonCancel()
	}
	for {
		select {
		case <-logonCtx.Done():
			return fmt.Errorf("logon timed out")
		case ev := <-c.events.Events():
			if ev.Kind == EventSessionStateChanged && ev.SessionState == session.LoggedIn {
				return nil
			}
			if ev.Kind == EventSessionStateChanged && ev.SessionState == session.Failed {
				return fmt.Errorf("logon failed")
			}
		}
	}
}

// heartbeatLoop waits for the session to be LoggedIn and then runs one
// login's worth of liveness tracking via runLiveness, looping back to wait
// again after a reconnect brings the session through another Logon.
func (c *Client) heartbeatLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if c.State() != session.LoggedIn {
			select {
			case <-ctx.Done():
				return
			case <-time.After(200 * time.Millisecond):
			}
			continue
		}
		if !c.runLiveness(ctx) {
			return
		}
	}
}

// runLiveness drives heartbeat and TestRequest/timeout liveness for one
// Logon (§4.5/§8): a Heartbeat on every HeartbeatInterval tick, a
// TestRequest after HeartBtInt*1.2 of inbound silence, and
// EventTestRequestTimedOut (which the machine turns into Failed, closing
// the transport) after a further TestRequestGrace of silence — by default
// HeartBtInt*2 of total silence. It returns false when ctx is done (stop
// entirely) and true when the session simply left LoggedIn/ResendInProgress
// (go back to waiting for the next Logon).
func (c *Client) runLiveness(ctx context.Context) bool {
	heartbeat := c.timers.StartHeartbeat()
	testReqThreshold := time.Duration(float64(c.cfg.HeartBtInt) * 1.2 * float64(time.Second))
	silence := time.NewTimer(testReqThreshold)
	defer silence.Stop()
	var testTimeout <-chan time.Time
	var testReqID string

	for {
		select {
		case <-ctx.Done():
			return false
		case <-c.inboundSignal:
			testReqID = ""
			testTimeout = nil
			if !silence.Stop() {
				select {
				case <-silence.C:
				default:
				}
			}
			silence.Reset(testReqThreshold)
		case <-heartbeat:
			if state := c.State(); state != session.LoggedIn && state != session.ResendInProgress {
				return true
			}
			c.fire(session.Event{Kind: session.EventHeartbeatIntervalElapsed})
			heartbeat = c.timers.StartHeartbeat()
		case <-silence.C:
			state := c.State()
			if state != session.LoggedIn && state != session.ResendInProgress {
				return true
			}
			testReqID = uuid.NewString()
			_, _ = c.send(catalog.MsgTypeTestRequest, catalog.BuildTestRequest(testReqID))
			testTimeout = c.timers.StartTestRequestTimeout()
		case <-testTimeout:
			c.fire(session.Event{Kind: session.EventTestRequestTimedOut, Detail: "no response to TestRequest " + testReqID})
			return true
		}
	}
}

func (c *Client) touchInbound() {
	select {
	case c.inboundSignal <- struct{}{}:
	default:
	}
}

// Disconnect sends a graceful Logout and closes the transport once the
// peer's Logout reply arrives or graceTimeout elapses.
func (c *Client) Disconnect(graceTimeout time.Duration) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil
	}

	c.fire(session.Event{Kind: session.EventLogoutRequested})

	deadline := time.After(graceTimeout)
	for {
		select {
		case <-deadline:
			return c.closeTransport()
		case ev := <-c.events.Events():
			if ev.Kind == EventSessionStateChanged && ev.SessionState == session.Disconnected {
				return nil
			}
		}
	}
}

func (c *Client) closeTransport() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (c *Client) sendLogon() error {
	timestamp := config.FixTimestamp(c.clock.NowUTC())
	nonce := uuid.NewString()
	rawData, password := "", ""
	if c.auth != nil && c.cfg.APISecret != "" {
		rawData, password = c.auth.Sign(c.cfg.APIKey, c.cfg.APISecret, timestamp, nonce)
	}

	msg, err := catalog.BuildLogon(catalog.LogonParams{
		HeartBtInt:         c.cfg.HeartBtInt,
		ResetSeqNumOnLogon: c.cfg.ResetSeqNumOnLogon,
		RawData:            rawData,
		Password:           password,
		AccessKey:          c.cfg.APIKey,
		Timestamp:          timestamp,
		CancelOnDisconnect: c.cfg.CancelOnDisconnect,
	})
	if err != nil {
		return err
	}
	if c.cfg.ResetSeqNumOnLogon {
		c.seq.ResetBoth()
		c.persistSequence()
	}
	_, err = c.send(catalog.MsgTypeLogon, msg)
	return err
}

// send encodes body as msgType, stamps the header, writes it to the
// transport, and retains it for replay.
func (c *Client) send(msgType string, body *wire.Message) ([]byte, error) {
	c.mu.Lock()
	conn := c.conn
	seqNum := c.seq.AllocateOutgoing()
	c.mu.Unlock()
	c.persistSequence()
	if conn == nil {
		return nil, fmt.Errorf("not connected")
	}

	raw := wire.Encode(msgType, c.cfg.SenderCompID, c.cfg.TargetCompID, seqNum,
		config.FixTimestamp(c.clock.NowUTC()), nil, body)

	if err := c.store.Put(store.RetainedMessage{SeqNum: seqNum, MsgType: msgType, Raw: raw}); err != nil {
		c.logger.Warnf("retain outbound message: %v", err)
	}
	if err := conn.WriteFrame(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// persistSequence writes the current sequence counters to durable storage
// when the client was configured with a StatePath; a no-op for the default
// in-memory store (§6).
func (c *Client) persistSequence() {
	ps, ok := c.store.(*store.PersistedStore)
	if !ok {
		return
	}
	c.mu.Lock()
	seq := *c.seq
	c.mu.Unlock()
	if err := ps.SaveSequence(&seq); err != nil {
		c.logger.Warnf("persist sequence: %v", err)
	}
}

func (c *Client) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}

		chunk, err := conn.ReadChunk(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.events.Publish(Event{Kind: EventTransportError, Err: err})
			c.fire(session.Event{Kind: session.EventTransportClosed, Detail: err.Error()})
			if !c.reconnect(ctx) {
				return
			}
			continue
		}
		c.touchInbound()
		c.framer.Feed(chunk)

		for {
			frame, cerr, ok := c.framer.Next()
			if !ok {
				break
			}
			if cerr != nil {
				c.handleCodecError(cerr)
				continue
			}
			msg, derr := wire.Decode(frame)
			if derr != nil {
				c.handleCodecError(derr)
				continue
			}
			c.dispatch(msg)
		}
	}
}

// reconnect retries the dial with bounded exponential backoff (§4.6/§7)
// after an unexpected transport loss, replacing the dead connection in
// place so readLoop can resume on the same goroutine. It returns false if
// ctx was canceled (or the backoff gave up) and true once a fresh Logon
// handshake has been kicked off.
func (c *Client) reconnect(ctx context.Context) bool {
	c.mu.Lock()
	c.conn = nil
	c.mu.Unlock()
	c.framer = wire.NewFramer(c.cfg.MaxFrameSize)

	conn, err := transport.Reconnect(ctx, c.dialer, transport.ReconnectConfig(c.cfg.Reconnect),
		func(attemptErr error, next time.Duration) {
			c.logger.Warnf("reconnect attempt failed, retrying in %s: %v", next, attemptErr)
		})
	if err != nil {
		return false
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.fire(session.Event{Kind: session.EventConnectSucceeded})
	return true
}

func (c *Client) handleCodecError(cerr *wire.CodecError) {
	verdict := reject.ClassifyCodecError(cerr, 0)
	if verdict.Message != nil {
		_, _ = c.send(catalog.MsgTypeReject, verdict.Message)
	}
	if verdict.Fatal {
		c.fire(session.Event{Kind: session.EventFatalProtocolError, Detail: verdict.Reason})
	}
}

// dispatch classifies an inbound MsgSeqNum against next_in before handing
// the message to handleMessage. While a resend is already in progress, it
// does not re-classify: the session continues normal dispatch (still
// updating OrderStore/publishing events) rather than issuing a second
// ResendRequest for traffic that arrives on top of an unresolved gap.
func (c *Client) dispatch(msg *wire.Message) {
	seqNum, _ := msg.SeqNum()

	if c.State() == session.ResendInProgress {
		c.seq.Accept(seqNum)
		c.persistSequence()
		c.handleMessage(msg)
		return
	}

	exp := c.seq.Expect(seqNum)
	switch exp.Kind {
	case store.TooHigh:
		gapFrom, gapTo := exp.GapFrom, exp.GapTo
		if cap := c.cfg.ResendWindowCap; cap > 0 && gapTo-gapFrom+1 > cap {
			gapTo = gapFrom + cap - 1
		}
		c.fire(session.Event{Kind: session.EventSeqGapDetected, Detail: fmt.Sprintf("%d:%d", gapFrom, gapTo)})
		return
	case store.TooLow:
		possDup, _ := msg.Get(dictionary.TagPossDupFlag)
		verdict := reject.ClassifySequenceTooLow(possDup == "Y", seqNum)
		if verdict.Fatal {
			if verdict.Message != nil {
				_, _ = c.send(catalog.MsgTypeLogout, verdict.Message)
			}
			c.fire(session.Event{Kind: session.EventFatalProtocolError, Detail: verdict.Reason})
		}
		return
	}
	c.seq.Accept(seqNum)
	c.persistSequence()
	c.handleMessage(msg)
}

func (c *Client) handleMessage(msg *wire.Message) {
	switch msg.MsgType() {
	case catalog.MsgTypeLogon:
		if verr := catalog.LogonSchema.Validate(msg); verr != nil {
			ve, _ := verr.(*catalog.ValidationError)
			verdict := reject.ClassifyValidationError(ve)
			if verdict.Message != nil {
				_, _ = c.send(catalog.MsgTypeBusinessMessageReject, verdict.Message)
			}
			c.fire(session.Event{Kind: session.EventLogonRejected, Detail: verdict.Reason})
			return
		}
		c.fire(session.Event{Kind: session.EventLogonReceived})
	case catalog.MsgTypeLogout:
		lo := catalog.ParseLogout(msg)
		if c.State() == session.LoggedIn {
			verdict := reject.ClassifyUnsolicitedLogout(lo.Text)
			c.logger.Infof("%s", verdict.Reason)
		} else {
			c.logger.Infof("peer logout: %s", lo.Text)
		}
		c.fire(session.Event{Kind: session.EventLogoutReceived, Detail: lo.Text})
	case catalog.MsgTypeHeartbeat:
		// liveness only, nothing to surface
	case catalog.MsgTypeTestRequest:
		tr := catalog.ParseTestRequest(msg)
		c.fire(session.Event{Kind: session.EventTestRequestReceived, Detail: tr.TestReqID})
	case catalog.MsgTypeSequenceReset:
		sr := catalog.ParseSequenceReset(msg)
		if err := c.seq.ResetIncoming(sr.NewSeqNo); err != nil {
			c.logger.Warnf("ignoring invalid SequenceReset: %v", err)
			return
		}
		c.persistSequence()
		if c.State() == session.ResendInProgress {
			c.fire(session.Event{Kind: session.EventResendCompleted})
		}
	case catalog.MsgTypeResendRequest:
		rr := catalog.ParseResendRequest(msg)
		c.replay(rr.BeginSeqNo, rr.EndSeqNo)
	case catalog.MsgTypeReject:
		r := catalog.ParseReject(msg)
		c.events.Publish(Event{Kind: EventSessionReject, SessionReject: &r})
	case catalog.MsgTypeBusinessMessageReject:
		br := catalog.ParseBusinessMessageReject(msg)
		c.events.Publish(Event{Kind: EventBusinessReject, BusinessReject: &br})
	case catalog.MsgTypeExecutionReport:
		er := catalog.ParseExecutionReport(msg)
		c.Orders.ApplyExecutionReport(er)
		c.events.Publish(Event{Kind: EventExecutionReport, ExecutionReport: &er})
	case catalog.MsgTypeOrderCancelReject:
		ocr := catalog.ParseOrderCancelReject(msg)
		c.events.Publish(Event{Kind: EventOrderCancelReject, OrderCancelReject: &ocr})
	case catalog.MsgTypeMarketDataSnapshot:
		snap, cerr := catalog.ParseMarketDataSnapshot(msg)
		if cerr != nil {
			c.handleCodecError(cerr)
			return
		}
		c.Trades.AddEntries(snap.MdReqID, snap.Symbol, snap.Entries, true)
		c.events.Publish(Event{Kind: EventMarketDataSnapshot, MarketDataSnapshot: &snap})
	case catalog.MsgTypeMarketDataIncremental:
		inc, cerr := catalog.ParseMarketDataIncrementalRefresh(msg)
		if cerr != nil {
			c.handleCodecError(cerr)
			return
		}
		for _, e := range inc.Entries {
			c.Trades.AddEntries("", e.Symbol, []catalog.MDEntry{e}, false)
		}
		c.events.Publish(Event{Kind: EventMarketDataIncremental, MarketDataIncremental: &inc})
	case catalog.MsgTypeMarketDataRequestReject:
		r := catalog.ParseMarketDataRequestReject(msg)
		c.events.Publish(Event{Kind: EventMarketDataRequestReject, MarketDataReject: &r})
	case catalog.MsgTypePositionReport:
		p := catalog.ParsePositionReport(msg)
		c.events.Publish(Event{Kind: EventPositionReport, PositionReport: &p})
	case catalog.MsgTypeQuoteStatusReport:
		qsr := catalog.ParseQuoteStatusReport(msg)
		c.Quotes.Upsert(Quote{
			QuoteID: qsr.QuoteID, QuoteReqID: qsr.QuoteReqID, Symbol: qsr.Symbol,
			BidPx: qsr.BidPx, OfferPx: qsr.OfferPx, Status: qsr.QuoteStatus, Text: qsr.Text,
		})
		c.events.Publish(Event{Kind: EventQuoteStatusReport, QuoteStatusReport: &qsr})
	case catalog.MsgTypeQuoteRequestReject:
		qrr := catalog.ParseQuoteRequestReject(msg)
		c.events.Publish(Event{Kind: EventQuoteRequestReject, QuoteRequestReject: &qrr})
	case catalog.MsgTypeMassQuoteAcknowledgement:
		ack := catalog.ParseMassQuoteAcknowledgement(msg)
		c.events.Publish(Event{Kind: EventMassQuoteAcknowledgement, MassQuoteAck: &ack})
	default:
		c.logger.Debugf("unhandled message type %s", msg.MsgType())
	}
}

// replay answers a ResendRequest by walking retained messages in [from, to]
// (to==0 means "through current"): contiguous runs of administrative
// messages collapse into a single SequenceReset-GapFill (35=4, 123=Y,
// 36=newSeqNo), and application messages are resent with PossDupFlag=Y and
// OrigSendingTime stamped on, preserving the original MsgSeqNum (§4.4/§8
// scenario 6).
func (c *Client) replay(from, to uint64) {
	c.mu.Lock()
	current := c.seq.NextOut
	c.mu.Unlock()
	if to == 0 || to >= current {
		to = current - 1
	}
	if from == 0 || from > to {
		return
	}
	msgs, err := c.store.Range(from, to)
	if err != nil {
		c.logger.Warnf("resend range lookup failed: %v", err)
		return
	}

	var gapStart uint64
	inGap := false
	flushGap := func(upTo uint64) {
		if !inGap {
			return
		}
		inGap = false
		if c.currentConn() == nil {
			return
		}
		raw := wire.Encode(catalog.MsgTypeSequenceReset, c.cfg.SenderCompID, c.cfg.TargetCompID,
			gapStart, config.FixTimestamp(c.clock.NowUTC()), nil, catalog.BuildSequenceResetGapFill(upTo))
		if err := c.writeRaw(raw); err != nil {
			c.logger.Warnf("gap-fill write failed: %v", err)
		}
	}

	for _, m := range msgs {
		if c.currentConn() == nil {
			return
		}
		if catalog.IsAdminMsgType(m.MsgType) {
			if !inGap {
				inGap = true
				gapStart = m.SeqNum
			}
			continue
		}
		flushGap(m.SeqNum)
		if err := c.writeRaw(c.stampPossDup(m.Raw)); err != nil {
			c.logger.Warnf("resend write failed: %v", err)
			return
		}
	}
	flushGap(to + 1)
}

// stampPossDup re-encodes a retained raw frame with PossDupFlag=Y and
// OrigSendingTime set to the frame's original SendingTime, preserving its
// MsgType and MsgSeqNum exactly (§4.4). If the retained frame can no longer
// be decoded, it is resent byte-for-byte rather than dropped.
func (c *Client) stampPossDup(raw []byte) []byte {
	msg, cerr := wire.Decode(raw)
	if cerr != nil {
		c.logger.Warnf("replay: could not decode retained frame for stamping: %v", cerr)
		return raw
	}
	seqNum, _ := msg.SeqNum()
	origSendingTime, _ := msg.Get(dictionary.TagSendingTime)

	body := wire.New()
	for _, f := range msg.Fields {
		switch f.Tag {
		case dictionary.TagBeginString, dictionary.TagBodyLength, dictionary.TagMsgType,
			dictionary.TagSenderCompID, dictionary.TagTargetCompID, dictionary.TagMsgSeqNum,
			dictionary.TagSendingTime, dictionary.TagCheckSum:
			continue
		}
		body.Set(f.Tag, f.Value)
	}

	headerExtra := []wire.Field{
		{Tag: dictionary.TagPossDupFlag, Value: "Y"},
		{Tag: dictionary.TagOrigSendingTime, Value: origSendingTime},
	}
	return wire.Encode(msg.MsgType(), c.cfg.SenderCompID, c.cfg.TargetCompID, seqNum,
		config.FixTimestamp(c.clock.NowUTC()), headerExtra, body)
}

func (c *Client) currentConn() transport.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

func (c *Client) writeRaw(raw []byte) error {
	conn := c.currentConn()
	if conn == nil {
		return fmt.Errorf("not connected")
	}
	return conn.WriteFrame(raw)
}

// --- Order entry ---

// PlaceOrder submits a New Order Single, assigning a ClOrdID via uuid if
// p.ClOrdID is empty, and returns the ClOrdID used to correlate the
// resulting ExecutionReports.
func (c *Client) PlaceOrder(p catalog.NewOrderParams) (string, error) {
	if p.ClOrdID == "" {
		p.ClOrdID = uuid.NewString()
	}
	if p.TransactTime == "" {
		p.TransactTime = config.FixTimestamp(c.clock.NowUTC())
	}
	msg, err := catalog.BuildNewOrderSingle(p)
	if err != nil {
		return "", err
	}
	_, err = c.send(catalog.MsgTypeNewOrderSingle, msg)
	return p.ClOrdID, err
}

// CancelOrder submits an Order Cancel Request.
func (c *Client) CancelOrder(p catalog.CancelOrderParams) (string, error) {
	if p.ClOrdID == "" {
		p.ClOrdID = uuid.NewString()
	}
	if p.TransactTime == "" {
		p.TransactTime = config.FixTimestamp(c.clock.NowUTC())
	}
	msg, err := catalog.BuildOrderCancelRequest(p)
	if err != nil {
		return "", err
	}
	_, err = c.send(catalog.MsgTypeOrderCancelRequest, msg)
	return p.ClOrdID, err
}

// ReplaceOrder submits an Order Cancel/Replace Request.
func (c *Client) ReplaceOrder(p catalog.ReplaceOrderParams) (string, error) {
	if p.ClOrdID == "" {
		p.ClOrdID = uuid.NewString()
	}
	if p.TransactTime == "" {
		p.TransactTime = config.FixTimestamp(c.clock.NowUTC())
	}
	msg, err := catalog.BuildOrderCancelReplaceRequest(p)
	if err != nil {
		return "", err
	}
	_, err = c.send(catalog.MsgTypeOrderCancelReplaceReq, msg)
	return p.ClOrdID, err
}

// MassCancel cancels every order (optionally scoped to symbol).
func (c *Client) MassCancel(symbol string) (string, error) {
	clOrdID := uuid.NewString()
	msg := catalog.BuildOrderMassCancelRequest(clOrdID, catalog.MassCancelRequestTypeAllOrders, symbol)
	_, err := c.send(catalog.MsgTypeOrderMassCancelRequest, msg)
	return clOrdID, err
}

// MassStatus requests the current status of every open order (optionally
// scoped to symbol).
func (c *Client) MassStatus(symbol string) (string, error) {
	reqID := uuid.NewString()
	msg := catalog.BuildOrderMassStatusRequest(reqID, "0", symbol)
	_, err := c.send(catalog.MsgTypeOrderMassStatusRequest, msg)
	return reqID, err
}

// --- Market data ---

// SubscribeMarketData requests a live subscription for instrument at the
// given depth and entry types, returning the MdReqID used to correlate
// snapshots/incrementals and to unsubscribe later.
func (c *Client) SubscribeMarketData(instrument string, depth int, entryTypes []string) (string, error) {
	reqID := uuid.NewString()
	msg, err := catalog.BuildMarketDataRequest(catalog.MarketDataRequestParams{
		MdReqID: reqID, SubscriptionRequestType: catalog.SubscriptionRequestTypeSubscribe,
		MarketDepth: depth, EntryTypes: entryTypes, Symbols: []string{instrument},
	})
	if err != nil {
		return "", err
	}
	c.Trades.Subscribe(reqID, instrument, catalog.SubscriptionRequestTypeSubscribe)
	_, err = c.send(catalog.MsgTypeMarketDataRequest, msg)
	return reqID, err
}

// UnsubscribeMarketData cancels a subscription previously returned by
// SubscribeMarketData.
func (c *Client) UnsubscribeMarketData(mdReqID, instrument string) error {
	msg, err := catalog.BuildMarketDataRequest(catalog.MarketDataRequestParams{
		MdReqID: mdReqID, SubscriptionRequestType: catalog.SubscriptionRequestTypeUnsubscribe,
		MarketDepth: 0, EntryTypes: []string{catalog.MDEntryTypeBid}, Symbols: []string{instrument},
	})
	if err != nil {
		return err
	}
	c.Trades.Unsubscribe(mdReqID)
	_, err = c.send(catalog.MsgTypeMarketDataRequest, msg)
	return err
}

// --- Reference data / positions ---

func (c *Client) RequestPositions(account string) (string, error) {
	reqID := uuid.NewString()
	_, err := c.send(catalog.MsgTypeRequestForPositions, catalog.BuildRequestForPositions(reqID, "0", account))
	return reqID, err
}

func (c *Client) RequestSecurityList(securityType string) (string, error) {
	reqID := uuid.NewString()
	_, err := c.send(catalog.MsgTypeSecurityListRequest, catalog.BuildSecurityListRequest(reqID, securityType))
	return reqID, err
}

func (c *Client) RequestSecurityDefinition(symbol string) (string, error) {
	reqID := uuid.NewString()
	_, err := c.send(catalog.MsgTypeSecurityDefinitionReq, catalog.BuildSecurityDefinitionRequest(reqID, symbol, "0"))
	return reqID, err
}

// --- Quoting / RFQ ---

func (c *Client) RequestQuote(entries []catalog.QuoteRequestEntry) (string, error) {
	reqID := uuid.NewString()
	msg, err := catalog.BuildQuoteRequest(reqID, entries)
	if err != nil {
		return "", err
	}
	_, err = c.send(catalog.MsgTypeQuoteRequest, msg)
	return reqID, err
}

// SendMassQuote submits a two-sided mass quote using the grouping mode
// configured for this client's counterparty.
func (c *Client) SendMassQuote(entries []MassQuoteInput) (string, error) {
	quoteID := uuid.NewString()
	catalogEntries := make([]catalog.MassQuoteEntry, 0, len(entries))
	for _, e := range entries {
		catalogEntries = append(catalogEntries, catalog.MassQuoteEntry{
			QuoteEntryID: uuid.NewString(), Symbol: e.Symbol,
			BidPx: e.BidPx, OfferPx: e.OfferPx, BidSize: e.BidSize, OfferSize: e.OfferSize,
		})
	}
	mode := catalog.QuoteGroupingStandard
	if c.cfg.QuoteGroupingSimplified {
		mode = catalog.QuoteGroupingSimplified
	}
	msg, err := catalog.BuildMassQuote(quoteID, catalogEntries, mode)
	if err != nil {
		return "", err
	}
	_, err = c.send(catalog.MsgTypeMassQuote, msg)
	return quoteID, err
}

// MassQuoteInput is the caller-facing shape for one leg of SendMassQuote;
// QuoteEntryID is engine-assigned.
type MassQuoteInput struct {
	Symbol    string
	BidPx     string
	OfferPx   string
	BidSize   string
	OfferSize string
}

func (c *Client) CancelQuote(quoteID string) error {
	_, err := c.send(catalog.MsgTypeQuoteCancel, catalog.BuildQuoteCancel(quoteID, catalog.QuoteCancelTypeCancelAllQuotes))
	return err
}

// --- User management / MM protection ---

func (c *Client) UserRequest(userRequestType string) (string, error) {
	reqID := uuid.NewString()
	msg := catalog.BuildUserRequest(reqID, userRequestType, c.cfg.SenderCompID, "")
	_, err := c.send(catalog.MsgTypeUserRequest, msg)
	return reqID, err
}

func (c *Client) SetMMProtectionLimits(p catalog.MMProtectionLimitsParams) error {
	msg, err := catalog.BuildMMProtectionLimits(p)
	if err != nil {
		return err
	}
	_, err = c.send(catalog.MsgTypeMMProtectionLimits, msg)
	return err
}

func (c *Client) ResetMMProtection(symbol string) error {
	_, err := c.send(catalog.MsgTypeMMProtectionReset, catalog.BuildMMProtectionReset(symbol))
	return err
}
