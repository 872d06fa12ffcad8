package client

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/joaquinbejar/deribit-fix-sub001/catalog"
	"github.com/joaquinbejar/deribit-fix-sub001/config"
	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/session"
	"github.com/joaquinbejar/deribit-fix-sub001/transport"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// loopbackConn is a fake transport.Conn driven entirely in-process: writes
// from the client are decoded and, when a canned reply is registered for
// that MsgType, queued for the next ReadChunk.
type loopbackConn struct {
	mu       sync.Mutex
	replies  map[string][][]byte
	pending  chan []byte
	seqOut   uint64
	written  []*wire.Message
	closed   bool
	forceErr error
}

func newLoopbackConn() *loopbackConn {
	return &loopbackConn{replies: make(map[string][][]byte), pending: make(chan []byte, 32), seqOut: 1}
}

// onRequest registers a canned reply frame to enqueue whenever the client
// sends msgType.
func (c *loopbackConn) onRequest(msgType string, frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies[msgType] = append(c.replies[msgType], frame)
}

// push enqueues a frame for the client to read regardless of its own sends
// (used to simulate unsolicited inbound messages like ExecutionReports).
func (c *loopbackConn) push(frame []byte) {
	c.pending <- frame
}

func (c *loopbackConn) WriteFrame(frame []byte) error {
	msg, _ := wire.Decode(frame)
	c.mu.Lock()
	if msg != nil {
		c.written = append(c.written, msg)
	}
	var queued [][]byte
	if msg != nil {
		queued = c.replies[msg.MsgType()]
		delete(c.replies, msg.MsgType())
	}
	c.mu.Unlock()
	for _, f := range queued {
		c.pending <- f
	}
	return nil
}

func (c *loopbackConn) ReadChunk(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	ferr := c.forceErr
	c.mu.Unlock()
	if ferr != nil {
		return nil, ferr
	}
	select {
	case f := <-c.pending:
		return f, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// breakConnection makes every subsequent ReadChunk fail immediately,
// simulating an unexpected transport loss. A call already blocked in
// ReadChunk is woken with a harmless empty frame so the next call observes
// the failure instead of hanging until ctx is canceled.
func (c *loopbackConn) breakConnection() {
	c.mu.Lock()
	c.forceErr = fmt.Errorf("simulated transport error")
	c.mu.Unlock()
	select {
	case c.pending <- []byte{}:
	default:
	}
}

func (c *loopbackConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *loopbackConn) lastWritten(msgType string) *wire.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.written) - 1; i >= 0; i-- {
		if c.written[i].MsgType() == msgType {
			return c.written[i]
		}
	}
	return nil
}

type loopbackDialer struct{ conn *loopbackConn }

func (d loopbackDialer) Dial(ctx context.Context) (transport.Conn, error) {
	return d.conn, nil
}

// seqDialer dispenses a fixed sequence of conns, one per Dial call, so a
// test can hand the client a fresh loopbackConn on reconnect.
type seqDialer struct {
	mu    sync.Mutex
	conns []*loopbackConn
	next  int
}

func (d *seqDialer) Dial(ctx context.Context) (transport.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.next >= len(d.conns) {
		return nil, fmt.Errorf("seqDialer: no more conns configured")
	}
	c := d.conns[d.next]
	d.next++
	return c, nil
}

func encodeServerFrame(msgType string, seqNum uint64, body *wire.Message) []byte {
	return wire.Encode(msgType, "PEER", "CLIENT", seqNum, config.FixTimestamp(time.Now().UTC()), nil, body)
}

func testConfig() config.Config {
	return config.Config{
		SenderCompID:  "CLIENT",
		TargetCompID:  "PEER",
		HeartBtInt:    30,
		LogonTimeout:  2 * time.Second,
		LogoutTimeout: 2 * time.Second,
		MaxFrameSize:  1 << 20,
	}
}

func connectedClient(t *testing.T) (*Client, *loopbackConn) {
	t.Helper()
	conn := newLoopbackConn()
	conn.onRequest(catalog.MsgTypeLogon, encodeServerFrame(catalog.MsgTypeLogon, 1,
		func() *wire.Message { m, _ := catalog.BuildLogon(catalog.LogonParams{HeartBtInt: 30}); return m }()))

	cl := New(testConfig(), loopbackDialer{conn: conn}, session.DefaultSHA256Auth{}, config.NopLogger{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cl.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if !cl.IsLoggedIn() {
		t.Fatalf("expected client to be LoggedIn after Connect")
	}
	return cl, conn
}

func TestClient_ConnectPerformsLogonHandshake(t *testing.T) {
	cl, conn := connectedClient(t)
	logon := conn.lastWritten(catalog.MsgTypeLogon)
	if logon == nil {
		t.Fatalf("expected a Logon to have been sent")
	}
	if hb, _ := logon.Get(dictionary.TagHeartBtInt); hb != "30" {
		t.Fatalf("expected HeartBtInt=30, got %q", hb)
	}
	if cl.State() != session.LoggedIn {
		t.Fatalf("expected state LoggedIn, got %s", cl.State())
	}
}

func TestClient_PlaceOrderRoundTrip(t *testing.T) {
	cl, conn := connectedClient(t)

	clOrdID, err := cl.PlaceOrder(catalog.NewOrderParams{
		Symbol: "BTC-PERPETUAL", Side: catalog.SideBuy, OrdType: catalog.OrdTypeMarket, OrderQty: "10",
	})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	sent := conn.lastWritten(catalog.MsgTypeNewOrderSingle)
	if sent == nil {
		t.Fatalf("expected a NewOrderSingle to have been sent")
	}
	if got, _ := sent.Get(dictionary.TagClOrdID); got != clOrdID {
		t.Fatalf("expected ClOrdID %q on the wire, got %q", clOrdID, got)
	}

	erBody := wire.New().
		Set(dictionary.TagOrderID, "EX-1").
		Set(dictionary.TagClOrdID, clOrdID).
		Set(dictionary.TagExecID, "EXEC-1").
		Set(dictionary.TagExecType, "0").
		Set(dictionary.TagOrdStatus, catalog.OrdStatusNew).
		Set(dictionary.TagSymbol, "BTC-PERPETUAL").
		Set(dictionary.TagSide, catalog.SideBuy).
		Set(dictionary.TagLeavesQty, "10").
		Set(dictionary.TagCumQty, "0")
	conn.push(encodeServerFrame(catalog.MsgTypeExecutionReport, 2, erBody))

	select {
	case ev := <-cl.Events():
		if ev.Kind != EventExecutionReport {
			t.Fatalf("expected EventExecutionReport, got %v", ev.Kind)
		}
		if ev.ExecutionReport.ClOrdID != clOrdID {
			t.Fatalf("expected ClOrdID %q on event, got %q", clOrdID, ev.ExecutionReport.ClOrdID)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for ExecutionReport event")
	}

	order := cl.Orders.Get(clOrdID)
	if order == nil {
		t.Fatalf("expected order tracked under %q", clOrdID)
	}
	if order.OrdStatus != catalog.OrdStatusNew {
		t.Fatalf("expected OrdStatus New, got %q", order.OrdStatus)
	}
}

func TestClient_SubscribeMarketDataRoundTrip(t *testing.T) {
	cl, conn := connectedClient(t)

	mdReqID, err := cl.SubscribeMarketData("BTC-PERPETUAL", 1, []string{catalog.MDEntryTypeTrade})
	if err != nil {
		t.Fatalf("SubscribeMarketData failed: %v", err)
	}
	sent := conn.lastWritten(catalog.MsgTypeMarketDataRequest)
	if sent == nil {
		t.Fatalf("expected a MarketDataRequest to have been sent")
	}

	snapshot := wire.New().
		Set(dictionary.TagMdReqID, mdReqID).
		Set(dictionary.TagSymbol, "BTC-PERPETUAL").
		Set(dictionary.TagNoMdEntries, "1").
		Set(dictionary.TagMdEntryType, catalog.MDEntryTypeTrade).
		Set(dictionary.TagMdEntryPx, "50000.5").
		Set(dictionary.TagMdEntrySize, "2")
	conn.push(encodeServerFrame(catalog.MsgTypeMarketDataSnapshot, 2, snapshot))

	select {
	case ev := <-cl.Events():
		if ev.Kind != EventMarketDataSnapshot {
			t.Fatalf("expected EventMarketDataSnapshot, got %v", ev.Kind)
		}
		if len(ev.MarketDataSnapshot.Entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(ev.MarketDataSnapshot.Entries))
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for MarketDataSnapshot event")
	}

	recent := cl.Trades.Recent("BTC-PERPETUAL", 10)
	if len(recent) != 1 || recent[0].Px != "50000.5" {
		t.Fatalf("expected 1 recorded trade at 50000.5, got %+v", recent)
	}
}

func TestClient_DisconnectSendsLogout(t *testing.T) {
	cl, conn := connectedClient(t)
	conn.onRequest(catalog.MsgTypeLogout, encodeServerFrame(catalog.MsgTypeLogout, 2, catalog.BuildLogout("bye")))

	if err := cl.Disconnect(2 * time.Second); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if conn.lastWritten(catalog.MsgTypeLogout) == nil {
		t.Fatalf("expected a Logout to have been sent")
	}
}

// TestClient_ReplayRespondsToResendRequestWithGapFillAndPossDup exercises
// §4.4/§8 scenario 6: answering an inbound ResendRequest must collapse a
// run of administrative messages into a single SequenceReset-GapFill and
// resend application messages verbatim except for PossDupFlag=Y and a
// stamped OrigSendingTime, all while preserving the original MsgSeqNum.
func TestClient_ReplayRespondsToResendRequestWithGapFillAndPossDup(t *testing.T) {
	cl, conn := connectedClient(t)

	clOrdID1, err := cl.PlaceOrder(catalog.NewOrderParams{
		Symbol: "BTC-PERPETUAL", Side: catalog.SideBuy, OrdType: catalog.OrdTypeMarket, OrderQty: "1",
	})
	if err != nil {
		t.Fatalf("PlaceOrder 1 failed: %v", err)
	}
	if _, err := cl.send(catalog.MsgTypeHeartbeat, catalog.BuildHeartbeat("")); err != nil {
		t.Fatalf("send heartbeat failed: %v", err)
	}
	clOrdID2, err := cl.PlaceOrder(catalog.NewOrderParams{
		Symbol: "BTC-PERPETUAL", Side: catalog.SideBuy, OrdType: catalog.OrdTypeMarket, OrderQty: "2",
	})
	if err != nil {
		t.Fatalf("PlaceOrder 2 failed: %v", err)
	}

	conn.mu.Lock()
	priorWrites := len(conn.written)
	conn.mu.Unlock()

	conn.push(encodeServerFrame(catalog.MsgTypeResendRequest, 2, catalog.BuildResendRequest(2, 4)))

	var replay []*wire.Message
	deadline := time.Now().Add(2 * time.Second)
	for len(replay) < 3 && time.Now().Before(deadline) {
		conn.mu.Lock()
		if len(conn.written) >= priorWrites+3 {
			replay = append([]*wire.Message(nil), conn.written[priorWrites:]...)
		}
		conn.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
	if len(replay) != 3 {
		t.Fatalf("expected 3 replayed frames (resend, gap-fill, resend), got %d", len(replay))
	}

	first := replay[0]
	if first.MsgType() != catalog.MsgTypeNewOrderSingle {
		t.Fatalf("expected first replayed frame to be NewOrderSingle, got %s", first.MsgType())
	}
	if seq, _ := first.SeqNum(); seq != 2 {
		t.Fatalf("expected replayed MsgSeqNum=2, got %d", seq)
	}
	if pd, _ := first.Get(dictionary.TagPossDupFlag); pd != "Y" {
		t.Fatalf("expected PossDupFlag=Y on replayed application message, got %q", pd)
	}
	if _, ok := first.Get(dictionary.TagOrigSendingTime); !ok {
		t.Fatalf("expected OrigSendingTime on replayed application message")
	}
	if got, _ := first.Get(dictionary.TagClOrdID); got != clOrdID1 {
		t.Fatalf("expected replayed ClOrdID %q, got %q", clOrdID1, got)
	}

	gapFill := replay[1]
	if gapFill.MsgType() != catalog.MsgTypeSequenceReset {
		t.Fatalf("expected a SequenceReset-GapFill for the admin run, got %s", gapFill.MsgType())
	}
	if seq, _ := gapFill.SeqNum(); seq != 3 {
		t.Fatalf("expected gap-fill MsgSeqNum=3, got %d", seq)
	}
	if newSeq, _ := gapFill.Get(dictionary.TagNewSeqNo); newSeq != "4" {
		t.Fatalf("expected gap-fill NewSeqNo=4, got %q", newSeq)
	}
	if flag, _ := gapFill.Get(dictionary.TagGapFillFlag); flag != "Y" {
		t.Fatalf("expected GapFillFlag=Y, got %q", flag)
	}

	second := replay[2]
	if second.MsgType() != catalog.MsgTypeNewOrderSingle {
		t.Fatalf("expected third replayed frame to be NewOrderSingle, got %s", second.MsgType())
	}
	if seq, _ := second.SeqNum(); seq != 4 {
		t.Fatalf("expected replayed MsgSeqNum=4, got %d", seq)
	}
	if pd, _ := second.Get(dictionary.TagPossDupFlag); pd != "Y" {
		t.Fatalf("expected PossDupFlag=Y on second replayed application message, got %q", pd)
	}
	if got, _ := second.Get(dictionary.TagClOrdID); got != clOrdID2 {
		t.Fatalf("expected replayed ClOrdID %q, got %q", clOrdID2, got)
	}
}

// TestClient_HeartbeatTimeoutDeclaresSessionFailed exercises §4.5/§8
// liveness: HeartBtInt*1.2 of inbound silence triggers a TestRequest, and a
// further TestRequestGrace of silence with no reply declares the session
// Failed and closes the transport.
func TestClient_HeartbeatTimeoutDeclaresSessionFailed(t *testing.T) {
	conn := newLoopbackConn()
	conn.onRequest(catalog.MsgTypeLogon, encodeServerFrame(catalog.MsgTypeLogon, 1,
		func() *wire.Message { m, _ := catalog.BuildLogon(catalog.LogonParams{HeartBtInt: 1}); return m }()))

	cfg := testConfig()
	cfg.HeartBtInt = 1
	cfg.TestRequestGrace = 300 * time.Millisecond

	cl := New(cfg, loopbackDialer{conn: conn}, session.DefaultSHA256Auth{}, config.NopLogger{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cl.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && cl.State() != session.Failed {
		time.Sleep(20 * time.Millisecond)
	}
	if cl.State() != session.Failed {
		t.Fatalf("expected state Failed after unanswered TestRequest, got %s", cl.State())
	}
	if conn.lastWritten(catalog.MsgTypeTestRequest) == nil {
		t.Fatalf("expected a TestRequest to have been sent after heartbeat silence")
	}
}

// TestClient_ReconnectsAfterTransportError exercises §4.6/§7: an
// unexpected transport loss must redial with backoff and resume with a
// fresh Logon handshake, rather than leaving the session stuck.
func TestClient_ReconnectsAfterTransportError(t *testing.T) {
	buildLogonReply := func() *wire.Message {
		m, _ := catalog.BuildLogon(catalog.LogonParams{HeartBtInt: 30})
		return m
	}

	conn1 := newLoopbackConn()
	conn1.onRequest(catalog.MsgTypeLogon, encodeServerFrame(catalog.MsgTypeLogon, 1, buildLogonReply()))
	conn2 := newLoopbackConn()
	conn2.onRequest(catalog.MsgTypeLogon, encodeServerFrame(catalog.MsgTypeLogon, 1, buildLogonReply()))

	dialer := &seqDialer{conns: []*loopbackConn{conn1, conn2}}

	cfg := testConfig()
	cfg.Reconnect = config.ReconnectConfig{
		InitialInterval: 5 * time.Millisecond,
		Multiplier:      1.5,
		MaxInterval:     20 * time.Millisecond,
	}

	cl := New(cfg, dialer, session.DefaultSHA256Auth{}, config.NopLogger{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cl.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	conn1.breakConnection()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cl.State() == session.LoggedIn && conn2.lastWritten(catalog.MsgTypeLogon) != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if conn2.lastWritten(catalog.MsgTypeLogon) == nil {
		t.Fatalf("expected reconnect to redial and send a fresh Logon on the new connection")
	}
	if cl.State() != session.LoggedIn {
		t.Fatalf("expected state LoggedIn after reconnect, got %s", cl.State())
	}
}
