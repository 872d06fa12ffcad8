package catalog

import (
	"strconv"

	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// LogonSchema declares Logon's (A) required/optional tags. RawData/
// Password (96/554) are listed as optional: BuildLogon writes them only
// when the caller passes non-empty values, and validation does not
// require them.
var LogonSchema = Schema{
	MsgType:  MsgTypeLogon,
	Required: []dictionary.Tag{dictionary.TagEncryptMethod, dictionary.TagHeartBtInt},
	Optional: []dictionary.Tag{
		dictionary.TagResetSeqNumFlag, dictionary.TagRawDataLength, dictionary.TagRawData,
		dictionary.TagUsername, dictionary.TagPassword, dictionary.TagDeribitAppID,
		dictionary.TagDeribitAppVersion, dictionary.TagDeribitCancelOnDisconnect,
		dictionary.TagDeribitAccessKey, dictionary.TagDeribitTimestamp,
	},
}

// LogonParams carries everything BuildLogon needs, including the
// Deribit-specific auth fields that the injected Auth interface (§6)
// computed: rawData (96) and password (554).
type LogonParams struct {
	HeartBtInt         int
	ResetSeqNumOnLogon bool
	Username           string // tag 553
	Password           string // tag 554, from auth.Sign
	RawData            string // tag 96, nonce, from auth.Sign
	AppID              string // tag 9001, Deribit app id / api key echo
	AppVersion         string // tag 9002
	AccessKey          string // tag 100007
	Timestamp          string // tag 100008
	CancelOnDisconnect bool   // tag 9004, sent as "Y" when true
}

// BuildLogon constructs a Logon (A) message body.
func BuildLogon(p LogonParams) (*wire.Message, error) {
	m := wire.New().
		Set(dictionary.TagEncryptMethod, "0").
		SetInt(dictionary.TagHeartBtInt, int64(p.HeartBtInt))

	if p.ResetSeqNumOnLogon {
		m.Set(dictionary.TagResetSeqNumFlag, "Y")
	}
	m.SetIfNotEmpty(dictionary.TagUsername, p.Username)
	m.SetIfNotEmpty(dictionary.TagPassword, p.Password)
	if p.RawData != "" {
		m.SetInt(dictionary.TagRawDataLength, int64(len(p.RawData)))
		m.Set(dictionary.TagRawData, p.RawData)
	}
	m.SetIfNotEmpty(dictionary.TagDeribitAppID, p.AppID)
	m.SetIfNotEmpty(dictionary.TagDeribitAppVersion, p.AppVersion)
	m.SetIfNotEmpty(dictionary.TagDeribitAccessKey, p.AccessKey)
	m.SetIfNotEmpty(dictionary.TagDeribitTimestamp, p.Timestamp)
	if p.CancelOnDisconnect {
		m.Set(dictionary.TagDeribitCancelOnDisconnect, "Y")
	}

	if err := LogonSchema.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Logon is the parsed view of an inbound Logon (A).
type Logon struct {
	HeartBtInt   int
	ResetSeqNum  bool
	Username     string
	EncryptedPwd string
}

// ParseLogon reads the body of a decoded Logon message.
func ParseLogon(m *wire.Message) Logon {
	var out Logon
	if v, ok := m.Get(dictionary.TagHeartBtInt); ok {
		out.HeartBtInt, _ = strconv.Atoi(v)
	}
	if v, ok := m.Get(dictionary.TagResetSeqNumFlag); ok {
		out.ResetSeqNum = v == "Y"
	}
	out.Username, _ = m.Get(dictionary.TagUsername)
	out.EncryptedPwd, _ = m.Get(dictionary.TagPassword)
	return out
}

// BuildLogout constructs a Logout (5), optionally carrying a reason (58).
func BuildLogout(reason string) *wire.Message {
	return wire.New().SetIfNotEmpty(dictionary.TagText, reason)
}

// Logout is the parsed view of an inbound Logout.
type Logout struct {
	Text string
}

func ParseLogout(m *wire.Message) Logout {
	text, _ := m.Get(dictionary.TagText)
	return Logout{Text: text}
}

// BuildHeartbeat constructs a Heartbeat (0). testReqID is echoed (112) when
// responding to a TestRequest; pass "" for a scheduled heartbeat.
func BuildHeartbeat(testReqID string) *wire.Message {
	return wire.New().SetIfNotEmpty(dictionary.TagTestReqID, testReqID)
}

// BuildTestRequest constructs a TestRequest (1) carrying a unique nonce.
func BuildTestRequest(testReqID string) *wire.Message {
	return wire.New().Set(dictionary.TagTestReqID, testReqID)
}

// TestRequest is the parsed view of an inbound TestRequest.
type TestRequest struct {
	TestReqID string
}

func ParseTestRequest(m *wire.Message) TestRequest {
	id, _ := m.Get(dictionary.TagTestReqID)
	return TestRequest{TestReqID: id}
}

// BuildResendRequest constructs a ResendRequest (2): from..to, where to=0
// means "replay through the current end of stream" (§4.4).
func BuildResendRequest(from, to uint64) *wire.Message {
	return wire.New().
		SetInt(dictionary.TagBeginSeqNo, int64(from)).
		SetInt(dictionary.TagEndSeqNo, int64(to))
}

// ResendRequest is the parsed view of an inbound ResendRequest.
type ResendRequest struct {
	BeginSeqNo uint64
	EndSeqNo   uint64 // 0 means "through current end"
}

func ParseResendRequest(m *wire.Message) ResendRequest {
	var out ResendRequest
	if v, ok := m.Get(dictionary.TagBeginSeqNo); ok {
		n, _ := strconv.ParseUint(v, 10, 64)
		out.BeginSeqNo = n
	}
	if v, ok := m.Get(dictionary.TagEndSeqNo); ok {
		n, _ := strconv.ParseUint(v, 10, 64)
		out.EndSeqNo = n
	}
	return out
}

// BuildSequenceResetGapFill constructs a SequenceReset-GapFill (4, 123=Y):
// an administrative substitute for a retransmitted admin message.
func BuildSequenceResetGapFill(newSeqNo uint64) *wire.Message {
	return wire.New().
		Set(dictionary.TagGapFillFlag, "Y").
		SetInt(dictionary.TagNewSeqNo, int64(newSeqNo))
}

// BuildSequenceReset constructs a plain SequenceReset-Reset (123=N or
// absent); it must only ever advance next_in (§4.4).
func BuildSequenceReset(newSeqNo uint64) *wire.Message {
	return wire.New().SetInt(dictionary.TagNewSeqNo, int64(newSeqNo))
}

// SequenceReset is the parsed view of an inbound SequenceReset (gap-fill or
// reset; GapFill tells the caller which).
type SequenceReset struct {
	NewSeqNo uint64
	GapFill  bool
}

func ParseSequenceReset(m *wire.Message) SequenceReset {
	var out SequenceReset
	if v, ok := m.Get(dictionary.TagNewSeqNo); ok {
		n, _ := strconv.ParseUint(v, 10, 64)
		out.NewSeqNo = n
	}
	if v, ok := m.Get(dictionary.TagGapFillFlag); ok {
		out.GapFill = v == "Y"
	}
	return out
}

// BuildReject constructs a session-level Reject (3) per §4.8, carrying
// RefSeqNum (45), RefTagID (371), RefMsgType (372), SessionRejectReason
// (373).
func BuildReject(refSeqNum uint64, refTagID int, refMsgType, reason, text string) *wire.Message {
	m := wire.New().
		SetInt(dictionary.TagRefSeqNum, int64(refSeqNum)).
		SetIfNotEmpty(dictionary.TagRefMsgType, refMsgType).
		Set(dictionary.TagSessionRejectReason, reason)
	if refTagID != 0 {
		m.SetInt(dictionary.TagRefTagID, int64(refTagID))
	}
	m.SetIfNotEmpty(dictionary.TagText, text)
	return m
}

// Reject is the parsed view of an inbound session-level Reject.
type Reject struct {
	RefSeqNum           uint64
	RefTagID            int
	RefMsgType          string
	SessionRejectReason string
	Text                string
}

func ParseReject(m *wire.Message) Reject {
	var out Reject
	if v, ok := m.Get(dictionary.TagRefSeqNum); ok {
		n, _ := strconv.ParseUint(v, 10, 64)
		out.RefSeqNum = n
	}
	if v, ok := m.Get(dictionary.TagRefTagID); ok {
		n, _ := strconv.Atoi(v)
		out.RefTagID = n
	}
	out.RefMsgType, _ = m.Get(dictionary.TagRefMsgType)
	out.SessionRejectReason, _ = m.Get(dictionary.TagSessionRejectReason)
	out.Text, _ = m.Get(dictionary.TagText)
	return out
}

// BuildBusinessMessageReject constructs a BusinessMessageReject (j) per
// §4.8, carrying RefMsgType (372), BusinessRejectReason (380), and an
// optional BusinessRejectRefID (379).
func BuildBusinessMessageReject(refMsgType, refID, reason, text string) *wire.Message {
	return wire.New().
		Set(dictionary.TagRefMsgType, refMsgType).
		SetIfNotEmpty(dictionary.TagBusinessRejectRefID, refID).
		Set(dictionary.TagBusinessRejectReason, reason).
		SetIfNotEmpty(dictionary.TagText, text)
}

// BusinessMessageReject is the parsed view of an inbound business reject.
type BusinessMessageReject struct {
	RefMsgType            string
	BusinessRejectRefID   string
	BusinessRejectReason  string
	Text                  string
}

func ParseBusinessMessageReject(m *wire.Message) BusinessMessageReject {
	var out BusinessMessageReject
	out.RefMsgType, _ = m.Get(dictionary.TagRefMsgType)
	out.BusinessRejectRefID, _ = m.Get(dictionary.TagBusinessRejectRefID)
	out.BusinessRejectReason, _ = m.Get(dictionary.TagBusinessRejectReason)
	out.Text, _ = m.Get(dictionary.TagText)
	return out
}
