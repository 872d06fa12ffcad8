// Package catalog is the message catalog (C3): typed builders and parsers
// for every FIX 4.4 message the Deribit gateway exchanges, each paired with
// a schema describing its required/optional/conditional tags. Builders
// refuse to emit a message missing a required tag; parsers read a decoded
// wire.Message into a typed struct, preserving unrecognized optional tags
// without requiring them.
package catalog

// MsgType (tag 35) values for every message this engine speaks.
const (
	// Session / admin
	MsgTypeLogon                 = "A"
	MsgTypeLogout                = "5"
	MsgTypeHeartbeat             = "0"
	MsgTypeTestRequest           = "1"
	MsgTypeResendRequest         = "2"
	MsgTypeReject                = "3"
	MsgTypeSequenceReset         = "4"
	MsgTypeBusinessMessageReject = "j"

	// Market data
	MsgTypeMarketDataRequest        = "V"
	MsgTypeMarketDataRequestReject  = "Y"
	MsgTypeMarketDataSnapshot       = "W"
	MsgTypeMarketDataIncremental    = "X"

	// Security reference
	MsgTypeSecurityListRequest      = "x"
	MsgTypeSecurityList             = "y"
	MsgTypeSecurityDefinitionReq    = "c"
	MsgTypeSecurityDefinition       = "d"
	MsgTypeSecurityStatusRequest    = "e"
	MsgTypeSecurityStatus           = "f"

	// Positions
	MsgTypeRequestForPositions      = "AN"
	MsgTypePositionReport           = "AP"

	// Order entry
	MsgTypeNewOrderSingle           = "D"
	MsgTypeOrderCancelRequest       = "F"
	MsgTypeOrderCancelReplaceReq    = "G"
	MsgTypeOrderCancelReject        = "9"
	MsgTypeOrderMassCancelRequest   = "q"
	MsgTypeOrderMassCancelReport    = "r"
	MsgTypeOrderMassStatusRequest   = "AF"
	MsgTypeExecutionReport          = "8"

	// Quoting / RFQ
	MsgTypeQuoteRequest             = "R"
	MsgTypeQuoteRequestReject       = "AG"
	MsgTypeQuoteStatusReport        = "AI"
	MsgTypeMassQuote                = "i"
	MsgTypeMassQuoteAcknowledgement = "b"
	MsgTypeQuoteCancel              = "Z"
	MsgTypeRFQRequest               = "AH"

	// Trade capture
	MsgTypeTradeCaptureReportRequest = "AD"
	MsgTypeTradeCaptureReportAck     = "AQ"
	MsgTypeTradeCaptureReport        = "AE"

	// User management
	MsgTypeUserRequest  = "BE"
	MsgTypeUserResponse = "BF"

	// Deribit market-maker protection
	MsgTypeMMProtectionLimits = "MM"
	MsgTypeMMProtectionResult = "MR"
	MsgTypeMMProtectionReset  = "MZ"
)

// adminMsgTypes are the session-level message types a resend replay
// substitutes with a single SequenceReset-GapFill rather than resending
// literally (§4.4/§8 scenario 6).
var adminMsgTypes = map[string]bool{
	MsgTypeLogon:                 true,
	MsgTypeLogout:                true,
	MsgTypeHeartbeat:             true,
	MsgTypeTestRequest:           true,
	MsgTypeResendRequest:         true,
	MsgTypeReject:                true,
	MsgTypeSequenceReset:         true,
	MsgTypeBusinessMessageReject: true,
}

// IsAdminMsgType reports whether msgType is a session-level administrative
// message rather than an application message.
func IsAdminMsgType(msgType string) bool {
	return adminMsgTypes[msgType]
}

// --- Side (tag 54) ---
const (
	SideBuy  = "1"
	SideSell = "2"
)

// --- OrdType (tag 40) ---
const (
	OrdTypeMarket    = "1"
	OrdTypeLimit     = "2"
	OrdTypeStop      = "3"
	OrdTypeStopLimit = "4"
)

// --- TimeInForce (tag 59) ---
const (
	TimeInForceGTC = "1"
	TimeInForceIOC = "3"
	TimeInForceFOK = "4"
	TimeInForceGTD = "6"
)

// --- OrdStatus (tag 39) ---
const (
	OrdStatusNew             = "0"
	OrdStatusPartiallyFilled = "1"
	OrdStatusFilled          = "2"
	OrdStatusCanceled        = "4"
	OrdStatusReplaced        = "5"
	OrdStatusPendingCancel   = "6"
	OrdStatusRejected        = "8"
	OrdStatusPendingNew      = "A"
	OrdStatusPendingReplace  = "E"
)

// --- ExecType (tag 150) ---
const (
	ExecTypeNew           = "0"
	ExecTypePartialFill   = "1"
	ExecTypeFilled        = "2"
	ExecTypeCanceled      = "4"
	ExecTypeRejected      = "8"
	ExecTypePendingNew    = "A"
	ExecTypePendingCancel = "6"
	ExecTypeRestated      = "D"
)

// --- MDEntryType (tag 269) ---
const (
	MDEntryTypeBid    = "0"
	MDEntryTypeOffer  = "1"
	MDEntryTypeTrade  = "2"
)

// --- MDUpdateAction (tag 279) ---
const (
	MDUpdateActionNew    = "0"
	MDUpdateActionChange = "1"
	MDUpdateActionDelete = "2"
)

// --- SubscriptionRequestType (tag 263) ---
const (
	SubscriptionRequestTypeSnapshot    = "0"
	SubscriptionRequestTypeSubscribe   = "1"
	SubscriptionRequestTypeUnsubscribe = "2"
)

// --- SessionRejectReason (tag 373) ---
const (
	SessionRejectReasonInvalidTag         = "0"
	SessionRejectReasonRequiredTagMissing = "1"
	SessionRejectReasonTagNotDefined      = "2"
	SessionRejectReasonUndefinedTag       = "3"
	SessionRejectReasonTagWithoutValue    = "4"
	SessionRejectReasonValueOutOfRange    = "5"
	SessionRejectReasonIncorrectDataFormat = "6"
	SessionRejectReasonCompIDProblem      = "9"
	SessionRejectReasonSendingTimeAccuracy = "10"
	SessionRejectReasonInvalidMsgType     = "11"
)

// --- BusinessRejectReason (tag 380) ---
const (
	BusinessRejectReasonOther               = "0"
	BusinessRejectReasonUnknownID           = "1"
	BusinessRejectReasonUnknownSecurity     = "2"
	BusinessRejectReasonUnsupportedMsgType  = "3"
	BusinessRejectReasonCondRequiredMissing = "5"
	BusinessRejectReasonNotAuthorized       = "6"
)

// --- MassCancelRequestType / Response (tags 530/531) ---
const (
	MassCancelRequestTypeAllOrders = "7"
)

// --- QuoteCancelType (tag 298) ---
const (
	QuoteCancelTypeCancelAllQuotes = "4"
)
