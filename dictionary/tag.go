// Package dictionary is the tag/field dictionary (C1): the single place
// where tag numbers are given a canonical name, a wire data type, and (for
// enumerated fields) their legal value codes. Every other component
// consults this package for typed parsing and validation instead of
// hard-coding tag semantics of its own.
package dictionary

// Tag is a FIX field tag number.
type Tag int

// Standard header and session-layer tags used across the engine.
const (
	TagAccount                = Tag(1)
	TagAvgPx                  = Tag(6)
	TagBeginString            = Tag(8)
	TagBodyLength             = Tag(9)
	TagCheckSum               = Tag(10)
	TagClOrdID                = Tag(11)
	TagCommission             = Tag(12)
	TagCommType               = Tag(13)
	TagCumQty                 = Tag(14)
	TagExecID                 = Tag(17)
	TagExecInst               = Tag(18)
	TagHandlInst              = Tag(21)
	TagSecurityID             = Tag(48)
	TagSenderCompID           = Tag(49)
	TagSenderSubID            = Tag(50)
	TagSendingTime            = Tag(52)
	TagSide                   = Tag(54)
	TagSymbol                 = Tag(55)
	TagTargetCompID           = Tag(56)
	TagText                   = Tag(58)
	TagTimeInForce            = Tag(59)
	TagTransactTime           = Tag(60)
	TagSettlType              = Tag(63)
	TagRawDataLength          = Tag(95)
	TagRawData                = Tag(96)
	TagPossDupFlag            = Tag(43)
	TagEncryptMethod          = Tag(98)
	TagStopPx                 = Tag(99)
	TagOrdRejReason           = Tag(103)
	TagCxlRejReason           = Tag(102)
	TagHeartBtInt             = Tag(108)
	TagTestReqID              = Tag(112)
	TagOrigSendingTime        = Tag(122)
	TagGapFillFlag            = Tag(123)
	TagExpireTime             = Tag(126)
	TagQuoteReqID             = Tag(131)
	TagBidPx                  = Tag(132)
	TagOfferPx                = Tag(133)
	TagBidSize                = Tag(134)
	TagOfferSize              = Tag(135)
	TagNoMiscFees             = Tag(136)
	TagMiscFeeAmt             = Tag(137)
	TagMiscFeeCurr            = Tag(138)
	TagMiscFeeType            = Tag(139)
	TagResetSeqNumFlag        = Tag(141)
	TagNoRelatedSym           = Tag(146)
	TagExecType               = Tag(150)
	TagLeavesQty              = Tag(151)
	TagCashOrderQty           = Tag(152)
	TagEffectiveTime          = Tag(168)
	TagMaxShow                = Tag(210)
	TagQuoteID                = Tag(117)
	TagOrderID                = Tag(37)
	TagOrderQty               = Tag(38)
	TagOrdStatus              = Tag(39)
	TagOrdType                = Tag(40)
	TagOrigClOrdID            = Tag(41)
	TagPrice                  = Tag(44)
	TagRefSeqNum              = Tag(45)
	TagMsgSeqNum              = Tag(34)
	TagMsgType                = Tag(35)
	TagValidUntilTime         = Tag(62)
	TagBeginSeqNo             = Tag(7)
	TagEndSeqNo               = Tag(16)
	TagNewSeqNo               = Tag(36)
	TagLastShares             = Tag(32)
	TagLastMkt                = Tag(30)
	TagLastPx                 = Tag(31)

	// Market data
	TagMdReqID                 = Tag(262)
	TagSubscriptionRequestType = Tag(263)
	TagMarketDepth             = Tag(264)
	TagMdUpdateType            = Tag(265)
	TagNoMdEntryTypes          = Tag(267)
	TagNoMdEntries             = Tag(268)
	TagMdEntryType             = Tag(269)
	TagMdEntryPx               = Tag(270)
	TagMdEntrySize             = Tag(271)
	TagMdEntryDate             = Tag(272)
	TagMdEntryTime             = Tag(273)
	TagMdEntryID               = Tag(278)
	TagMdUpdateAction          = Tag(279)
	TagMdReqRejReason          = Tag(281)
	TagMdEntryPositionNo       = Tag(290)

	// Quote / mass quote
	TagQuoteAckStatus    = Tag(297)
	TagQuoteRejectReason = Tag(300)
	TagQuoteCancelType   = Tag(298)
	TagQuoteEntryID      = Tag(299)
	TagNoQuoteSets       = Tag(296)
	TagQuoteSetID        = Tag(302)
	TagNoQuoteEntries    = Tag(295)
	TagQuoteStatus       = Tag(297)

	// Reject
	TagRefTagID             = Tag(371)
	TagRefMsgType           = Tag(372)
	TagSessionRejectReason  = Tag(373)
	TagBusinessRejectRefID  = Tag(379)
	TagBusinessRejectReason = Tag(380)

	// Order admin
	TagCxlRejResponseTo  = Tag(434)
	TagUsername          = Tag(553)
	TagPassword          = Tag(554)
	TagTargetStrategy    = Tag(847)
	TagParticipationRate = Tag(849)
	TagDefaultApplVerID  = Tag(1137)
	TagMassCancelRequestType = Tag(530)
	TagMassCancelResponse    = Tag(531)
	TagMassCancelRejectReason = Tag(532)
	TagMassStatusReqID        = Tag(584)
	TagMassStatusReqType      = Tag(585)
	TagTotNumReports          = Tag(911)
	TagLastRptRequested       = Tag(912)

	// Security reference
	TagSecurityReqID    = Tag(320)
	TagSecurityResponseID = Tag(322)
	TagSecurityRequestType = Tag(321)
	TagSecurityType     = Tag(167)
	TagSecurityStatusReqID = Tag(324)
	TagSecurityStatus   = Tag(965)
	TagNoRelatedSymSecList = Tag(146)

	// Positions
	TagPosReqID       = Tag(710)
	TagPosMaintRptID  = Tag(721)
	TagTotalNumPosReports = Tag(727)
	TagPosReqResult   = Tag(728)
	TagPosReqType     = Tag(724)
	TagNoPositions    = Tag(702)
	TagPosType        = Tag(703)
	TagLongQty        = Tag(704)
	TagShortQty       = Tag(705)

	// Trade capture
	TagTradeReportID        = Tag(571)
	TagTradeRequestID       = Tag(568)
	TagTradeRequestType     = Tag(569)
	TagTradeReportTransType = Tag(487)
	TagExecRefID            = Tag(19)
	TagTrdType              = Tag(828)

	// User management
	TagUserRequestID   = Tag(923)
	TagUserRequestType = Tag(924)
	TagUserStatus      = Tag(926)
	TagUserStatusText  = Tag(927)

	// RFQ
	TagRFQReqID = Tag(644)

	// Deribit custom tags (9000-9050, 100007-100012)
	TagDeribitAppID          = Tag(9001)
	TagDeribitAppVersion     = Tag(9002)
	TagDeribitNonce          = Tag(9003)
	TagDeribitCancelOnDisconnect = Tag(9004)
	TagDeribitOrderLabel     = Tag(9005)
	TagDeribitDeliverPrice   = Tag(9006)
	TagDeribitMMProtectionReset = Tag(9010)
	TagDeribitMMPLimit       = Tag(9011)
	TagDeribitMMPFrozenTime  = Tag(9012)
	TagDeribitMMPInterval    = Tag(9013)
	TagDeribitMMPAmountLimit = Tag(9014)
	TagDeribitMMPDeltaLimit  = Tag(9015)
	TagDeribitSelfTradePrevention = Tag(9020)
	TagDeribitSelfTradePreventionID = Tag(9021)
	TagDeribitSelfTradePreventionMode = Tag(9022)
	TagDeribitIndexPrice     = Tag(9030)
	TagDeribitMarkPrice      = Tag(9031)
	TagDeribitUnderlyingPrice = Tag(9032)
	TagDeribitMaxShowAmount  = Tag(9040)
	TagDeribitAdvertisement  = Tag(9041)
	TagDeribitAdvertisementHidden = Tag(9042)
	TagDeribitRiskReducing   = Tag(9050)

	TagDeribitAccessKey  = Tag(100007)
	TagDeribitTimestamp  = Tag(100008)
	TagDeribitSignature  = Tag(100009)
	TagDeribitSecretKey  = Tag(100010)
	TagDeribitGreeks     = Tag(100011)
	TagDeribitNotionalValue = Tag(100012)
)
