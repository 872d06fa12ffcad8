package dictionary

// DataType is the wire representation of a field's value.
type DataType int

const (
	TypeString DataType = iota
	TypeInt
	TypeDecimal
	TypeChar
	TypeBoolean
	TypeUTCTimestamp
	TypeData
	TypeGroupCount
	TypeMonthYear
)

// FieldDef is one entry of the tag dictionary: canonical name, wire type,
// and (if the field is enumerated) its legal value codes.
type FieldDef struct {
	Tag    Tag
	Name   string
	Type   DataType
	Values map[string]string // enum code -> human label, nil if unconstrained
}

// Fields is the static tag -> definition table. It is the only place tag
// semantics live; C2/C3 consult it for typed parsing and validation.
var Fields = map[Tag]FieldDef{
	TagAccount:         {TagAccount, "Account", TypeString, nil},
	TagAvgPx:           {TagAvgPx, "AvgPx", TypeDecimal, nil},
	TagBeginString:     {TagBeginString, "BeginString", TypeString, nil},
	TagBodyLength:      {TagBodyLength, "BodyLength", TypeInt, nil},
	TagCheckSum:        {TagCheckSum, "CheckSum", TypeString, nil},
	TagClOrdID:         {TagClOrdID, "ClOrdID", TypeString, nil},
	TagCommission:      {TagCommission, "Commission", TypeDecimal, nil},
	TagCommType:        {TagCommType, "CommType", TypeChar, nil},
	TagCumQty:          {TagCumQty, "CumQty", TypeDecimal, nil},
	TagExecID:          {TagExecID, "ExecID", TypeString, nil},
	TagExecInst:        {TagExecInst, "ExecInst", TypeChar, map[string]string{"A": "PostOnly"}},
	TagHandlInst:       {TagHandlInst, "HandlInst", TypeChar, nil},
	TagSecurityID:      {TagSecurityID, "SecurityID", TypeString, nil},
	TagSenderCompID:    {TagSenderCompID, "SenderCompID", TypeString, nil},
	TagSenderSubID:     {TagSenderSubID, "SenderSubID", TypeString, nil},
	TagSendingTime:     {TagSendingTime, "SendingTime", TypeUTCTimestamp, nil},
	TagSide: {TagSide, "Side", TypeChar, map[string]string{
		"1": "Buy", "2": "Sell",
	}},
	TagSymbol:          {TagSymbol, "Symbol", TypeString, nil},
	TagTargetCompID:    {TagTargetCompID, "TargetCompID", TypeString, nil},
	TagText:            {TagText, "Text", TypeString, nil},
	TagTimeInForce: {TagTimeInForce, "TimeInForce", TypeChar, map[string]string{
		"1": "GoodTillCancel", "3": "ImmediateOrCancel", "4": "FillOrKill", "6": "GoodTillDate",
	}},
	TagTransactTime:    {TagTransactTime, "TransactTime", TypeUTCTimestamp, nil},
	TagRawDataLength:   {TagRawDataLength, "RawDataLength", TypeInt, nil},
	TagRawData:         {TagRawData, "RawData", TypeData, nil},
	TagPossDupFlag:     {TagPossDupFlag, "PossDupFlag", TypeBoolean, nil},
	TagEncryptMethod:   {TagEncryptMethod, "EncryptMethod", TypeInt, map[string]string{"0": "None"}},
	TagStopPx:          {TagStopPx, "StopPx", TypeDecimal, nil},
	TagOrdRejReason:    {TagOrdRejReason, "OrdRejReason", TypeInt, nil},
	TagCxlRejReason:    {TagCxlRejReason, "CxlRejReason", TypeInt, nil},
	TagHeartBtInt:      {TagHeartBtInt, "HeartBtInt", TypeInt, nil},
	TagTestReqID:       {TagTestReqID, "TestReqID", TypeString, nil},
	TagOrigSendingTime: {TagOrigSendingTime, "OrigSendingTime", TypeUTCTimestamp, nil},
	TagGapFillFlag:     {TagGapFillFlag, "GapFillFlag", TypeBoolean, nil},
	TagExpireTime:      {TagExpireTime, "ExpireTime", TypeUTCTimestamp, nil},
	TagQuoteReqID:      {TagQuoteReqID, "QuoteReqID", TypeString, nil},
	TagBidPx:           {TagBidPx, "BidPx", TypeDecimal, nil},
	TagOfferPx:         {TagOfferPx, "OfferPx", TypeDecimal, nil},
	TagBidSize:         {TagBidSize, "BidSize", TypeDecimal, nil},
	TagOfferSize:       {TagOfferSize, "OfferSize", TypeDecimal, nil},
	TagNoMiscFees:      {TagNoMiscFees, "NoMiscFees", TypeGroupCount, nil},
	TagMiscFeeAmt:      {TagMiscFeeAmt, "MiscFeeAmt", TypeDecimal, nil},
	TagMiscFeeCurr:     {TagMiscFeeCurr, "MiscFeeCurr", TypeString, nil},
	TagMiscFeeType:     {TagMiscFeeType, "MiscFeeType", TypeInt, nil},
	TagResetSeqNumFlag: {TagResetSeqNumFlag, "ResetSeqNumFlag", TypeBoolean, nil},
	TagNoRelatedSym:    {TagNoRelatedSym, "NoRelatedSym", TypeGroupCount, nil},
	TagExecType:        {TagExecType, "ExecType", TypeChar, nil},
	TagLeavesQty:       {TagLeavesQty, "LeavesQty", TypeDecimal, nil},
	TagCashOrderQty:    {TagCashOrderQty, "CashOrderQty", TypeDecimal, nil},
	TagEffectiveTime:   {TagEffectiveTime, "EffectiveTime", TypeUTCTimestamp, nil},
	TagMaxShow:         {TagMaxShow, "MaxShow", TypeDecimal, nil},
	TagQuoteID:         {TagQuoteID, "QuoteID", TypeString, nil},
	TagOrderID:         {TagOrderID, "OrderID", TypeString, nil},
	TagOrderQty:        {TagOrderQty, "OrderQty", TypeDecimal, nil},
	TagOrdStatus:       {TagOrdStatus, "OrdStatus", TypeChar, nil},
	TagOrdType:         {TagOrdType, "OrdType", TypeChar, nil},
	TagOrigClOrdID:     {TagOrigClOrdID, "OrigClOrdID", TypeString, nil},
	TagPrice:           {TagPrice, "Price", TypeDecimal, nil},
	TagRefSeqNum:       {TagRefSeqNum, "RefSeqNum", TypeInt, nil},
	TagMsgSeqNum:       {TagMsgSeqNum, "MsgSeqNum", TypeInt, nil},
	TagMsgType:         {TagMsgType, "MsgType", TypeString, nil},
	TagValidUntilTime:  {TagValidUntilTime, "ValidUntilTime", TypeUTCTimestamp, nil},
	TagBeginSeqNo:      {TagBeginSeqNo, "BeginSeqNo", TypeInt, nil},
	TagEndSeqNo:        {TagEndSeqNo, "EndSeqNo", TypeInt, nil},
	TagNewSeqNo:        {TagNewSeqNo, "NewSeqNo", TypeInt, nil},
	TagLastShares:      {TagLastShares, "LastShares", TypeDecimal, nil},
	TagLastMkt:         {TagLastMkt, "LastMkt", TypeString, nil},
	TagLastPx:          {TagLastPx, "LastPx", TypeDecimal, nil},

	TagMdReqID:                 {TagMdReqID, "MDReqID", TypeString, nil},
	TagSubscriptionRequestType: {TagSubscriptionRequestType, "SubscriptionRequestType", TypeChar, nil},
	TagMarketDepth:             {TagMarketDepth, "MarketDepth", TypeInt, nil},
	TagMdUpdateType:            {TagMdUpdateType, "MDUpdateType", TypeInt, nil},
	TagNoMdEntryTypes:          {TagNoMdEntryTypes, "NoMDEntryTypes", TypeGroupCount, nil},
	TagNoMdEntries:             {TagNoMdEntries, "NoMDEntries", TypeGroupCount, nil},
	TagMdEntryType: {TagMdEntryType, "MDEntryType", TypeChar, map[string]string{
		"0": "Bid", "1": "Offer", "2": "Trade", "4": "OpeningPrice", "5": "ClosingPrice",
		"7": "TradingSessionHighPrice", "8": "TradingSessionLowPrice", "B": "TradeVolume",
	}},
	TagMdEntryPx:         {TagMdEntryPx, "MDEntryPx", TypeDecimal, nil},
	TagMdEntrySize:       {TagMdEntrySize, "MDEntrySize", TypeDecimal, nil},
	TagMdEntryDate:       {TagMdEntryDate, "MDEntryDate", TypeString, nil},
	TagMdEntryTime:       {TagMdEntryTime, "MDEntryTime", TypeUTCTimestamp, nil},
	TagMdEntryID:         {TagMdEntryID, "MDEntryID", TypeString, nil},
	TagMdUpdateAction:    {TagMdUpdateAction, "MDUpdateAction", TypeChar, nil},
	TagMdReqRejReason:    {TagMdReqRejReason, "MDReqRejReason", TypeChar, nil},
	TagMdEntryPositionNo: {TagMdEntryPositionNo, "MDEntryPositionNo", TypeInt, nil},

	TagQuoteAckStatus:    {TagQuoteAckStatus, "QuoteAckStatus", TypeInt, nil},
	TagQuoteRejectReason: {TagQuoteRejectReason, "QuoteRejectReason", TypeInt, nil},
	TagQuoteCancelType:   {TagQuoteCancelType, "QuoteCancelType", TypeInt, nil},
	TagQuoteEntryID:      {TagQuoteEntryID, "QuoteEntryID", TypeString, nil},
	TagNoQuoteSets:       {TagNoQuoteSets, "NoQuoteSets", TypeGroupCount, nil},
	TagQuoteSetID:        {TagQuoteSetID, "QuoteSetID", TypeString, nil},
	TagNoQuoteEntries:    {TagNoQuoteEntries, "NoQuoteEntries", TypeGroupCount, nil},

	TagRefTagID:             {TagRefTagID, "RefTagID", TypeInt, nil},
	TagRefMsgType:           {TagRefMsgType, "RefMsgType", TypeString, nil},
	TagSessionRejectReason:  {TagSessionRejectReason, "SessionRejectReason", TypeInt, nil},
	TagBusinessRejectRefID:  {TagBusinessRejectRefID, "BusinessRejectRefID", TypeString, nil},
	TagBusinessRejectReason: {TagBusinessRejectReason, "BusinessRejectReason", TypeInt, nil},

	TagCxlRejResponseTo:      {TagCxlRejResponseTo, "CxlRejResponseTo", TypeChar, nil},
	TagUsername:              {TagUsername, "Username", TypeString, nil},
	TagPassword:              {TagPassword, "Password", TypeString, nil},
	TagTargetStrategy:        {TagTargetStrategy, "TargetStrategy", TypeString, nil},
	TagParticipationRate:     {TagParticipationRate, "ParticipationRate", TypeDecimal, nil},
	TagDefaultApplVerID:      {TagDefaultApplVerID, "DefaultApplVerID", TypeString, nil},
	TagMassCancelRequestType: {TagMassCancelRequestType, "MassCancelRequestType", TypeChar, nil},
	TagMassCancelResponse:    {TagMassCancelResponse, "MassCancelResponse", TypeChar, nil},
	TagMassCancelRejectReason: {TagMassCancelRejectReason, "MassCancelRejectReason", TypeInt, nil},
	TagMassStatusReqID:       {TagMassStatusReqID, "MassStatusReqID", TypeString, nil},
	TagMassStatusReqType:     {TagMassStatusReqType, "MassStatusReqType", TypeInt, nil},
	TagTotNumReports:         {TagTotNumReports, "TotNumReports", TypeInt, nil},
	TagLastRptRequested:      {TagLastRptRequested, "LastRptRequested", TypeBoolean, nil},

	TagSecurityReqID:       {TagSecurityReqID, "SecurityReqID", TypeString, nil},
	TagSecurityResponseID:  {TagSecurityResponseID, "SecurityResponseID", TypeString, nil},
	TagSecurityRequestType: {TagSecurityRequestType, "SecurityRequestType", TypeInt, nil},
	TagSecurityType:        {TagSecurityType, "SecurityType", TypeString, nil},
	TagSecurityStatusReqID: {TagSecurityStatusReqID, "SecurityStatusReqID", TypeString, nil},
	TagSecurityStatus:      {TagSecurityStatus, "SecurityTradingStatus", TypeInt, nil},

	TagPosReqID:           {TagPosReqID, "PosReqID", TypeString, nil},
	TagPosMaintRptID:      {TagPosMaintRptID, "PosMaintRptID", TypeString, nil},
	TagTotalNumPosReports: {TagTotalNumPosReports, "TotalNumPosReports", TypeInt, nil},
	TagPosReqResult:       {TagPosReqResult, "PosReqResult", TypeInt, nil},
	TagPosReqType:         {TagPosReqType, "PosReqType", TypeInt, nil},
	TagNoPositions:        {TagNoPositions, "NoPositions", TypeGroupCount, nil},
	TagPosType:            {TagPosType, "PosType", TypeString, nil},
	TagLongQty:            {TagLongQty, "LongQty", TypeDecimal, nil},
	TagShortQty:           {TagShortQty, "ShortQty", TypeDecimal, nil},

	TagTradeReportID:        {TagTradeReportID, "TradeReportID", TypeString, nil},
	TagTradeRequestID:       {TagTradeRequestID, "TradeRequestID", TypeString, nil},
	TagTradeRequestType:     {TagTradeRequestType, "TradeRequestType", TypeInt, nil},
	TagTradeReportTransType: {TagTradeReportTransType, "TradeReportTransType", TypeInt, nil},
	TagExecRefID:            {TagExecRefID, "ExecRefID", TypeString, nil},
	TagTrdType:              {TagTrdType, "TrdType", TypeInt, nil},

	TagUserRequestID:   {TagUserRequestID, "UserRequestID", TypeString, nil},
	TagUserRequestType: {TagUserRequestType, "UserRequestType", TypeInt, nil},
	TagUserStatus:      {TagUserStatus, "UserStatus", TypeInt, nil},
	TagUserStatusText:  {TagUserStatusText, "UserStatusText", TypeString, nil},

	TagRFQReqID: {TagRFQReqID, "RFQReqID", TypeString, nil},

	// Deribit custom tags
	TagDeribitAppID:                   {TagDeribitAppID, "DeribitAppID", TypeInt, nil},
	TagDeribitAppVersion:              {TagDeribitAppVersion, "DeribitAppVersion", TypeString, nil},
	TagDeribitNonce:                   {TagDeribitNonce, "DeribitRawDataLen", TypeInt, nil},
	TagDeribitCancelOnDisconnect:      {TagDeribitCancelOnDisconnect, "DeribitCancelOnDisconnect", TypeBoolean, nil},
	TagDeribitOrderLabel:              {TagDeribitOrderLabel, "DeribitOrderLabel", TypeString, nil},
	TagDeribitDeliverPrice:            {TagDeribitDeliverPrice, "DeribitDeliverPrice", TypeDecimal, nil},
	TagDeribitMMProtectionReset:       {TagDeribitMMProtectionReset, "DeribitMMProtectionReset", TypeBoolean, nil},
	TagDeribitMMPLimit:                {TagDeribitMMPLimit, "DeribitMMPLimit", TypeDecimal, nil},
	TagDeribitMMPFrozenTime:           {TagDeribitMMPFrozenTime, "DeribitMMPFrozenTime", TypeInt, nil},
	TagDeribitMMPInterval:             {TagDeribitMMPInterval, "DeribitMMPInterval", TypeInt, nil},
	TagDeribitMMPAmountLimit:          {TagDeribitMMPAmountLimit, "DeribitMMPAmountLimit", TypeDecimal, nil},
	TagDeribitMMPDeltaLimit:           {TagDeribitMMPDeltaLimit, "DeribitMMPDeltaLimit", TypeDecimal, nil},
	TagDeribitSelfTradePrevention:     {TagDeribitSelfTradePrevention, "DeribitSelfTradePrevention", TypeBoolean, nil},
	TagDeribitSelfTradePreventionID:   {TagDeribitSelfTradePreventionID, "DeribitSelfTradePreventionID", TypeString, nil},
	TagDeribitSelfTradePreventionMode: {TagDeribitSelfTradePreventionMode, "DeribitSelfTradePreventionMode", TypeString, nil},
	TagDeribitIndexPrice:              {TagDeribitIndexPrice, "DeribitIndexPrice", TypeDecimal, nil},
	TagDeribitMarkPrice:               {TagDeribitMarkPrice, "DeribitMarkPrice", TypeDecimal, nil},
	TagDeribitUnderlyingPrice:         {TagDeribitUnderlyingPrice, "DeribitUnderlyingPrice", TypeDecimal, nil},
	TagDeribitMaxShowAmount:           {TagDeribitMaxShowAmount, "DeribitMaxShowAmount", TypeDecimal, nil},
	TagDeribitAdvertisement:           {TagDeribitAdvertisement, "DeribitAdvertisement", TypeBoolean, nil},
	TagDeribitAdvertisementHidden:     {TagDeribitAdvertisementHidden, "DeribitAdvertisementHidden", TypeBoolean, nil},
	TagDeribitRiskReducing:            {TagDeribitRiskReducing, "DeribitRiskReducing", TypeBoolean, nil},

	TagDeribitAccessKey: {TagDeribitAccessKey, "DeribitAccessKey", TypeString, nil},
	TagDeribitTimestamp: {TagDeribitTimestamp, "DeribitTimestamp", TypeInt, nil},
	TagDeribitSignature: {TagDeribitSignature, "DeribitSignature", TypeString, nil},
	TagDeribitSecretKey: {TagDeribitSecretKey, "DeribitSecretKey", TypeString, nil},
	TagDeribitGreeks:    {TagDeribitGreeks, "DeribitGreeks", TypeBoolean, nil},
	TagDeribitNotionalValue: {TagDeribitNotionalValue, "DeribitNotionalValue", TypeDecimal, nil},
}

// Lookup returns the definition for tag, and whether it is known.
func Lookup(tag Tag) (FieldDef, bool) {
	def, ok := Fields[tag]
	return def, ok
}

// Name returns the canonical field name, or a numeric placeholder if the
// tag is not in the dictionary (unknown optional tags are preserved, not
// rejected, per C3).
func Name(tag Tag) string {
	if def, ok := Fields[tag]; ok {
		return def.Name
	}
	return "Unknown"
}
