package catalog

import (
	"github.com/joaquinbejar/deribit-fix-sub001/dictionary"
	"github.com/joaquinbejar/deribit-fix-sub001/wire"
)

// MMProtectionLimitsParams are the parameters for a Market Maker Protection
// Limits (MM) message: Deribit's per-currency circuit breaker thresholds.
type MMProtectionLimitsParams struct {
	Symbol       string // currency/index this limit set applies to
	MMPLimit     string // tag 9011, max number of fills before triggering
	FrozenTime   string // tag 9012, seconds the account stays frozen
	Interval     string // tag 9013, rolling window length in seconds
	AmountLimit  string // tag 9014, notional amount limit
	DeltaLimit   string // tag 9015, delta limit
}

var MMProtectionLimitsSchema = Schema{
	MsgType:  MsgTypeMMProtectionLimits,
	Required: []dictionary.Tag{dictionary.TagSymbol, dictionary.TagDeribitMMPLimit, dictionary.TagDeribitMMPInterval},
	Optional: []dictionary.Tag{
		dictionary.TagDeribitMMPFrozenTime, dictionary.TagDeribitMMPAmountLimit, dictionary.TagDeribitMMPDeltaLimit,
	},
}

// BuildMMProtectionLimits constructs a Market Maker Protection Limits (MM)
// message, setting the MMP thresholds Deribit enforces for this session.
func BuildMMProtectionLimits(p MMProtectionLimitsParams) (*wire.Message, error) {
	m := wire.New().
		Set(dictionary.TagSymbol, p.Symbol).
		SetIfNotEmpty(dictionary.TagDeribitMMPLimit, p.MMPLimit).
		SetIfNotEmpty(dictionary.TagDeribitMMPInterval, p.Interval)
	m.SetIfNotEmpty(dictionary.TagDeribitMMPFrozenTime, p.FrozenTime)
	m.SetIfNotEmpty(dictionary.TagDeribitMMPAmountLimit, p.AmountLimit)
	m.SetIfNotEmpty(dictionary.TagDeribitMMPDeltaLimit, p.DeltaLimit)

	if err := MMProtectionLimitsSchema.Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// MMProtectionResult is the parsed view of an inbound Market Maker
// Protection Result (MR), reporting whether the limits were accepted and,
// if the account is currently frozen, until when.
type MMProtectionResult struct {
	Symbol     string
	Triggered  bool
	FrozenTime string
	Text       string
}

func ParseMMProtectionResult(m *wire.Message) MMProtectionResult {
	var out MMProtectionResult
	out.Symbol, _ = m.Get(dictionary.TagSymbol)
	if v, ok := m.Get(dictionary.TagDeribitMMProtectionReset); ok {
		out.Triggered = v == "Y"
	}
	out.FrozenTime, _ = m.Get(dictionary.TagDeribitMMPFrozenTime)
	out.Text, _ = m.Get(dictionary.TagText)
	return out
}

// BuildMMProtectionReset constructs a Market Maker Protection Reset (MZ),
// manually clearing a triggered MMP freeze before its timer expires.
func BuildMMProtectionReset(symbol string) *wire.Message {
	return wire.New().
		Set(dictionary.TagSymbol, symbol).
		Set(dictionary.TagDeribitMMProtectionReset, "Y")
}
