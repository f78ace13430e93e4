package offer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// nanLiteral is how a present-but-non-numeric rate is written back to the wire.
const nanLiteral = "NaN"

// Rate is a nullable per-kWh price as it appears in catalog documents.
// Numbers and numeric strings decode to a valid rate; null and "" decode to an
// absent rate; any other string decodes to a valid NaN rate so it still renders
// as the placeholder instead of disappearing.
type Rate struct {
	Value float64
	Valid bool
}

// RateOf converts a nullable float into a Rate.
func RateOf(p *float64) Rate {
	if p == nil {
		return Rate{}
	}
	return Rate{Value: *p, Valid: true}
}

// Ptr returns the rate as a nullable float.
func (r Rate) Ptr() *float64 {
	if !r.Valid {
		return nil
	}
	v := r.Value
	return &v
}

func parseRate(s string) Rate {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rate{}
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return Rate{Value: math.NaN(), Valid: true}
	}
	return Rate{Value: f, Valid: true}
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (r *Rate) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*r = Rate{}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*r = parseRate(s)
	return nil
}

// MarshalJSON writes absent rates as null and non-numeric rates as "NaN".
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return []byte(strconv.Quote(nanLiteral)), nil
	}
	return strconv.AppendFloat(nil, r.Value, 'f', -1, 64), nil
}

// UnmarshalYAML accepts YAML scalars with the same rules as UnmarshalJSON.
func (r *Rate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("rate must be a scalar, got %v at line %d", node.Tag, node.Line)
	}
	*r = parseRate(node.Value)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (r Rate) MarshalYAML() (interface{}, error) {
	if !r.Valid {
		return nil, nil
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return nanLiteral, nil
	}
	return r.Value, nil
}

// Amount is a nullable currency amount that accepts "15.50", "15,50" or 15.5.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// AmountOf wraps a decimal as a valid Amount.
func AmountOf(d decimal.Decimal) Amount {
	return Amount{Value: d, Valid: true}
}

// Null converts the amount to the decimal library's nullable type.
func (a Amount) Null() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: a.Value, Valid: a.Valid}
}

func parseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, nil
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return AmountOf(d), nil
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = Amount{}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := parseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON writes the amount as a quoted decimal string, or null.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(a.Value.String())), nil
}

// UnmarshalYAML accepts YAML scalars with the same rules as UnmarshalJSON.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: amount must be a scalar at line %d", ErrInvalidPrice, node.Line)
	}
	parsed, err := parseAmount(node.Value)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalYAML writes the amount as a decimal string, or null.
func (a Amount) MarshalYAML() (interface{}, error) {
	if !a.Valid {
		return nil, nil
	}
	return a.Value.String(), nil
}

// Record is the flat wire shape of an offer. Which price fields are meaningful
// depends on OfferType; ToOffer keeps only those.
type Record struct {
	ID                string   `json:"id"                  yaml:"id"`
	Name              string   `json:"name"                yaml:"name"`
	ProviderID        string   `json:"provider_id"         yaml:"provider_id"`
	OfferType         string   `json:"offer_type"          yaml:"offer_type"`
	SubscriptionPrice Amount   `json:"subscription_price"  yaml:"subscription_price"`
	PowerKVA          *float64 `json:"power_kva,omitempty" yaml:"power_kva,omitempty"`

	BasePrice Rate `json:"base_price" yaml:"base_price"`
	HCPrice   Rate `json:"hc_price"   yaml:"hc_price"`
	HPPrice   Rate `json:"hp_price"   yaml:"hp_price"`

	TempoBlueHC  Rate `json:"tempo_blue_hc"  yaml:"tempo_blue_hc"`
	TempoBlueHP  Rate `json:"tempo_blue_hp"  yaml:"tempo_blue_hp"`
	TempoWhiteHC Rate `json:"tempo_white_hc" yaml:"tempo_white_hc"`
	TempoWhiteHP Rate `json:"tempo_white_hp" yaml:"tempo_white_hp"`
	TempoRedHC   Rate `json:"tempo_red_hc"   yaml:"tempo_red_hc"`
	TempoRedHP   Rate `json:"tempo_red_hp"   yaml:"tempo_red_hp"`

	EJPNormal Rate `json:"ejp_normal" yaml:"ejp_normal"`
	EJPPeak   Rate `json:"ejp_peak"   yaml:"ejp_peak"`
}

// ToOffer converts a wire record into an Offer whose Pricing variant carries only
// the fields relevant to its scheme. Unknown schemes never fail.
func (r Record) ToOffer() (Offer, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return Offer{}, fmt.Errorf("%w (name %q)", ErrMissingID, r.Name)
	}

	o := Offer{
		ID:           ID(id),
		Name:         r.Name,
		ProviderID:   ProviderID(strings.TrimSpace(r.ProviderID)),
		Subscription: r.SubscriptionPrice.Null(),
		PowerKVA:     r.PowerKVA,
	}

	switch scheme := ParseScheme(r.OfferType); scheme {
	case SchemeFlat:
		o.Pricing = FlatPricing{Base: r.BasePrice.Ptr()}
	case SchemePeakOffPeak:
		o.Pricing = PeakOffPeakPricing{OffPeak: r.HCPrice.Ptr(), Peak: r.HPPrice.Ptr()}
	case SchemeColorTiered:
		o.Pricing = ColorTieredPricing{
			BlueOffPeak:  r.TempoBlueHC.Ptr(),
			BluePeak:     r.TempoBlueHP.Ptr(),
			WhiteOffPeak: r.TempoWhiteHC.Ptr(),
			WhitePeak:    r.TempoWhiteHP.Ptr(),
			RedOffPeak:   r.TempoRedHC.Ptr(),
			RedPeak:      r.TempoRedHP.Ptr(),
		}
	case SchemeCriticalPeak:
		o.Pricing = CriticalPeakPricing{Normal: r.EJPNormal.Ptr(), CriticalPeak: r.EJPPeak.Ptr()}
	default:
		o.Pricing = UnknownPricing{
			Name:    scheme,
			OffPeak: r.HCPrice.Ptr(),
			Peak:    r.HPPrice.Ptr(),
			Base:    r.BasePrice.Ptr(),
		}
	}

	return o, nil
}

// RecordFromOffer converts an Offer back into its wire record.
func RecordFromOffer(o Offer) Record {
	r := Record{
		ID:         string(o.ID),
		Name:       o.Name,
		ProviderID: string(o.ProviderID),
		OfferType:  string(o.Scheme()),
		PowerKVA:   o.PowerKVA,
	}
	if o.Subscription.Valid {
		r.SubscriptionPrice = AmountOf(o.Subscription.Decimal)
	}

	switch p := o.Pricing.(type) {
	case FlatPricing:
		r.BasePrice = RateOf(p.Base)
	case PeakOffPeakPricing:
		r.HCPrice = RateOf(p.OffPeak)
		r.HPPrice = RateOf(p.Peak)
	case ColorTieredPricing:
		r.TempoBlueHC = RateOf(p.BlueOffPeak)
		r.TempoBlueHP = RateOf(p.BluePeak)
		r.TempoWhiteHC = RateOf(p.WhiteOffPeak)
		r.TempoWhiteHP = RateOf(p.WhitePeak)
		r.TempoRedHC = RateOf(p.RedOffPeak)
		r.TempoRedHP = RateOf(p.RedPeak)
	case CriticalPeakPricing:
		r.EJPNormal = RateOf(p.Normal)
		r.EJPPeak = RateOf(p.CriticalPeak)
	case UnknownPricing:
		r.HCPrice = RateOf(p.OffPeak)
		r.HPPrice = RateOf(p.Peak)
		r.BasePrice = RateOf(p.Base)
	}

	return r
}
