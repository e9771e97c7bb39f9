package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"habitkeeper/internal/common"
)

// EntryValue is the typed payload of an entry. Exactly one variant is active
// per instance; the tag and the stored representation never disagree. The
// zero value is not a valid EntryValue.
type EntryValue struct {
	typ TrackerType

	boolVal  bool
	numVal   float64
	decimals int
	textVal  string
	intVal   int64 // minutes for DURATION, cents for CURRENCY
}

// NewBooleanValue builds a BOOLEAN value.
func NewBooleanValue(v bool) EntryValue {
	return EntryValue{typ: TypeBoolean, boolVal: v}
}

// NewNumberValue builds a NUMBER value. decimals controls display rounding
// only; decimals <= 0 renders the natural string form. Non-finite values are
// rejected.
func NewNumberValue(v float64, decimals int) (EntryValue, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return EntryValue{}, fmt.Errorf("%w: number must be finite", common.ErrInvalidValue)
	}
	return EntryValue{typ: TypeNumber, numVal: v, decimals: decimals}, nil
}

// NewTextValue builds a TEXT value. Any string is accepted, including empty.
func NewTextValue(v string) EntryValue {
	return EntryValue{typ: TypeText, textVal: v}
}

// NewDurationValue builds a DURATION value from total minutes.
func NewDurationValue(totalMinutes int64) EntryValue {
	return EntryValue{typ: TypeDuration, intVal: totalMinutes}
}

// DurationValueFromHHMM builds a DURATION value from an "HH:MM" string.
// Both segments must parse as base-10 integers; hours have no upper bound.
func DurationValueFromHHMM(s string) (EntryValue, error) {
	hoursStr, minutesStr, ok := strings.Cut(s, ":")
	if !ok {
		return EntryValue{}, fmt.Errorf("%w: duration must be in HH:MM format, got %q", common.ErrInvalidValue, s)
	}
	hours, err := strconv.ParseInt(hoursStr, 10, 64)
	if err != nil {
		return EntryValue{}, fmt.Errorf("%w: invalid hours in %q", common.ErrInvalidValue, s)
	}
	minutes, err := strconv.ParseInt(minutesStr, 10, 64)
	if err != nil {
		return EntryValue{}, fmt.Errorf("%w: invalid minutes in %q", common.ErrInvalidValue, s)
	}
	return NewDurationValue(hours*60 + minutes), nil
}

// NewCurrencyValue builds a CURRENCY value from integer cents. Cents may be
// negative.
func NewCurrencyValue(cents int64) EntryValue {
	return EntryValue{typ: TypeCurrency, intVal: cents}
}

// CurrencyValueFromEuros builds a CURRENCY value from a euro amount,
// rounding to the nearest cent half away from zero. The float is first
// rendered in its shortest decimal form so that rounding happens on the
// decimal text, not on the binary approximation: 10.995 becomes 1100 cents.
func CurrencyValueFromEuros(euros float64) (EntryValue, error) {
	if math.IsNaN(euros) || math.IsInf(euros, 0) {
		return EntryValue{}, fmt.Errorf("%w: amount must be finite", common.ErrInvalidValue)
	}
	return CurrencyValueFromDecimalString(strconv.FormatFloat(euros, 'f', -1, 64))
}

// CurrencyValueFromDecimalString builds a CURRENCY value from decimal text
// such as "15.50" or "-0.05", rounding to the nearest cent half away from
// zero.
func CurrencyValueFromDecimalString(s string) (EntryValue, error) {
	cents, err := parseEuroCents(s)
	if err != nil {
		return EntryValue{}, err
	}
	return NewCurrencyValue(cents), nil
}

// parseEuroCents converts decimal euro text to integer cents, rounding half
// away from zero at the third fractional digit.
func parseEuroCents(s string) (int64, error) {
	orig := s
	s = strings.TrimSpace(s)

	// Exponent notation (possible via JSON numbers) is normalized through
	// the shortest float form, which 'f' renders without an exponent.
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidValue, orig)
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidValue, orig)
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidValue, orig)
		}
	}

	euros, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", common.ErrInvalidValue, orig)
	}
	cents := euros * 100

	if len(fracPart) > 0 {
		frac := fracPart
		for len(frac) < 3 {
			frac += "0"
		}
		cents += int64(frac[0]-'0')*10 + int64(frac[1]-'0')
		if frac[2] >= '5' {
			cents++
		}
	}

	if negative {
		cents = -cents
	}
	return cents, nil
}

// NewEntryValue converts an externally supplied payload into the validated
// variant matching its type tag, or fails with ErrInvalidValue. Construction
// is pure: no side effects, no partial values.
func NewEntryValue(p ValuePayload) (EntryValue, error) {
	// Scalar variants decode through a pointer: json.Unmarshal treats a
	// literal null as a no-op on non-pointer targets, which would smuggle in
	// the zero value instead of failing.
	switch p.Type {
	case TypeBoolean:
		var v *bool
		if err := json.Unmarshal(p.Value, &v); err != nil || v == nil {
			return EntryValue{}, fmt.Errorf("%w: boolean value must be true or false", common.ErrInvalidValue)
		}
		return NewBooleanValue(*v), nil

	case TypeNumber:
		var v *float64
		if err := json.Unmarshal(p.Value, &v); err != nil || v == nil {
			return EntryValue{}, fmt.Errorf("%w: number value must be numeric", common.ErrInvalidValue)
		}
		decimals := 0
		if p.Decimals != nil {
			if *p.Decimals < 0 {
				return EntryValue{}, fmt.Errorf("%w: decimals must be non-negative", common.ErrInvalidValue)
			}
			decimals = *p.Decimals
		}
		return NewNumberValue(*v, decimals)

	case TypeText:
		var v *string
		if err := json.Unmarshal(p.Value, &v); err != nil || v == nil {
			return EntryValue{}, fmt.Errorf("%w: text value must be a string", common.ErrInvalidValue)
		}
		return NewTextValue(*v), nil

	case TypeDuration:
		if len(p.Value) > 0 && p.Value[0] == '"' {
			var v string
			if err := json.Unmarshal(p.Value, &v); err != nil {
				return EntryValue{}, fmt.Errorf("%w: malformed duration string", common.ErrInvalidValue)
			}
			return DurationValueFromHHMM(v)
		}
		var n json.Number
		if err := json.Unmarshal(p.Value, &n); err != nil {
			return EntryValue{}, fmt.Errorf("%w: duration must be minutes or an HH:MM string", common.ErrInvalidValue)
		}
		minutes, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return EntryValue{}, fmt.Errorf("%w: duration minutes must be an integer", common.ErrInvalidValue)
		}
		return NewDurationValue(minutes), nil

	case TypeCurrency:
		var n json.Number
		if err := json.Unmarshal(p.Value, &n); err != nil {
			return EntryValue{}, fmt.Errorf("%w: currency amount must be numeric", common.ErrInvalidValue)
		}
		return CurrencyValueFromDecimalString(n.String())

	default:
		return EntryValue{}, fmt.Errorf("%w: %q", common.ErrInvalidTrackerType, p.Type)
	}
}

// ValuePayload is the tagged wire form of an entry value: the declared type
// plus the raw JSON value. Decimals applies to NUMBER only.
type ValuePayload struct {
	Type     TrackerType     `json:"type"`
	Value    json.RawMessage `json:"value"`
	Decimals *int            `json:"decimals,omitempty"`
}

// Type returns the active variant's tag.
func (v EntryValue) Type() TrackerType { return v.typ }

// Bool returns the BOOLEAN variant's raw value.
func (v EntryValue) Bool() bool { return v.boolVal }

// Number returns the NUMBER variant's raw value.
func (v EntryValue) Number() float64 { return v.numVal }

// Decimals returns the NUMBER variant's display precision.
func (v EntryValue) Decimals() int { return v.decimals }

// Text returns the TEXT variant's raw value.
func (v EntryValue) Text() string { return v.textVal }

// Minutes returns the DURATION variant's raw total minutes.
func (v EntryValue) Minutes() int64 { return v.intVal }

// Cents returns the CURRENCY variant's raw cents.
func (v EntryValue) Cents() int64 { return v.intVal }

// Euros returns the CURRENCY variant's amount in euros.
func (v EntryValue) Euros() float64 { return float64(v.intVal) / 100 }

// RawValue returns the canonical stored representation of the active
// variant: bool, float64, string, or int64 (minutes/cents).
func (v EntryValue) RawValue() any {
	switch v.typ {
	case TypeBoolean:
		return v.boolVal
	case TypeNumber:
		return v.numVal
	case TypeText:
		return v.textVal
	case TypeDuration, TypeCurrency:
		return v.intVal
	}
	return nil
}

// DisplayValue renders the human-readable form of the active variant.
func (v EntryValue) DisplayValue() string {
	switch v.typ {
	case TypeBoolean:
		if v.boolVal {
			return "Yes"
		}
		return "No"
	case TypeNumber:
		if v.decimals <= 0 {
			return strconv.FormatFloat(v.numVal, 'f', -1, 64)
		}
		return strconv.FormatFloat(v.numVal, 'f', v.decimals, 64)
	case TypeText:
		return v.textVal
	case TypeDuration:
		return FormatMinutesHHMM(v.intVal)
	case TypeCurrency:
		return FormatCents(v.intVal)
	}
	return ""
}

// FormatMinutesHHMM renders total minutes as HH:MM, both fields zero-padded
// to at least two digits. Hours grow past two digits untruncated.
func FormatMinutesHHMM(totalMinutes int64) string {
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// FormatCents renders cents as €X.XX with exactly two decimal places. The
// sign of negative amounts follows the currency symbol: €-5.50.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("€%s%d.%02d", sign, cents/100, cents%100)
}
