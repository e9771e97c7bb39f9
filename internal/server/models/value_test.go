package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitkeeper/internal/common"
)

func payload(typ TrackerType, raw string) ValuePayload {
	return ValuePayload{Type: typ, Value: json.RawMessage(raw)}
}

func TestBooleanValue_Display(t *testing.T) {
	assert.Equal(t, "Yes", NewBooleanValue(true).DisplayValue())
	assert.Equal(t, "No", NewBooleanValue(false).DisplayValue())
	assert.Equal(t, true, NewBooleanValue(true).RawValue())
}

func TestBooleanValue_RejectsCoercion(t *testing.T) {
	for _, raw := range []string{`1`, `"true"`, `0`, `null`, `"yes"`} {
		_, err := NewEntryValue(payload(TypeBoolean, raw))
		assert.ErrorIs(t, err, common.ErrInvalidValue, "raw=%s", raw)
	}
}

func TestNumberValue_Display(t *testing.T) {
	v, err := NewNumberValue(71.5, 0)
	require.NoError(t, err)
	assert.Equal(t, "71.5", v.DisplayValue())

	v, err = NewNumberValue(70, 0)
	require.NoError(t, err)
	assert.Equal(t, "70", v.DisplayValue())

	v, err = NewNumberValue(3.14159, 2)
	require.NoError(t, err)
	assert.Equal(t, "3.14", v.DisplayValue())
}

func TestNumberValue_RejectsNonFinite(t *testing.T) {
	_, err := NewNumberValue(math.NaN(), 0)
	assert.ErrorIs(t, err, common.ErrInvalidValue)

	_, err = NewNumberValue(math.Inf(1), 0)
	assert.ErrorIs(t, err, common.ErrInvalidValue)

	_, err = NewEntryValue(payload(TypeNumber, `"12"`))
	assert.ErrorIs(t, err, common.ErrInvalidValue)

	_, err = NewEntryValue(payload(TypeNumber, `null`))
	assert.ErrorIs(t, err, common.ErrInvalidValue)
}

func TestTextPayload_RejectsNonString(t *testing.T) {
	for _, raw := range []string{`1`, `true`, `null`} {
		_, err := NewEntryValue(payload(TypeText, raw))
		assert.ErrorIs(t, err, common.ErrInvalidValue, "raw=%s", raw)
	}
}

func TestTextValue_Verbatim(t *testing.T) {
	assert.Equal(t, "", NewTextValue("").DisplayValue())
	assert.Equal(t, "line1\nline2", NewTextValue("line1\nline2").DisplayValue())
}

func TestDurationValue_FromHHMM(t *testing.T) {
	tests := []struct {
		in      string
		minutes int64
		display string
	}{
		{"02:30", 150, "02:30"},
		{"00:05", 5, "00:05"},
		{"24:00", 1440, "24:00"},
		{"99:59", 5999, "99:59"},
		{"123:07", 7387, "123:07"},
	}
	for _, tc := range tests {
		v, err := DurationValueFromHHMM(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.minutes, v.Minutes(), tc.in)
		assert.Equal(t, tc.display, v.DisplayValue(), tc.in)
	}
}

func TestDurationValue_RoundTrip(t *testing.T) {
	for hh := int64(0); hh < 100; hh += 7 {
		for mm := int64(0); mm < 60; mm += 13 {
			in := fmt.Sprintf("%02d:%02d", hh, mm)
			v, err := DurationValueFromHHMM(in)
			require.NoError(t, err)
			assert.Equal(t, hh*60+mm, v.Minutes())
			assert.Equal(t, in, v.DisplayValue())
		}
	}
}

func TestDurationValue_InvalidSegments(t *testing.T) {
	for _, in := range []string{"0230", "ab:30", "02:cd", "1.5:00", "02:", ":30"} {
		_, err := DurationValueFromHHMM(in)
		assert.ErrorIs(t, err, common.ErrInvalidValue, in)
	}
}

func TestDurationPayload_AcceptsMinutesOrHHMM(t *testing.T) {
	v, err := NewEntryValue(payload(TypeDuration, `"02:30"`))
	require.NoError(t, err)
	assert.Equal(t, int64(150), v.Minutes())

	v, err = NewEntryValue(payload(TypeDuration, `150`))
	require.NoError(t, err)
	assert.Equal(t, int64(150), v.Minutes())

	_, err = NewEntryValue(payload(TypeDuration, `90.5`))
	assert.ErrorIs(t, err, common.ErrInvalidValue)

	_, err = NewEntryValue(payload(TypeDuration, `null`))
	assert.ErrorIs(t, err, common.ErrInvalidValue)
}

func TestCurrencyValue_FromEuros(t *testing.T) {
	tests := []struct {
		euros   float64
		cents   int64
		display string
	}{
		{15.50, 1550, "€15.50"},
		{0, 0, "€0.00"},
		{0.01, 1, "€0.01"},
		{-5.50, -550, "€-5.50"},
		{1234.56, 123456, "€1234.56"},
	}
	for _, tc := range tests {
		v, err := CurrencyValueFromEuros(tc.euros)
		require.NoError(t, err)
		assert.Equal(t, tc.cents, v.Cents(), "%v", tc.euros)
		assert.Equal(t, tc.display, v.DisplayValue(), "%v", tc.euros)
		assert.InDelta(t, tc.euros, v.Euros(), 1e-9)
	}
}

// Cent rounding is half away from zero, judged on the decimal text. 10.995
// must land on 1100 even though the nearest float64 sits just below the tie.
func TestCurrencyValue_RoundingHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in    string
		cents int64
	}{
		{"10.995", 1100},
		{"10.994", 1099},
		{"10.996", 1100},
		{"0.005", 1},
		{"-0.005", -1},
		{"-10.995", -1100},
		{"2.675", 268},
	}
	for _, tc := range tests {
		v, err := CurrencyValueFromDecimalString(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.cents, v.Cents(), tc.in)
	}
}

func TestCurrencyPayload_KeepsDecimalLiteral(t *testing.T) {
	v, err := NewEntryValue(payload(TypeCurrency, `10.995`))
	require.NoError(t, err)
	assert.Equal(t, int64(1100), v.Cents())

	v, err = NewEntryValue(payload(TypeCurrency, `15.50`))
	require.NoError(t, err)
	assert.Equal(t, int64(1550), v.Cents())
	assert.Equal(t, "€15.50", v.DisplayValue())
}

func TestCurrencyPayload_Invalid(t *testing.T) {
	for _, raw := range []string{`"abc"`, `true`, `null`, `"12,50"`} {
		_, err := NewEntryValue(payload(TypeCurrency, raw))
		assert.ErrorIs(t, err, common.ErrInvalidValue, raw)
	}
}

func TestCurrencyValue_ExponentLiteral(t *testing.T) {
	v, err := CurrencyValueFromDecimalString("1.5e2")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), v.Cents())
}

func TestNewEntryValue_UnknownType(t *testing.T) {
	_, err := NewEntryValue(payload(TrackerType("WEIRD"), `1`))
	assert.ErrorIs(t, err, common.ErrInvalidTrackerType)
}

func TestNewEntryValue_TagMatchesVariant(t *testing.T) {
	cases := []struct {
		p    ValuePayload
		want TrackerType
	}{
		{payload(TypeBoolean, `true`), TypeBoolean},
		{payload(TypeNumber, `42`), TypeNumber},
		{payload(TypeText, `"hi"`), TypeText},
		{payload(TypeDuration, `"01:00"`), TypeDuration},
		{payload(TypeCurrency, `9.99`), TypeCurrency},
	}
	for _, tc := range cases {
		v, err := NewEntryValue(tc.p)
		require.NoError(t, err)
		assert.Equal(t, tc.want, v.Type())
	}
}

func TestParseTrackerType(t *testing.T) {
	for _, s := range []string{"BOOLEAN", "NUMBER", "TEXT", "DURATION", "CURRENCY"} {
		typ, err := ParseTrackerType(s)
		require.NoError(t, err)
		assert.Equal(t, s, typ.String())
	}

	_, err := ParseTrackerType("boolean")
	assert.True(t, errors.Is(err, common.ErrInvalidTrackerType))
}

func TestFormatMinutesHHMM_PadsAndGrows(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutesHHMM(0))
	assert.Equal(t, "00:09", FormatMinutesHHMM(9))
	assert.Equal(t, "02:30", FormatMinutesHHMM(150))
	assert.Equal(t, "100:00", FormatMinutesHHMM(6000))
}
