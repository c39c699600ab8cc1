package datex_test

import (
	"encoding/json"
	"testing"
	"time"

	"job-portal-backend/pkg/datex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEquivalentInputs(t *testing.T) {
	native := time.Date(2023, time.May, 10, 15, 30, 0, 0, time.Local)
	inputs := []any{
		"2023-05-10T00:00:00.000Z",
		"2023-05-10",
		native,
		&native,
	}
	for _, in := range inputs {
		d := datex.Normalize(in)
		require.True(t, d.Valid, "input %v", in)
		assert.Equal(t, "2023-05-10", d.String())
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	for _, in := range []any{"not a date", "", "  ", nil, (*string)(nil), struct{}{}} {
		d := datex.Normalize(in)
		assert.False(t, d.Valid, "input %v", in)
		assert.Nil(t, d.Ptr())
	}
}

func TestParseFallbackLayouts(t *testing.T) {
	tests := map[string]string{
		"05/10/2023":                        "2023-05-10",
		"May 10, 2023":                      "2023-05-10",
		"Wed May 10 2023 07:00:00 GMT+0700": "2023-05-10",
		"Wed, 10 May 2023 08:00:00 GMT":     "2023-05-10",
		"created 2021-01-31 by import":      "2021-01-31",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, datex.Parse(in).String())
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var payload struct {
		Start datex.Date `json:"start"`
		End   datex.Date `json:"end"`
		Bad   datex.Date `json:"bad"`
	}
	err := json.Unmarshal([]byte(`{"start":"2020-01-01T10:00:00Z","end":null,"bad":"garbage"}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", payload.Start.String())
	assert.False(t, payload.End.Valid)
	assert.False(t, payload.Bad.Valid)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2020-01-01","end":null,"bad":null}`, string(out))
}

func TestEndOfDay(t *testing.T) {
	d := datex.NewDate(2024, time.March, 1)
	eod := d.EndOfDay(time.UTC)
	assert.Equal(t, 23, eod.Hour())
	assert.Equal(t, 999*int(time.Millisecond), eod.Nanosecond())
	assert.True(t, eod.Before(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)))
}
