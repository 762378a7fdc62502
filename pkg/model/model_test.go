package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestFrequencyJSON(t *testing.T) {
	cases := map[string]Frequency{
		`{"type":"daily"}`:                         Daily(),
		`{"type":"weekdays"}`:                      Weekdays(),
		`{"type":"specific","days":["mon","fri"]}`: Specific(Monday, Friday),
		`{"type":"weekly","times":3}`:              Weekly(3),
	}
	for raw, want := range cases {
		var got Frequency
		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		assert.Equal(t, want, got)

		out, err := json.Marshal(got)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	}
}

func TestFrequencyRejectsUnknownType(t *testing.T) {
	var f Frequency
	assert.Error(t, json.Unmarshal([]byte(`{"type":"hourly"}`), &f))
}

func TestWeekdayAcceptsLegacyCodes(t *testing.T) {
	var f Frequency
	require.NoError(t, json.Unmarshal([]byte(`{"type":"specific","days":["пн","Wednesday","вс"]}`), &f))
	assert.Equal(t, []Weekday{Monday, Wednesday, Sunday}, f.Days)

	_, err := ParseWeekday("someday")
	assert.Error(t, err)
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, Sunday, WeekdayOf(time.Sunday))
	assert.Equal(t, Saturday, WeekdayOf(time.Saturday))
	assert.True(t, WeekdayOf(time.Friday).IsWorkday())
	assert.False(t, WeekdayOf(time.Saturday).IsWorkday())
}

func TestDecimalSerializesAsNumber(t *testing.T) {
	w := Wallet{ID: "w", Name: "Cash", Balance: decimal.RequireFromString("-12.50")}
	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"w","name":"Cash","balance":-12.5}`, string(out))

	var back Wallet
	require.NoError(t, json.Unmarshal([]byte(`{"id":"w","name":"Cash","balance":"7.25"}`), &back))
	assert.True(t, back.Balance.Equal(decimal.RequireFromString("7.25")))

	tx := Transaction{ID: "t", WalletID: "w", Type: Expense, Amount: decimal.RequireFromString("3.10")}
	out, err = json.Marshal([]Transaction{tx})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"t","walletId":"w","type":"expense","amount":3.1}]`, string(out))

	// The package leaves the library-wide setting alone.
	assert.False(t, decimal.MarshalJSONWithoutQuotes)
	out, err = json.Marshal(decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.Equal(t, `"1.5"`, string(out))
}

func TestInitialStateIsValid(t *testing.T) {
	s := InitialState()
	require.NoError(t, s.Validate())
	s.Categories = append(s.Categories, "x")
	assert.NotContains(t, InitialState().Categories, "x")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	s := InitialState()
	s.Tasks = []Task{{ID: "a"}, {ID: "a", Priority: "urgent"}, {Date: "tomorrow"}}
	s.Transactions = []Transaction{{ID: "t", Type: "gift", Amount: decimal.NewFromInt(-1)}}
	s.Settings.Theme = "neon"

	err := s.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 7)
}

func TestNormalizeFillsNilCollections(t *testing.T) {
	s := &AppState{Habits: []Habit{{ID: "h"}}}
	s.Normalize()
	assert.NotNil(t, s.Tasks)
	assert.NotNil(t, s.DayTasks)
	assert.NotNil(t, s.Habits[0].CompletedDates)
	assert.Equal(t, ThemeLight, s.Settings.Theme)
}
