package state

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/sdvig/pkg/model"
)

func TestDecodeEnvelopes(t *testing.T) {
	cases := []struct {
		raw  string
		want Action
	}{
		{`{"type":"TOGGLE_TASK","payload":"abc"}`, ToggleTask{ID: "abc"}},
		{`{"type":"DELETE_WALLET","payload":"w1"}`, DeleteWallet{ID: "w1"}},
		{`{"type":"TOGGLE_HABIT","payload":{"id":"h","date":"2024-06-12"}}`, ToggleHabit{ID: "h", Date: "2024-06-12"}},
		{`{"type":"TOGGLE_DAY_TASK","payload":{"date":"2024-06-12","taskId":"d"}}`, ToggleDayTask{Date: "2024-06-12", TaskID: "d"}},
		{`{"type":"ADD_CATEGORY","payload":"travel"}`, AddCategory{Name: "travel"}},
		{`{"type":"SET_THEME","payload":"dark"}`, SetTheme{Theme: model.ThemeDark}},
		{`{"type":"ADD_TASK","payload":{"id":"t","title":"Write","priority":"important"}}`,
			AddTask{Task: model.Task{ID: "t", Title: "Write", Priority: model.PriorityImportant}}},
	}
	for _, tc := range cases {
		got, err := Decode([]byte(tc.raw))
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestDecodeTransactionAmount(t *testing.T) {
	a, err := Decode([]byte(`{"type":"ADD_TRANSACTION","payload":{"id":"t","walletId":"w","type":"expense","amount":12.5}}`))
	require.NoError(t, err)
	tx := a.(AddTransaction).Transaction
	assert.Equal(t, model.Expense, tx.Type)
	assert.True(t, decimal.RequireFromString("12.5").Equal(tx.Amount))
}

func TestDecodeLoadStateNormalizes(t *testing.T) {
	a, err := Decode([]byte(`{"type":"LOAD_STATE","payload":{"tasks":null}}`))
	require.NoError(t, err)
	s := a.(LoadState).State
	require.NotNil(t, s)
	assert.NotNil(t, s.Tasks)
	assert.Equal(t, model.ThemeLight, s.Settings.Theme)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`{"type":"LAUNCH_ROCKET","payload":"x"}`))
	assert.True(t, errors.Is(err, ErrUnknownAction))

	_, err = Decode([]byte(`{"type":"TOGGLE_TASK","payload":{"id":1}}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
