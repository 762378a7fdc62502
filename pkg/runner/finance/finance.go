// Package finance provides the runners behind the wallet and tx commands.
package finance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tableflip.dev/sdvig/pkg/app"
	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/printers"
	"tableflip.dev/sdvig/pkg/state"
	"tableflip.dev/sdvig/pkg/timeutil"
	"tableflip.dev/sdvig/pkg/views"
)

var errNoStore = errors.New("finance: no store")

// AddWallet creates a wallet with a starting balance.
type AddWallet struct {
	Name     string
	Balance  string
	Currency string

	Store *app.Store
	Out   io.Writer
}

func (n *AddWallet) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	name := strings.TrimSpace(n.Name)
	if name == "" {
		return errors.New("finance: empty wallet name")
	}
	balance := decimal.Zero
	if n.Balance != "" {
		b, err := decimal.NewFromString(n.Balance)
		if err != nil {
			return fmt.Errorf("finance: invalid balance %q: %w", n.Balance, err)
		}
		balance = b
	}
	n.Store.Dispatch(state.AddWallet{Wallet: model.Wallet{
		ID:       uuid.NewString(),
		Name:     name,
		Balance:  balance,
		Currency: n.Currency,
	}})
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Wallets(n.Store.State().Wallets)
	return nil
}

// RemoveWallet deletes a wallet and its transactions.
type RemoveWallet struct {
	ID string

	Store *app.Store
	Out   io.Writer
}

func (n *RemoveWallet) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if _, ok := n.Store.State().WalletByID(n.ID); !ok {
		return fmt.Errorf("finance: no wallet with id %q", n.ID)
	}
	n.Store.Dispatch(state.DeleteWallet{ID: n.ID})
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Wallets(n.Store.State().Wallets)
	return nil
}

// ListWallets prints balances and the month's totals. With WalletID set it
// prints that wallet's ledger instead.
type ListWallets struct {
	ShowID   bool
	WalletID string
	// Month is "2006-01"; empty means the current month.
	Month string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *ListWallets) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	st := n.Store.State()
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.WalletID != "" {
		w, ok := st.WalletByID(n.WalletID)
		if !ok {
			return fmt.Errorf("finance: no wallet with id %q", n.WalletID)
		}
		txs := views.WalletTransactions(st, w.ID)
		pp.TitleWithCount(w.Name, len(txs), "transaction")
		pp.Transactions(txs)
		return nil
	}

	month := n.Month
	if month == "" {
		month = clock(n.Now).Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("finance: invalid month %q", month)
	}
	pp.TitleWithCount("Wallets", len(st.Wallets), "wallet")
	pp.Wallets(st.Wallets)
	pp.Totals(month, views.MonthTotals(st.Transactions, month))
	return nil
}

// AddTransaction records income or an expense against a wallet.
type AddTransaction struct {
	WalletID string
	Expense  bool
	Amount   string
	Category string
	Note     string
	Date     string

	Store *app.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *AddTransaction) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	st := n.Store.State()
	if _, ok := st.WalletByID(n.WalletID); !ok {
		return fmt.Errorf("finance: no wallet with id %q", n.WalletID)
	}
	amount, err := decimal.NewFromString(n.Amount)
	if err != nil {
		return fmt.Errorf("finance: invalid amount %q: %w", n.Amount, err)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("finance: amount must be positive, got %s", amount)
	}
	now := clock(n.Now)
	date := n.Date
	if date == "" {
		date = timeutil.FormatDate(now)
	}
	if !timeutil.ValidDate(date) {
		return fmt.Errorf("finance: invalid date %q", date)
	}
	tx := model.Transaction{
		ID:        uuid.NewString(),
		WalletID:  n.WalletID,
		Type:      model.Income,
		Amount:    amount,
		Category:  strings.TrimSpace(n.Category),
		Note:      n.Note,
		Date:      date,
		CreatedAt: timeutil.Timestamp(now),
	}
	if n.Expense {
		tx.Type = model.Expense
	}
	if tx.Category != "" && !st.HasCategory(tx.Category) {
		n.Store.Dispatch(state.AddCategory{Name: tx.Category})
	}
	n.Store.Dispatch(state.AddTransaction{Transaction: tx})

	pp := printers.PrettyPrint{Out: n.Out}
	pp.Wallets(n.Store.State().Wallets)
	return nil
}

// RemoveTransaction deletes a transaction and reverts its wallet effect.
type RemoveTransaction struct {
	ID string

	Store *app.Store
	Out   io.Writer
}

func (n *RemoveTransaction) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	before := n.Store.State()
	if n.Store.Dispatch(state.DeleteTransaction{ID: n.ID}) == before {
		return fmt.Errorf("finance: no transaction with id %q", n.ID)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Wallets(n.Store.State().Wallets)
	return nil
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}
