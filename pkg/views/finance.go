package views

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"tableflip.dev/sdvig/pkg/model"
)

// TotalBalance sums every wallet balance regardless of currency.
func TotalBalance(wallets []model.Wallet) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}
	return total
}

// WalletTransactions returns the wallet's transactions, newest first.
func WalletTransactions(s *model.AppState, walletID string) []model.Transaction {
	if s == nil {
		return nil
	}
	var out []model.Transaction
	for _, tx := range s.Transactions {
		if tx.WalletID == walletID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return txDay(out[i]) > txDay(out[j])
	})
	return out
}

// Totals is an income/expense roll-up for a period.
type Totals struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	ByCategory map[string]decimal.Decimal
}

// Net is income minus expense.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// MonthTotals rolls up transactions whose day falls in month ("2006-01").
// ByCategory holds expense amounts only; uncategorized spending is keyed "".
func MonthTotals(transactions []model.Transaction, month string) Totals {
	t := Totals{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		ByCategory: map[string]decimal.Decimal{},
	}
	for _, tx := range transactions {
		if !strings.HasPrefix(txDay(tx), month+"-") {
			continue
		}
		switch tx.Type {
		case model.Income:
			t.Income = t.Income.Add(tx.Amount)
		case model.Expense:
			t.Expense = t.Expense.Add(tx.Amount)
			t.ByCategory[tx.Category] = t.ByCategory[tx.Category].Add(tx.Amount)
		}
	}
	return t
}

// txDay is the transaction's calendar date, falling back to the date part of
// its creation timestamp.
func txDay(tx model.Transaction) string {
	if tx.Date != "" {
		return tx.Date
	}
	if len(tx.CreatedAt) >= 10 {
		return tx.CreatedAt[:10]
	}
	return ""
}
