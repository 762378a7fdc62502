package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Wallet holds money. Balance always equals its starting balance plus the
// signed amounts of its live transactions.
type Wallet struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency,omitempty"`
}

// MarshalJSON writes Balance as a plain JSON number.
func (w Wallet) MarshalJSON() ([]byte, error) {
	type plain Wallet
	return json.Marshal(struct {
		plain
		Balance json.Number `json:"balance"`
	}{plain(w), number(w.Balance)})
}

// Transaction moves Amount in or out of the wallet WalletID.
type Transaction struct {
	ID        string          `json:"id"`
	WalletID  string          `json:"walletId"`
	Type      TransactionType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category,omitempty"`
	Note      string          `json:"note,omitempty"`
	Date      string          `json:"date,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
}

// Signed returns the balance effect of the transaction.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// MarshalJSON writes Amount as a plain JSON number.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain(t), number(t.Amount)})
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
