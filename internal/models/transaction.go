package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/cycle-spend/internal/dateutils"
	"fjacquet/cycle-spend/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Transaction is a parsed, immutable account movement. Negative amounts are
// spend; zero and positive amounts are credits or payments.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`

	// Row is the 1-based data row the transaction was read from, 0 when it
	// was not read from a file.
	Row int `json:"-"`
}

// NewTransaction builds a Transaction from already typed values.
func NewTransaction(date time.Time, description string, amount decimal.Decimal) Transaction {
	return Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
	}
}

// IsSpend reports whether the amount is negative.
func (t Transaction) IsSpend() bool {
	return t.Amount.IsNegative()
}

// Spend is the absolute value of the amount.
func (t Transaction) Spend() decimal.Decimal {
	return t.Amount.Abs()
}

// IsPayment reports whether the description names a card payment or a
// transfer rather than a purchase.
func (t Transaction) IsPayment() bool {
	desc := strings.ToUpper(t.Description)
	for _, phrase := range PaymentPhrases {
		if strings.Contains(desc, phrase) {
			return true
		}
	}
	return false
}

// TransactionRow is a raw record as exported by the bank. Only the three
// columns below are read; other columns are ignored.
type TransactionRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`

	// Line is the 1-based line of the source file the record starts on, 0
	// when unknown.
	Line int `csv:"-"`
}

// Parse converts the row into a Transaction. source and row (the 1-based
// record index) identify the record in the returned *parsererror.ParseError.
func (r TransactionRow) Parse(source string, row int) (Transaction, error) {
	amount, err := r.ParseAmount(source, row)
	if err != nil {
		return Transaction{}, err
	}
	date, err := r.ParseDate(source, row)
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		Date:        date,
		Description: r.Description,
		Amount:      amount,
		Row:         row,
	}, nil
}

// ParseAmount parses the Amount column alone.
func (r TransactionRow) ParseAmount(source string, row int) (decimal.Decimal, error) {
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return decimal.Zero, r.fieldError(source, row, "Amount", r.Amount, err)
	}
	return amount, nil
}

// ParseDate parses the Date column alone.
func (r TransactionRow) ParseDate(source string, row int) (time.Time, error) {
	date, err := dateutils.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, r.fieldError(source, row, "Date", r.Date, err)
	}
	return date, nil
}

func (r TransactionRow) fieldError(source string, row int, field, value string, err error) error {
	return &parsererror.ParseError{
		Source: source,
		Row:    row,
		Line:   r.Line,
		Field:  field,
		Value:  value,
		Err:    err,
	}
}

// ParseAmount parses a plain decimal amount such as "-1234.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a decimal number: %w", err)
	}
	return d, nil
}
