package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Direction represents the cash-flow direction of a normalized entry
type Direction string

const (
	DirectionIncome   Direction = "income"
	DirectionExpense  Direction = "expense"
	DirectionTransfer Direction = "transfer"
)

// GroupKind represents how a multi-leg group was reconciled
type GroupKind string

const (
	GroupKindNone          GroupKind = "none"
	GroupKindTransfer      GroupKind = "transfer"
	GroupKindSplitPayment  GroupKind = "splitPayment"
	GroupKindPaymentRefund GroupKind = "paymentRefund"
)

// Amount is a signed decimal amount as received from the upstream ledger.
// The upstream encodes it as either a JSON number or a quoted string, and a
// single malformed value must not block normalization of the rest of the
// batch, so decoding failures coerce to zero instead of erroring.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal as an Amount
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON decodes a JSON number or string, coercing malformed input to zero
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// RawEntry represents one ledger entry exactly as fetched from the upstream
// service, before normalization. Entries come from two sources (manual entry
// and a bank-data aggregator) with inconsistent metadata; the normalization
// engine reconciles them. RawEntry is immutable once received.
type RawEntry struct {
	ID                 int64      `json:"id"`
	Date               string     `json:"date"`
	Amount             Amount     `json:"amount"`
	Payee              string     `json:"payee"`
	Notes              string     `json:"notes,omitempty"`
	CategoryID         *int64     `json:"category_id,omitempty"`
	CategoryName       string     `json:"category_name,omitempty"`
	IsIncome           *bool      `json:"is_income,omitempty"`
	RecurringID        *int64     `json:"recurring_id,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	AssetID            *int64     `json:"asset_id,omitempty"`
	BankAccountID      *int64     `json:"bank_account_id,omitempty"`
	BankAccountName    string     `json:"bank_account_display_name,omitempty"`
	AccountDisplayName string     `json:"account_display_name,omitempty"`
	InstitutionName    string     `json:"institution_name,omitempty"`
	ProviderMetadata   string     `json:"provider_metadata,omitempty"`
	GroupID            *int64     `json:"group_id,omitempty"`
	IsGroup            bool       `json:"is_group,omitempty"`
	Children           []RawEntry `json:"children,omitempty"`
}

// Categorized reports whether the entry carries category data
func (e *RawEntry) Categorized() bool {
	return e.CategoryID != nil || e.CategoryName != ""
}

// HasMetadata reports whether the provider metadata field is non-empty.
// It says nothing about whether the blob is parseable.
func (e *RawEntry) HasMetadata() bool {
	return strings.TrimSpace(e.ProviderMetadata) != ""
}

// NormalizedEntry is the display-ready form of one raw entry or one
// reconciled multi-leg group. It carries no signed amount: downstream
// consumers see only the non-negative magnitude plus the direction, which
// keeps the magnitude invariant structural for every group kind.
type NormalizedEntry struct {
	ID                 int64           `json:"id"`
	Payee              string          `json:"payee"`
	Notes              string          `json:"notes,omitempty"`
	CategoryID         *int64          `json:"category_id,omitempty"`
	CategoryName       string          `json:"category_name,omitempty"`
	RecurringID        *int64          `json:"recurring_id,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
	CorrectedDate      string          `json:"correctedDate"`
	CorrectedTime      string          `json:"correctedTime,omitempty"`
	Direction          Direction       `json:"direction"`
	DisplayAccountName string          `json:"displayAccountName"`
	IsBankLinked       bool            `json:"isBankLinked"`
	AccountEditable    bool            `json:"accountEditable"`
	GroupKind          GroupKind       `json:"groupKind"`
	GroupLegs          []RawEntry      `json:"groupLegs,omitempty"`
	LegDates           []string        `json:"legDates,omitempty"`
	TransferFrom       string          `json:"transferFrom,omitempty"`
	TransferTo         string          `json:"transferTo,omitempty"`
	Magnitude          decimal.Decimal `json:"magnitude"`
}

// HasTime reports whether a meaningful time-of-day was resolved for the entry
func (e *NormalizedEntry) HasTime() bool {
	return e.CorrectedTime != ""
}
