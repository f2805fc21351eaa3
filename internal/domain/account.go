package domain

import "fmt"

// AccountSubtypeCash is the single account subtype whose entries remain
// editable after creation. Everything else is controlled upstream.
const AccountSubtypeCash = "physical cash"

// AccountDirectoryEntry represents one account known to the ledger service,
// either a manually managed asset or an aggregator-linked bank account.
type AccountDirectoryEntry struct {
	ID              int64  `json:"id"`
	DisplayName     string `json:"display_name"`
	Currency        string `json:"currency"`
	Subtype         string `json:"subtype"`
	InstitutionName string `json:"institution_name,omitempty"`
	BankAccountID   *int64 `json:"bank_account_id,omitempty"`
	Closed          bool   `json:"closed"`
}

// AccountDirectory indexes directory entries for lookup during a
// normalization run. Internal asset ids and aggregator-issued bank account
// ids may overlap numerically, so the two id spaces are kept in separate
// key namespaces: plain ids for assets, "bank_{id}" for aggregator accounts.
type AccountDirectory struct {
	byKey map[string]AccountDirectoryEntry
}

// NewAccountDirectory builds a directory from a merged account list.
// Entries carrying a bank account id are keyed in the bank namespace only;
// all others are keyed by their internal id.
func NewAccountDirectory(entries []AccountDirectoryEntry) *AccountDirectory {
	d := &AccountDirectory{byKey: make(map[string]AccountDirectoryEntry, len(entries))}
	for _, e := range entries {
		if e.BankAccountID != nil {
			d.byKey[bankKey(*e.BankAccountID)] = e
			continue
		}
		d.byKey[assetKey(e.ID)] = e
	}
	return d
}

// ByAssetID looks up a manually managed account by its internal id
func (d *AccountDirectory) ByAssetID(id int64) (AccountDirectoryEntry, bool) {
	if d == nil {
		return AccountDirectoryEntry{}, false
	}
	e, ok := d.byKey[assetKey(id)]
	return e, ok
}

// ByBankAccountID looks up an aggregator-linked account by its aggregator id
func (d *AccountDirectory) ByBankAccountID(id int64) (AccountDirectoryEntry, bool) {
	if d == nil {
		return AccountDirectoryEntry{}, false
	}
	e, ok := d.byKey[bankKey(id)]
	return e, ok
}

// Len returns the number of indexed accounts
func (d *AccountDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byKey)
}

func assetKey(id int64) string {
	return fmt.Sprintf("%d", id)
}

func bankKey(id int64) string {
	return fmt.Sprintf("bank_%d", id)
}
