// Package accounts derives the human-readable account identity of an entry
// or group leg: its display label, whether it is bank-linked, and whether
// its account assignment may still be edited.
package accounts

import (
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
)

// LinkIndicator prefixes the label of every bank-linked account
const LinkIndicator = "🔗 "

// UnknownAccount is the label of last resort when the whole priority chain
// comes up empty
const UnknownAccount = "Unknown Account"

// Resolution is the resolved display identity of one entry or group
type Resolution struct {
	Label      string
	BankLinked bool
	Editable   bool
}

// IsBankLinked reports whether a single entry or leg originates from the
// bank-data aggregator rather than manual entry. Any aggregator fingerprint
// qualifies: a bank account id, a bank display name, an institution name, or
// a non-empty provider metadata blob (parseable or not).
func IsBankLinked(entry domain.RawEntry) bool {
	return entry.BankAccountID != nil ||
		entry.BankAccountName != "" ||
		entry.InstitutionName != "" ||
		entry.HasMetadata()
}

// GroupBankLinked reports whether a multi-leg group is bank-linked.
// Linkage is contagious: a single linked leg marks the whole group.
func GroupBankLinked(parent domain.RawEntry, legs []domain.RawEntry) bool {
	if IsBankLinked(parent) {
		return true
	}
	for _, leg := range legs {
		if IsBankLinked(leg) {
			return true
		}
	}
	return false
}

// Resolve derives the display identity of a standalone entry
func Resolve(entry domain.RawEntry, directory *domain.AccountDirectory) Resolution {
	linked := IsBankLinked(entry)
	label := baseLabel(entry, directory)
	if linked {
		label = LinkIndicator + label
	}
	return Resolution{
		Label:      label,
		BankLinked: linked,
		Editable:   editable(entry, directory, linked),
	}
}

// ResolveGroup derives the display identity of a reconciled group from its
// main leg, honoring contagious linkage. Group pseudo-accounts are never
// editable.
func ResolveGroup(parent domain.RawEntry, legs []domain.RawEntry, mainLeg domain.RawEntry, directory *domain.AccountDirectory) Resolution {
	linked := GroupBankLinked(parent, legs)
	label := baseLabel(mainLeg, directory)
	if linked {
		label = LinkIndicator + label
	}
	return Resolution{Label: label, BankLinked: linked}
}

// LegLabel resolves the bare account label of one group leg, without the
// link indicator. Used for the from/to sides of a transfer.
func LegLabel(leg domain.RawEntry, directory *domain.AccountDirectory) string {
	return baseLabel(leg, directory)
}

// baseLabel walks the label priority chain: account display name on the
// entry, then the asset's directory display name, then the bank account
// display name (entry field first, directory second), then the raw
// institution field, and finally the fixed unknown literal.
func baseLabel(entry domain.RawEntry, directory *domain.AccountDirectory) string {
	if entry.AccountDisplayName != "" {
		return entry.AccountDisplayName
	}

	if entry.AssetID != nil {
		if asset, ok := directory.ByAssetID(*entry.AssetID); ok && asset.DisplayName != "" {
			return asset.DisplayName
		}
	}

	if entry.BankAccountName != "" {
		return entry.BankAccountName
	}
	if entry.BankAccountID != nil {
		if bank, ok := directory.ByBankAccountID(*entry.BankAccountID); ok && bank.DisplayName != "" {
			return bank.DisplayName
		}
	}

	if entry.InstitutionName != "" {
		return entry.InstitutionName
	}

	return UnknownAccount
}

// editable reports whether the entry's account assignment may be changed.
// Only manual cash accounts are mutation-editable; bank-linked entries,
// recurring-rule entries, and group members never are.
func editable(entry domain.RawEntry, directory *domain.AccountDirectory, linked bool) bool {
	if linked || entry.RecurringID != nil || entry.IsGroup || entry.GroupID != nil {
		return false
	}
	if entry.AssetID == nil {
		return false
	}
	asset, ok := directory.ByAssetID(*entry.AssetID)
	return ok && asset.Subtype == domain.AccountSubtypeCash
}
