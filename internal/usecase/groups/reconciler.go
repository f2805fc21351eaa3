// Package groups detects multi-leg groups in a raw batch, classifies each
// as a transfer or a split/refund event, and reconciles it into one
// synthetic entry's worth of display data.
package groups

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/accounts"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/datetime"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/metadata"
)

// Group is the reconciled form of one multi-leg parent entry
type Group struct {
	Kind      domain.GroupKind
	Magnitude decimal.Decimal
	Legs      []domain.RawEntry
	LegDates  []string
	From      string
	To        string
	Account   accounts.Resolution
}

// FilterLegs drops every entry already represented by its group parent: any
// entry carrying a group id whose own id is not itself a parent id. Parents
// and truly standalone entries always survive. The input is not mutated.
func FilterLegs(batch []domain.RawEntry) []domain.RawEntry {
	parents := make(map[int64]struct{})
	for _, entry := range batch {
		if entry.IsGroup {
			parents[entry.ID] = struct{}{}
		}
	}

	kept := make([]domain.RawEntry, 0, len(batch))
	for _, entry := range batch {
		if entry.GroupID != nil {
			if _, isParent := parents[entry.ID]; !isParent {
				continue
			}
		}
		kept = append(kept, entry)
	}
	return kept
}

// Reconcile classifies a group parent and merges its legs.
// The boolean result is false when the entry is not a reconcilable group
// (not a parent, fewer than two children, or a transfer without exactly one
// debit and one credit leg); such entries pass through as ordinary entries
// using their own fields.
func Reconcile(parent domain.RawEntry, directory *domain.AccountDirectory) (Group, bool) {
	if !parent.IsGroup || len(parent.Children) < 2 {
		return Group{}, false
	}

	if isTransferCategory(parent.CategoryName) {
		return reconcileTransfer(parent, directory)
	}
	return reconcileNonTransfer(parent, directory), true
}

// isTransferCategory matches the transfer category name, singular or plural,
// case-insensitively
func isTransferCategory(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "transfer", "transfers":
		return true
	}
	return false
}

// reconcileTransfer matches the two sides of a transfer group. Money moved
// out of the negative (debit) leg's account into the positive (credit)
// leg's account. Anything other than exactly one leg of each sign is
// ambiguous and demotes the parent to pass-through formatting.
func reconcileTransfer(parent domain.RawEntry, directory *domain.AccountDirectory) (Group, bool) {
	var debits, credits []domain.RawEntry
	for _, leg := range parent.Children {
		if leg.Amount.IsNegative() {
			debits = append(debits, leg)
		} else if leg.Amount.IsPositive() {
			credits = append(credits, leg)
		}
	}

	if len(debits) != 1 || len(credits) != 1 {
		return Group{}, false
	}

	debit, credit := debits[0], credits[0]
	from := accounts.LegLabel(debit, directory)
	to := accounts.LegLabel(credit, directory)

	linked := accounts.GroupBankLinked(parent, parent.Children)
	label := from + " → " + to
	if linked {
		label = accounts.LinkIndicator + label
	}

	return Group{
		Kind:      domain.GroupKindTransfer,
		Magnitude: debit.Amount.Abs(),
		Legs:      parent.Children,
		From:      from,
		To:        to,
		Account:   accounts.Resolution{Label: label, BankLinked: linked},
	}, true
}

// reconcileNonTransfer merges a split-payment or payment-refund group.
// All legs sharing one sign means a split payment; mixed signs mean a
// payment plus (partial) refund.
func reconcileNonTransfer(parent domain.RawEntry, directory *domain.AccountDirectory) Group {
	var negatives, positives int
	for _, leg := range parent.Children {
		if leg.Amount.IsNegative() {
			negatives++
		} else {
			positives++
		}
	}

	kind := domain.GroupKindSplitPayment
	if negatives > 0 && positives > 0 {
		kind = domain.GroupKindPaymentRefund
	}

	return Group{
		Kind:      kind,
		Magnitude: parent.Amount.Abs(),
		Legs:      parent.Children,
		LegDates:  legDates(parent.Children),
		Account:   accounts.ResolveGroup(parent, parent.Children, mainLeg(parent), directory),
	}
}

// mainLeg picks the child that best represents the group's account: the
// first one whose absolute amount exceeds the parent's aggregate amount,
// defaulting to the first child.
func mainLeg(parent domain.RawEntry) domain.RawEntry {
	parentAbs := parent.Amount.Abs()
	for _, leg := range parent.Children {
		if leg.Amount.Abs().GreaterThan(parentAbs) {
			return leg
		}
	}
	return parent.Children[0]
}

// legDates collects the resolved calendar date of every leg, ascending,
// for display on the group row
func legDates(legs []domain.RawEntry) []string {
	dates := make([]string, 0, len(legs))
	for _, leg := range legs {
		dates = append(dates, datetime.ResolveDate(leg, metadata.Parse(leg.ProviderMetadata)))
	}
	sort.Strings(dates)
	return dates
}
