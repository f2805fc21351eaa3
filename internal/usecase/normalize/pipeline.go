// Package normalize turns a raw, heterogeneous ledger batch into the
// canonical, chronologically ordered transaction list the presentation
// layer displays.
package normalize

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/accounts"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/classify"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/datetime"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/groups"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/metadata"
)

// Run normalizes a raw batch against the account directory and the local
// time-override map. It is a pure transformation: inputs are never mutated
// and identical inputs yield identical output.
// Logic:
//  1. Drop leg entries already represented by their group parent.
//  2. Reconcile each surviving group parent into one synthetic entry.
//  3. Resolve date, time, direction, and account identity per entry.
//  4. Stable-sort by date descending, timed entries before untimed ones,
//     time descending, id descending.
func Run(batch []domain.RawEntry, directory *domain.AccountDirectory, overrides domain.TimeOverrides) []domain.NormalizedEntry {
	survivors := groups.FilterLegs(batch)

	normalized := make([]domain.NormalizedEntry, 0, len(survivors))
	for _, entry := range survivors {
		normalized = append(normalized, normalizeOne(entry, directory, overrides))
	}

	sortEntries(normalized)
	return normalized
}

func normalizeOne(entry domain.RawEntry, directory *domain.AccountDirectory, overrides domain.TimeOverrides) domain.NormalizedEntry {
	meta := metadata.Parse(entry.ProviderMetadata)

	n := domain.NormalizedEntry{
		ID:           entry.ID,
		Payee:        entry.Payee,
		Notes:        entry.Notes,
		CategoryID:   entry.CategoryID,
		CategoryName: entry.CategoryName,
		RecurringID:  entry.RecurringID,
		Tags:         entry.Tags,
		GroupKind:    domain.GroupKindNone,
	}

	if g, ok := groups.Reconcile(entry, directory); ok {
		n.GroupKind = g.Kind
		n.Magnitude = g.Magnitude
		n.GroupLegs = g.Legs
		n.LegDates = g.LegDates
		n.TransferFrom = g.From
		n.TransferTo = g.To
		n.DisplayAccountName = g.Account.Label
		n.IsBankLinked = g.Account.BankLinked
		n.AccountEditable = false

		if g.Kind == domain.GroupKindTransfer {
			n.Direction = domain.DirectionTransfer
		} else {
			n.Direction = classify.ResolveDirection(entry, meta, n.IsBankLinked)
		}
	} else {
		res := accounts.Resolve(entry, directory)
		n.Magnitude = entry.Amount.Abs()
		n.DisplayAccountName = res.Label
		n.IsBankLinked = res.BankLinked
		n.AccountEditable = res.Editable
		n.Direction = classify.ResolveDirection(entry, meta, res.BankLinked)
	}

	n.CorrectedDate = datetime.ResolveDate(entry, meta)
	if hms, ok := datetime.ResolveTime(entry, meta, overrides, n.IsBankLinked); ok {
		n.CorrectedTime = hms
	}

	return n
}

// sortEntries applies the composite display order. The sort is stable, so
// fully tied entries keep their upstream relative order.
func sortEntries(entries []domain.NormalizedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.CorrectedDate != b.CorrectedDate {
			return a.CorrectedDate > b.CorrectedDate
		}

		if a.HasTime() != b.HasTime() {
			return a.HasTime()
		}
		if a.HasTime() && a.CorrectedTime != b.CorrectedTime {
			return a.CorrectedTime > b.CorrectedTime
		}

		return a.ID > b.ID
	})
}

// EditForm is the pre-populated state of the transaction edit screen
type EditForm struct {
	ID              int64            `json:"id"`
	Date            string           `json:"date"`
	Time            string           `json:"time,omitempty"`
	Direction       domain.Direction `json:"direction"`
	Magnitude       decimal.Decimal  `json:"magnitude"`
	Payee           string           `json:"payee"`
	Notes           string           `json:"notes,omitempty"`
	CategoryID      *int64           `json:"category_id,omitempty"`
	CategoryName    string           `json:"category_name,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	AccountLabel    string           `json:"accountLabel"`
	AccountEditable bool             `json:"accountEditable"`
}

// BuildEditForm pre-populates the edit screen for one raw entry. It runs
// the same resolvers as Run, so reopening an entry for edit can never
// silently reclassify it.
func BuildEditForm(entry domain.RawEntry, directory *domain.AccountDirectory, overrides domain.TimeOverrides) EditForm {
	meta := metadata.Parse(entry.ProviderMetadata)
	res := accounts.Resolve(entry, directory)

	form := EditForm{
		ID:              entry.ID,
		Date:            datetime.ResolveDate(entry, meta),
		Direction:       classify.ResolveDirection(entry, meta, res.BankLinked),
		Magnitude:       entry.Amount.Abs(),
		Payee:           entry.Payee,
		Notes:           entry.Notes,
		CategoryID:      entry.CategoryID,
		CategoryName:    entry.CategoryName,
		Tags:            entry.Tags,
		AccountLabel:    res.Label,
		AccountEditable: res.Editable,
	}

	if hms, ok := datetime.ResolveTime(entry, meta, overrides, res.BankLinked); ok {
		form.Time = hms
	}

	return form
}
