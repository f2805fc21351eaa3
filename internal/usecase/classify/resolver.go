// Package classify derives income-vs-expense direction for a single entry.
package classify

import (
	"strings"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/metadata"
)

// ResolveDirection derives the direction of a single entry.
// Logic, in strict priority order:
//  1. A categorized entry with an explicit is_income flag is trusted directly.
//  2. A provider metadata classification pair carrying exactly one of a
//     credit or debit marker maps credit to income, debit to expense.
//  3. Bank-linked entries follow the aggregator's outflow-positive
//     convention, which is inverted relative to a normal ledger:
//     amount < 0 is income, amount >= 0 is expense.
//  4. Everything else follows the standard convention:
//     amount >= 0 is income, amount < 0 is expense.
//
// The display pipeline and the edit-form prefill both go through this exact
// function, so reopening an entry for edit never silently reclassifies it.
func ResolveDirection(entry domain.RawEntry, meta *metadata.Metadata, bankLinked bool) domain.Direction {
	if entry.Categorized() && entry.IsIncome != nil {
		if *entry.IsIncome {
			return domain.DirectionIncome
		}
		return domain.DirectionExpense
	}

	if direction, ok := metadataDirection(meta); ok {
		return direction
	}

	if bankLinked {
		if entry.Amount.IsNegative() {
			return domain.DirectionIncome
		}
		return domain.DirectionExpense
	}

	if entry.Amount.IsNegative() {
		return domain.DirectionExpense
	}
	return domain.DirectionIncome
}

// metadataDirection reads the provider's two-valued classification list.
// The list is usable only when it carries exactly one of the credit or
// debit markers; anything else yields no information.
func metadataDirection(meta *metadata.Metadata) (domain.Direction, bool) {
	if meta == nil || len(meta.Category) != 2 {
		return "", false
	}

	var credit, debit bool
	for _, marker := range meta.Category {
		switch strings.ToLower(strings.TrimSpace(marker)) {
		case "credit":
			credit = true
		case "debit":
			debit = true
		}
	}

	if credit == debit {
		return "", false
	}
	if credit {
		return domain.DirectionIncome, true
	}
	return domain.DirectionExpense, true
}
