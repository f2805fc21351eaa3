package groups

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/accounts"
)

func amount(s string) domain.Amount {
	return domain.NewAmount(decimal.RequireFromString(s))
}

func TestFilterLegs(t *testing.T) {
	groupID := int64(100)

	batch := []domain.RawEntry{
		{ID: 1, Payee: "Standalone"},
		{ID: 100, IsGroup: true, Children: []domain.RawEntry{{ID: 2}, {ID: 3}}},
		{ID: 2, GroupID: &groupID},
		{ID: 3, GroupID: &groupID},
		{ID: 100, GroupID: &groupID, IsGroup: true}, // parent referencing its own group survives
	}

	kept := FilterLegs(batch)

	ids := make([]int64, 0, len(kept))
	for _, e := range kept {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{1, 100, 100}, ids,
		"legs must be dropped, parents and standalones kept")
	assert.Len(t, batch, 5, "input batch must not be mutated")
}

func TestReconcile_Transfer(t *testing.T) {
	parent := domain.RawEntry{
		ID:           1,
		Amount:       amount("-50"),
		CategoryName: "Transfers",
		IsGroup:      true,
		Children: []domain.RawEntry{
			{ID: 2, Amount: amount("-50"), AccountDisplayName: "A"},
			{ID: 3, Amount: amount("50"), AccountDisplayName: "B"},
		},
	}

	g, ok := Reconcile(parent, nil)
	require.True(t, ok)

	assert.Equal(t, domain.GroupKindTransfer, g.Kind)
	assert.True(t, decimal.NewFromInt(50).Equal(g.Magnitude))
	assert.Equal(t, "A", g.From)
	assert.Equal(t, "B", g.To)
	assert.Equal(t, "A → B", g.Account.Label)
	assert.False(t, g.Account.BankLinked)
}

func TestReconcile_TransferCategoryMatching(t *testing.T) {
	children := []domain.RawEntry{
		{ID: 2, Amount: amount("-10"), AccountDisplayName: "A"},
		{ID: 3, Amount: amount("10"), AccountDisplayName: "B"},
	}

	tests := []struct {
		name         string
		categoryName string
		wantTransfer bool
	}{
		{name: "Singular", categoryName: "Transfer", wantTransfer: true},
		{name: "Plural", categoryName: "Transfers", wantTransfer: true},
		{name: "Mixed case", categoryName: "tRaNsFeRs", wantTransfer: true},
		{name: "Other category", categoryName: "Dining", wantTransfer: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := domain.RawEntry{
				ID: 1, Amount: amount("-10"), CategoryName: tt.categoryName,
				IsGroup: true, Children: children,
			}
			g, ok := Reconcile(parent, nil)
			require.True(t, ok)
			if tt.wantTransfer {
				assert.Equal(t, domain.GroupKindTransfer, g.Kind)
			} else {
				assert.NotEqual(t, domain.GroupKindTransfer, g.Kind)
			}
		})
	}
}

func TestReconcile_AmbiguousTransferLegs(t *testing.T) {
	tests := []struct {
		name     string
		children []domain.RawEntry
	}{
		{
			name: "Two debit legs",
			children: []domain.RawEntry{
				{ID: 2, Amount: amount("-10")},
				{ID: 3, Amount: amount("-40")},
				{ID: 4, Amount: amount("50")},
			},
		},
		{
			name: "No credit leg",
			children: []domain.RawEntry{
				{ID: 2, Amount: amount("-10")},
				{ID: 3, Amount: amount("-40")},
			},
		},
		{
			name: "Zero-amount legs only",
			children: []domain.RawEntry{
				{ID: 2, Amount: amount("0")},
				{ID: 3, Amount: amount("0")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := domain.RawEntry{
				ID: 1, Amount: amount("-50"), CategoryName: "Transfers",
				IsGroup: true, Children: tt.children,
			}
			_, ok := Reconcile(parent, nil)
			assert.False(t, ok, "ambiguous transfer must demote to pass-through")
		})
	}
}

func TestReconcile_NotAGroup(t *testing.T) {
	_, ok := Reconcile(domain.RawEntry{ID: 1}, nil)
	assert.False(t, ok)

	_, ok = Reconcile(domain.RawEntry{
		ID: 1, IsGroup: true,
		Children: []domain.RawEntry{{ID: 2}},
	}, nil)
	assert.False(t, ok, "a real group needs at least two children")
}

func TestReconcile_SplitPayment(t *testing.T) {
	parent := domain.RawEntry{
		ID:           1,
		Amount:       amount("-90"),
		CategoryName: "Dining",
		IsGroup:      true,
		Children: []domain.RawEntry{
			{ID: 2, Amount: amount("-60"), Date: "2024-03-05", AccountDisplayName: "Card"},
			{ID: 3, Amount: amount("-30"), Date: "2024-03-03"},
		},
	}

	g, ok := Reconcile(parent, nil)
	require.True(t, ok)

	assert.Equal(t, domain.GroupKindSplitPayment, g.Kind)
	assert.True(t, decimal.NewFromInt(90).Equal(g.Magnitude))
	assert.Equal(t, []string{"2024-03-03", "2024-03-05"}, g.LegDates,
		"leg dates must sort ascending")
	assert.Equal(t, "Card", g.Account.Label,
		"no leg exceeds the parent amount, so the first child is the main leg")
}

func TestReconcile_PaymentRefund(t *testing.T) {
	parent := domain.RawEntry{
		ID:      1,
		Amount:  amount("-70"),
		IsGroup: true,
		Children: []domain.RawEntry{
			{ID: 2, Amount: amount("-100"), Date: "2024-03-01", AccountDisplayName: "Card"},
			{ID: 3, Amount: amount("30"), Date: "2024-03-04", AccountDisplayName: "Refund Account"},
		},
	}

	g, ok := Reconcile(parent, nil)
	require.True(t, ok)

	assert.Equal(t, domain.GroupKindPaymentRefund, g.Kind)
	assert.True(t, decimal.NewFromInt(70).Equal(g.Magnitude))
	assert.Equal(t, "Card", g.Account.Label,
		"the -100 leg exceeds the parent's 70 and becomes the main leg")
}

func TestReconcile_LinkageContagion(t *testing.T) {
	parent := domain.RawEntry{
		ID:      1,
		Amount:  amount("-90"),
		IsGroup: true,
		Children: []domain.RawEntry{
			{ID: 2, Amount: amount("-60"), AccountDisplayName: "Card"},
			{ID: 3, Amount: amount("-30"), InstitutionName: "First National"},
		},
	}

	g, ok := Reconcile(parent, nil)
	require.True(t, ok)

	assert.True(t, g.Account.BankLinked,
		"an institution name on the second leg alone must mark the group")
	assert.Equal(t, accounts.LinkIndicator+"Card", g.Account.Label)
}
