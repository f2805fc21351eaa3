package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
)

func testDirectory() *domain.AccountDirectory {
	bankID := int64(88)
	return domain.NewAccountDirectory([]domain.AccountDirectoryEntry{
		{ID: 1, DisplayName: "Wallet", Subtype: domain.AccountSubtypeCash},
		{ID: 2, DisplayName: "Savings", Subtype: "savings"},
		{ID: 3, Subtype: domain.AccountSubtypeCash}, // no display name
		{ID: 501, DisplayName: "Everyday Checking", BankAccountID: &bankID, InstitutionName: "First National"},
	})
}

func TestResolve_LabelChain(t *testing.T) {
	assetWallet := int64(1)
	assetUnnamed := int64(3)
	assetMissing := int64(99)
	bankKnown := int64(88)
	bankUnknown := int64(77)

	tests := []struct {
		name  string
		entry domain.RawEntry
		want  string
	}{
		{
			name:  "Account display name on the entry wins",
			entry: domain.RawEntry{AccountDisplayName: "My Card", AssetID: &assetWallet},
			want:  "My Card",
		},
		{
			name:  "Asset display name from the directory",
			entry: domain.RawEntry{AssetID: &assetWallet},
			want:  "Wallet",
		},
		{
			name:  "Unnamed asset falls through the chain",
			entry: domain.RawEntry{AssetID: &assetUnnamed},
			want:  UnknownAccount,
		},
		{
			name:  "Bank account display name on the entry",
			entry: domain.RawEntry{BankAccountName: "Checking ...1234"},
			want:  LinkIndicator + "Checking ...1234",
		},
		{
			name:  "Bank account display name from the directory",
			entry: domain.RawEntry{BankAccountID: &bankKnown},
			want:  LinkIndicator + "Everyday Checking",
		},
		{
			name:  "Institution name as the raw fallback",
			entry: domain.RawEntry{BankAccountID: &bankUnknown, InstitutionName: "First National"},
			want:  LinkIndicator + "First National",
		},
		{
			name:  "Missing directory entry falls back to the unknown literal",
			entry: domain.RawEntry{AssetID: &assetMissing},
			want:  UnknownAccount,
		},
		{
			name:  "Nothing at all resolves to the unknown literal",
			entry: domain.RawEntry{},
			want:  UnknownAccount,
		},
	}

	directory := testDirectory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.entry, directory).Label)
		})
	}
}

func TestIsBankLinked(t *testing.T) {
	bankID := int64(88)

	tests := []struct {
		name  string
		entry domain.RawEntry
		want  bool
	}{
		{name: "Bank account id", entry: domain.RawEntry{BankAccountID: &bankID}, want: true},
		{name: "Bank display name", entry: domain.RawEntry{BankAccountName: "Checking"}, want: true},
		{name: "Institution name", entry: domain.RawEntry{InstitutionName: "First National"}, want: true},
		{name: "Non-empty metadata, even malformed", entry: domain.RawEntry{ProviderMetadata: "{broken"}, want: true},
		{name: "Manual entry", entry: domain.RawEntry{Payee: "Bakery"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBankLinked(tt.entry))
		})
	}
}

func TestGroupBankLinked_Contagion(t *testing.T) {
	parent := domain.RawEntry{ID: 1}
	legs := []domain.RawEntry{
		{ID: 2},
		{ID: 3, InstitutionName: "First National"},
	}

	assert.True(t, GroupBankLinked(parent, legs),
		"one linked leg must mark the whole group")
	assert.False(t, GroupBankLinked(parent, legs[:1]))
}

func TestResolve_Editability(t *testing.T) {
	cashAsset := int64(1)
	savingsAsset := int64(2)
	recurringID := int64(9)
	groupID := int64(4)

	tests := []struct {
		name  string
		entry domain.RawEntry
		want  bool
	}{
		{
			name:  "Manual cash account is editable",
			entry: domain.RawEntry{AssetID: &cashAsset},
			want:  true,
		},
		{
			name:  "Non-cash subtype is not editable",
			entry: domain.RawEntry{AssetID: &savingsAsset},
			want:  false,
		},
		{
			name:  "Bank-linked cash account is not editable",
			entry: domain.RawEntry{AssetID: &cashAsset, InstitutionName: "First National"},
			want:  false,
		},
		{
			name:  "Recurring-rule entry is never editable",
			entry: domain.RawEntry{AssetID: &cashAsset, RecurringID: &recurringID},
			want:  false,
		},
		{
			name:  "Group member is never editable",
			entry: domain.RawEntry{AssetID: &cashAsset, GroupID: &groupID},
			want:  false,
		},
		{
			name:  "Group parent is never editable",
			entry: domain.RawEntry{AssetID: &cashAsset, IsGroup: true},
			want:  false,
		},
		{
			name:  "No asset reference is not editable",
			entry: domain.RawEntry{},
			want:  false,
		},
	}

	directory := testDirectory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.entry, directory).Editable)
		})
	}
}

func TestResolveGroup(t *testing.T) {
	directory := testDirectory()
	parent := domain.RawEntry{ID: 1}
	legs := []domain.RawEntry{
		{ID: 2, AccountDisplayName: "Joint Account"},
		{ID: 3, InstitutionName: "First National"},
	}

	res := ResolveGroup(parent, legs, legs[0], directory)
	assert.Equal(t, LinkIndicator+"Joint Account", res.Label)
	assert.True(t, res.BankLinked)
	assert.False(t, res.Editable, "group pseudo-accounts are never editable")
}
