package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestVisibilityScopeAdminSeesAll(t *testing.T) {
	scope := VisibilityScope(Identity{UserID: "u1", Role: RoleAdmin})
	require.True(t, scope.All)
	assert.True(t, scope.Matches(&Ticket{RequesterID: "other", MunicipalityID: "m9"}))
}

func TestVisibilityScopeEngineerMunicipality(t *testing.T) {
	scope := VisibilityScope(Identity{UserID: "e1", Role: RoleEngineer, MunicipalityID: strPtr("m5")})
	require.NotNil(t, scope.MunicipalityID)
	assert.True(t, scope.Matches(&Ticket{MunicipalityID: "m5"}))
	assert.False(t, scope.Matches(&Ticket{MunicipalityID: "m6"}))
}

func TestVisibilityScopeHealthStaffOwnTickets(t *testing.T) {
	scope := VisibilityScope(Identity{UserID: "u7", Role: RoleHealthStaff, MunicipalityID: strPtr("m5")})
	require.NotNil(t, scope.RequesterID)
	assert.True(t, scope.Matches(&Ticket{RequesterID: "u7", MunicipalityID: "m9"}))
	assert.False(t, scope.Matches(&Ticket{RequesterID: "u8", MunicipalityID: "m5"}))
}

func TestVisibilityScopeEngineerWithoutMunicipalityMatchesNothing(t *testing.T) {
	scope := VisibilityScope(Identity{UserID: "e1", Role: RoleEngineer})
	assert.False(t, scope.Matches(&Ticket{MunicipalityID: "m5"}))
	assert.False(t, scope.Matches(&Ticket{}))
}

// Filtering an already-filtered result set must not change it.
func TestVisibilityScopeIdempotent(t *testing.T) {
	tickets := []*Ticket{
		{ID: "1", RequesterID: "u1", MunicipalityID: "m1"},
		{ID: "2", RequesterID: "u2", MunicipalityID: "m1"},
		{ID: "3", RequesterID: "u1", MunicipalityID: "m2"},
	}
	actors := []Identity{
		{UserID: "admin", Role: RoleAdmin},
		{UserID: "e1", Role: RoleEngineer, MunicipalityID: strPtr("m1")},
		{UserID: "u1", Role: RoleHealthStaff},
	}
	for _, actor := range actors {
		scope := VisibilityScope(actor)
		once := []*Ticket{}
		for _, tk := range tickets {
			if scope.Matches(tk) {
				once = append(once, tk)
			}
		}
		twice := []*Ticket{}
		for _, tk := range once {
			if scope.Matches(tk) {
				twice = append(twice, tk)
			}
		}
		assert.Equal(t, once, twice)
	}
}

func TestCreditNoteDetailValidate(t *testing.T) {
	full := CreditNoteDetail{
		BillingDate:        "2025-02-01",
		InvoiceToVoid:      "F-100",
		CopayInvoiceToVoid: "C-100",
		VoidedCopayAmount:  "12000",
		InvoiceToRebill:    "F-101",
		Reason:             "wrong copay value",
	}
	require.NoError(t, full.Validate())

	missing := full
	missing.VoidedCopayAmount = "  "
	err := missing.Validate()
	require.Error(t, err)
	var fieldsErr *MissingFieldsError
	require.ErrorAs(t, err, &fieldsErr)
	assert.Equal(t, []string{"voided_copay_amount"}, fieldsErr.Fields)
}

func TestPlatformAndOtherDetailValidate(t *testing.T) {
	assert.NoError(t, PlatformDetail{Description: "screen frozen"}.Validate())
	assert.Error(t, PlatformDetail{}.Validate())
	assert.NoError(t, OtherDetail{Description: "printer jam"}.Validate())
	assert.Error(t, OtherDetail{Description: "  "}.Validate())
}
