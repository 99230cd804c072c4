package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardChain(t *testing.T) {
	assert.True(t, CanTransition(TicketStatusOpen, TicketStatusInProgress))
	assert.True(t, CanTransition(TicketStatusInProgress, TicketStatusResolved))
}

func TestCanTransitionRejectsSkipsAndBackwards(t *testing.T) {
	cases := []struct {
		name    string
		current TicketStatus
		next    TicketStatus
	}{
		{"skip in_progress", TicketStatusOpen, TicketStatusResolved},
		{"backwards from in_progress", TicketStatusInProgress, TicketStatusOpen},
		{"backwards from resolved", TicketStatusResolved, TicketStatusInProgress},
		{"resolved is terminal", TicketStatusResolved, TicketStatusResolved},
		{"self loop", TicketStatusOpen, TicketStatusOpen},
		{"unknown target", TicketStatusOpen, TicketStatus("cerrado")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, CanTransition(tc.current, tc.next))
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(TicketStatusOpen))
	assert.True(t, ValidStatus(TicketStatusInProgress))
	assert.True(t, ValidStatus(TicketStatusResolved))
	assert.False(t, ValidStatus(TicketStatus("cerrado")))
	assert.False(t, ValidStatus(TicketStatus("")))
}

func TestRoleOrdinalRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleEngineer, RoleHealthStaff} {
		got, ok := RoleFromOrdinal(role.Ordinal())
		assert.True(t, ok)
		assert.Equal(t, role, got)
	}
	_, ok := RoleFromOrdinal(9)
	assert.False(t, ok)
}

func TestSupportTypeIDRoundTrip(t *testing.T) {
	assert.Equal(t, 1, SupportTypeCreditNote.ID())
	assert.Equal(t, 2, SupportTypePlatform.ID())
	assert.Equal(t, 3, SupportTypeOther.ID())
	for _, st := range []SupportType{SupportTypeCreditNote, SupportTypePlatform, SupportTypeOther} {
		got, ok := SupportTypeFromID(st.ID())
		assert.True(t, ok)
		assert.Equal(t, st, got)
	}
}
