package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

func timeMustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestScopeConditionAdmin(t *testing.T) {
	args := []any{}
	cond := scopeCondition(domain.TicketScope{All: true}, &args)
	assert.Equal(t, "TRUE", cond)
	assert.Empty(t, args)
}

func TestScopeConditionMunicipality(t *testing.T) {
	id := "muni-1"
	args := []any{}
	cond := scopeCondition(domain.TicketScope{MunicipalityID: &id}, &args)
	assert.Equal(t, "t.municipality_id = $1", cond)
	assert.Equal(t, []any{"muni-1"}, args)
}

func TestScopeConditionRequester(t *testing.T) {
	id := "user-1"
	args := []any{"existing"}
	cond := scopeCondition(domain.TicketScope{RequesterID: &id}, &args)
	assert.Equal(t, "t.requester_id = $2", cond)
	assert.Equal(t, []any{"existing", "user-1"}, args)
}

func TestScopeConditionEmptyMatchesNothing(t *testing.T) {
	args := []any{}
	cond := scopeCondition(domain.TicketScope{}, &args)
	assert.Equal(t, "FALSE", cond)
	assert.Empty(t, args)
}

func TestPeriodConditionRangeBinds(t *testing.T) {
	args := []any{"scope-arg"}
	period := domain.ReportPeriod{Kind: domain.PeriodRange}
	assert.Equal(t, "", periodCondition(period, &args))

	start, end := timeMustParse(t, "2026-06-01"), timeMustParse(t, "2026-06-30")
	period = domain.ReportPeriod{Kind: domain.PeriodRange, Start: &start, End: &end}
	cond := periodCondition(period, &args)
	assert.Equal(t, "AND t.created_at BETWEEN $2 AND $3", cond)
	assert.Len(t, args, 3)
}
