package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suroriente/helpdesk-service/internal/domain"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

func strPtr(s string) *string { return &s }

func newTestTicketService(tickets *stubTicketRepo, users *stubUserRepo, munis *stubMunicipalityRepo) *TicketService {
	assigner := NewAssignmentService(AssignmentDependencies{
		UserRepo: users,
		Pick:     func(n int) int { return 0 },
	})
	return NewTicketService(TicketDependencies{
		TicketRepo:       tickets,
		SupportRepo:      &stubSupportRepo{},
		MunicipalityRepo: munis,
		Assigner:         assigner,
		Logger:           zap.NewNop(),
	})
}

func adminActor() domain.Identity {
	return domain.Identity{UserID: "admin-1", Name: "Admin", Role: domain.RoleAdmin}
}

func staffActor() domain.Identity {
	return domain.Identity{UserID: "staff-1", Name: "Staff", Role: domain.RoleHealthStaff, MunicipalityID: strPtr("muni-1")}
}

func engineerActor(id string) domain.Identity {
	return domain.Identity{UserID: id, Role: domain.RoleEngineer, MunicipalityID: strPtr("muni-1")}
}

func TestCreateTicketRequiresMunicipality(t *testing.T) {
	tickets := newStubTicketRepo()
	svc := newTestTicketService(tickets, newStubUserRepo(), newStubMunicipalityRepo())

	// A requester whose account carries no municipality cannot open
	// tickets, no matter what the request body says.
	actor := domain.Identity{UserID: "staff-9", Name: "Staff", Role: domain.RoleHealthStaff}
	_, err := svc.CreateTicket(context.Background(), actor, domain.PlatformDetail{Description: "falla"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Empty(t, tickets.createdWith)
}

func TestCreateTicketUnknownMunicipality(t *testing.T) {
	svc := newTestTicketService(newStubTicketRepo(), newStubUserRepo(), newStubMunicipalityRepo())

	actor := staffActor()
	actor.MunicipalityID = strPtr("muni-x")
	_, err := svc.CreateTicket(context.Background(), actor, domain.PlatformDetail{Description: "falla"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestCreateTicketRejectsInvalidDetail(t *testing.T) {
	munis := newStubMunicipalityRepo()
	munis.byID["muni-1"] = &domain.Municipality{ID: "muni-1", Name: "Pasto"}
	svc := newTestTicketService(newStubTicketRepo(), newStubUserRepo(), munis)

	_, err := svc.CreateTicket(context.Background(), staffActor(), domain.CreditNoteDetail{Reason: "duplicada"})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "missing_fields")
}

func TestCreateTicketNoEngineerAvailable(t *testing.T) {
	munis := newStubMunicipalityRepo()
	munis.byID["muni-1"] = &domain.Municipality{ID: "muni-1", Name: "Pasto"}
	tickets := newStubTicketRepo()
	svc := newTestTicketService(tickets, newStubUserRepo(), munis)

	_, err := svc.CreateTicket(context.Background(), staffActor(), domain.PlatformDetail{Description: "falla"})
	require.Error(t, err)
	assert.Equal(t, "NO_ENGINEER_AVAILABLE", apperrors.ToDomainError(err).Code)
	assert.Empty(t, tickets.createdWith, "nothing should be persisted without an engineer")
}

func TestCreateTicketAssignsAndOpens(t *testing.T) {
	munis := newStubMunicipalityRepo()
	munis.byID["muni-1"] = &domain.Municipality{ID: "muni-1", Name: "Pasto"}
	users := newStubUserRepo()
	users.engineers["muni-1"] = []string{"eng-1", "eng-2"}
	tickets := newStubTicketRepo()
	svc := newTestTicketService(tickets, users, munis)

	ticket, err := svc.CreateTicket(context.Background(), staffActor(), domain.PlatformDetail{Description: "falla"})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.NotNil(t, ticket.EngineerID)
	assert.Equal(t, "eng-1", *ticket.EngineerID)
	assert.Equal(t, "staff-1", ticket.RequesterID)
	assert.Equal(t, "muni-1", ticket.MunicipalityID)
	assert.Equal(t, domain.SupportTypePlatform, ticket.SupportType)
	require.Len(t, tickets.createdWith, 1)
}

func TestCreateTicketUsesRequesterMunicipality(t *testing.T) {
	// Two municipalities exist and both have engineers; the ticket must
	// land in the requester's own one.
	munis := newStubMunicipalityRepo()
	munis.byID["muni-1"] = &domain.Municipality{ID: "muni-1", Name: "Pasto"}
	munis.byID["muni-2"] = &domain.Municipality{ID: "muni-2", Name: "Ipiales"}
	users := newStubUserRepo()
	users.engineers["muni-1"] = []string{"eng-1"}
	users.engineers["muni-2"] = []string{"eng-9"}
	tickets := newStubTicketRepo()
	svc := newTestTicketService(tickets, users, munis)

	actor := staffActor()
	actor.MunicipalityID = strPtr("muni-2")
	ticket, err := svc.CreateTicket(context.Background(), actor, domain.PlatformDetail{Description: "falla"})
	require.NoError(t, err)
	assert.Equal(t, "muni-2", ticket.MunicipalityID)
	require.NotNil(t, ticket.EngineerID)
	assert.Equal(t, "eng-9", *ticket.EngineerID)
}

func TestApplyTransitionTicketNotFound(t *testing.T) {
	svc := newTestTicketService(newStubTicketRepo(), newStubUserRepo(), newStubMunicipalityRepo())

	err := svc.ApplyTransition(context.Background(), adminActor(), "missing", domain.TicketStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestApplyTransitionHealthStaffForbidden(t *testing.T) {
	tickets := newStubTicketRepo()
	tickets.heads["t-1"] = &domain.TicketHead{ID: "t-1", Status: domain.TicketStatusOpen, EngineerID: strPtr("eng-1")}
	svc := newTestTicketService(tickets, newStubUserRepo(), newStubMunicipalityRepo())

	err := svc.ApplyTransition(context.Background(), staffActor(), "t-1", domain.TicketStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	assert.Zero(t, tickets.updateCalls)
}

func TestApplyTransitionEngineerMustOwnTicket(t *testing.T) {
	tickets := newStubTicketRepo()
	tickets.heads["t-1"] = &domain.TicketHead{ID: "t-1", Status: domain.TicketStatusOpen, EngineerID: strPtr("eng-1")}
	svc := newTestTicketService(tickets, newStubUserRepo(), newStubMunicipalityRepo())

	err := svc.ApplyTransition(context.Background(), engineerActor("eng-2"), "t-1", domain.TicketStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestApplyTransitionForbiddenBeforeValidity(t *testing.T) {
	// A resolved ticket cannot move, but an unauthorized caller must see
	// the forbidden error, not the transition one.
	tickets := newStubTicketRepo()
	tickets.heads["t-1"] = &domain.TicketHead{ID: "t-1", Status: domain.TicketStatusResolved, EngineerID: strPtr("eng-1")}
	svc := newTestTicketService(tickets, newStubUserRepo(), newStubMunicipalityRepo())

	err := svc.ApplyTransition(context.Background(), engineerActor("eng-2"), "t-1", domain.TicketStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestApplyTransitionRejectsIllegalMove(t *testing.T) {
	tickets := newStubTicketRepo()
	tickets.heads["t-1"] = &domain.TicketHead{ID: "t-1", Status: domain.TicketStatusOpen, EngineerID: strPtr("eng-1")}
	svc := newTestTicketService(tickets, newStubUserRepo(), newStubMunicipalityRepo())

	err := svc.ApplyTransition(context.Background(), adminActor(), "t-1", domain.TicketStatusResolved)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", apperrors.ToDomainError(err).Code)
	assert.Zero(t, tickets.updateCalls)
}

func TestApplyTransitionStaleReadConflicts(t *testing.T) {
	tickets := newStubTicketRepo()
	tickets.heads["t-1"] = &domain.TicketHead{ID: "t-1", Status: domain.TicketStatusOpen, EngineerID: strPtr("eng-1")}
	tickets.updateOK = false
	svc := newTestTicketService(tickets, newStubUserRepo(), newStubMunicipalityRepo())

	err := svc.ApplyTransition(context.Background(), adminActor(), "t-1", domain.TicketStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", apperrors.ToDomainError(err).Code)
	assert.Equal(t, 1, tickets.updateCalls)
}

func TestApplyTransitionEngineerOwnerSucceeds(t *testing.T) {
	tickets := newStubTicketRepo()
	tickets.heads["t-1"] = &domain.TicketHead{ID: "t-1", Status: domain.TicketStatusOpen, EngineerID: strPtr("eng-1")}
	svc := newTestTicketService(tickets, newStubUserRepo(), newStubMunicipalityRepo())

	err := svc.ApplyTransition(context.Background(), engineerActor("eng-1"), "t-1", domain.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, tickets.lastExpected)
	assert.Equal(t, domain.TicketStatusInProgress, tickets.lastNext)
}

func TestApplyTransitionUnknownStatus(t *testing.T) {
	svc := newTestTicketService(newStubTicketRepo(), newStubUserRepo(), newStubMunicipalityRepo())

	err := svc.ApplyTransition(context.Background(), adminActor(), "t-1", domain.TicketStatus("cerrado"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestListSupportsRejectsUnknownCategory(t *testing.T) {
	svc := newTestTicketService(newStubTicketRepo(), newStubUserRepo(), newStubMunicipalityRepo())

	_, err := svc.ListSupports(context.Background(), adminActor(), domain.SupportType("OTRA"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
