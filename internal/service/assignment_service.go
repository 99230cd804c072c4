package service

import (
	"context"
	"math/rand"

	"github.com/suroriente/helpdesk-service/internal/repository"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// AssignmentService picks the engineer for a new ticket. Selection is
// uniform over the active engineers of the ticket's municipality, with
// no affinity or load balancing.
type AssignmentService struct {
	users repository.UserRepository
	pick  func(n int) int
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	UserRepo repository.UserRepository
	// Pick overrides the candidate selector; tests inject a
	// deterministic one. Nil means uniform random.
	Pick func(n int) int
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	pick := deps.Pick
	if pick == nil {
		pick = rand.Intn
	}
	return &AssignmentService{
		users: deps.UserRepo,
		pick:  pick,
	}
}

// PickEngineer returns the id of an active engineer in the given
// municipality, chosen uniformly at random.
func (s *AssignmentService) PickEngineer(ctx context.Context, municipalityID string) (string, error) {
	candidates, err := s.users.FindActiveEngineersByMunicipality(ctx, municipalityID)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	if len(candidates) == 0 {
		return "", apperrors.NewNoEngineerAvailable(municipalityID)
	}
	return candidates[s.pick(len(candidates))], nil
}
