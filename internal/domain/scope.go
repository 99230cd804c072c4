package domain

// TicketScope is the role-scoped visibility predicate applied to every
// ticket read path before any additional filter. Exactly one of the
// three shapes is produced per actor:
//
//	ADMIN        -> unrestricted
//	ENGINEER     -> municipality match
//	HEALTH_STAFF -> requester match
type TicketScope struct {
	All            bool
	MunicipalityID *string
	RequesterID    *string
}

// VisibilityScope derives the ticket predicate for an authenticated
// actor. Unknown roles and engineers without a municipality get an
// empty scope that matches nothing.
func VisibilityScope(actor Identity) TicketScope {
	switch actor.Role {
	case RoleAdmin:
		return TicketScope{All: true}
	case RoleEngineer:
		if actor.MunicipalityID == nil {
			return TicketScope{}
		}
		id := *actor.MunicipalityID
		return TicketScope{MunicipalityID: &id}
	case RoleHealthStaff:
		id := actor.UserID
		return TicketScope{RequesterID: &id}
	}
	return TicketScope{}
}

// Matches evaluates the predicate against a ticket. Repositories encode
// the same predicate in SQL; this is the reference semantics used by
// in-memory checks and tests.
func (s TicketScope) Matches(t *Ticket) bool {
	if s.All {
		return true
	}
	if s.MunicipalityID != nil {
		return t.MunicipalityID == *s.MunicipalityID
	}
	if s.RequesterID != nil {
		return t.RequesterID == *s.RequesterID
	}
	return false
}
