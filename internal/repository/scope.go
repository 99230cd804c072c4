package repository

import (
	"fmt"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

// scopeCondition renders the role-visibility predicate as a SQL clause
// over the tickets alias "t", appending bind arguments as needed. Every
// ticket read query in this package goes through it; an empty scope
// matches nothing.
func scopeCondition(scope domain.TicketScope, args *[]any) string {
	if scope.All {
		return "TRUE"
	}
	if scope.MunicipalityID != nil {
		*args = append(*args, *scope.MunicipalityID)
		return fmt.Sprintf("t.municipality_id = $%d", len(*args))
	}
	if scope.RequesterID != nil {
		*args = append(*args, *scope.RequesterID)
		return fmt.Sprintf("t.requester_id = $%d", len(*args))
	}
	return "FALSE"
}
