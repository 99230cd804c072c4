package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

// SupportRepository serves category-scoped listings joined with the
// assigned engineer. Details are written by TicketRepository inside the
// creation transaction; rows here are read-only.
type SupportRepository interface {
	ListByCategory(ctx context.Context, scope domain.TicketScope, supportType domain.SupportType) ([]domain.SupportRow, error)
}

type supportRepository struct {
	pool *pgxpool.Pool
}

// NewSupportRepository instantiates repository.
func NewSupportRepository(pool *pgxpool.Pool) SupportRepository {
	return &supportRepository{pool: pool}
}

func (r *supportRepository) ListByCategory(ctx context.Context, scope domain.TicketScope, supportType domain.SupportType) ([]domain.SupportRow, error) {
	var selectDetail, joinDetail string
	switch supportType {
	case domain.SupportTypePlatform:
		selectDetail = `ps.description, ps.image_url, NULL, NULL, NULL`
		joinDetail = `JOIN platform_supports ps ON ps.ticket_id = t.id`
	case domain.SupportTypeOther:
		selectDetail = `os.description, os.image, NULL, NULL, NULL`
		joinDetail = `JOIN other_supports os ON os.ticket_id = t.id`
	case domain.SupportTypeCreditNote:
		selectDetail = `cns.reason, NULL, cns.attention_center, cns.billing_date, cns.voided_copay_amount`
		joinDetail = `JOIN credit_note_supports cns ON cns.ticket_id = t.id`
	default:
		return nil, fmt.Errorf("unsupported category %q", supportType)
	}

	args := []any{}
	condition := scopeCondition(scope, &args)
	args = append(args, supportType.ID())
	query := fmt.Sprintf(`
        SELECT
            t.id, t.status, t.created_at,
            %s,
            COALESCE(u.name, ''), COALESCE(u.surname, '')
        FROM tickets t
        %s
        LEFT JOIN users u ON u.id = t.engineer_id
        WHERE %s AND t.support_type_id = $%d
        ORDER BY t.created_at DESC`, selectDetail, joinDetail, condition, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SupportRow
	for rows.Next() {
		var row domain.SupportRow
		if err := rows.Scan(
			&row.TicketID,
			&row.Status,
			&row.CreatedAt,
			&row.Description,
			&row.ImageURL,
			&row.AttentionCenter,
			&row.BillingDate,
			&row.VoidedAmount,
			&row.EngineerName,
			&row.EngineerSurname,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
