package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Creation writes the
// ticket row and its category detail row in one transaction so readers
// never observe a ticket without its detail.
type TicketRepository interface {
	CreateWithDetail(ctx context.Context, ticket *domain.Ticket, detail domain.TicketDetail) error
	GetHead(ctx context.Context, id string) (*domain.TicketHead, error)
	// UpdateStatus performs a conditional update guarded by the expected
	// current status. It reports false when zero rows matched, i.e. the
	// caller's read was stale.
	UpdateStatus(ctx context.Context, id string, expected, next domain.TicketStatus) (bool, error)
	ListRows(ctx context.Context, scope domain.TicketScope) ([]domain.TicketRow, error)
	StatusCounts(ctx context.Context, scope domain.TicketScope) ([]domain.StatusCount, int64, error)
	CategoryTotals(ctx context.Context, scope domain.TicketScope) ([]domain.CategoryTotal, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) CreateWithDetail(ctx context.Context, ticket *domain.Ticket, detail domain.TicketDetail) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertTicket = `
        INSERT INTO tickets (requester_id, engineer_id, municipality_id, support_type_id, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertTicket,
		ticket.RequesterID,
		ticket.EngineerID,
		ticket.MunicipalityID,
		ticket.SupportType.ID(),
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}

	if err := insertDetail(ctx, tx, ticket.ID, detail); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertDetail(ctx context.Context, tx pgx.Tx, ticketID string, detail domain.TicketDetail) error {
	switch d := detail.(type) {
	case domain.PlatformDetail:
		_, err := tx.Exec(ctx,
			`INSERT INTO platform_supports (ticket_id, description, image_url) VALUES ($1,$2,$3)`,
			ticketID, d.Description, d.ImageURL)
		return err
	case domain.OtherDetail:
		_, err := tx.Exec(ctx,
			`INSERT INTO other_supports (ticket_id, description, image) VALUES ($1,$2,$3)`,
			ticketID, d.Description, d.Image)
		return err
	case domain.CreditNoteDetail:
		_, err := tx.Exec(ctx,
			`INSERT INTO credit_note_supports
                (ticket_id, billing_date, invoice_to_void, copay_invoice_to_void,
                 voided_copay_amount, invoice_to_rebill, attention_center, biller_name, reason)
             VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			ticketID, d.BillingDate, d.InvoiceToVoid, d.CopayInvoiceToVoid,
			d.VoidedCopayAmount, d.InvoiceToRebill, d.AttentionCenter, d.BillerName, d.Reason)
		return err
	default:
		return fmt.Errorf("unsupported detail type %T", detail)
	}
}

func (r *ticketRepository) GetHead(ctx context.Context, id string) (*domain.TicketHead, error) {
	const query = `SELECT id, status, engineer_id FROM tickets WHERE id=$1`
	var head domain.TicketHead
	if err := r.pool.QueryRow(ctx, query, id).Scan(&head.ID, &head.Status, &head.EngineerID); err != nil {
		return nil, err
	}
	return &head, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, expected, next domain.TicketStatus) (bool, error) {
	const query = `
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, next, id, expected)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ticketRepository) ListRows(ctx context.Context, scope domain.TicketScope) ([]domain.TicketRow, error) {
	args := []any{}
	condition := scopeCondition(scope, &args)
	query := fmt.Sprintf(`
        SELECT
            t.id,
            u.name, u.surname, u.email, u.phone,
            st.name AS support_type,
            t.status,
            COALESCE(ps.description, os.description, cns.reason, '') AS description,
            COALESCE(ps.image_url, os.image) AS image_url,
            t.created_at
        FROM tickets t
        JOIN users u ON u.id = t.requester_id
        JOIN support_types st ON st.id = t.support_type_id
        LEFT JOIN platform_supports ps ON ps.ticket_id = t.id
        LEFT JOIN other_supports os ON os.ticket_id = t.id
        LEFT JOIN credit_note_supports cns ON cns.ticket_id = t.id
        WHERE %s
        ORDER BY t.created_at DESC`, condition)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketRow
	for rows.Next() {
		var row domain.TicketRow
		if err := rows.Scan(
			&row.ID,
			&row.RequesterName,
			&row.RequesterSurname,
			&row.RequesterEmail,
			&row.RequesterPhone,
			&row.SupportTypeName,
			&row.Status,
			&row.Description,
			&row.ImageURL,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *ticketRepository) StatusCounts(ctx context.Context, scope domain.TicketScope) ([]domain.StatusCount, int64, error) {
	args := []any{}
	condition := scopeCondition(scope, &args)
	query := fmt.Sprintf(`
        SELECT t.status, COUNT(*) AS total
        FROM tickets t
        WHERE %s
        GROUP BY t.status`, condition)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		counts []domain.StatusCount
		total  int64
	)
	for rows.Next() {
		var count domain.StatusCount
		if err := rows.Scan(&count.Status, &count.Total); err != nil {
			return nil, 0, err
		}
		counts = append(counts, count)
		total += count.Total
	}
	return counts, total, rows.Err()
}

func (r *ticketRepository) CategoryTotals(ctx context.Context, scope domain.TicketScope) ([]domain.CategoryTotal, error) {
	args := []any{}
	condition := scopeCondition(scope, &args)
	// GROUPING SETS adds the rollup row; it surfaces with an empty name
	// and carries the grand total.
	query := fmt.Sprintf(`
        SELECT COALESCE(st.name, '') AS support_type, COUNT(t.id) AS total
        FROM tickets t
        JOIN support_types st ON st.id = t.support_type_id
        WHERE %s
        GROUP BY GROUPING SETS ((st.name), ())
        ORDER BY support_type = '', total DESC`, condition)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CategoryTotal
	for rows.Next() {
		var row domain.CategoryTotal
		if err := rows.Scan(&row.SupportTypeName, &row.Total); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
