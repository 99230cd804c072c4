package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

// ReportRepository serves the period-bounded export rows and the
// monthly/annual rollups. All queries are pre-filtered by the
// visibility scope.
type ReportRepository interface {
	TicketsByPeriod(ctx context.Context, scope domain.TicketScope, period domain.ReportPeriod, supportType *domain.SupportType) ([]domain.ReportRow, error)
	MonthlySummary(ctx context.Context, scope domain.TicketScope, year int) ([]domain.MonthlySummaryRow, error)
	History(ctx context.Context, scope domain.TicketScope) ([]domain.HistoryRow, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func periodCondition(period domain.ReportPeriod, args *[]any) string {
	switch period.Kind {
	case domain.PeriodWeek:
		return "AND t.created_at >= NOW() - INTERVAL '7 days'"
	case domain.PeriodMonth:
		return "AND date_trunc('month', t.created_at) = date_trunc('month', NOW())"
	case domain.PeriodYear:
		return "AND date_trunc('year', t.created_at) = date_trunc('year', NOW())"
	case domain.PeriodRange:
		if period.Start != nil && period.End != nil {
			*args = append(*args, *period.Start)
			start := len(*args)
			*args = append(*args, *period.End)
			end := len(*args)
			return fmt.Sprintf("AND t.created_at BETWEEN $%d AND $%d", start, end)
		}
	}
	return ""
}

func (r *reportRepository) TicketsByPeriod(ctx context.Context, scope domain.TicketScope, period domain.ReportPeriod, supportType *domain.SupportType) ([]domain.ReportRow, error) {
	args := []any{}
	scopeCond := scopeCondition(scope, &args)
	dateCond := periodCondition(period, &args)

	typeCond := ""
	if supportType != nil {
		args = append(args, supportType.ID())
		typeCond = fmt.Sprintf("AND t.support_type_id = $%d", len(args))
	}

	query := fmt.Sprintf(`
        SELECT
            t.id,
            t.created_at,
            t.status,
            st.name AS support_type,

            u_req.name, u_req.surname, u_req.email, u_req.phone,
            u_eng.name, u_eng.surname, u_eng.email,

            m.name AS municipality,

            COALESCE(ps.description, os.description, cns.reason, '') AS description,
            COALESCE(ps.image_url, os.image, 'N/A') AS image,

            cns.billing_date,
            cns.invoice_to_void,
            cns.copay_invoice_to_void,
            cns.voided_copay_amount,
            cns.invoice_to_rebill

        FROM tickets t
        JOIN users u_req ON u_req.id = t.requester_id
        LEFT JOIN users u_eng ON u_eng.id = t.engineer_id
        JOIN support_types st ON st.id = t.support_type_id
        JOIN municipalities m ON m.id = t.municipality_id
        LEFT JOIN platform_supports ps ON ps.ticket_id = t.id
        LEFT JOIN other_supports os ON os.ticket_id = t.id
        LEFT JOIN credit_note_supports cns ON cns.ticket_id = t.id

        WHERE %s
        %s
        %s
        ORDER BY t.created_at DESC`, scopeCond, dateCond, typeCond)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReportRow
	for rows.Next() {
		var row domain.ReportRow
		if err := rows.Scan(
			&row.TicketID,
			&row.CreatedAt,
			&row.Status,
			&row.SupportTypeName,
			&row.RequesterName,
			&row.RequesterSurname,
			&row.RequesterEmail,
			&row.RequesterPhone,
			&row.EngineerName,
			&row.EngineerSurname,
			&row.EngineerEmail,
			&row.Municipality,
			&row.Description,
			&row.Image,
			&row.BillingDate,
			&row.InvoiceToVoid,
			&row.CopayInvoiceToVoid,
			&row.VoidedCopayAmount,
			&row.InvoiceToRebill,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepository) MonthlySummary(ctx context.Context, scope domain.TicketScope, year int) ([]domain.MonthlySummaryRow, error) {
	args := []any{}
	condition := scopeCondition(scope, &args)
	args = append(args, year)
	query := fmt.Sprintf(`
        SELECT
            EXTRACT(MONTH FROM t.created_at)::int AS month,
            TO_CHAR(t.created_at, 'FMMonth') AS month_name,
            COUNT(t.id) AS total,
            COUNT(*) FILTER (WHERE t.status = 'abierto') AS open,
            COUNT(*) FILTER (WHERE t.status = 'en_proceso') AS in_progress,
            COUNT(*) FILTER (WHERE t.status = 'resuelto') AS resolved
        FROM tickets t
        WHERE %s AND EXTRACT(YEAR FROM t.created_at)::int = $%d
        GROUP BY 1, 2
        ORDER BY month ASC`, condition, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MonthlySummaryRow
	for rows.Next() {
		var row domain.MonthlySummaryRow
		if err := rows.Scan(&row.Month, &row.MonthName, &row.Total, &row.Open, &row.InProgress, &row.Resolved); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepository) History(ctx context.Context, scope domain.TicketScope) ([]domain.HistoryRow, error) {
	args := []any{}
	condition := scopeCondition(scope, &args)
	query := fmt.Sprintf(`
        SELECT
            EXTRACT(YEAR FROM t.created_at)::int AS year,
            EXTRACT(MONTH FROM t.created_at)::int AS month,
            TO_CHAR(t.created_at, 'FMMonth') AS month_name,
            COUNT(t.id) AS total,
            COUNT(*) FILTER (WHERE t.status = 'abierto') AS open,
            COUNT(*) FILTER (WHERE t.status = 'en_proceso') AS in_progress,
            COUNT(*) FILTER (WHERE t.status = 'resuelto') AS resolved,
            COUNT(*) FILTER (WHERE st.name = 'PLATFORM') AS platform,
            COUNT(*) FILTER (WHERE st.name = 'CREDIT_NOTE') AS credit_notes,
            COUNT(*) FILTER (WHERE st.name = 'OTHER') AS other
        FROM tickets t
        JOIN support_types st ON st.id = t.support_type_id
        WHERE %s
        GROUP BY 1, 2, 3
        ORDER BY year DESC, month DESC`, condition)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HistoryRow
	for rows.Next() {
		var row domain.HistoryRow
		if err := rows.Scan(
			&row.Year, &row.Month, &row.MonthName,
			&row.Total, &row.Open, &row.InProgress, &row.Resolved,
			&row.Platform, &row.CreditNotes, &row.Other,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
