package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/repository"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// Dashboard bundles the aggregate tallies behind the landing view.
type Dashboard struct {
	StatusCounts   []domain.StatusCount   `json:"status_counts"`
	TotalTickets   int64                  `json:"total_tickets"`
	CategoryTotals []domain.CategoryTotal `json:"category_totals"`
}

// ReportService serves reporting queries. Health-facility staff are
// denied outright; the remaining roles see data through their
// visibility scope.
type ReportService struct {
	reports repository.ReportRepository
	tickets repository.TicketRepository
	cache   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// ReportDependencies bundles repositories.
type ReportDependencies struct {
	ReportRepo repository.ReportRepository
	TicketRepo repository.TicketRepository
	// Cache is optional; nil disables the dashboard read-through cache.
	Cache  *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

// NewReportService creates the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports: deps.ReportRepo,
		tickets: deps.TicketRepo,
		cache:   deps.Cache,
		ttl:     deps.TTL,
		logger:  deps.Logger,
	}
}

func requireReportAccess(actor domain.Identity) error {
	if actor.Role == domain.RoleHealthStaff {
		return apperrors.NewForbidden("reports are not available for this role")
	}
	return nil
}

// TicketsByPeriod returns the export rows for the requested window,
// optionally narrowed to one support category.
func (s *ReportService) TicketsByPeriod(ctx context.Context, actor domain.Identity, period domain.ReportPeriod, supportType *domain.SupportType) ([]domain.ReportRow, error) {
	if err := requireReportAccess(actor); err != nil {
		return nil, err
	}
	switch period.Kind {
	case domain.PeriodAll, domain.PeriodWeek, domain.PeriodMonth, domain.PeriodYear:
	case domain.PeriodRange:
		if period.Start == nil || period.End == nil {
			return nil, apperrors.NewValidationError("range reports need both start and end dates", nil)
		}
		if period.End.Before(*period.Start) {
			return nil, apperrors.NewValidationError("report range end precedes start", nil)
		}
	default:
		return nil, apperrors.NewValidationError("unknown report period", map[string]any{"period": string(period.Kind)})
	}
	if supportType != nil && !supportType.Valid() {
		return nil, apperrors.NewValidationError("unknown support type", nil)
	}

	rows, err := s.reports.TicketsByPeriod(ctx, domain.VisibilityScope(actor), period, supportType)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// MonthlySummary returns the per-month status tallies for one year.
func (s *ReportService) MonthlySummary(ctx context.Context, actor domain.Identity, year int) ([]domain.MonthlySummaryRow, error) {
	if err := requireReportAccess(actor); err != nil {
		return nil, err
	}
	if year < 2000 || year > time.Now().Year()+1 {
		return nil, apperrors.NewValidationError("year out of range", map[string]any{"year": year})
	}
	rows, err := s.reports.MonthlySummary(ctx, domain.VisibilityScope(actor), year)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// History returns the month-by-month rollups newest-first.
func (s *ReportService) History(ctx context.Context, actor domain.Identity) ([]domain.HistoryRow, error) {
	if err := requireReportAccess(actor); err != nil {
		return nil, err
	}
	rows, err := s.reports.History(ctx, domain.VisibilityScope(actor))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// GetDashboard returns the aggregate tallies for the actor, served from
// the short-lived cache when possible. Cache failures fall through to
// the database.
func (s *ReportService) GetDashboard(ctx context.Context, actor domain.Identity) (*Dashboard, error) {
	if err := requireReportAccess(actor); err != nil {
		return nil, err
	}
	scope := domain.VisibilityScope(actor)
	key := dashboardCacheKey(scope)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var dash Dashboard
			if err := json.Unmarshal([]byte(cached), &dash); err == nil {
				return &dash, nil
			}
		}
	}

	counts, total, err := s.tickets.StatusCounts(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	categories, err := s.tickets.CategoryTotals(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	dash := &Dashboard{
		StatusCounts:   counts,
		TotalTickets:   total,
		CategoryTotals: categories,
	}

	if s.cache != nil && s.ttl > 0 {
		if raw, err := json.Marshal(dash); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				s.logger.Debug("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return dash, nil
}

func dashboardCacheKey(scope domain.TicketScope) string {
	switch {
	case scope.All:
		return "dashboard:all"
	case scope.MunicipalityID != nil:
		return fmt.Sprintf("dashboard:municipality:%s", *scope.MunicipalityID)
	case scope.RequesterID != nil:
		return fmt.Sprintf("dashboard:requester:%s", *scope.RequesterID)
	}
	return "dashboard:none"
}
