package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/repository"
)

// In-memory repository stubs backing the service tests.

type stubUserRepo struct {
	usersByID    map[string]*domain.User
	usersByEmail map[string]*domain.User
	engineers    map[string][]string
	created      []*domain.User
	updateCalls  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		usersByID:    map[string]*domain.User{},
		usersByEmail: map[string]*domain.User{},
		engineers:    map[string][]string{},
	}
}

func (s *stubUserRepo) add(user *domain.User) {
	s.usersByID[user.ID] = user
	s.usersByEmail[user.Email] = user
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = "user-created"
	}
	s.created = append(s.created, user)
	s.add(user)
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := s.usersByID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range s.usersByID {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserRepo) UpdateByID(ctx context.Context, id string, update repository.UserUpdate) error {
	if _, ok := s.usersByID[id]; !ok {
		return pgx.ErrNoRows
	}
	s.updateCalls++
	return nil
}

func (s *stubUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	user, ok := s.usersByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Active = active
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.usersByID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.usersByID, id)
	return nil
}

func (s *stubUserRepo) FindActiveEngineersByMunicipality(ctx context.Context, municipalityID string) ([]string, error) {
	return s.engineers[municipalityID], nil
}

type stubTicketRepo struct {
	heads        map[string]*domain.TicketHead
	createErr    error
	createdWith  []domain.TicketDetail
	updateOK     bool
	updateCalls  int
	lastExpected domain.TicketStatus
	lastNext     domain.TicketStatus
	rows         []domain.TicketRow
	counts       []domain.StatusCount
	total        int64
	categories   []domain.CategoryTotal
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{heads: map[string]*domain.TicketHead{}, updateOK: true}
}

func (s *stubTicketRepo) CreateWithDetail(ctx context.Context, ticket *domain.Ticket, detail domain.TicketDetail) error {
	if s.createErr != nil {
		return s.createErr
	}
	ticket.ID = "ticket-created"
	s.createdWith = append(s.createdWith, detail)
	return nil
}

func (s *stubTicketRepo) GetHead(ctx context.Context, id string) (*domain.TicketHead, error) {
	head, ok := s.heads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return head, nil
}

func (s *stubTicketRepo) UpdateStatus(ctx context.Context, id string, expected, next domain.TicketStatus) (bool, error) {
	s.updateCalls++
	s.lastExpected = expected
	s.lastNext = next
	return s.updateOK, nil
}

func (s *stubTicketRepo) ListRows(ctx context.Context, scope domain.TicketScope) ([]domain.TicketRow, error) {
	return s.rows, nil
}

func (s *stubTicketRepo) StatusCounts(ctx context.Context, scope domain.TicketScope) ([]domain.StatusCount, int64, error) {
	return s.counts, s.total, nil
}

func (s *stubTicketRepo) CategoryTotals(ctx context.Context, scope domain.TicketScope) ([]domain.CategoryTotal, error) {
	return s.categories, nil
}

type stubSupportRepo struct {
	rows []domain.SupportRow
}

func (s *stubSupportRepo) ListByCategory(ctx context.Context, scope domain.TicketScope, supportType domain.SupportType) ([]domain.SupportRow, error) {
	return s.rows, nil
}

type stubMunicipalityRepo struct {
	byID map[string]*domain.Municipality
}

func newStubMunicipalityRepo() *stubMunicipalityRepo {
	return &stubMunicipalityRepo{byID: map[string]*domain.Municipality{}}
}

func (s *stubMunicipalityRepo) Create(ctx context.Context, m *domain.Municipality) error {
	if m.ID == "" {
		m.ID = "muni-created"
	}
	s.byID[m.ID] = m
	return nil
}

func (s *stubMunicipalityRepo) GetByID(ctx context.Context, id string) (*domain.Municipality, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return m, nil
}

func (s *stubMunicipalityRepo) List(ctx context.Context) ([]domain.Municipality, error) {
	var out []domain.Municipality
	for _, m := range s.byID {
		out = append(out, *m)
	}
	return out, nil
}

func (s *stubMunicipalityRepo) Update(ctx context.Context, m *domain.Municipality) error {
	if _, ok := s.byID[m.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.byID[m.ID] = m
	return nil
}

func (s *stubMunicipalityRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.byID, id)
	return nil
}

type stubReportRepo struct {
	rows    []domain.ReportRow
	monthly []domain.MonthlySummaryRow
	history []domain.HistoryRow
}

func (s *stubReportRepo) TicketsByPeriod(ctx context.Context, scope domain.TicketScope, period domain.ReportPeriod, supportType *domain.SupportType) ([]domain.ReportRow, error) {
	return s.rows, nil
}

func (s *stubReportRepo) MonthlySummary(ctx context.Context, scope domain.TicketScope, year int) ([]domain.MonthlySummaryRow, error) {
	return s.monthly, nil
}

func (s *stubReportRepo) History(ctx context.Context, scope domain.TicketScope) ([]domain.HistoryRow, error) {
	return s.history, nil
}
