package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/suroriente/helpdesk-service/internal/domain"
	"github.com/suroriente/helpdesk-service/internal/repository"
	apperrors "github.com/suroriente/helpdesk-service/pkg/util/errorutil"
)

// CatalogService manages the reference catalogs: municipalities, job
// positions and the fixed support types.
type CatalogService struct {
	municipalities repository.MunicipalityRepository
	positions      repository.PositionRepository
	supportTypes   repository.SupportTypeRepository
}

// CatalogDependencies bundles repositories.
type CatalogDependencies struct {
	MunicipalityRepo repository.MunicipalityRepository
	PositionRepo     repository.PositionRepository
	SupportTypeRepo  repository.SupportTypeRepository
}

// NewCatalogService creates the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		municipalities: deps.MunicipalityRepo,
		positions:      deps.PositionRepo,
		supportTypes:   deps.SupportTypeRepo,
	}
}

func (s *CatalogService) CreateMunicipality(ctx context.Context, name string) (*domain.Municipality, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("municipality name is required", nil)
	}
	municipality := &domain.Municipality{Name: name}
	if err := s.municipalities.Create(ctx, municipality); err != nil {
		return nil, apperrors.MapError(err)
	}
	return municipality, nil
}

func (s *CatalogService) ListMunicipalities(ctx context.Context) ([]domain.Municipality, error) {
	list, err := s.municipalities.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

func (s *CatalogService) UpdateMunicipality(ctx context.Context, id, name string) (*domain.Municipality, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("municipality name is required", nil)
	}
	municipality := &domain.Municipality{ID: id, Name: name}
	if err := s.municipalities.Update(ctx, municipality); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("municipality", map[string]any{"municipality_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return s.GetMunicipality(ctx, id)
}

func (s *CatalogService) GetMunicipality(ctx context.Context, id string) (*domain.Municipality, error) {
	municipality, err := s.municipalities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("municipality", map[string]any{"municipality_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return municipality, nil
}

func (s *CatalogService) DeleteMunicipality(ctx context.Context, id string) error {
	if err := s.municipalities.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("municipality", map[string]any{"municipality_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *CatalogService) CreatePosition(ctx context.Context, name string) (*domain.Position, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("position name is required", nil)
	}
	position := &domain.Position{Name: name}
	if err := s.positions.Create(ctx, position); err != nil {
		return nil, apperrors.MapError(err)
	}
	return position, nil
}

func (s *CatalogService) ListPositions(ctx context.Context) ([]domain.Position, error) {
	list, err := s.positions.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

func (s *CatalogService) UpdatePosition(ctx context.Context, id, name string) (*domain.Position, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("position name is required", nil)
	}
	position := &domain.Position{ID: id, Name: name}
	if err := s.positions.Update(ctx, position); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("position", map[string]any{"position_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	updated, err := s.positions.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return updated, nil
}

func (s *CatalogService) DeletePosition(ctx context.Context, id string) error {
	if err := s.positions.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("position", map[string]any{"position_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *CatalogService) ListSupportTypes(ctx context.Context) ([]domain.SupportTypeInfo, error) {
	list, err := s.supportTypes.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}
