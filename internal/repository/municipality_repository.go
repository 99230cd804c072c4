package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

// MunicipalityRepository defines catalog access for municipalities.
type MunicipalityRepository interface {
	Create(ctx context.Context, municipality *domain.Municipality) error
	GetByID(ctx context.Context, id string) (*domain.Municipality, error)
	List(ctx context.Context) ([]domain.Municipality, error)
	Update(ctx context.Context, municipality *domain.Municipality) error
	Delete(ctx context.Context, id string) error
}

type municipalityRepository struct {
	pool *pgxpool.Pool
}

// NewMunicipalityRepository instantiates repository.
func NewMunicipalityRepository(pool *pgxpool.Pool) MunicipalityRepository {
	return &municipalityRepository{pool: pool}
}

func (r *municipalityRepository) Create(ctx context.Context, municipality *domain.Municipality) error {
	const query = `
        INSERT INTO municipalities (name)
        VALUES ($1)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, municipality.Name).
		Scan(&municipality.ID, &municipality.CreatedAt)
}

func (r *municipalityRepository) GetByID(ctx context.Context, id string) (*domain.Municipality, error) {
	const query = `SELECT id, name, created_at FROM municipalities WHERE id=$1`
	var m domain.Municipality
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *municipalityRepository) List(ctx context.Context) ([]domain.Municipality, error) {
	const query = `SELECT id, name, created_at FROM municipalities ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Municipality
	for rows.Next() {
		var m domain.Municipality
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *municipalityRepository) Update(ctx context.Context, municipality *domain.Municipality) error {
	const query = `UPDATE municipalities SET name=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, municipality.Name, municipality.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *municipalityRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM municipalities WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
