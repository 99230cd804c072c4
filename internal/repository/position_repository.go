package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

// PositionRepository defines catalog access for job positions.
type PositionRepository interface {
	Create(ctx context.Context, position *domain.Position) error
	GetByID(ctx context.Context, id string) (*domain.Position, error)
	List(ctx context.Context) ([]domain.Position, error)
	Update(ctx context.Context, position *domain.Position) error
	Delete(ctx context.Context, id string) error
}

type positionRepository struct {
	pool *pgxpool.Pool
}

// NewPositionRepository instantiates repository.
func NewPositionRepository(pool *pgxpool.Pool) PositionRepository {
	return &positionRepository{pool: pool}
}

func (r *positionRepository) Create(ctx context.Context, position *domain.Position) error {
	const query = `
        INSERT INTO positions (name)
        VALUES ($1)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, position.Name).
		Scan(&position.ID, &position.CreatedAt)
}

func (r *positionRepository) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	const query = `SELECT id, name, created_at FROM positions WHERE id=$1`
	var p domain.Position
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *positionRepository) List(ctx context.Context) ([]domain.Position, error) {
	const query = `SELECT id, name, created_at FROM positions ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Position
	for rows.Next() {
		var p domain.Position
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *positionRepository) Update(ctx context.Context, position *domain.Position) error {
	const query = `UPDATE positions SET name=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, position.Name, position.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *positionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM positions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
