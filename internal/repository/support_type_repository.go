package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

// SupportTypeRepository lists the seeded support categories.
type SupportTypeRepository interface {
	List(ctx context.Context) ([]domain.SupportTypeInfo, error)
}

type supportTypeRepository struct {
	pool *pgxpool.Pool
}

// NewSupportTypeRepository instantiates repository.
func NewSupportTypeRepository(pool *pgxpool.Pool) SupportTypeRepository {
	return &supportTypeRepository{pool: pool}
}

func (r *supportTypeRepository) List(ctx context.Context) ([]domain.SupportTypeInfo, error) {
	const query = `SELECT id, name FROM support_types ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SupportTypeInfo
	for rows.Next() {
		var info domain.SupportTypeInfo
		if err := rows.Scan(&info.ID, &info.Name); err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, rows.Err()
}
