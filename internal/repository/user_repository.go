package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suroriente/helpdesk-service/internal/domain"
)

// UserUpdate carries the mutable fields of an admin or self update.
// Nil pointers are left untouched.
type UserUpdate struct {
	Name           *string
	Surname        *string
	Email          *string
	Phone          *string
	Role           *domain.Role
	PositionID     *string
	MunicipalityID *string
	PasswordHash   *string
}

// UserRepository defines directory persistence access.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateByID(ctx context.Context, id string, update UserUpdate) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	FindActiveEngineersByMunicipality(ctx context.Context, municipalityID string) ([]string, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userSelectColumns = `
        u.id, u.name, u.surname, u.email, u.phone, u.role_id,
        u.position_id, u.municipality_id, u.active, u.password_hash,
        u.created_at, u.updated_at,
        COALESCE(p.name, '') AS position,
        COALESCE(m.name, '') AS municipality`

const userSelectJoins = `
        FROM users u
        LEFT JOIN positions p ON p.id = u.position_id
        LEFT JOIN municipalities m ON m.id = u.municipality_id`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, surname, email, phone, role_id, position_id, municipality_id, active, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Surname,
		user.Email,
		user.Phone,
		user.Role.Ordinal(),
		user.PositionID,
		user.MunicipalityID,
		user.Active,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT` + userSelectColumns + userSelectJoins + ` WHERE u.id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT` + userSelectColumns + userSelectJoins + ` WHERE u.email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	return scanUser(row)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT` + userSelectColumns + userSelectJoins + ` ORDER BY u.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, update UserUpdate) error {
	sets := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.Surname != nil {
		appendSet("surname", *update.Surname)
	}
	if update.Email != nil {
		appendSet("email", *update.Email)
	}
	if update.Phone != nil {
		appendSet("phone", *update.Phone)
	}
	if update.Role != nil {
		appendSet("role_id", update.Role.Ordinal())
	}
	if update.PositionID != nil {
		appendSet("position_id", *update.PositionID)
	}
	if update.MunicipalityID != nil {
		appendSet("municipality_id", *update.MunicipalityID)
	}
	if update.PasswordHash != nil {
		appendSet("password_hash", *update.PasswordHash)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s, updated_at=NOW() WHERE id=$%d",
		strings.Join(sets, ", "), len(args))
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE users SET active=$1, updated_at=NOW() WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) FindActiveEngineersByMunicipality(ctx context.Context, municipalityID string) ([]string, error) {
	const query = `
        SELECT u.id
        FROM users u
        WHERE u.role_id = $1 AND u.municipality_id = $2 AND u.active`
	rows, err := r.pool.Query(ctx, query, domain.RoleEngineer.Ordinal(), municipalityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user   domain.User
		roleID int
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Surname,
		&user.Email,
		&user.Phone,
		&roleID,
		&user.PositionID,
		&user.MunicipalityID,
		&user.Active,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Position,
		&user.Municipality,
	); err != nil {
		return nil, err
	}
	role, ok := domain.RoleFromOrdinal(roleID)
	if !ok {
		return nil, fmt.Errorf("unknown role id %d for user %s", roleID, user.ID)
	}
	user.Role = role
	return &user, nil
}
