package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/models"
)

// PostgresUserRepository implements UserRepository on PostgreSQL.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, active, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new account with the default user role. A duplicate
// email surfaces as a conflict error.
func (r *PostgresUserRepository) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		name, email, passwordHash,
	)
	u, err := scanUser(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, apperrors.NewConflict("Email already registered")
		}
		return nil, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetStatus returns the active flag without loading the whole row. The auth
// middleware calls this on every authenticated request.
func (r *PostgresUserRepository) GetStatus(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx,
		`SELECT active FROM users WHERE id = $1`, id,
	).Scan(&active)
	if err == sql.ErrNoRows {
		return false, apperrors.ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return active, nil
}

const safeUserColumns = `id, name, email, role, active, created_at`

func (r *PostgresUserRepository) List(ctx context.Context, page, limit int) ([]models.SafeUser, int, error) {
	return r.list(ctx, "", nil, page, limit)
}

// Search matches name or email, case-insensitively.
func (r *PostgresUserRepository) Search(ctx context.Context, term string, page, limit int) ([]models.SafeUser, int, error) {
	return r.list(ctx, `WHERE name ILIKE $3 OR email ILIKE $3`, []interface{}{"%" + term + "%"}, page, limit)
}

func (r *PostgresUserRepository) list(ctx context.Context, where string, extra []interface{}, page, limit int) ([]models.SafeUser, int, error) {
	offset := (page - 1) * limit
	args := append([]interface{}{limit, offset}, extra...)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+safeUserColumns+`
		FROM users `+where+`
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.SafeUser{}
	for rows.Next() {
		var u models.SafeUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countWhere := where
	countArgs := extra
	if countWhere != "" {
		// Re-base the placeholder for the count query.
		countWhere = `WHERE name ILIKE $1 OR email ILIKE $1`
	}
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users `+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *PostgresUserRepository) UpdateStatus(ctx context.Context, id int64, active bool) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *PostgresUserRepository) UpdateRole(ctx context.Context, id int64, role string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}
