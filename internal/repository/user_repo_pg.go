package repository

import (
	"context"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, is_admin, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts the user. A taken username surfaces as ErrConflict.
func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		user.Username, user.Email, user.PasswordHash, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt)
	return storeErr(err, "user")
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return u, nil
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return u, nil
}

func (r *PGUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr(err, "users")
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeErr(err, "users")
		}
		users = append(users, *u)
	}
	return users, storeErr(rows.Err(), "users")
}

func (r *PGUserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return storeErr(err, "user")
	}
	if res.RowsAffected() == 0 {
		return storeErr(pgx.ErrNoRows, "user")
	}
	return nil
}

var _ UserRepository = (*PGUserRepository)(nil)
