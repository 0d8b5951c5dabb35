package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keshster98/cashfly-backend/internal/domain"
)

const userColumns = `id, name, email, password, role`

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		return nil, pgError(err, "get user "+id, nil)
	}
	return u, nil
}

func (r *PGUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
	return findOne(u, err, "find user by email")
}

func (r *PGUserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Email, u.Password, u.Role)
	return pgError(err, "insert user", domain.ErrDuplicateRecord)
}

var _ UserRepository = (*PGUserRepository)(nil)
