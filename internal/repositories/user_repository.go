package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"crm-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, name, created_at
		 FROM users WHERE username=$1`, username)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, id)
	return err
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, name, created_at
		 FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
