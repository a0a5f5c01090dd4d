package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"todoManagement/internal/db"
	"todoManagement/models"
)

type UserRepository struct {
	db *db.DB
}

func NewUserRepository(d *db.DB) *UserRepository {
	return &UserRepository{db: d}
}

// Create inserts a new user and returns it with its generated ID.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, role models.UserRole) (*models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, models.ErrInvalidRole
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?) RETURNING id`),
		email, passwordHash, string(role)).Scan(&id)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Email: email, PasswordHash: passwordHash, Role: role}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, role FROM users WHERE id = ?`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, role FROM users WHERE email = ?`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	var role string
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = models.UserRole(role)
	return &u, nil
}

// ExistsByEmail reports whether an account already uses email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT COUNT(1) FROM users WHERE email = ?`), email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	return err
}

// UpdateRole sets the role for the given user id.
// Intended for administrative flows.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.UserRole) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET role = ? WHERE id = ?`), string(role), id)
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET password_hash = ? WHERE id = ?`), passwordHash, id)
	return err
}
