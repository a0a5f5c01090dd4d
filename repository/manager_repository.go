package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"todoManagement/internal/db"
	"todoManagement/models"
)

// ManagerRepository handles persistence of todo manager assignments.
type ManagerRepository struct {
	db *db.DB
}

// NewManagerRepository creates a new ManagerRepository.
func NewManagerRepository(d *db.DB) *ManagerRepository {
	return &ManagerRepository{db: d}
}

// Create links userID as a manager of todoID. Duplicate pairs are not rejected.
func (r *ManagerRepository) Create(ctx context.Context, todoID, userID int64) (*models.Manager, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`INSERT INTO managers (user_id, todo_id) VALUES (?, ?) RETURNING id`), userID, todoID).Scan(&id)
	if err != nil {
		return nil, err
	}
	return &models.Manager{ID: id, UserID: userID, TodoID: todoID}, nil
}

// GetByID fetches a manager row by its ID.
func (r *ManagerRepository) GetByID(ctx context.Context, id int64) (*models.Manager, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m models.Manager
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT id, user_id, todo_id FROM managers WHERE id = ?`), id).Scan(&m.ID, &m.UserID, &m.TodoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// ListByTodoIDWithUser returns the managers of a todo joined with their users, in insertion order.
func (r *ManagerRepository) ListByTodoIDWithUser(ctx context.Context, todoID int64) ([]models.ManagerWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`SELECT m.id, m.user_id, m.todo_id, u.email
        FROM managers m JOIN users u ON u.id = m.user_id
        WHERE m.todo_id = ? ORDER BY m.id`), todoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.ManagerWithUser{}
	for rows.Next() {
		var m models.ManagerWithUser
		if err := rows.Scan(&m.ID, &m.UserID, &m.TodoID, &m.UserEmail); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a manager row. Deleting a missing id is a no-op.
func (r *ManagerRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM managers WHERE id = ?`), id)
	return err
}
