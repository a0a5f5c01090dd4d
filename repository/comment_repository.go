package repository

import (
	"context"
	"errors"
	"time"

	"todoManagement/internal/db"
	"todoManagement/models"
)

// CommentRepository handles persistence of comments.
type CommentRepository struct {
	db  *db.DB
	now func() time.Time
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(d *db.DB) *CommentRepository {
	return &CommentRepository{db: d, now: time.Now}
}

// Create inserts a comment and stamps its creation time.
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if c == nil {
		return nil, errors.New("comment is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out := *c
	out.CreatedAt = r.now().UTC()
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`INSERT INTO comments (contents, user_id, todo_id, created_at) VALUES (?,?,?,?) RETURNING id`),
		out.Contents, out.UserID, out.TodoID, out.CreatedAt).Scan(&out.ID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByTodoIDWithUser returns a todo's comments joined with their authors, oldest first.
func (r *CommentRepository) ListByTodoIDWithUser(ctx context.Context, todoID int64) ([]models.CommentWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`SELECT c.id, c.contents, c.user_id, c.todo_id, c.created_at, u.email
        FROM comments c JOIN users u ON u.id = c.user_id
        WHERE c.todo_id = ? ORDER BY c.id`), todoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.CommentWithUser{}
	for rows.Next() {
		var c models.CommentWithUser
		if err := rows.Scan(&c.ID, &c.Contents, &c.UserID, &c.TodoID, &c.CreatedAt, &c.UserEmail); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a comment by id. Deleting a missing id is a no-op.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM comments WHERE id = ?`), id)
	return err
}
