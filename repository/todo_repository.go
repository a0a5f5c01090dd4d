package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todoManagement/internal/db"
	"todoManagement/models"
)

// TodoRepository handles persistence of Todo entities.
type TodoRepository struct {
	db  *db.DB
	now func() time.Time
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(d *db.DB) *TodoRepository {
	return &TodoRepository{db: d, now: time.Now}
}

const todoColumns = `id, title, contents, weather, user_id, created_at, modified_at`

// Create inserts a new todo. The owner must be set; created/modified timestamps are assigned here.
func (r *TodoRepository) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	if t == nil {
		return nil, errors.New("todo is nil")
	}
	if t.OwnerID == nil {
		return nil, errors.New("todo owner is required")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	now := r.now().UTC()
	var id int64
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`INSERT INTO todos (title, contents, weather, user_id, created_at, modified_at) VALUES (?,?,?,?,?,?) RETURNING id`),
		t.Title, t.Contents, t.Weather, *t.OwnerID, now, now).Scan(&id)
	if err != nil {
		return nil, err
	}
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("created todo not found: id=%d", id)
	}
	return created, nil
}

// GetByID fetches a todo by its ID.
func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	t, err := scanTodo(r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT `+todoColumns+` FROM todos WHERE id = ?`), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// List returns todos most recently modified first.
func (r *TodoRepository) List(ctx context.Context, limit, offset int) ([]models.Todo, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`SELECT `+todoColumns+` FROM todos ORDER BY modified_at DESC, id DESC LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(s rowScanner) (*models.Todo, error) {
	var t models.Todo
	var owner sql.NullInt64
	if err := s.Scan(&t.ID, &t.Title, &t.Contents, &t.Weather, &owner, &t.CreatedAt, &t.ModifiedAt); err != nil {
		return nil, err
	}
	if owner.Valid {
		v := owner.Int64
		t.OwnerID = &v
	}
	return &t, nil
}
