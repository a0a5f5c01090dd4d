package repository

import (
	"context"

	"todoManagement/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, email, passwordHash string, role models.UserRole) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateRole(ctx context.Context, id int64, role models.UserRole) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// TodoRepositoryI defines operations on Todo entities.
type TodoRepositoryI interface {
	Create(ctx context.Context, t *models.Todo) (*models.Todo, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	List(ctx context.Context, limit, offset int) ([]models.Todo, error)
}

// ManagerRepositoryI defines operations on Manager entities.
type ManagerRepositoryI interface {
	Create(ctx context.Context, todoID, userID int64) (*models.Manager, error)
	GetByID(ctx context.Context, id int64) (*models.Manager, error)
	ListByTodoIDWithUser(ctx context.Context, todoID int64) ([]models.ManagerWithUser, error)
	Delete(ctx context.Context, id int64) error
}

// CommentRepositoryI defines operations on Comment entities.
type CommentRepositoryI interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListByTodoIDWithUser(ctx context.Context, todoID int64) ([]models.CommentWithUser, error)
	Delete(ctx context.Context, id int64) error
}

var (
	_ UserRepositoryI    = (*UserRepository)(nil)
	_ TodoRepositoryI    = (*TodoRepository)(nil)
	_ ManagerRepositoryI = (*ManagerRepository)(nil)
	_ CommentRepositoryI = (*CommentRepository)(nil)
)
