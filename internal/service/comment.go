package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todoManagement/internal/apperr"
	"todoManagement/internal/auth"
	"todoManagement/models"
	"todoManagement/repository"
)

// CommentView is a comment with its author's public profile.
type CommentView struct {
	ID        int64     `json:"id"`
	Contents  string    `json:"contents"`
	User      UserView  `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentService writes and reads comments on todos.
type CommentService struct {
	Todos    repository.TodoRepositoryI
	Comments repository.CommentRepositoryI
}

// SaveComment adds a comment by the caller to an existing todo.
func (s *CommentService) SaveComment(ctx context.Context, id auth.Identity, todoID int64, contents string) (CommentView, error) {
	todo, err := s.Todos.GetByID(ctx, todoID)
	if err != nil {
		return CommentView{}, fmt.Errorf("get todo %d: %w", todoID, err)
	}
	if todo == nil {
		return CommentView{}, apperr.ErrTodoNotFound
	}
	if strings.TrimSpace(contents) == "" {
		return CommentView{}, apperr.New(apperr.KindInvalidRequest, "Comment contents are required.")
	}
	c, err := s.Comments.Create(ctx, &models.Comment{Contents: contents, UserID: id.ID, TodoID: todo.ID})
	if err != nil {
		return CommentView{}, fmt.Errorf("create comment: %w", err)
	}
	return CommentView{
		ID:        c.ID,
		Contents:  c.Contents,
		User:      UserView{ID: id.ID, Email: id.Email},
		CreatedAt: c.CreatedAt,
	}, nil
}

// ListComments returns the comments of a todo, oldest first.
func (s *CommentService) ListComments(ctx context.Context, todoID int64) ([]CommentView, error) {
	rows, err := s.Comments.ListByTodoIDWithUser(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("list comments of todo %d: %w", todoID, err)
	}
	out := make([]CommentView, 0, len(rows))
	for _, c := range rows {
		out = append(out, CommentView{
			ID:        c.ID,
			Contents:  c.Contents,
			User:      UserView{ID: c.UserID, Email: c.UserEmail},
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}

// DeleteComment removes a comment. Deleting a missing comment succeeds.
func (s *CommentService) DeleteComment(ctx context.Context, commentID int64) error {
	if err := s.Comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return nil
}
