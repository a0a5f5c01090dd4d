package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"todoManagement/internal/apperr"
	"todoManagement/internal/auth"
	"todoManagement/internal/events"
	"todoManagement/models"
	"todoManagement/repository"
)

// ManagerView is a manager projected with its user's public profile.
type ManagerView struct {
	ID   int64    `json:"id"`
	User UserView `json:"user"`
}

// ManagerSaveView is returned after a successful assignment.
type ManagerSaveView = ManagerView

// ManagerService assigns, lists and removes the managers of a todo.
// Each operation is a chain of independent reads ending in a single write.
type ManagerService struct {
	Users    repository.UserRepositoryI
	Todos    repository.TodoRepositoryI
	Managers repository.ManagerRepositoryI
	Events   events.Publisher
	Log      *log.Logger
}

func (s *ManagerService) getTodo(ctx context.Context, todoID int64) (*models.Todo, error) {
	todo, err := s.Todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", todoID, err)
	}
	if todo == nil {
		return nil, apperr.ErrTodoNotFound
	}
	return todo, nil
}

// AssignManager registers candidateUserID as a manager of the todo. Only the
// todo's owner may do so, and never for themselves.
func (s *ManagerService) AssignManager(ctx context.Context, id auth.Identity, todoID, candidateUserID int64) (ManagerSaveView, error) {
	todo, err := s.getTodo(ctx, todoID)
	if err != nil {
		return ManagerSaveView{}, err
	}
	if err := AssertIsOwner(todo, id); err != nil {
		return ManagerSaveView{}, err
	}

	candidate, err := s.Users.GetByID(ctx, candidateUserID)
	if err != nil {
		return ManagerSaveView{}, fmt.Errorf("get user %d: %w", candidateUserID, err)
	}
	if candidate == nil {
		return ManagerSaveView{}, apperr.ErrManagerUserNotFound
	}
	if err := AssertNotSelfAssignment(todo, candidate.ID); err != nil {
		return ManagerSaveView{}, err
	}

	m, err := s.Managers.Create(ctx, todo.ID, candidate.ID)
	if err != nil {
		return ManagerSaveView{}, fmt.Errorf("create manager: %w", err)
	}

	publish(ctx, s.Events, s.Log, events.New(events.TypeManagerAssigned, strconv.FormatInt(todo.ID, 10), map[string]any{
		"manager_id": m.ID,
		"todo_id":    todo.ID,
		"user_id":    candidate.ID,
		"by":         id.ID,
	}))
	return ManagerSaveView{ID: m.ID, User: UserView{ID: candidate.ID, Email: candidate.Email}}, nil
}

// ListManagers returns the todo's managers in insertion order. A todo without
// managers yields an empty, non-nil slice.
func (s *ManagerService) ListManagers(ctx context.Context, todoID int64) ([]ManagerView, error) {
	if _, err := s.getTodo(ctx, todoID); err != nil {
		return nil, err
	}
	rows, err := s.Managers.ListByTodoIDWithUser(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("list managers of todo %d: %w", todoID, err)
	}
	out := make([]ManagerView, 0, len(rows))
	for _, m := range rows {
		out = append(out, ManagerView{ID: m.ID, User: UserView{ID: m.UserID, Email: m.UserEmail}})
	}
	return out, nil
}

// RemoveManager deletes a manager from the todo. Checks run in a fixed order
// and the first failure wins: acting user, todo, ownership, manager, association.
// Deleting a manager that disappeared after validation is not an error.
func (s *ManagerService) RemoveManager(ctx context.Context, id auth.Identity, todoID, managerID int64) error {
	acting, err := s.Users.GetByID(ctx, id.ID)
	if err != nil {
		return fmt.Errorf("get user %d: %w", id.ID, err)
	}
	if acting == nil {
		return apperr.ErrUserNotFound
	}

	todo, err := s.getTodo(ctx, todoID)
	if err != nil {
		return err
	}
	if err := assertActingUserOwns(todo, acting.ID); err != nil {
		return err
	}

	m, err := s.Managers.GetByID(ctx, managerID)
	if err != nil {
		return fmt.Errorf("get manager %d: %w", managerID, err)
	}
	if m == nil {
		return apperr.ErrManagerNotFound
	}
	if m.TodoID != todo.ID {
		return apperr.ErrManagerNotAssociated
	}

	if err := s.Managers.Delete(ctx, m.ID); err != nil {
		return fmt.Errorf("delete manager %d: %w", m.ID, err)
	}

	publish(ctx, s.Events, s.Log, events.New(events.TypeManagerRemoved, strconv.FormatInt(todo.ID, 10), map[string]any{
		"manager_id": m.ID,
		"todo_id":    todo.ID,
		"user_id":    m.UserID,
		"by":         acting.ID,
	}))
	return nil
}
