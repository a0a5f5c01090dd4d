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

// WeatherProvider reports today's weather, which is stamped on new todos.
type WeatherProvider interface {
	TodayWeather(ctx context.Context) (string, error)
}

// StaticWeather always reports the same weather.
type StaticWeather string

func (w StaticWeather) TodayWeather(context.Context) (string, error) {
	return string(w), nil
}

// DefaultWeather is used when no provider is wired.
const DefaultWeather = StaticWeather("Sunny")

// TodoView is a todo with its owner's public profile. Owner is nil when the
// owner reference is gone.
type TodoView struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Contents   string    `json:"contents"`
	Weather    string    `json:"weather"`
	Owner      *UserView `json:"user"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// TodoService creates and reads todos.
type TodoService struct {
	Users   repository.UserRepositoryI
	Todos   repository.TodoRepositoryI
	Weather WeatherProvider
}

// SaveTodo creates a todo owned by the caller.
func (s *TodoService) SaveTodo(ctx context.Context, id auth.Identity, title, contents string) (TodoView, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return TodoView{}, apperr.New(apperr.KindInvalidRequest, "Title is required.")
	}
	wp := s.Weather
	if wp == nil {
		wp = DefaultWeather
	}
	weather, err := wp.TodayWeather(ctx)
	if err != nil {
		return TodoView{}, fmt.Errorf("weather: %w", err)
	}

	owner := id.ID
	t, err := s.Todos.Create(ctx, &models.Todo{Title: title, Contents: contents, Weather: weather, OwnerID: &owner})
	if err != nil {
		return TodoView{}, fmt.Errorf("create todo: %w", err)
	}
	return toTodoView(t, &UserView{ID: id.ID, Email: id.Email}), nil
}

// GetTodo returns a todo by id with its owner.
func (s *TodoService) GetTodo(ctx context.Context, todoID int64) (TodoView, error) {
	t, err := s.Todos.GetByID(ctx, todoID)
	if err != nil {
		return TodoView{}, fmt.Errorf("get todo %d: %w", todoID, err)
	}
	if t == nil {
		return TodoView{}, apperr.ErrTodoNotFound
	}
	owner, err := s.owner(ctx, t)
	if err != nil {
		return TodoView{}, err
	}
	return toTodoView(t, owner), nil
}

// ListTodos returns todos, most recently modified first.
func (s *TodoService) ListTodos(ctx context.Context, limit, offset int) ([]TodoView, error) {
	todos, err := s.Todos.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	owners := make(map[int64]*UserView)
	out := make([]TodoView, 0, len(todos))
	for i := range todos {
		t := &todos[i]
		var owner *UserView
		if t.HasOwner() {
			if cached, ok := owners[*t.OwnerID]; ok {
				owner = cached
			} else {
				if owner, err = s.owner(ctx, t); err != nil {
					return nil, err
				}
				owners[*t.OwnerID] = owner
			}
		}
		out = append(out, toTodoView(t, owner))
	}
	return out, nil
}

func (s *TodoService) owner(ctx context.Context, t *models.Todo) (*UserView, error) {
	if !t.HasOwner() {
		return nil, nil
	}
	u, err := s.Users.GetByID(ctx, *t.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get owner of todo %d: %w", t.ID, err)
	}
	if u == nil {
		return nil, nil
	}
	return &UserView{ID: u.ID, Email: u.Email}, nil
}

func toTodoView(t *models.Todo, owner *UserView) TodoView {
	return TodoView{
		ID:         t.ID,
		Title:      t.Title,
		Contents:   t.Contents,
		Weather:    t.Weather,
		Owner:      owner,
		CreatedAt:  t.CreatedAt,
		ModifiedAt: t.ModifiedAt,
	}
}
