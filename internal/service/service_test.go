package service

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"todoManagement/internal/auth"
	"todoManagement/internal/events"
	"todoManagement/internal/logging"
	"todoManagement/internal/testutil"
	"todoManagement/models"
	"todoManagement/repository"
)

const testSecret = "service-test-secret"

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// countingManagers counts writes reaching the manager store.
type countingManagers struct {
	repository.ManagerRepositoryI
	creates int
	deletes int
}

func (c *countingManagers) Create(ctx context.Context, todoID, userID int64) (*models.Manager, error) {
	c.creates++
	return c.ManagerRepositoryI.Create(ctx, todoID, userID)
}

func (c *countingManagers) Delete(ctx context.Context, id int64) error {
	c.deletes++
	return c.ManagerRepositoryI.Delete(ctx, id)
}

type fixture struct {
	users    *repository.UserRepository
	todos    *repository.TodoRepository
	managers *countingManagers
	comments *repository.CommentRepository
	events   *recordingPublisher
	codec    *auth.Codec
	hasher   *auth.Hasher

	managerSvc *ManagerService
	authSvc    *AuthService
	userSvc    *UserService
	todoSvc    *TodoService
	commentSvc *CommentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	d := testutil.OpenInMemoryDB(t)
	codec, err := auth.NewCodec(testSecret, 0)
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	f := &fixture{
		users:    repository.NewUserRepository(d),
		todos:    repository.NewTodoRepository(d),
		managers: &countingManagers{ManagerRepositoryI: repository.NewManagerRepository(d)},
		comments: repository.NewCommentRepository(d),
		events:   &recordingPublisher{},
		codec:    codec,
		hasher:   auth.NewHasher(bcrypt.MinCost),
	}
	logger := logging.Discard()
	f.managerSvc = &ManagerService{Users: f.users, Todos: f.todos, Managers: f.managers, Events: f.events, Log: logger}
	f.authSvc = &AuthService{Users: f.users, Codec: codec, Hasher: f.hasher, Events: f.events, Log: logger}
	f.userSvc = &UserService{Users: f.users, Hasher: f.hasher, Events: f.events, Log: logger}
	f.todoSvc = &TodoService{Users: f.users, Todos: f.todos, Weather: StaticWeather("Cloudy")}
	f.commentSvc = &CommentService{Todos: f.todos, Comments: f.comments}
	return f
}

func (f *fixture) user(t *testing.T, email string, role models.UserRole) auth.Identity {
	t.Helper()
	u, err := f.users.Create(context.Background(), email, "hash", role)
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (f *fixture) todo(t *testing.T, owner auth.Identity) *models.Todo {
	t.Helper()
	td, err := f.todos.Create(context.Background(), &models.Todo{Title: "todo", Contents: "c", OwnerID: &owner.ID})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	return td
}
