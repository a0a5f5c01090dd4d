package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"todoManagement/internal/apperr"
	"todoManagement/internal/auth"
	"todoManagement/internal/events"
	"todoManagement/models"
	"todoManagement/repository"
)

// TokenView carries a freshly issued token, already prefixed with the Bearer scheme.
type TokenView struct {
	BearerToken string `json:"bearerToken"`
}

// AuthService creates accounts and exchanges credentials for tokens.
type AuthService struct {
	Users  repository.UserRepositoryI
	Codec  *auth.Codec
	Hasher *auth.Hasher
	Events events.Publisher
	Log    *log.Logger
}

// Signup registers a new account and signs the caller in.
func (s *AuthService) Signup(ctx context.Context, email, password, userRole string) (TokenView, error) {
	email = strings.TrimSpace(email)
	role, err := models.ParseUserRole(userRole)
	if err != nil {
		return TokenView{}, apperr.New(apperr.KindInvalidRequest, "Invalid user role")
	}

	exists, err := s.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return TokenView{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return TokenView{}, apperr.ErrEmailExists
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return TokenView{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.Users.Create(ctx, email, hash, role)
	if err != nil {
		return TokenView{}, fmt.Errorf("create user: %w", err)
	}

	tv, err := s.issue(u)
	if err != nil {
		return TokenView{}, err
	}
	publish(ctx, s.Events, s.Log, events.New(events.TypeUserCreated, strconv.FormatInt(u.ID, 10), map[string]any{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
	}))
	return tv, nil
}

// Signin verifies the credentials and issues a token.
func (s *AuthService) Signin(ctx context.Context, email, password string) (TokenView, error) {
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return TokenView{}, fmt.Errorf("get user by email: %w", err)
	}
	if u == nil {
		return TokenView{}, apperr.New(apperr.KindInvalidRequest, "User is not registered.")
	}
	if !s.Hasher.Matches(password, u.PasswordHash) {
		return TokenView{}, apperr.ErrWrongPassword
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *models.User) (TokenView, error) {
	tok, err := s.Codec.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return TokenView{}, fmt.Errorf("issue token: %w", err)
	}
	return TokenView{BearerToken: auth.BearerPrefix + tok}, nil
}
