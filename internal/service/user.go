package service

import (
	"context"
	"fmt"
	"strconv"
	"unicode"

	"github.com/charmbracelet/log"

	"todoManagement/internal/apperr"
	"todoManagement/internal/auth"
	"todoManagement/internal/events"
	"todoManagement/models"
	"todoManagement/repository"
)

const minPasswordLen = 8

var (
	errWeakPassword = apperr.New(apperr.KindInvalidRequest,
		"New password must be at least 8 characters long and contain a number and an uppercase letter.")
	errSamePassword      = apperr.New(apperr.KindInvalidRequest, "New password cannot be the same as the old password.")
	errWrongOldPassword  = apperr.New(apperr.KindInvalidRequest, "Wrong password.")
	errInvalidTargetRole = apperr.New(apperr.KindInvalidRequest, "Invalid user role")
)

// UserService reads profiles and handles password and role changes.
type UserService struct {
	Users  repository.UserRepositoryI
	Hasher *auth.Hasher
	Events events.Publisher
	Log    *log.Logger
}

func (s *UserService) getUser(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	if u == nil {
		return nil, apperr.ErrUserNotFound
	}
	return u, nil
}

// GetUser returns the public profile of a user.
func (s *UserService) GetUser(ctx context.Context, userID int64) (UserView, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return UserView{}, err
	}
	return UserView{ID: u.ID, Email: u.Email}, nil
}

// ValidPassword reports whether pw satisfies the password policy:
// at least 8 characters with a digit and an uppercase letter.
func ValidPassword(pw string) bool {
	if len([]rune(pw)) < minPasswordLen {
		return false
	}
	var digit, upper bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && upper
}

// ChangePassword replaces the password of userID after checking the policy,
// that the password actually changes, and that oldPassword is correct.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if !ValidPassword(newPassword) {
		return errWeakPassword
	}
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if s.Hasher.Matches(newPassword, u.PasswordHash) {
		return errSamePassword
	}
	if !s.Hasher.Matches(oldPassword, u.PasswordHash) {
		return errWrongOldPassword
	}
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("update password of user %d: %w", u.ID, err)
	}
	return nil
}

// ChangeUserRole sets the role of targetUserID. Callers must have passed the
// admin role gate.
func (s *UserService) ChangeUserRole(ctx context.Context, targetUserID int64, newRole string) error {
	role, err := models.ParseUserRole(newRole)
	if err != nil {
		return errInvalidTargetRole
	}
	u, err := s.getUser(ctx, targetUserID)
	if err != nil {
		return err
	}
	if err := s.Users.UpdateRole(ctx, u.ID, role); err != nil {
		return fmt.Errorf("update role of user %d: %w", u.ID, err)
	}
	publish(ctx, s.Events, s.Log, events.New(events.TypeUserRoleChanged, strconv.FormatInt(u.ID, 10), map[string]any{
		"id":   u.ID,
		"from": u.Role,
		"to":   role,
	}))
	return nil
}
