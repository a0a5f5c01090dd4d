// Package apperr defines the failure kinds raised by the auth and domain layers
// and their mapping onto gRPC status codes.
package apperr

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a failure. Kinds are stable; messages within a kind may vary.
type Kind string

const (
	KindTokenInvalid         Kind = "TokenInvalid"
	KindTokenExpired         Kind = "TokenExpired"
	KindAccessDenied         Kind = "AccessDenied"
	KindAuthFailed           Kind = "AuthFailed"
	KindTodoNotFound         Kind = "TodoNotFound"
	KindManagerUserNotFound  Kind = "ManagerUserNotFound"
	KindUserNotFound         Kind = "UserNotFound"
	KindManagerNotFound      Kind = "ManagerNotFound"
	KindInvalidOwner         Kind = "InvalidOwner"
	KindSelfAssignmentDenied Kind = "SelfAssignmentDenied"
	KindManagerNotAssociated Kind = "ManagerNotAssociated"
	KindEmailExists          Kind = "EmailExists"
	KindInvalidRequest       Kind = "InvalidRequest"
)

// Error is a local, synchronous, non-retryable failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so callers can compare against the
// sentinels below regardless of message text.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New returns an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinels carrying the fixed message of each kind.
var (
	ErrTokenInvalid         = New(KindTokenInvalid, "invalid token")
	ErrTokenExpired         = New(KindTokenExpired, "token expired")
	ErrAccessDenied         = New(KindAccessDenied, "access denied")
	ErrWrongPassword        = New(KindAuthFailed, "Wrong password.")
	ErrTodoNotFound         = New(KindTodoNotFound, "Todo not found")
	ErrManagerUserNotFound  = New(KindManagerUserNotFound, "Manager user to register does not exist.")
	ErrUserNotFound         = New(KindUserNotFound, "User not found")
	ErrManagerNotFound      = New(KindManagerNotFound, "Manager not found")
	ErrInvalidOwner         = New(KindInvalidOwner, "User registering the manager is not the valid creator of the todo.")
	ErrSelfAssignmentDenied = New(KindSelfAssignmentDenied, "Todo creator cannot register themselves as a manager.")
	ErrManagerNotAssociated = New(KindManagerNotAssociated, "Manager is not assigned to this todo.")
	ErrEmailExists          = New(KindEmailExists, "Email already exists.")
)

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

var kindCodes = map[Kind]codes.Code{
	KindTokenInvalid:         codes.Unauthenticated,
	KindTokenExpired:         codes.Unauthenticated,
	KindAuthFailed:           codes.Unauthenticated,
	KindAccessDenied:         codes.PermissionDenied,
	KindInvalidOwner:         codes.PermissionDenied,
	KindTodoNotFound:         codes.NotFound,
	KindManagerUserNotFound:  codes.NotFound,
	KindUserNotFound:         codes.NotFound,
	KindManagerNotFound:      codes.NotFound,
	KindSelfAssignmentDenied: codes.InvalidArgument,
	KindInvalidRequest:       codes.InvalidArgument,
	KindManagerNotAssociated: codes.FailedPrecondition,
	KindEmailExists:          codes.AlreadyExists,
}

// Code returns the gRPC code for err. Errors outside the taxonomy are Internal.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	if c, ok := kindCodes[KindOf(err)]; ok {
		return c
	}
	return codes.Internal
}

// ToStatus converts err into a gRPC status error. Taxonomy errors keep their
// message; anything else is reported as Internal with the given operation prefix.
func ToStatus(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var e *Error
	if errors.As(err, &e) {
		return status.Error(Code(e), e.Message)
	}
	return status.Errorf(codes.Internal, "%s: %v", op, err)
}
