package grpcserver

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"

	"todoManagement/internal/apperr"
	"todoManagement/internal/auth"
	"todoManagement/internal/service"
)

// AuthServer implements AuthServiceServer. Both methods are reachable without a token.
type AuthServer struct {
	Auth *service.AuthService
}

func (s *AuthServer) Signup(ctx context.Context, req *SignupRequest) (*service.TokenView, error) {
	tv, err := s.Auth.Signup(ctx, req.Email, req.Password, req.UserRole)
	if err != nil {
		return nil, apperr.ToStatus("signup", err)
	}
	return &tv, nil
}

func (s *AuthServer) Signin(ctx context.Context, req *SigninRequest) (*service.TokenView, error) {
	tv, err := s.Auth.Signin(ctx, req.Email, req.Password)
	if err != nil {
		return nil, apperr.ToStatus("signin", err)
	}
	return &tv, nil
}

// TodoServer implements TodoServiceServer.
type TodoServer struct {
	Todos *service.TodoService
}

func (s *TodoServer) SaveTodo(ctx context.Context, req *SaveTodoRequest) (*service.TodoView, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	tv, err := s.Todos.SaveTodo(ctx, id, req.Title, req.Contents)
	if err != nil {
		return nil, apperr.ToStatus("save todo", err)
	}
	return &tv, nil
}

func (s *TodoServer) GetTodo(ctx context.Context, req *GetTodoRequest) (*service.TodoView, error) {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return nil, err
	}
	tv, err := s.Todos.GetTodo(ctx, req.TodoID)
	if err != nil {
		return nil, apperr.ToStatus("get todo", err)
	}
	return &tv, nil
}

func (s *TodoServer) ListTodos(ctx context.Context, req *ListTodosRequest) (*ListTodosResponse, error) {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return nil, err
	}
	todos, err := s.Todos.ListTodos(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, apperr.ToStatus("list todos", err)
	}
	return &ListTodosResponse{Todos: todos}, nil
}

// ManagerServer implements ManagerServiceServer.
type ManagerServer struct {
	Managers *service.ManagerService
}

func (s *ManagerServer) AssignManager(ctx context.Context, req *AssignManagerRequest) (*service.ManagerSaveView, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	v, err := s.Managers.AssignManager(ctx, id, req.TodoID, req.ManagerUserID)
	if err != nil {
		return nil, apperr.ToStatus("assign manager", err)
	}
	return &v, nil
}

func (s *ManagerServer) ListManagers(ctx context.Context, req *ListManagersRequest) (*ListManagersResponse, error) {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return nil, err
	}
	list, err := s.Managers.ListManagers(ctx, req.TodoID)
	if err != nil {
		return nil, apperr.ToStatus("list managers", err)
	}
	return &ListManagersResponse{Managers: list}, nil
}

func (s *ManagerServer) RemoveManager(ctx context.Context, req *RemoveManagerRequest) (*emptypb.Empty, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Managers.RemoveManager(ctx, id, req.TodoID, req.ManagerID); err != nil {
		return nil, apperr.ToStatus("remove manager", err)
	}
	return &emptypb.Empty{}, nil
}

// CommentServer implements CommentServiceServer.
type CommentServer struct {
	Comments *service.CommentService
}

func (s *CommentServer) SaveComment(ctx context.Context, req *SaveCommentRequest) (*service.CommentView, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	v, err := s.Comments.SaveComment(ctx, id, req.TodoID, req.Contents)
	if err != nil {
		return nil, apperr.ToStatus("save comment", err)
	}
	return &v, nil
}

func (s *CommentServer) ListComments(ctx context.Context, req *ListCommentsRequest) (*ListCommentsResponse, error) {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return nil, err
	}
	list, err := s.Comments.ListComments(ctx, req.TodoID)
	if err != nil {
		return nil, apperr.ToStatus("list comments", err)
	}
	return &ListCommentsResponse{Comments: list}, nil
}

// UserServer implements UserServiceServer.
type UserServer struct {
	Users *service.UserService
}

func (s *UserServer) GetUser(ctx context.Context, req *GetUserRequest) (*service.UserView, error) {
	if _, err := auth.RequireIdentity(ctx); err != nil {
		return nil, err
	}
	v, err := s.Users.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, apperr.ToStatus("get user", err)
	}
	return &v, nil
}

// ChangePassword always acts on the caller's own account.
func (s *UserServer) ChangePassword(ctx context.Context, req *ChangePasswordRequest) (*emptypb.Empty, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Users.ChangePassword(ctx, id.ID, req.OldPassword, req.NewPassword); err != nil {
		return nil, apperr.ToStatus("change password", err)
	}
	return &emptypb.Empty{}, nil
}

// AdminServer implements AdminServiceServer. Every method sits behind the ADMIN role gate.
type AdminServer struct {
	Users    *service.UserService
	Comments *service.CommentService
}

func (s *AdminServer) ChangeUserRole(ctx context.Context, req *ChangeUserRoleRequest) (*emptypb.Empty, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperr.ToStatus("change user role", err)
	}
	if err := s.Users.ChangeUserRole(ctx, req.UserID, req.Role); err != nil {
		return nil, apperr.ToStatus("change user role", err)
	}
	return &emptypb.Empty{}, nil
}

func (s *AdminServer) DeleteComment(ctx context.Context, req *DeleteCommentRequest) (*emptypb.Empty, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperr.ToStatus("delete comment", err)
	}
	if err := s.Comments.DeleteComment(ctx, req.CommentID); err != nil {
		return nil, apperr.ToStatus("delete comment", err)
	}
	return &emptypb.Empty{}, nil
}

var (
	_ AuthServiceServer    = (*AuthServer)(nil)
	_ TodoServiceServer    = (*TodoServer)(nil)
	_ ManagerServiceServer = (*ManagerServer)(nil)
	_ CommentServiceServer = (*CommentServer)(nil)
	_ UserServiceServer    = (*UserServer)(nil)
	_ AdminServiceServer   = (*AdminServer)(nil)
)
