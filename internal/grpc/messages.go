package grpcserver

import "todoManagement/internal/service"

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserRole string `json:"userRole"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SaveTodoRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

type GetTodoRequest struct {
	TodoID int64 `json:"todoId"`
}

type ListTodosRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ListTodosResponse struct {
	Todos []service.TodoView `json:"todos"`
}

type AssignManagerRequest struct {
	TodoID        int64 `json:"todoId"`
	ManagerUserID int64 `json:"managerUserId"`
}

type ListManagersRequest struct {
	TodoID int64 `json:"todoId"`
}

type ListManagersResponse struct {
	Managers []service.ManagerView `json:"managers"`
}

type RemoveManagerRequest struct {
	TodoID    int64 `json:"todoId"`
	ManagerID int64 `json:"managerId"`
}

type SaveCommentRequest struct {
	TodoID   int64  `json:"todoId"`
	Contents string `json:"contents"`
}

type ListCommentsRequest struct {
	TodoID int64 `json:"todoId"`
}

type ListCommentsResponse struct {
	Comments []service.CommentView `json:"comments"`
}

type GetUserRequest struct {
	UserID int64 `json:"userId"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ChangeUserRoleRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

type DeleteCommentRequest struct {
	CommentID int64 `json:"commentId"`
}
