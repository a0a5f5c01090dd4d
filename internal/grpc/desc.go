package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	"todoManagement/internal/service"
)

// Fully-qualified service names.
const (
	AuthServiceName    = "todo.v1.AuthService"
	TodoServiceName    = "todo.v1.TodoService"
	ManagerServiceName = "todo.v1.ManagerService"
	CommentServiceName = "todo.v1.CommentService"
	UserServiceName    = "todo.v1.UserService"
	AdminServiceName   = "todo.v1.AdminService"
)

// FullMethod returns the "/service/method" name used in interceptors and clients.
func FullMethod(serviceName, method string) string {
	return "/" + serviceName + "/" + method
}

// unary builds a MethodDesc that decodes Req, runs the interceptor chain and
// dispatches to fn on the registered implementation.
func unary[S any, Req any, Resp any](serviceName, method string, fn func(S, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(serviceName, method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

type AuthServiceServer interface {
	Signup(context.Context, *SignupRequest) (*service.TokenView, error)
	Signin(context.Context, *SigninRequest) (*service.TokenView, error)
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AuthServiceName, "Signup", AuthServiceServer.Signup),
		unary(AuthServiceName, "Signin", AuthServiceServer.Signin),
	},
	Metadata: "todo/v1/auth.proto",
}

type TodoServiceServer interface {
	SaveTodo(context.Context, *SaveTodoRequest) (*service.TodoView, error)
	GetTodo(context.Context, *GetTodoRequest) (*service.TodoView, error)
	ListTodos(context.Context, *ListTodosRequest) (*ListTodosResponse, error)
}

var TodoServiceDesc = grpc.ServiceDesc{
	ServiceName: TodoServiceName,
	HandlerType: (*TodoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(TodoServiceName, "SaveTodo", TodoServiceServer.SaveTodo),
		unary(TodoServiceName, "GetTodo", TodoServiceServer.GetTodo),
		unary(TodoServiceName, "ListTodos", TodoServiceServer.ListTodos),
	},
	Metadata: "todo/v1/todo.proto",
}

type ManagerServiceServer interface {
	AssignManager(context.Context, *AssignManagerRequest) (*service.ManagerSaveView, error)
	ListManagers(context.Context, *ListManagersRequest) (*ListManagersResponse, error)
	RemoveManager(context.Context, *RemoveManagerRequest) (*emptypb.Empty, error)
}

var ManagerServiceDesc = grpc.ServiceDesc{
	ServiceName: ManagerServiceName,
	HandlerType: (*ManagerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ManagerServiceName, "AssignManager", ManagerServiceServer.AssignManager),
		unary(ManagerServiceName, "ListManagers", ManagerServiceServer.ListManagers),
		unary(ManagerServiceName, "RemoveManager", ManagerServiceServer.RemoveManager),
	},
	Metadata: "todo/v1/manager.proto",
}

type CommentServiceServer interface {
	SaveComment(context.Context, *SaveCommentRequest) (*service.CommentView, error)
	ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error)
}

var CommentServiceDesc = grpc.ServiceDesc{
	ServiceName: CommentServiceName,
	HandlerType: (*CommentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CommentServiceName, "SaveComment", CommentServiceServer.SaveComment),
		unary(CommentServiceName, "ListComments", CommentServiceServer.ListComments),
	},
	Metadata: "todo/v1/comment.proto",
}

type UserServiceServer interface {
	GetUser(context.Context, *GetUserRequest) (*service.UserView, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*emptypb.Empty, error)
}

var UserServiceDesc = grpc.ServiceDesc{
	ServiceName: UserServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(UserServiceName, "GetUser", UserServiceServer.GetUser),
		unary(UserServiceName, "ChangePassword", UserServiceServer.ChangePassword),
	},
	Metadata: "todo/v1/user.proto",
}

type AdminServiceServer interface {
	ChangeUserRole(context.Context, *ChangeUserRoleRequest) (*emptypb.Empty, error)
	DeleteComment(context.Context, *DeleteCommentRequest) (*emptypb.Empty, error)
}

var AdminServiceDesc = grpc.ServiceDesc{
	ServiceName: AdminServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(AdminServiceName, "ChangeUserRole", AdminServiceServer.ChangeUserRole),
		unary(AdminServiceName, "DeleteComment", AdminServiceServer.DeleteComment),
	},
	Metadata: "todo/v1/admin.proto",
}
