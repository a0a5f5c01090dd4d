package grpcserver

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-extras/go-kit/must"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"todoManagement/internal/auth"
	"todoManagement/internal/config"
	"todoManagement/internal/service"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

//go:embed schemas/*.json
var schemaFS embed.FS

// Deps are the services exposed over gRPC.
type Deps struct {
	Auth     *service.AuthService
	Todos    *service.TodoService
	Managers *service.ManagerService
	Comments *service.CommentService
	Users    *service.UserService
}

// PublicMethods run without a bearer token.
var PublicMethods = []string{
	FullMethod(AuthServiceName, "Signup"),
	FullMethod(AuthServiceName, "Signin"),
	healthCheckMethod,
}

// AdminMethods are audited with the caller's email and role.
var AdminMethods = []string{
	FullMethod(AdminServiceName, "ChangeUserRole"),
	FullMethod(AdminServiceName, "DeleteComment"),
}

// requestSchemas maps full method names to the embedded schema documents.
// A file named todo.v1.AuthService.Signup.json serves /todo.v1.AuthService/Signup.
func requestSchemas() (map[string]string, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, err
	}
	docs := make(map[string]string, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		i := strings.LastIndex(name, ".")
		if i <= 0 {
			return nil, fmt.Errorf("schema %s: name must be <service>.<method>.json", e.Name())
		}
		docs[FullMethod(name[:i], name[i+1:])] = string(must.Must(schemaFS.ReadFile(path.Join("schemas", e.Name()))))
	}
	return docs, nil
}

// NewServer builds a gRPC server with the logging, auth, audit and validation
// interceptors (in that order), all todo services and the health service.
func NewServer(codec *auth.Codec, deps Deps, logger *log.Logger) (*grpc.Server, error) {
	docs, err := requestSchemas()
	if err != nil {
		return nil, fmt.Errorf("load request schemas: %w", err)
	}
	validator, err := NewValidator(docs)
	if err != nil {
		return nil, err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		NewUnaryLoggingInterceptor(logger),
		auth.NewUnaryAuthInterceptor(codec, PublicMethods...),
		NewUnaryAuditInterceptor(AdminMethods...),
		validator.UnaryInterceptor(),
	))

	srv.RegisterService(&AuthServiceDesc, &AuthServer{Auth: deps.Auth})
	srv.RegisterService(&TodoServiceDesc, &TodoServer{Todos: deps.Todos})
	srv.RegisterService(&ManagerServiceDesc, &ManagerServer{Managers: deps.Managers})
	srv.RegisterService(&CommentServiceDesc, &CommentServer{Comments: deps.Comments})
	srv.RegisterService(&UserServiceDesc, &UserServer{Users: deps.Users})
	srv.RegisterService(&AdminServiceDesc, &AdminServer{Users: deps.Users, Comments: deps.Comments})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv, nil
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
func StartGRPC(cfg *config.Config, codec *auth.Codec, deps Deps, logger *log.Logger) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	srv, err := NewServer(codec, deps, logger)
	if err != nil {
		return nil, err
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc serve", "err", err)
		}
	}()

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
