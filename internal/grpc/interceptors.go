package grpcserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"todoManagement/internal/auth"
)

// NewUnaryLoggingInterceptor logs one line per call and hands a request-scoped
// logger to the rest of the chain via log.WithContext.
func NewUnaryLoggingInterceptor(logger *log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		l := logger.With("request_id", uuid.NewString(), "method", info.FullMethod)
		resp, err := handler(log.WithContext(ctx, l), req)

		code := status.Code(err)
		fields := []any{"code", code.String(), "duration", time.Since(start)}
		switch code {
		case codes.OK:
			l.Info("rpc", fields...)
		case codes.Internal, codes.Unknown:
			l.Error("rpc", append(fields, "err", err)...)
		default:
			l.Warn("rpc", append(fields, "err", status.Convert(err).Message())...)
		}
		return resp, err
	}
}

// NewUnaryAuditInterceptor runs after authentication. It records who made
// each call, and for the given admin methods logs the admin's email, role and
// execution time at info level.
func NewUnaryAuditInterceptor(adminMethods ...string) grpc.UnaryServerInterceptor {
	admin := make(map[string]struct{}, len(adminMethods))
	for _, m := range adminMethods {
		admin[m] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id, ok := auth.IdentityFromContext(ctx)
		if !ok {
			return handler(ctx, req)
		}
		l := log.FromContext(ctx).With("user_id", id.ID)
		if _, isAdmin := admin[info.FullMethod]; !isAdmin {
			l.Debug("caller")
			return handler(log.WithContext(ctx, l), req)
		}

		start := time.Now()
		resp, err := handler(log.WithContext(ctx, l), req)
		l.Info("admin call", "email", id.Email, "role", id.Role, "elapsed", time.Since(start), "ok", err == nil)
		return resp, err
	}
}

// Validator checks request payloads against per-method JSON schemas.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator compiles schema documents keyed by full method name.
func NewValidator(docs map[string]string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(docs))}
	for method, doc := range docs {
		url := "todo://schemas" + method + ".json"
		if err := compiler.AddResource(url, strings.NewReader(doc)); err != nil {
			return nil, fmt.Errorf("add schema for %s: %w", method, err)
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", method, err)
		}
		v.schemas[method] = schema
	}
	return v, nil
}

// Validate checks req against the schema of method. Methods without a schema pass.
func (v *Validator) Validate(method string, req any) error {
	schema, ok := v.schemas[method]
	if !ok {
		return nil
	}
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unmarshal request: %w", err)
	}
	if err := schema.Validate(obj); err != nil {
		return flattenSchemaError(err)
	}
	return nil
}

// UnaryInterceptor rejects invalid payloads with InvalidArgument before the handler runs.
func (v *Validator) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := v.Validate(info.FullMethod, req); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return handler(ctx, req)
	}
}

func flattenSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var msgs []string
	collectSchemaErrors(ve, &msgs)
	if len(msgs) == 0 {
		return fmt.Errorf("%s", ve.Message)
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func collectSchemaErrors(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		field := strings.TrimPrefix(ve.InstanceLocation, "/")
		if field == "" {
			*out = append(*out, ve.Message)
			return
		}
		*out = append(*out, field+": "+ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, out)
	}
}
