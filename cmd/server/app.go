package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"

	"todoManagement/internal/auth"
	"todoManagement/internal/cache"
	"todoManagement/internal/config"
	"todoManagement/internal/db"
	"todoManagement/internal/events"
	grpcserver "todoManagement/internal/grpc"
	"todoManagement/internal/logging"
	"todoManagement/internal/service"
	"todoManagement/repository"
)

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	return config.LoadFileWithDefaults(path)
}

func openDB(cfg *config.Config) (*db.DB, error) {
	dialect, err := db.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	return db.Open(dialect, cfg.Database.Path)
}

// app owns everything serve needs and releases it in Close.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	codec   *auth.Codec
	deps    grpcserver.Deps
	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	codec, err := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	a.codec = codec

	d, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, d.Close)

	var users repository.UserRepositoryI = repository.NewUserRepository(d)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		users = cache.NewUsers(users, rdb, cfg.Redis.TTL)
		logger.Info("user cache enabled", "addr", cfg.Redis.Addr)
	}

	var pub events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, kp.Close)
		pub = kp
		logger.Info("event publishing enabled", "brokers", cfg.Kafka.Brokers)
	}

	todos := repository.NewTodoRepository(d)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	a.deps = grpcserver.Deps{
		Auth:     &service.AuthService{Users: users, Codec: codec, Hasher: hasher, Events: pub, Log: logger},
		Todos:    &service.TodoService{Users: users, Todos: todos, Weather: service.DefaultWeather},
		Managers: &service.ManagerService{Users: users, Todos: todos, Managers: repository.NewManagerRepository(d), Events: pub, Log: logger},
		Comments: &service.CommentService{Todos: todos, Comments: repository.NewCommentRepository(d)},
		Users:    &service.UserService{Users: users, Hasher: hasher, Events: pub, Log: logger},
	}
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newLogger(cfg *config.Config) *log.Logger {
	return logging.New(cfg.Log)
}
