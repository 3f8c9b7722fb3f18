package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpctx "github.com/ZhuneIDS/apitareas/internal/api/http/context"
	"github.com/ZhuneIDS/apitareas/internal/api/http/router"
	httpServer "github.com/ZhuneIDS/apitareas/internal/api/http/server"
	"github.com/ZhuneIDS/apitareas/internal/config"
	"github.com/ZhuneIDS/apitareas/internal/logger"
	"github.com/ZhuneIDS/apitareas/internal/model"
	"github.com/ZhuneIDS/apitareas/internal/repository/jsonfile"
	"github.com/ZhuneIDS/apitareas/internal/repository/postgres"
	"github.com/ZhuneIDS/apitareas/internal/server"
	"github.com/ZhuneIDS/apitareas/internal/service"
	"github.com/ZhuneIDS/apitareas/internal/storage/local"
	storage "github.com/ZhuneIDS/apitareas/internal/storage/minio"
	"github.com/ZhuneIDS/apitareas/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	userStore, taskStore, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.StorageDriver, "error", err)
	}
	defer func() {
		if err := closeStores(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	authService := service.NewAuth(userStore, tokenManager, cfg.Bcrypt.Cost, logger)
	taskService := service.NewTask(taskStore, logger)
	ctxMgr := httpctx.NewManager()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := router.New(authService, taskService, ctxMgr, registry, cfg.HTTP.AllowedOrigins, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "storage", cfg.StorageDriver)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// openStores builds the user and task stores for the configured driver.
// The returned close function releases driver resources.
func openStores(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.UserStore, model.TaskStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewUserRepository(db), postgres.NewTaskRepository(db), db.Close, nil

	case config.DriverMinio:
		client, err := storage.Dial(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		userStore, taskStore, err := openCollections(ctx, client, cfg.File)
		return userStore, taskStore, noop, err

	default:
		disk, err := local.NewDisk(cfg.File.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Debug("using JSON files", "dir", cfg.File.Dir)
		userStore, taskStore, err := openCollections(ctx, disk, cfg.File)
		return userStore, taskStore, noop, err
	}
}

func openCollections(ctx context.Context, backend model.Storage, files config.File) (model.UserStore, model.TaskStore, error) {
	users, err := jsonfile.NewCollection[model.User](ctx, backend, files.UsersName)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := jsonfile.NewCollection[model.Task](ctx, backend, files.TasksName)
	if err != nil {
		return nil, nil, err
	}
	return jsonfile.NewUserRepository(users), jsonfile.NewTaskRepository(tasks), nil
}
