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

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dkovalev/pixelfeed/internal/api/http/handler"
	"github.com/dkovalev/pixelfeed/internal/api/http/httpctx"
	"github.com/dkovalev/pixelfeed/internal/api/http/middleware"
	"github.com/dkovalev/pixelfeed/internal/api/http/router"
	httpServer "github.com/dkovalev/pixelfeed/internal/api/http/server"
	"github.com/dkovalev/pixelfeed/internal/config"
	"github.com/dkovalev/pixelfeed/internal/logger"
	"github.com/dkovalev/pixelfeed/internal/model"
	"github.com/dkovalev/pixelfeed/internal/repository/postgres"
	"github.com/dkovalev/pixelfeed/internal/server"
	"github.com/dkovalev/pixelfeed/internal/service"
	storage "github.com/dkovalev/pixelfeed/internal/storage/minio"
	"github.com/dkovalev/pixelfeed/internal/token"
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

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	mediaStore, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize media storage", "error", err)
	}

	authService := service.NewAuth(userRepo, tokenManager, logger)
	identityService := service.NewIdentity(userRepo, tokenManager, logger)
	userService := service.NewUser(userRepo, postRepo, mediaStore, logger)
	postService := service.NewPost(postRepo, commentRepo, userRepo, mediaStore, logger)
	commentService := service.NewComment(commentRepo, postRepo, userRepo, logger)

	ctxMgr := httpctx.NewManager()
	rt := router.New(
		handler.NewAuth(authService, logger),
		handler.NewUser(userService, ctxMgr, logger),
		handler.NewPost(postService, ctxMgr, logger),
		handler.NewComment(commentService, ctxMgr, logger),
		middleware.NewAuthenticate(identityService, ctxMgr, logger),
		middleware.NewLogging(logger),
	)

	apiServer := httpServer.NewHTTPServer(rt.Handler(), fmt.Sprintf(":%s", cfg.HTTP.Port))

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
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
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
