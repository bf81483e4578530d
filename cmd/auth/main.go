package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/audit"
	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"
	"github.com/Sherlyzahra/knowledge-sharing/internal/config"
	"github.com/Sherlyzahra/knowledge-sharing/internal/user"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/logger"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/metrics"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.ServiceAuth)
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New("auth", cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	codec, err := auth.NewManager(auth.ManagerConfig{
		SecretKey:       cfg.Auth.SecretKey,
		Algorithm:       cfg.Auth.Algorithm,
		AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	})
	if err != nil {
		log.Error("token codec init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.DB.URL, utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	users := user.NewRepository(db)

	// Seed the role catalog; safe to run on every start.
	if err := users.EnsureRoles(rootCtx, user.DefaultRoles); err != nil {
		log.Error("role seed failed", "err", err)
		os.Exit(1)
	}

	handlers := user.Handlers{
		Users:              user.NewService(users, codec),
		Audit:              audit.NewService(audit.NewSQLRepo(db)),
		Redis:              rdb,
		LoginAttemptLimit:  cfg.Auth.LoginAttemptLimit,
		LoginAttemptWindow: cfg.Auth.LoginAttemptWindow,
	}

	m := metrics.New("auth")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(m.Middleware())

	registerRoutes(r, handlers, m, db)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("auth service listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
