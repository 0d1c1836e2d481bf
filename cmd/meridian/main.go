package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-hr/meridian-hr/internal/app"
	"github.com/meridian-hr/meridian-hr/internal/assessments"
	"github.com/meridian-hr/meridian-hr/internal/audit"
	"github.com/meridian-hr/meridian-hr/internal/auth"
	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/departments"
	"github.com/meridian-hr/meridian-hr/internal/employees"
	"github.com/meridian-hr/meridian-hr/internal/jobprofiles"
	"github.com/meridian-hr/meridian-hr/internal/observability"
	"github.com/meridian-hr/meridian-hr/internal/platform/cache"
	"github.com/meridian-hr/meridian-hr/internal/platform/db"
	"github.com/meridian-hr/meridian-hr/internal/shared"
	"github.com/meridian-hr/meridian-hr/internal/users"
	"github.com/meridian-hr/meridian-hr/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionStore := shared.NewRedisSessionStore(redisClient)
	sessionManager := shared.NewSessionManager(sessionStore, cfg.SessionTTL, logger)

	metrics := observability.NewMetrics()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()

	auditRepo := audit.NewRepository(pool)
	auditService := audit.NewService(auditRepo, jobs.NewAuditEnqueuer(asynqClient), logger)

	guard := authz.Guard{
		Logger: logger,
		OnDecision: func(r *http.Request, p *authz.Principal, allowed bool, rule string) {
			metrics.ObserveAuthzDecision(rule, allowed)
			if !allowed && p != nil {
				auditService.Record(r.Context(), audit.Entry{
					Actor:    p.Email,
					Action:   audit.ActionAccessDenied,
					Resource: rule,
					Detail:   r.Method + " " + r.URL.Path,
				})
			}
		},
	}

	authService := auth.NewService(auth.NewRepository(pool), logger)
	authHandler := auth.NewHandler(logger, authService, sessionManager, cfg.SessionCookie, cfg.IsProduction())
	authHandler.OnLogin = func(r *http.Request, p *authz.Principal) {
		auditService.Record(r.Context(), audit.Entry{Actor: p.Email, Action: audit.ActionLogin})
	}
	authHandler.OnLogout = func(r *http.Request, p *authz.Principal) {
		auditService.Record(r.Context(), audit.Entry{Actor: p.Email, Action: audit.ActionLogout})
	}

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		AuthHandler:        authHandler,
		EmployeesHandler:   employees.NewHandler(logger, employees.NewService(employees.NewRepository(pool)), guard),
		AssessmentsHandler: assessments.NewHandler(logger, assessments.NewService(assessments.NewRepository(pool)), guard),
		JobProfilesHandler: jobprofiles.NewHandler(logger, jobprofiles.NewService(jobprofiles.NewRepository(pool)), guard),
		DepartmentsHandler: departments.NewHandler(logger, departments.NewRepository(pool), guard),
		UsersHandler:       users.NewHandler(logger, users.NewService(users.NewRepository(pool)), guard),
		RegistryHandler:    authz.NewRegistryHandler(logger, guard),
		AuditHandler:       audit.NewHandler(logger, auditService, guard),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server", slog.Any("error", err))
		os.Exit(1)
	}
}
