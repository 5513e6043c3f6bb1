package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitbase/internal/auth"
	"github.com/2beens/fitbase/internal/cache"
	"github.com/2beens/fitbase/internal/config"
	"github.com/2beens/fitbase/internal/db"
	"github.com/2beens/fitbase/internal/middleware"
	"github.com/2beens/fitbase/internal/plans"
	"github.com/2beens/fitbase/internal/progress"
	"github.com/2beens/fitbase/internal/sessions"
	"github.com/2beens/fitbase/internal/telemetry/metrics"
	"github.com/2beens/fitbase/internal/telemetry/tracing"
	"github.com/2beens/fitbase/internal/users"
	"github.com/2beens/fitbase/pkg"
)

const (
	authCleanupSchedule = "@every 8h"
	planCacheSizeMB     = 16
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	allowedOrigins    map[string]bool

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	rateLimiter  middleware.RequestRateLimiter
	loginChecker auth.Checker
	authService  *auth.Service
	scheduler    *cron.Cron

	usersHandler    *users.Handler
	plansHandler    *plans.Handler
	sessionsHandler *sessions.Handler
	progressHandler *progress.Handler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBPassword              string
	RedisPassword           string
	AllowedOrigins          []string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if err := db.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "fitbase", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitbase-backend", rdb)
	if err != nil {
		return nil, err
	}

	authService := auth.NewAuthService(auth.DefaultTTL, rdb)
	scheduler := cron.New()
	if err := scheduler.AddFunc(authCleanupSchedule, func() {
		authService.ScanAndClean(ctx)
	}); err != nil {
		return nil, fmt.Errorf("schedule auth cleanup: %w", err)
	}

	usersRepo := users.NewRepo(dbPool)
	plansRepo := plans.NewRepo(dbPool)

	plansService := plans.NewService(plans.ServiceParams{
		Repo:           plansRepo,
		Users:          usersRepo,
		Cache:          cache.NewFreeCache(planCacheSizeMB),
		MetricsManager: metricsManager,
		MaxCustomPlans: cfg.MaxCustomPlans,
		CommonPlansTTL: time.Duration(cfg.PlanCacheTTLSeconds) * time.Second,
	})
	if err := seedCommonPlans(ctx, plansService, cfg.CommonPlansPath); err != nil {
		return nil, err
	}

	s := &Server{
		config:         cfg,
		dbPool:         dbPool,
		versionInfo:    params.VersionInfo,
		allowedOrigins: originsSet(params.AllowedOrigins),

		redisClient:  rdb,
		rateLimiter:  redis_rate.NewLimiter(rdb),
		authService:  authService,
		scheduler:    scheduler,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		usersHandler: users.NewHandler(
			users.NewService(usersRepo, authService, metricsManager),
		),
		plansHandler: plans.NewHandler(plansService),
		sessionsHandler: sessions.NewHandler(
			sessions.NewService(sessions.NewRepo(dbPool), plansRepo, metricsManager),
		),
		progressHandler: progress.NewHandler(
			progress.NewService(progress.NewRepo(dbPool), usersRepo, plansRepo),
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func seedCommonPlans(ctx context.Context, plansService *plans.Service, path string) error {
	if path == "" {
		log.Warnln("common plans path not set, skipping seed")
		return nil
	}
	commonPlans, err := plans.LoadCommonPlans(path)
	if err != nil {
		return fmt.Errorf("load common plans: %w", err)
	}
	if err := plansService.SeedCommon(ctx, commonPlans); err != nil {
		return fmt.Errorf("seed common plans: %w", err)
	}
	log.Debugf("seeded %d common workout plans", len(commonPlans))
	return nil
}

func originsSet(origins []string) map[string]bool {
	set := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o != "" {
			set[o] = true
		}
	}
	return set
}

type rootResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, rootResponse{Status: "ok", Version: s.versionInfo})
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET", "OPTIONS").Name("root")

	s.usersHandler.SetupRoutes(r, users.RateLimits{
		Limiter:        s.rateLimiter,
		MetricsManager: s.metricsManager,
		LoginPerMin:    s.config.LoginRateLimitAllowedPerMin,
		SignupPerMin:   s.config.SignupRateLimitAllowedPerMin,
		ResetPerMin:    s.config.PasswordResetRateLimitAllowedPerMin,
	})
	s.plansHandler.SetupRoutes(r)
	s.sessionsHandler.SetupRoutes(r)
	s.progressHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.allowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      otelhttp.NewHandler(router, "fitbase-server"),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.scheduler != nil {
		s.scheduler.Start()
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop accepting requests before the stores go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.scheduler != nil {
		s.scheduler.Stop()
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
