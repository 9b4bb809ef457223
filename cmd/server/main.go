package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"smarthire/internal/audit"
	authhandler "smarthire/internal/auth/handler"
	"smarthire/internal/auth/provider/local"
	authservice "smarthire/internal/auth/service"
	"smarthire/internal/auth/store/resend"
	"smarthire/internal/auth/token"
	hiringhandler "smarthire/internal/hiring/handler"
	hiringservice "smarthire/internal/hiring/service"
	"smarthire/internal/hiring/store/candidate"
	"smarthire/internal/hiring/store/jobdesc"
	"smarthire/internal/hiring/store/match"
	"smarthire/internal/hiring/tracer"
	"smarthire/internal/onboarding"
	onboardinghandler "smarthire/internal/onboarding/handler"
	"smarthire/internal/platform/config"
	"smarthire/internal/platform/database"
	"smarthire/internal/platform/health"
	"smarthire/internal/platform/kafka/producer"
	"smarthire/internal/platform/logger"
	"smarthire/internal/platform/metrics"
	platformredis "smarthire/internal/platform/redis"
	profilestore "smarthire/internal/profile/store"
	httptransport "smarthire/internal/transport/http"
)

const auditTopic = "smarthire.audit.events"

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	log.Info("initializing smarthire",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	// Postgres is optional; every store has a memory variant for local runs.
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var (
		profiles   authservice.ProfileStore
		candidates hiringservice.CandidateStore
		jobDescs   hiringservice.JobDescriptionStore
		matches    hiringservice.MatchStore
		usage      hiringservice.UsageStore
		onboardDB  onboarding.ProfileStore
	)
	if pool != nil {
		pg := profilestore.NewPostgres(pool.DB())
		profiles = pg
		usage = pg
		onboardDB = pg
		candidates = candidate.NewPostgres(pool.DB())
		jobDescs = jobdesc.NewPostgres(pool.DB())
		matches = match.NewPostgres(pool.DB())
		log.Info("using postgres stores")
	} else {
		mem := profilestore.NewMemory()
		profiles = mem
		usage = mem
		onboardDB = mem
		candidates = candidate.NewMemory()
		jobDescs = jobdesc.NewMemory()
		matches = match.NewMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	var redisClient *platformredis.Client
	var attempts authservice.ResendAttempts = resend.NewInMemoryStore()
	if cfg.RedisAddr != "" {
		redisClient, err = platformredis.New(cfg.RedisAddr)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		attempts = resend.NewRedisStore(redisClient)
		log.Info("using redis resend attempt store")
	}

	var auditStore audit.Store = audit.NewInMemoryStore()
	if cfg.KafkaBrokers != "" {
		kafkaCfg := producer.DefaultConfig()
		kafkaCfg.Brokers = cfg.KafkaBrokers
		kafkaProducer, err := producer.New(kafkaCfg, log)
		if err != nil {
			log.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close()
		auditStore = audit.NewKafkaStore(kafkaProducer, auditTopic)
		log.Info("audit events flowing to kafka", "topic", auditTopic)
	}
	auditPublisher := audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(256),
		audit.WithPublisherLogger(log),
	)
	defer auditPublisher.Close()

	accounts := local.New()
	tokenService := token.NewService(cfg.JWTSigningKey, "smarthire", cfg.TokenTTL)

	authService := authservice.NewService(accounts, profiles, attempts,
		authservice.WithLogger(log),
		authservice.WithMetrics(m),
		authservice.WithAuditPublisher(auditPublisher),
		authservice.WithJWTService(tokenService),
		authservice.WithVerifyRedirectURL(cfg.VerifyCallbackURL()),
		authservice.WithResendPolicy(cfg.ResendCap, cfg.ResendWindow),
	)
	hiringService := hiringservice.NewService(candidates, jobDescs, matches,
		hiringservice.WithLogger(log),
		hiringservice.WithMetrics(m),
		hiringservice.WithTracer(tracer.NewOTel()),
		hiringservice.WithUsageStore(usage),
	)
	onboardingService := onboarding.NewService(onboardDB, log)

	var dbProbe, redisProbe health.Pinger
	if pool != nil {
		dbProbe = health.PingFunc(pool.Health)
	}
	if redisClient != nil {
		redisProbe = health.PingFunc(redisClient.Health)
	}
	validator := health.NewSystemValidator(cfg, dbProbe, health.PingFunc(accounts.Health), redisProbe)

	healthHandler := health.New(cfg.Environment, validator)
	if pool != nil {
		healthHandler.RegisterCheck("database", probeCheck(pool.Health))
	}
	if redisClient != nil {
		healthHandler.RegisterCheck("redis", probeCheck(redisClient.Health))
	}
	healthHandler.RegisterCheck("provider", probeCheck(accounts.Health))

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:       authhandler.New(authService, log),
		Hiring:     hiringhandler.New(hiringService, log),
		Onboarding: onboardinghandler.New(onboardingService, log),
		Health:     healthHandler,
		Validator:  token.NewServiceAdapter(tokenService),
		Logger:     log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	if pool != nil {
		_ = pool.Close()
	}
	log.Info("server stopped")
}

// probeCheck adapts a context probe to the readiness check signature.
func probeCheck(probe func(context.Context) error) health.CheckFunc {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return probe(ctx)
	}
}
