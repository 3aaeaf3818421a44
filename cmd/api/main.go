package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reception-scheduler/internal/audit"
	"github.com/BruksfildServices01/reception-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/reception-scheduler/internal/db"
	"github.com/BruksfildServices01/reception-scheduler/internal/infra/kv/redis"
	"github.com/BruksfildServices01/reception-scheduler/internal/infra/kv/s3"
	"github.com/BruksfildServices01/reception-scheduler/internal/kv"
	"github.com/BruksfildServices01/reception-scheduler/internal/logging"
	"github.com/BruksfildServices01/reception-scheduler/internal/metrics"
	"github.com/BruksfildServices01/reception-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reception-scheduler/internal/persist"
	"github.com/BruksfildServices01/reception-scheduler/internal/routes"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
	"github.com/BruksfildServices01/reception-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/reception-scheduler/internal/usecase/appointment"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := timezone.Clock(cfg.Timezone)

	// ======================================================
	// POSTGRES (kv driver and/or audit sink)
	// ======================================================
	var db *gorm.DB
	if cfg.DBUrl != "" {
		var err error
		db, err = dbpkg.NewDB(cfg.DBUrl)
		if err != nil {
			return err
		}
		defer func() { _ = dbpkg.Close(db) }()
	}

	// ======================================================
	// KEY/VALUE BACKEND
	// ======================================================
	backend, err := kv.Open(ctx, kv.Options{
		Driver:     kv.Driver(cfg.StorageDriver),
		SQLitePath: cfg.SQLitePath,
		DB:         db,
		Redis: redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		},
		S3: s3.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PathStyle:       cfg.S3PathStyle,
			Prefix:          cfg.S3Prefix,
		},
	})
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	// ======================================================
	// STORE + PERSISTENCE
	// ======================================================
	m := metrics.New()
	st := store.New(
		store.WithClock(clock),
		store.WithLogger(logger.Named("store")),
		store.WithRecorder(m),
	)

	var seed func() store.State
	if cfg.SeedDemo {
		seed = func() store.State { return store.DemoState(clock()) }
	}
	if _, err := persist.Restore(ctx, backend, st, seed, logger); err != nil {
		return err
	}

	syncer := persist.NewSyncer(backend, logger.Named("persist"))
	syncer.Attach(st)
	syncCtx, stopSync := context.WithCancel(context.Background())
	syncDone := make(chan struct{})
	go func() {
		syncer.Run(syncCtx)
		close(syncDone)
	}()

	backups, err := persist.StartBackups(cfg.BackupSchedule, backend, st, clock, logger.Named("backup"))
	if err != nil {
		return err
	}

	// ======================================================
	// AUDIT
	// ======================================================
	var sink audit.Sink = audit.NewLogSink(logger)
	if db != nil {
		sink = audit.NewDBSink(db)
	}
	dispatcher := audit.NewDispatcher(sink, cfg.AuditQueueSize, logger)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger.Named("http")),
		middleware.Recovery(logger),
		middleware.CORSMiddleware(),
	)

	routes.RegisterRoutes(r, routes.Deps{
		Store: st,
		Audit: dispatcher,
		Slots: ucAppointment.SlotSettings{
			Start:       cfg.SlotStart,
			End:         cfg.SlotEnd,
			StepMinutes: cfg.SlotStepMinutes,
		},
		Today:   func() string { return timezone.Today(cfg.Timezone) },
		Metrics: m.Handler(),
		DB:      db,
		Ready: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			if db != nil {
				if err := dbpkg.Ping(ctx, db); err != nil {
					return fmt.Errorf("postgres: %w", err)
				}
			}
			return persist.Probe(ctx, backend)
		},
	})

	// request contexts end on shutdown so open watch streams return
	baseCtx, endStreams := context.WithCancel(context.Background())
	defer endStreams()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(endStreams)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("storage", string(backend.Driver())),
			zap.String("timezone", cfg.Timezone),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	// ======================================================
	// SHUTDOWN
	// ======================================================
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}

	<-backups.Stop().Done()
	syncer.Detach()
	stopSync()
	<-syncDone
	if err := syncer.Flush(shutdownCtx); err != nil {
		logger.Error("final flush failed", zap.Error(err))
	}
	dispatcher.Close()

	return nil
}
