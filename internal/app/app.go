package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pressly/goose/v3"
	"github.com/stpnv0/TurfBooker/internal/config"
	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/handler"
	"github.com/stpnv0/TurfBooker/internal/lock"
	"github.com/stpnv0/TurfBooker/internal/middleware"
	"github.com/stpnv0/TurfBooker/internal/mq"
	"github.com/stpnv0/TurfBooker/internal/notification"
	"github.com/stpnv0/TurfBooker/internal/obs"
	"github.com/stpnv0/TurfBooker/internal/payment"
	"github.com/stpnv0/TurfBooker/internal/repository"
	"github.com/stpnv0/TurfBooker/internal/repository/memory"
	"github.com/stpnv0/TurfBooker/internal/router"
	"github.com/stpnv0/TurfBooker/internal/scheduler"
	"github.com/stpnv0/TurfBooker/internal/service"
	"github.com/stpnv0/TurfBooker/internal/service/ports"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

const (
	appName       = "TurfBooker"
	migrationsDir = "migrations"
)

type App struct {
	cfg *config.Config
	log logger.Logger

	db        *dbpg.DB
	locker    *lock.RedisLocker
	publisher *mq.Publisher
	consumer  *mq.Consumer

	reservations *service.ReservationService
	generator    *service.SlotGenerator
	limiter      *middleware.ClientLimiter
	httpServer   *http.Server
	scheduler    *scheduler.Scheduler
	shutdownOtel func(context.Context) error
}

type storage struct {
	tx       ports.TxManager
	slots    ports.SlotRepo
	bookings ports.BookingRepo
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		appName,
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	app.shutdownOtel, err = obs.InitTracer(context.Background(), obs.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: appName,
		Env:         cfg.Gin.Mode,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	st, err := app.initStorage()
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if err = app.initServices(st); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initStorage() (storage, error) {
	if !a.cfg.Storage.Postgres() {
		a.log.Warn("using in-memory storage, data is lost on restart")
		store := memory.New()
		return storage{tx: store, slots: store.Slots(), bookings: store.Bookings()}, nil
	}

	if err := a.runMigrations(); err != nil {
		return storage{}, fmt.Errorf("migrations: %w", err)
	}
	if err := a.initDB(); err != nil {
		return storage{}, fmt.Errorf("init db: %w", err)
	}

	slots := repository.NewSlotRepo(a.db)
	bookings := repository.NewBookingRepo(a.db)

	return storage{
		tx:       repository.NewTxManager(a.db, slots, bookings),
		slots:    slots,
		bookings: bookings,
	}, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	db.Master.SetConnMaxLifetime(a.cfg.Postgres.ConnMaxLifetime)

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initServices(st storage) error {
	cfg := a.cfg.Booking

	window, err := domain.NewOperatingWindow(cfg.OpenHour, cfg.CloseHour)
	if err != nil {
		return err
	}
	pricing := domain.Pricing{
		SplitAt:   domain.NewClock(cfg.PriceSplitHour, 0),
		DayRate:   cfg.DayRate,
		NightRate: cfg.NightRate,
	}

	tg, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}
	mail := notification.NewEmailNotifier(notification.EmailConfig{
		Host:     a.cfg.Email.Host,
		Port:     a.cfg.Email.Port,
		Username: a.cfg.Email.Username,
		Password: a.cfg.Email.Password,
		From:     a.cfg.Email.From,
		To:       a.cfg.Email.To,
	}, a.log)
	notifier := notification.NewMulti(tg, mail)

	var publisher ports.EventPublisher = mq.NopPublisher{}
	if a.cfg.RabbitMQ.URL != "" {
		a.publisher, err = mq.NewPublisher(a.cfg.RabbitMQ.URL, a.cfg.RabbitMQ.Exchange)
		if err != nil {
			return fmt.Errorf("init publisher: %w", err)
		}
		publisher = a.publisher
	}

	holds := service.NewHoldManager(st.slots, cfg.HoldTTL, a.log)
	a.reservations = service.NewReservationService(
		st.tx, st.slots, st.bookings, holds, notifier, publisher,
		service.Policy{Window: window, Pricing: pricing, FollowUpDelay: cfg.FollowUpDelay},
		a.log,
		service.WithRules(service.NewRuleDecisionSource(cfg.DailyConfirmLimit, cfg.PeakLowStock)),
	)
	payments := service.NewPaymentService(
		st.bookings, payment.NewHMACVerifier(a.cfg.Payment.Secret), a.reservations, notifier, a.log,
	)
	generator := service.NewSlotGenerator(st.slots, window, pricing, a.log)
	a.generator = generator

	if a.cfg.RabbitMQ.URL != "" {
		a.consumer = mq.NewConsumer(mq.ConsumerConfig{
			URL:      a.cfg.RabbitMQ.URL,
			Exchange: a.cfg.RabbitMQ.Exchange,
			Queue:    a.cfg.RabbitMQ.PaymentsQueue,
			Prefetch: a.cfg.RabbitMQ.Prefetch,
		}, payments, a.log)
		if err = a.consumer.Connect(); err != nil {
			return fmt.Errorf("init consumer: %w", err)
		}
	}

	a.scheduler = scheduler.New(a.reservations, generator, scheduler.Config{
		SweepInterval:     a.cfg.Scheduler.SweepInterval,
		ReconcileInterval: a.cfg.Scheduler.ReconcileInterval,
		HorizonDays:       cfg.HorizonDays,
	}, a.log)

	health := map[string]router.Pinger{}
	if a.db != nil {
		health["postgres"] = a.db.Master.PingContext
	}
	if a.cfg.Redis.Addr != "" {
		a.locker = lock.NewRedisLocker(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB, a.log)
		a.scheduler.WithLocker(a.locker)
		health["redis"] = a.locker.Ping
	}

	mw := []ginext.HandlerFunc{
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	}
	if a.cfg.RateLimit.RPS > 0 {
		a.limiter = middleware.NewClientLimiter(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst, a.cfg.RateLimit.IdleTTL)
		mw = append(mw, middleware.RateLimit(a.limiter))
	}

	h := handler.NewHandler(a.reservations, payments, generator, cfg.HorizonDays)
	r := router.InitRouter(a.cfg.Gin.Mode, h, health, mw...)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.scheduler.Start(ctx)
	}()

	if a.limiter != nil {
		a.limiter.StartJanitor(ctx, a.cfg.RateLimit.IdleTTL/2)
	}

	errCh := make(chan error, 2)

	if a.consumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.consumer.Run(ctx); err != nil {
				errCh <- fmt.Errorf("payment consumer: %w", err)
			}
		}()
	}

	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case runErr = <-errCh:
		stop()
	}

	wg.Wait()

	if err := a.shutdown(); err != nil {
		return err
	}
	return runErr
}

// ReconcileOnce fills the slot horizon, sweeps expired holds and exits without serving traffic.
func (a *App) ReconcileOnce(days int) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if days <= 0 {
		days = a.cfg.Booking.HorizonDays
	}

	var runErr error
	if _, err := a.reservations.SweepExpired(ctx); err != nil {
		runErr = fmt.Errorf("sweep: %w", err)
	} else if res, err := a.generator.Reconcile(ctx, days); err != nil {
		runErr = fmt.Errorf("reconcile: %w", err)
	} else {
		a.log.LogAttrs(ctx, logger.InfoLevel, "one-shot reconcile finished",
			logger.Int("days", days),
			logger.Int("created", res.Created),
			logger.Int64("pruned", res.Pruned),
		)
	}

	if err := a.shutdown(); err != nil {
		return err
	}
	return runErr
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	a.reservations.Close()

	if a.consumer != nil {
		a.consumer.Close()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("close publisher", logger.String("error", err.Error()))
		}
	}
	if a.locker != nil {
		if err := a.locker.Close(); err != nil {
			a.log.Warn("close redis", logger.String("error", err.Error()))
		}
	}

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	if err := a.shutdownOtel(shutdownCtx); err != nil {
		a.log.Warn("tracer shutdown", logger.String("error", err.Error()))
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
