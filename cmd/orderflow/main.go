package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/adapter/auth"
	"github.com/orderflow-io/orderflow/internal/adapter/cache"
	"github.com/orderflow-io/orderflow/internal/adapter/config"
	"github.com/orderflow-io/orderflow/internal/adapter/handler/http"
	"github.com/orderflow-io/orderflow/internal/adapter/logger"
	"github.com/orderflow-io/orderflow/internal/adapter/notification"
	"github.com/orderflow-io/orderflow/internal/adapter/search"
	"github.com/orderflow-io/orderflow/internal/adapter/storage"
	"github.com/orderflow-io/orderflow/internal/adapter/storage/repository"
	"github.com/orderflow-io/orderflow/internal/core/consumer"
	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/outbox"
	"github.com/orderflow-io/orderflow/internal/core/service"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}

	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	redisCache, err := cache.NewRedis(conf.Redis)
	if err != nil {
		log.Error("redis cache creating error", zap.Error(err))
		return
	}
	defer redisCache.Close()

	mailer := notification.NewLogMailer(log.Named("Mailer"))
	indexer := search.NewLogIndexer(log.Named("Search"))

	svc, err := service.NewService(repo, repo, tokenService, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	registry := outbox.NewRegistry()
	registry.Subscribe(consumer.NewCacheInvalidator(redisCache, log.Named("CacheInvalidator")),
		domain.EventOrderStatusChanged,
		domain.EventOrderPaymentStatusChanged,
		domain.EventPaymentStatusChanged,
		domain.EventPaymentMethodDeactivated,
	)
	registry.Subscribe(consumer.NewNotifier(repo, mailer, log.Named("Notifier")),
		domain.EventOrderPaid,
		domain.EventOrderShipped,
		domain.EventPaymentFailed,
	)
	registry.Subscribe(consumer.NewTokenRevoker(repo, log.Named("TokenRevoker")),
		domain.EventPaymentMethodDeactivated,
	)
	registry.Subscribe(consumer.NewSearchReindexer(repo, indexer, log.Named("SearchReindexer")),
		domain.EventOrderStatusChanged,
	)

	dispatcher := outbox.NewDispatcher(repo, registry,
		conf.Dispatcher.Interval, conf.Dispatcher.BatchSize,
		conf.Dispatcher.MaxAttempts, conf.Dispatcher.BackoffBase,
		log.Named("Dispatcher"))
	go dispatcher.Start(ctx)

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(svc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	adminHandler, err := http.NewAdminHandler(redisCache, dispatcher, log.Named("Admin handler"))
	if err != nil {
		log.Error("admin handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService,
		userHandler, orderHandler, paymentHandler, adminHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
