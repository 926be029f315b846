package main

import (
	"context"
	"fmt"

	"github.com/aliantdev/orderflow/internal/adapter/auth"
	"github.com/aliantdev/orderflow/internal/adapter/config"
	"github.com/aliantdev/orderflow/internal/adapter/handler/http"
	"github.com/aliantdev/orderflow/internal/adapter/logger"
	"github.com/aliantdev/orderflow/internal/adapter/queue"
	"github.com/aliantdev/orderflow/internal/adapter/storage"
	"github.com/aliantdev/orderflow/internal/adapter/storage/repository"
	"github.com/aliantdev/orderflow/internal/core/service"
	"go.uber.org/zap"
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

	ctx := context.Background()

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
		log.Error("order repo creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	sqsQueue, err := queue.NewSQSQueue(ctx, conf.Queue)
	if err != nil {
		log.Error("queue client creating error", zap.Error(err))
		return
	}
	producer, err := queue.NewProducer(sqsQueue, log.Named("Producer"))
	if err != nil {
		log.Error("producer creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, tokenService, producer, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

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

	r, err := http.NewRouter(conf.HTTP, tokenService, orderHandler, userHandler)
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
