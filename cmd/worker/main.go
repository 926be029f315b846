package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/aliantdev/orderflow/internal/adapter/config"
	"github.com/aliantdev/orderflow/internal/adapter/logger"
	"github.com/aliantdev/orderflow/internal/adapter/queue"
	"github.com/aliantdev/orderflow/internal/adapter/storage"
	"github.com/aliantdev/orderflow/internal/adapter/storage/repository"
	"github.com/aliantdev/orderflow/internal/core/consumer"
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
		log.Error("order repo creating error", zap.Error(err))
		return
	}

	sqsQueue, err := queue.NewSQSQueue(ctx, conf.Queue)
	if err != nil {
		log.Error("queue client creating error", zap.Error(err))
		return
	}

	worker, err := consumer.NewConsumer(sqsQueue, repo,
		time.Duration(conf.Queue.PollIntervalMS)*time.Millisecond, log.Named("Consumer"))
	if err != nil {
		log.Error("consumer creating error", zap.Error(err))
		return
	}

	worker.Run(ctx)
}
