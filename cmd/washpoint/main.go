package main

import (
	"context"
	"fmt"
	"time"

	"github.com/eshevtsov/washpoint/internal/adapter/auth"
	"github.com/eshevtsov/washpoint/internal/adapter/cache"
	"github.com/eshevtsov/washpoint/internal/adapter/client/devicegw"
	"github.com/eshevtsov/washpoint/internal/adapter/client/paymentgw"
	"github.com/eshevtsov/washpoint/internal/adapter/config"
	"github.com/eshevtsov/washpoint/internal/adapter/handler/http"
	"github.com/eshevtsov/washpoint/internal/adapter/lock"
	"github.com/eshevtsov/washpoint/internal/adapter/logger"
	"github.com/eshevtsov/washpoint/internal/adapter/notify"
	"github.com/eshevtsov/washpoint/internal/adapter/storage"
	"github.com/eshevtsov/washpoint/internal/adapter/storage/repository"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/eshevtsov/washpoint/internal/core/service"
	"github.com/redis/go-redis/v9"
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
		log.Error("repo creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	var redisClient *redis.Client
	if conf.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: conf.Redis.Addr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Error("redis error", zap.Error(err))
			return
		}
	}

	var dir port.Directory
	var locker port.SweepLocker
	if redisClient != nil {
		ttl := time.Duration(conf.Redis.DirectoryTTLSeconds) * time.Second
		dir = cache.NewDirectory(repo, redisClient, ttl, log.Named("Directory"))
		locker = lock.NewRedsyncLocker(redisClient, log.Named("Locker"))
	} else {
		dir = cache.NewRepoDirectory(repo)
		locker = lock.NopLocker{}
	}

	var devices port.DeviceGateway
	if conf.DeviceGateway.Secret != "" {
		devices = devicegw.NewClient(conf.DeviceGateway.HostString,
			conf.DeviceGateway.AppID, conf.DeviceGateway.Secret, log.Named("DeviceGW"))
	} else {
		devices = devicegw.NewSimulator(conf.DeviceGateway.FailureRate, log.Named("DeviceGW"))
	}

	var payments port.PaymentGateway
	if conf.PaymentGateway.APIKey != "" {
		payments = paymentgw.NewClient(conf.PaymentGateway.HostString,
			conf.PaymentGateway.MerchantID, conf.PaymentGateway.APIKey, log.Named("PaymentGW"))
	} else {
		payments = paymentgw.NewSimulator(log.Named("PaymentGW"))
	}

	var notifier port.Notifier
	if len(conf.Kafka.Brokers) > 0 {
		kafkaNotifier := notify.NewKafkaNotifier(conf.Kafka.Brokers, conf.Kafka.Topic, log.Named("Notifier"))
		defer func() {
			if err := kafkaNotifier.Close(); err != nil {
				log.Error("notifier close error", zap.Error(err))
			}
		}()
		notifier = kafkaNotifier
	} else {
		notifier = notify.NewLogNotifier(log.Named("Notifier"))
	}

	svc, err := service.NewService(repo, dir, tokenService, devices, payments,
		notifier, conf.HTTP.NotifyURL, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	scanner, err := service.NewScanner(svc, repo, locker, log.Named("Scanner"))
	if err != nil {
		log.Error("scanner creating error", zap.Error(err))
		return
	}
	if err := scanner.Start(); err != nil {
		log.Error("scanner start error", zap.Error(err))
		return
	}
	defer scanner.Stop(ctx)

	engine, err := service.NewRefundEngine(svc, repo, locker, log.Named("RefundEngine"))
	if err != nil {
		log.Error("refund engine creating error", zap.Error(err))
		return
	}
	if err := engine.Start(); err != nil {
		log.Error("refund engine start error", zap.Error(err))
		return
	}
	defer engine.Stop(ctx)

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
	balanceHandler, err := http.NewBalanceHandler(svc, log.Named("Balance handler"))
	if err != nil {
		log.Error("balance handler creating error", zap.Error(err))
		return
	}

	reportVerifier := devicegw.NewReportVerifier(conf.DeviceGateway.Secret)
	callbackParser := paymentgw.NewCallbackParser(conf.PaymentGateway.CallbackKey)
	webhookHandler, err := http.NewWebhookHandler(svc, callbackParser, reportVerifier, log.Named("Webhook handler"))
	if err != nil {
		log.Error("webhook handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, userHandler, orderHandler, balanceHandler, webhookHandler)
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
