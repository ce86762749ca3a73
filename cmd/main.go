package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/abhatnagar21/HFT-Simulator/internal/app/engine"
	marketdatav1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/marketdata/v1"
	tradepublisherv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/trade-publisher/v1"
	"github.com/abhatnagar21/HFT-Simulator/internal/usecase/marketdata"
	"github.com/abhatnagar21/HFT-Simulator/internal/usecase/marketmaker"
	"github.com/abhatnagar21/HFT-Simulator/internal/usecase/orderbook"
	"github.com/abhatnagar21/HFT-Simulator/internal/usecase/portfolio"
	"github.com/abhatnagar21/HFT-Simulator/internal/usecase/pricepath"
	tradepublisher "github.com/abhatnagar21/HFT-Simulator/internal/usecase/trade-publisher"
	"github.com/abhatnagar21/HFT-Simulator/pkg/config"
	"github.com/abhatnagar21/HFT-Simulator/pkg/logger"
	"github.com/abhatnagar21/HFT-Simulator/pkg/redis"
	"github.com/abhatnagar21/HFT-Simulator/pkg/util"
	"github.com/shopspring/decimal"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	// one request id per run so every context-aware log line of this
	// simulation is correlatable
	ctx, cancel := context.WithCancel(util.WithRequestID(context.Background(), ""))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	initialCash, err := decimal.NewFromString(cfg.InitialCash)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "parse_initial_cash",
		})
		return
	}

	book := orderbook.NewBook()
	quoter := marketmaker.NewQuoter(cfg.SpreadBps, cfg.QuoteSize)
	accountant := portfolio.NewAccountant(initialCash, 0, cfg.StartPrice, cfg.TickValue)
	walk := pricepath.NewWalk(cfg.StartPrice, cfg.Volatility, seed)
	flow := pricepath.NewFlow(seed)

	var publisher tradepublisherv1.Publisher
	if cfg.KafkaConfig.Enabled {
		kafkaPublisher := tradepublisher.NewPublisher(cfg.KafkaConfig, log)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	var mdStore marketdatav1.Store
	if cfg.RedisConfig.Enabled {
		redisConfig := redis.DefaultConfig()
		redisConfig.Addr = cfg.RedisConfig.Addr
		redisConfig.Password = cfg.RedisConfig.Password
		redisConfig.Username = cfg.RedisConfig.Username
		redisConfig.DB = cfg.RedisConfig.DB

		rclient := redis.NewClient(log, redisConfig)
		if err := rclient.Connect(ctx); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "connect_redis",
			})
			return
		}
		defer rclient.Disconnect(context.Background())

		mdStore = marketdata.NewStore(rclient, cfg.Symbol, 2*cfg.DepthInterval, log)
	}

	options := &app.Options{
		StepInterval:  cfg.StepInterval,
		DepthInterval: cfg.DepthInterval,
		DepthLevels:   cfg.DepthLevels,
		Steps:         cfg.Steps,
	}

	engine := app.NewEngine(
		book,
		quoter,
		accountant,
		walk,
		flow,
		publisher,
		mdStore,
		log,
		cfg.Symbol,
		cfg.TickValue,
		options,
	)

	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Simulator started", logger.Field{
		Key:   "symbol",
		Value: cfg.Symbol,
	}, logger.Field{
		Key:   "seed",
		Value: seed,
	})

	// wait for a shutdown signal or the step budget
	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal", logger.Field{
			Key:   "signal",
			Value: sig.String(),
		})
	case <-engine.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	log.Info("Simulator shutdown complete")
}
