package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/libromundo/bookcart/internal/activity"
	"github.com/libromundo/bookcart/internal/config"
	"github.com/libromundo/bookcart/internal/events"
	kafkax "github.com/libromundo/bookcart/internal/kafka"
	"github.com/libromundo/bookcart/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := activity.New(rdb, cfg.ServiceName+"-activity")
	svc.StartReporting(ctx, cfg.ActivityLogInterval)

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, "cart-activity", events.TopicCartActivity, 4)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutting down...")
		cancel()
	}()

	log.Printf("consuming %s", events.TopicCartActivity)
	if err := cons.Start(ctx, svc.HandleCartEvent); err != nil {
		log.Fatalf("consumer: %v", err)
	}
}
