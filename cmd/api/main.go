package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/libromundo/bookcart/internal/config"
	"github.com/libromundo/bookcart/internal/events"
	"github.com/libromundo/bookcart/internal/httpx"
	kafkax "github.com/libromundo/bookcart/internal/kafka"
	"github.com/libromundo/bookcart/internal/redisx"
	"github.com/libromundo/bookcart/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicCartActivity, 1024)
	prod.Start(ctx)

	// Cart sessions
	sessions := session.NewManager(cfg.SessionTTL)
	sessions.Start(ctx, time.Minute)

	router := httpx.NewRouter()
	ch := &httpx.CartsHandler{
		Sessions: sessions,
		Producer: prod,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}
	ch.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // close inbox -> flush & close writer
	cancel()     // stop background loops
	prod.WaitClosed()
}
