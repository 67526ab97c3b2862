package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.lepak.sg/subway-backend/config"
	"go.lepak.sg/subway-backend/logging"
	"go.lepak.sg/subway-backend/server"
	"go.lepak.sg/subway-backend/store"
)

const dbTimeout = 30 * time.Second

var configPath = flag.String("config", config.DefaultPath, "path to config.yml")

func main() {
	flag.Parse()
	logging.Init(true)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := openStore(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("error closing db: %v", err)
		}
	}()

	if err := server.StartHttp(ctx, cfg.Server, st); err != nil {
		log.Printf("error: %v", err)
	}
}

func openStore(ctx context.Context, cfg config.DBConfig) (*store.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}
