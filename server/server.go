package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"go.lepak.sg/subway-backend/config"
	"go.lepak.sg/subway-backend/server/handler/line"
	"go.lepak.sg/subway-backend/server/handler/station"
	"go.lepak.sg/subway-backend/server/handler/status"
	"go.lepak.sg/subway-backend/store"
)

const shutdownTimeout = 10 * time.Second

// Store is everything the handlers need from the database.
type Store interface {
	line.Store
	station.Store
}

// NewMux builds the API routes. Handler metrics go to reg, nil means the
// default registry.
func NewMux(st Store, reg prometheus.Registerer, version string) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	lh, err := line.New(line.NewParam{Store: st, Registerer: reg})
	if err != nil {
		return nil, err
	}
	lh.Register(mux)

	sh, err := station.New(station.NewParam{Store: st, Registerer: reg})
	if err != nil {
		return nil, err
	}
	sh.Register(mux)

	mux.Handle("GET /status", status.Handler{Version: version})

	return mux, nil
}

// StartHttp starts the http server. It blocks until the context is cancelled, then it will shut down the server.
// It will also start a secondary server to serve prometheus metrics.
// Only the first addr should be exposed through the reverse proxy.
func StartHttp(ctx context.Context, cfg config.ServerConfig, st *store.Store) error {
	mux, err := NewMux(st, nil, cfg.Version)
	if err != nil {
		return err
	}

	promMux := http.NewServeMux()
	promMux.Handle("/metrics", promhttp.Handler())

	srv := newServer(cfg.Addr, mux)
	promSrv := newServer(cfg.PromAddr, promMux)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return listen("main", srv) })
	g.Go(func() error { return listen("prom", promSrv) })
	g.Go(func() error {
		// block here
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("error shutting down main server: %v", err)
		}
		if err := promSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("error shutting down prom server: %v", err)
		}
		return nil
	})

	log.Printf("listening on %s, metrics on %s", cfg.Addr, cfg.PromAddr)
	return g.Wait()
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func listen(name string, srv *http.Server) error {
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	log.Printf("%s handler: %v", name, err)
	return err
}
