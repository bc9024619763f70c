package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Run starts the HTTP server and all background services, then blocks until shutdown signal.
//  1. Map HTTP handlers and routes
//  2. Start the dispatch workers, the feedback subscriber and the cron jobs
//  3. Start HTTP server
//  4. Wait for shutdown signal and stop everything in reverse order
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	// 1. Map handlers
	if err := srv.mapHandlers(); err != nil {
		srv.l.Errorf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	// 2. Start background services
	srv.dispatchPool.Start(srv.notificationUC)

	if err := srv.alertSubscriber.Start(); err != nil {
		srv.l.Errorf(ctx, "Failed to start feedback subscriber: %v", err)
		return err
	}

	srv.scheduler.Start()
	srv.l.Info(ctx, "Scheduler started")

	// 3. Start HTTP server in background
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler: srv.gin,
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.l.Errorf(ctx, "HTTP server error: %v", err)
		}
	}()
	srv.l.Infof(ctx, "HTTP server started on %s", httpSrv.Addr)

	// 4. Wait for shutdown signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	srv.l.Info(ctx, <-ch)
	srv.l.Info(ctx, "Stopping SLA service...")

	shutdownCtx, cancel := context.WithTimeout(ctx, srv.shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.l.Errorf(ctx, "HTTP server shutdown error: %v", err)
	}
	if err := srv.scheduler.Stop(shutdownCtx); err != nil {
		srv.l.Errorf(ctx, "Scheduler shutdown error: %v", err)
	}
	if err := srv.alertSubscriber.Shutdown(shutdownCtx); err != nil {
		srv.l.Errorf(ctx, "Feedback subscriber shutdown error: %v", err)
	}
	if err := srv.dispatchPool.Shutdown(shutdownCtx); err != nil {
		srv.l.Errorf(ctx, "Dispatch pool shutdown error: %v", err)
	}

	return nil
}
