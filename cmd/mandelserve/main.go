// Command mandelserve serves Mandelbrot renders over HTTP.
//
// Endpoints:
//
//	GET /mandelbrot.png?width=800&height=600  render as PNG
//	GET /image?format=tiff&workers=8          render in any supported format
//	GET /workers                              current worker count
//	PUT /workers {"workers": 8}               change the worker count
//	GET /health                               liveness
//	GET /metrics                              Prometheus metrics
//
// Environment: MANDELSERVE_ADDR (default :8080), MANDELSERVE_WORKERS,
// MANDELSERVE_CACHE (cached renders, 0 disables) and MANDELSERVE_DEBUG.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/LuisGonzalez2002/EjercicioMandelbrotLuisGonzalezGonzalez"
)

func main() {
	addr := getenv("MANDELSERVE_ADDR", ":8080")
	workers, err := strconv.Atoi(getenv("MANDELSERVE_WORKERS", strconv.Itoa(mandelbrot.DefaultWorkers)))
	if err != nil {
		log.Fatalf("MANDELSERVE_WORKERS: %v", err)
	}
	cacheEntries, err := strconv.Atoi(getenv("MANDELSERVE_CACHE", "32"))
	if err != nil {
		log.Fatalf("MANDELSERVE_CACHE: %v", err)
	}
	if getenv("MANDELSERVE_DEBUG", "") != "" {
		mandelbrot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e, err := mandelbrot.NewEngine(mandelbrot.WithWorkers(workers), mandelbrot.WithMetrics(reg))
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	defer e.Close()

	srv := newServer(e, reg, cacheEntries)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("mandelserve listening on %s with %d workers", addr, e.Workers())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	log.Println("mandelserve stopped")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
