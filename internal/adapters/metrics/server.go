package metrics

import (
	"fmt"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/craftplan-go/internal/infrastructure/config"
)

// Server exposes a Prometheus scrape endpoint for the duration of a
// search. Long-budget searches can be observed live; the server is shut
// down once the plan is printed.
type Server struct {
	httpServer *http.Server
}

// StartServer registers the collector and begins serving the metrics
// endpoint in the background
func StartServer(cfg *config.MetricsConfig, collector *SearchMetricsCollector) (*Server, error) {
	registry := prometheus.NewRegistry()
	if err := collector.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register search metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()

	return &Server{httpServer: srv}, nil
}

// Close stops the metrics server
func (s *Server) Close() error {
	return s.httpServer.Close()
}
