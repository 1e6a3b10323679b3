package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/wanderlust/config"
	_ "github.com/Domenick1991/wanderlust/docs"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/encoding/protojson"
)

const healthService = "wanderlust"

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	health     *health.Server
	log        *logger.Logger
}

// Run starts the gRPC health server and the HTTP server (API, ops gateway,
// metrics and swagger) and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, api http.Handler, log *logger.Logger) error {
	s, err := newServers(cfg, api, log)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.health.SetServingStatus(healthService, healthpb.HealthCheckResponse_SERVING)
	s.log.Info("servers started",
		zap.String("http", cfg.HTTP.Address),
		zap.String("grpc", cfg.GRPC.Address),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		s.health.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, api http.Handler, log *logger.Logger) (*Servers, error) {
	log = logger.OrGlobal(log).Named("bootstrap")

	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	gateway := runtime.NewServeMux()
	if err := gateway.HandlePath(http.MethodGet, "/v1/health", healthHandler(healthSrv)); err != nil {
		return nil, fmt.Errorf("register health gateway: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", api)
	mux.Handle("/v1/", gateway)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var handler http.Handler = mux
	if cfg.RateLimit.RequestsPerMinute > 0 {
		handler = httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute)(handler)
	}
	handler = cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})(handler)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
		health:     healthSrv,
		log:        log,
	}, nil
}

// healthHandler exposes the gRPC health status as JSON.
func healthHandler(h healthpb.HealthServer) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		resp, err := h.Check(r.Context(), &healthpb.HealthCheckRequest{Service: healthService})
		if err != nil {
			http.Error(w, `{"status":"UNKNOWN"}`, http.StatusServiceUnavailable)
			return
		}
		body, err := protojson.Marshal(resp)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		status := http.StatusOK
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
}
