// Package server реализует gRPC-сервер проверки состояния сервиса.
//
// HealthServer периодически опрашивает зависимости (redis, postgres) и выставляет
// статус SERVING или NOT_SERVING по стандартному протоколу grpc.health.v1.
package server

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
)

// ServiceName - имя сервиса в протоколе health.
const ServiceName = "nulltracker.premium.v1.Checkout"

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer хранит статусы сервиса и обновляет их по результатам проверок.
type HealthServer struct {
	health   *health.Server
	checks   map[string]Pinger
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger
}

// NewHealthServer создает новый экземпляр HealthServer. До первой проверки статус NOT_SERVING.
func NewHealthServer(checks map[string]Pinger, interval time.Duration, logger *slog.Logger) *HealthServer {
	hs := &HealthServer{
		health:   health.NewServer(),
		checks:   checks,
		interval: interval,
		timeout:  interval / 2,
		log:      logger,
	}
	hs.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

// Register регистрирует сервис health на gRPC-сервере.
func (s *HealthServer) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, s.health)
}

// Check опрашивает все зависимости и возвращает ошибки по именам.
func (s *HealthServer) Check(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result := make(map[string]error, len(s.checks))
	for name, p := range s.checks {
		result[name] = p.Ping(ctx)
	}
	return result
}

// Refresh выполняет проверку и обновляет статус.
func (s *HealthServer) Refresh(ctx context.Context) bool {
	const op = "server.HealthServer.Refresh"

	results := s.Check(ctx)
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	serving := true
	for _, name := range names {
		if err := results[name]; err != nil {
			serving = false
			s.log.Warn("dependency is unavailable", sl.Op(op), slog.String("dependency", name), sl.Err(err))
		}
	}

	status := healthpb.HealthCheckResponse_SERVING
	if !serving {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
	s.health.SetServingStatus("", status)
	return serving
}

// Run обновляет статус раз в interval до отмены ctx.
func (s *HealthServer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}
