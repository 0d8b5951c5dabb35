package health_service_api

import (
	"context"
	"log"
	"sort"
	"time"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Probe returns nil when the dependency is reachable.
type Probe func(ctx context.Context) error

// Server implements the gRPC health protocol on top of dependency probes.
// The empty service name aggregates every probe.
type Server struct {
	healthpb.UnimplementedHealthServer
	probes  map[string]Probe
	timeout time.Duration
}

func NewServer(probes map[string]Probe) *Server {
	return &Server{probes: probes, timeout: 2 * time.Second}
}

func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	name := req.GetService()
	if name == "" {
		for _, dep := range s.names() {
			if !s.healthy(ctx, dep) {
				return respond(healthpb.HealthCheckResponse_NOT_SERVING), nil
			}
		}
		return respond(healthpb.HealthCheckResponse_SERVING), nil
	}

	if _, ok := s.probes[name]; !ok {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}
	if !s.healthy(ctx, name) {
		return respond(healthpb.HealthCheckResponse_NOT_SERVING), nil
	}
	return respond(healthpb.HealthCheckResponse_SERVING), nil
}

func (s *Server) List(ctx context.Context, _ *healthpb.HealthListRequest) (*healthpb.HealthListResponse, error) {
	resp := &healthpb.HealthListResponse{Statuses: make(map[string]*healthpb.HealthCheckResponse, len(s.probes))}
	for _, name := range s.names() {
		st := healthpb.HealthCheckResponse_SERVING
		if !s.healthy(ctx, name) {
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
		resp.Statuses[name] = respond(st)
	}
	return resp, nil
}

func (s *Server) healthy(ctx context.Context, name string) bool {
	probe := s.probes[name]
	if probe == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := probe(ctx); err != nil {
		log.Printf("WARNING: health probe %s failed: %v", name, err)
		return false
	}
	return true
}

func (s *Server) names() []string {
	out := make([]string, 0, len(s.probes))
	for name := range s.probes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func respond(st healthpb.HealthCheckResponse_ServingStatus) *healthpb.HealthCheckResponse {
	return &healthpb.HealthCheckResponse{Status: st}
}
