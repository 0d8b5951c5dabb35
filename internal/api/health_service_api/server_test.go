package health_service_api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestServer_Check_AllServing(t *testing.T) {
	s := NewServer(map[string]Probe{"database": ok, "redis": ok})

	resp, err := s.Check(context.Background(), &healthpb.HealthCheckRequest{})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestServer_Check_OneDown(t *testing.T) {
	s := NewServer(map[string]Probe{"database": ok, "kafka": down})

	resp, err := s.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	resp, err = s.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "database"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestServer_Check_UnknownService(t *testing.T) {
	s := NewServer(map[string]Probe{"database": ok})

	_, err := s.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "smtp"})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServer_List(t *testing.T) {
	s := NewServer(map[string]Probe{"database": ok, "redis": down})

	resp, err := s.List(context.Background(), &healthpb.HealthListRequest{})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatuses()["database"].GetStatus())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatuses()["redis"].GetStatus())
}
