package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func dial(t *testing.T, hs *HealthServer) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	hs.Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func status(t *testing.T, client healthpb.HealthClient) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthServer_Refresh(t *testing.T) {
	var redisErr error
	hs := NewHealthServer(map[string]Pinger{
		"redis":    pingerFunc(func(context.Context) error { return redisErr }),
		"postgres": pingerFunc(func(context.Context) error { return nil }),
	}, time.Second, newNoopLogger())
	client := dial(t, hs)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client))

	assert.True(t, hs.Refresh(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client))

	redisErr = errors.New("connection refused")
	assert.False(t, hs.Refresh(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client))
}

func TestHealthServer_Check(t *testing.T) {
	hs := NewHealthServer(map[string]Pinger{
		"redis": pingerFunc(func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			if !ok {
				return errors.New("no deadline")
			}
			return nil
		}),
		"postgres": pingerFunc(func(context.Context) error { return errors.New("down") }),
	}, time.Second, newNoopLogger())

	res := hs.Check(context.Background())
	require.Len(t, res, 2)
	assert.NoError(t, res["redis"])
	assert.EqualError(t, res["postgres"], "down")
}

func TestHealthServer_RunStopsOnCancel(t *testing.T) {
	hs := NewHealthServer(map[string]Pinger{}, 10*time.Millisecond, newNoopLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hs.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
