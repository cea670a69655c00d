package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthPollMin   = 100 * time.Millisecond
	healthPollMax   = time.Second
	healthCheckCall = time.Second
)

// NewClient opens a lazily connecting plaintext client for a local gram
// health endpoint, traced through otelgrpc.
func NewClient(addr string) (*gogrpc.ClientConn, error) {
	conn, err := gogrpc.NewClient(addr,
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, fmt.Errorf("create gRPC client for %s: %w", addr, err)
	}
	return conn, nil
}

// ProbeHealth connects to addr and waits for service to report SERVING.
// timeout bounds the whole probe when positive.
func ProbeHealth(ctx context.Context, addr, service string, timeout time.Duration, logf func(string, ...any)) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	conn, err := NewClient(addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	return WaitForHealth(ctx, conn, service, logf)
}

// WaitForHealth polls the health service on conn until service reports
// SERVING or ctx ends. The poll interval doubles up to one second.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	client := grpc_health_v1.NewHealthClient(conn)
	wait := healthPollMin
	for {
		status, err := checkHealth(ctx, client, service)
		switch {
		case err != nil:
			logf("health %q at %s: %v", service, conn.Target(), err)
		case status == grpc_health_v1.HealthCheckResponse_SERVING:
			logf("health %q at %s: SERVING", service, conn.Target())
			return nil
		default:
			logf("health %q at %s: %s", service, conn.Target(), status)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("wait for health %q: %w", service, ctx.Err())
		case <-timer.C:
		}
		wait = min(wait*2, healthPollMax)
	}
}

func checkHealth(ctx context.Context, client grpc_health_v1.HealthClient, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, healthCheckCall)
	defer cancel()
	resp, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
