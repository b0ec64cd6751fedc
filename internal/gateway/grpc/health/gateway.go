package health

import (
	"context"
	"fmt"
	"io"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"retrier/internal/pkg/grpcclient"
)

// Checker опрашивает стандартный grpc.health.v1.Health сервис.
type Checker struct {
	client  client
	service string
	closer  io.Closer
}

// New - проверка через готовый клиент. service пустой - состояние сервера целиком.
func New(client client, service string) *Checker {
	return &Checker{
		client:  client,
		service: service,
	}
}

// Dial создаёт соединение с address и проверку поверх него.
func Dial(address string) (*Checker, error) {
	conn, err := grpcclient.NewConnClient(address)
	if err != nil {
		return nil, err
	}

	checker := New(healthpb.NewHealthClient(conn), "")
	checker.closer = conn
	return checker, nil
}

func (c *Checker) Check(ctx context.Context) (string, error) {
	resp, err := c.client.Check(ctx, &healthpb.HealthCheckRequest{Service: c.service})
	if err != nil {
		return "", fmt.Errorf("grpc health check: %w", err)
	}

	status := resp.GetStatus()
	if status != healthpb.HealthCheckResponse_SERVING {
		return status.String(), fmt.Errorf("%w: %s", ErrNotServing, status)
	}

	return status.String(), nil
}

func (c *Checker) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
