package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

const defaultESImage = "docker.elastic.co/elasticsearch/elasticsearch:8.12.0"

type ESContainer struct {
	Container testcontainers.Container
	Address   string
}

// NewESContainer starts a single-node Elasticsearch with security disabled
// and terminates it when tb finishes.
func NewESContainer(ctx context.Context, tb testing.TB) *ESContainer {
	tb.Helper()

	container, err := StartESContainer(ctx, defaultESImage)
	if err != nil {
		tb.Fatalf("failed to start elasticsearch container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container.Container); err != nil {
			tb.Logf("failed to terminate elasticsearch container: %v", err)
		}
	})

	return container
}

func StartESContainer(ctx context.Context, image string) (*ESContainer, error) {
	esContainer, err := elasticsearch.Run(ctx,
		image,
		elasticsearch.WithPassword(""),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/").
				WithPort("9200").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	host, err := esContainer.Host(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(esContainer)
		return nil, fmt.Errorf("failed to get elasticsearch host: %w", err)
	}

	port, err := esContainer.MappedPort(ctx, "9200")
	if err != nil {
		_ = testcontainers.TerminateContainer(esContainer)
		return nil, fmt.Errorf("failed to get elasticsearch port: %w", err)
	}

	return &ESContainer{
		Container: esContainer,
		Address:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}, nil
}
