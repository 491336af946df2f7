package testutil

import (
	"context"

	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient is a mock implementation of postgres client for testing
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function without a real transaction. The
// in-memory stores are the unit under test, not transactional semantics.
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
