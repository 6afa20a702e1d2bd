package contract

import (
	"context"

	"github.com/faultline/faultline/schema"
	"github.com/stretchr/testify/mock"
)

// MockTicketSource is a mock implementation of TicketSource for testing.
type MockTicketSource struct {
	mock.Mock
}

var _ TicketSource = &MockTicketSource{} // Compile-time check

// Identity implements the TicketSource interface.
func (m *MockTicketSource) Identity(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Load implements the TicketSource interface.
func (m *MockTicketSource) Load(ctx context.Context) (schema.TicketTable, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.TicketTable), args.Error(1)
}
