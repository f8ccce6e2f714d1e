package history

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify/mock implementation of Store.
//
// Example usage:
//
//	store := new(MockStore)
//	store.On("Get", mock.Anything, "--named").Return([]string{"foo"}, nil)
//	store.On("Set", mock.Anything, "--named", []string{"bar", "foo"}).Return(nil)
type MockStore struct {
	mock.Mock
}

// Get returns the mocked values for key.
func (m *MockStore) Get(ctx context.Context, key string) ([]string, error) {
	args := m.Called(ctx, key)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

// Set records the call and returns the mocked error.
func (m *MockStore) Set(ctx context.Context, key string, values []string) error {
	args := m.Called(ctx, key, values)
	return args.Error(0)
}

// Close returns the mocked error.
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
