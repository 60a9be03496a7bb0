package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brettbedarf/fakefs/sources"
)

// MockProvider implements sources.Provider for testing
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Fetch(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if data := args.Get(0); data != nil {
		return data.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

var _ sources.Provider = (*MockProvider)(nil)
