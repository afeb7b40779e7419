package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockObjectFetcher is a mock implementation of port.ObjectFetcher.
type MockObjectFetcher struct {
	mock.Mock
}

func (m *MockObjectFetcher) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
