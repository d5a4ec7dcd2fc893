package mocks

import (
	"context"
	"time"

	"mediaapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Put(ctx context.Context, key string, data []byte, opt storage.PutOptions) (storage.UploadedObject, error) {
	args := m.Called(ctx, key, data, opt)
	return args.Get(0).(storage.UploadedObject), args.Error(1)
}

func (m *MockBackend) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) Transfer(ctx context.Context, url string, body []byte, contentType string) error {
	args := m.Called(ctx, url, body, contentType)
	return args.Error(0)
}

func (m *MockBackend) ResolveURLs(ctx context.Context, keys []string) (map[string]string, error) {
	args := m.Called(ctx, keys)
	if f, ok := args.Get(0).(func(context.Context, []string) map[string]string); ok {
		return f(ctx, keys), args.Error(1)
	}
	if urls, ok := args.Get(0).(map[string]string); ok {
		return urls, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) DeleteKeys(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockBackend) List(ctx context.Context) ([]storage.FileEntry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]storage.FileEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) PublicURL(key string) string {
	args := m.Called(key)
	if f, ok := args.Get(0).(func(string) string); ok {
		return f(key)
	}
	return args.String(0)
}

func (m *MockBackend) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
