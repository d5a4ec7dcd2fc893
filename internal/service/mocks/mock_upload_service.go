package mocks

import (
	"context"

	"mediaapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) UploadMedia(ctx context.Context, file model.DecodedFile, intent model.UploadIntent) (*model.UploadResult, error) {
	args := m.Called(ctx, file, intent)
	if res, ok := args.Get(0).(*model.UploadResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUploadService) ListAssets(ctx context.Context) ([]model.AssetRecord, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]model.AssetRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}
