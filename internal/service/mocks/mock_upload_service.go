package mocks

import (
	"context"
	"io"

	"recipeapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.UploadResult, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResult), args.Error(1)
}

type MockIngestor struct {
	mock.Mock
}

func (m *MockIngestor) Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (model.RecordSet, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	return args.Get(0).(model.RecordSet), args.Error(1)
}

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Recommend(ctx context.Context, records model.RecordSet) (string, error) {
	args := m.Called(ctx, records)
	return args.String(0), args.Error(1)
}
