package mocks

import (
	"context"

	"miniecom/pkg/catalog"

	"github.com/stretchr/testify/mock"
)

// MockLocalCatalogRepository мок для LocalCatalogRepository
type MockLocalCatalogRepository struct {
	mock.Mock
}

func (m *MockLocalCatalogRepository) Fingerprint(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockLocalCatalogRepository) Load(ctx context.Context) (*catalog.Payload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Payload), args.Error(1)
}

// MockManualRepository мок для ManualRepository
type MockManualRepository struct {
	mock.Mock
}

func (m *MockManualRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockManualRepository) CreateSubmission(ctx context.Context, submission *catalog.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockManualRepository) CreatePriceCorrection(ctx context.Context, correction *catalog.PriceCorrection) error {
	args := m.Called(ctx, correction)
	return args.Error(0)
}

func (m *MockManualRepository) AppendDataset(ctx context.Context, record catalog.DatasetRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockManualRepository) ListSubmissions(ctx context.Context) ([]catalog.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Submission), args.Error(1)
}

func (m *MockManualRepository) ListPriceCorrections(ctx context.Context) ([]catalog.PriceCorrection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.PriceCorrection), args.Error(1)
}

// MockRemoteCatalog мок для util.RemoteCatalog
type MockRemoteCatalog struct {
	mock.Mock
}

func (m *MockRemoteCatalog) GetCatalog(ctx context.Context) (*catalog.Payload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Payload), args.Error(1)
}

func (m *MockRemoteCatalog) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRemoteCatalog) Close() error {
	args := m.Called()
	return args.Error(0)
}
