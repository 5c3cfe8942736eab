package mocks

import (
	"context"

	"miniecom/etl-service/internal/app/etl/entity"
	"miniecom/pkg/catalog"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MockSourceRepository мок для SourceRepository
type MockSourceRepository struct {
	mock.Mock
}

func (m *MockSourceRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSourceRepository) Read(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCatalogRepository мок для CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Save(ctx context.Context, payload catalog.Payload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockCatalogRepository) Load(ctx context.Context) (*catalog.Payload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Payload), args.Error(1)
}

// MockRunRepository мок для RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Create(ctx context.Context, run *entity.EtlRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) Update(ctx context.Context, run *entity.EtlRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) GetLatest(ctx context.Context) (*entity.EtlRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EtlRun), args.Error(1)
}

// MockMessagePublisher мок для util.MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) PublishMessages(ctx context.Context, messages []kafka.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
