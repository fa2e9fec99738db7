package handlers_test

import (
	"context"

	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryStore) GetByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryStore) Create(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryStore) Update(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockKeywordStore struct {
	mock.Mock
}

func (m *MockKeywordStore) ListActive(ctx context.Context, category string) ([]repository.KeywordRow, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.KeywordRow), args.Error(1)
}

func (m *MockKeywordStore) URLsWithLatestScan(ctx context.Context, keywordID string) ([]repository.URLScanRow, error) {
	args := m.Called(ctx, keywordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.URLScanRow), args.Error(1)
}

func (m *MockKeywordStore) GetByID(ctx context.Context, id string) (*models.Keyword, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Keyword), args.Error(1)
}

func (m *MockKeywordStore) Create(ctx context.Context, keyword *models.Keyword) error {
	return m.Called(ctx, keyword).Error(0)
}

func (m *MockKeywordStore) Update(ctx context.Context, keyword *models.Keyword) error {
	return m.Called(ctx, keyword).Error(0)
}

func (m *MockKeywordStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockKeywordStore) BulkCreate(ctx context.Context, entries []repository.BulkEntry) (*repository.BulkResult, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BulkResult), args.Error(1)
}

type MockURLStore struct {
	mock.Mock
}

func (m *MockURLStore) List(ctx context.Context, keyword string) ([]repository.URLListRow, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.URLListRow), args.Error(1)
}

func (m *MockURLStore) GetByID(ctx context.Context, id string) (*models.KeywordURL, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.KeywordURL), args.Error(1)
}

func (m *MockURLStore) Create(ctx context.Context, url *models.KeywordURL) error {
	return m.Called(ctx, url).Error(0)
}

func (m *MockURLStore) Update(ctx context.Context, url *models.KeywordURL) error {
	return m.Called(ctx, url).Error(0)
}

func (m *MockURLStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockScanStore struct {
	mock.Mock
}

func (m *MockScanStore) KeywordStats(ctx context.Context, category string) ([]repository.KeywordStatRow, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.KeywordStatRow), args.Error(1)
}

func (m *MockScanStore) Sessions(ctx context.Context, category string, limit int) ([]models.SessionPerformance, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SessionPerformance), args.Error(1)
}

func (m *MockScanStore) Trends(ctx context.Context, category string, days, limit int) ([]repository.TrendRow, error) {
	args := m.Called(ctx, category, days, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TrendRow), args.Error(1)
}
