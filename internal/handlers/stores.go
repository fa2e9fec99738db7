package handlers

import (
	"context"

	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
)

// Store interfaces let handler tests substitute mocks for the concrete
// repositories.

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

type KeywordStore interface {
	ListActive(ctx context.Context, category string) ([]repository.KeywordRow, error)
	URLsWithLatestScan(ctx context.Context, keywordID string) ([]repository.URLScanRow, error)
	GetByID(ctx context.Context, id string) (*models.Keyword, error)
	Create(ctx context.Context, keyword *models.Keyword) error
	Update(ctx context.Context, keyword *models.Keyword) error
	Delete(ctx context.Context, id string) error
	BulkCreate(ctx context.Context, entries []repository.BulkEntry) (*repository.BulkResult, error)
}

type URLStore interface {
	List(ctx context.Context, keyword string) ([]repository.URLListRow, error)
	GetByID(ctx context.Context, id string) (*models.KeywordURL, error)
	Create(ctx context.Context, url *models.KeywordURL) error
	Update(ctx context.Context, url *models.KeywordURL) error
	Delete(ctx context.Context, id string) error
}

type ScanStore interface {
	KeywordStats(ctx context.Context, category string) ([]repository.KeywordStatRow, error)
	Sessions(ctx context.Context, category string, limit int) ([]models.SessionPerformance, error)
	Trends(ctx context.Context, category string, days, limit int) ([]repository.TrendRow, error)
}
