package service

import (
	"context"

	"miniecom/pkg/catalog"
	"miniecom/pkg/search"
	"miniecom/search-service/internal/app/search/entity"
)

// CatalogLoader отдаёт текущий снимок каталога
type CatalogLoader interface {
	Load(ctx context.Context) []catalog.Product
	Invalidate()
}

type SearchServiceInterface interface {
	Search(ctx context.Context, req search.Request) search.Result
}

type ManualServiceInterface interface {
	SubmitProduct(ctx context.Context, req *entity.SubmitProductRequest) (*catalog.Submission, error)
	SubmitPriceFeedback(ctx context.Context, req *entity.PriceFeedbackRequest) (*catalog.PriceCorrection, error)
}
