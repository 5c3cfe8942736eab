package service

import (
	"context"

	"miniecom/pkg/catalog"
	"miniecom/pkg/logger"
	"miniecom/pkg/metrics"
	"miniecom/pkg/search"
	"miniecom/search-service/internal/app/search/repository"
)

// SearchService - путь чтения: снимок каталога + ручные записи + поисковый движок
type SearchService struct {
	cache  CatalogLoader
	manual repository.ManualRepository
	engine *search.Engine
}

func NewSearchService(cache CatalogLoader, manual repository.ManualRepository, engine *search.Engine) *SearchService {
	return &SearchService{
		cache:  cache,
		manual: manual,
		engine: engine,
	}
}

// Search никогда не возвращает ошибку: недоступное хранилище ручных записей
// означает поиск только по каталогу ETL
func (s *SearchService) Search(ctx context.Context, req search.Request) search.Result {
	items := s.cache.Load(ctx)
	items = s.applyManual(ctx, items)

	result := s.engine.Search(items, req)
	metrics.RecordSearch(req.Sort, result.TotalItems)
	return result
}

func (s *SearchService) applyManual(ctx context.Context, items []catalog.Product) []catalog.Product {
	if s.manual == nil {
		return items
	}

	submissions, err := s.manual.ListSubmissions(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to list submissions, searching ETL catalog only")
		return items
	}
	corrections, err := s.manual.ListPriceCorrections(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to list price corrections, searching ETL catalog only")
		return items
	}

	return catalog.ApplyManual(items, submissions, corrections)
}
