package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"miniecom/pkg/catalog"
	"miniecom/pkg/logger"
	"miniecom/pkg/metrics"
	"miniecom/search-service/internal/app/search/entity"
	"miniecom/search-service/internal/app/search/repository"

	"github.com/google/uuid"
)

const defaultCategory = "Laptop"

var (
	// ErrInvalidSubmission - после нормализации не осталось обязательных полей
	ErrInvalidSubmission = errors.New("invalid manual record")
)

// ManualService сохраняет ручные записи пользователей.
// Запись сначала попадает в свою коллекцию, затем в общий журнал manual_dataset
type ManualService struct {
	repo repository.ManualRepository
	now  func() time.Time
}

func NewManualService(repo repository.ManualRepository) *ManualService {
	return &ManualService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *ManualService) SubmitProduct(ctx context.Context, req *entity.SubmitProductRequest) (*catalog.Submission, error) {
	submission := &catalog.Submission{
		ID:          "submission-" + uuid.New().String(),
		Timestamp:   s.now().UTC(),
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		Category:    strings.TrimSpace(req.Category),
		Marketplace: strings.TrimSpace(req.Marketplace),
		URL:         strings.TrimSpace(req.URL),
		Price:       req.Price,
		Sold:        req.Sold,
	}
	if submission.Category == "" {
		submission.Category = defaultCategory
	}

	if submission.Name == "" || submission.Brand == "" || submission.Marketplace == "" || submission.Price <= 0 {
		return nil, fmt.Errorf("%w: name, brand, marketplace and price are required", ErrInvalidSubmission)
	}
	if submission.Sold != nil && *submission.Sold < 0 {
		return nil, fmt.Errorf("%w: sold must be >= 0", ErrInvalidSubmission)
	}

	if err := s.repo.CreateSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}
	metrics.RecordManualRecord(catalog.DatasetTypeSubmission)

	s.appendDataset(ctx, submission.DatasetRecord())

	logger.Info().
		Str("id", submission.ID).
		Str("sku", submission.SKU()).
		Int64("price", submission.Price).
		Msg("Manual product submitted")

	return submission, nil
}

func (s *ManualService) SubmitPriceFeedback(ctx context.Context, req *entity.PriceFeedbackRequest) (*catalog.PriceCorrection, error) {
	correction := &catalog.PriceCorrection{
		ID:            "feedback-" + uuid.New().String(),
		Timestamp:     s.now().UTC(),
		SKU:           strings.TrimSpace(req.SKU),
		NewPrice:      req.NewPrice,
		PreviousPrice: req.PreviousPrice,
		ProductName:   strings.TrimSpace(req.ProductName),
		Marketplace:   strings.TrimSpace(req.Marketplace),
		URL:           strings.TrimSpace(req.URL),
		Note:          strings.TrimSpace(req.Note),
	}

	if correction.SKU == "" || correction.NewPrice <= 0 {
		return nil, fmt.Errorf("%w: sku and newPrice are required", ErrInvalidSubmission)
	}
	if correction.PreviousPrice != nil && *correction.PreviousPrice <= 0 {
		correction.PreviousPrice = nil
	}

	if err := s.repo.CreatePriceCorrection(ctx, correction); err != nil {
		return nil, fmt.Errorf("failed to save price correction: %w", err)
	}
	metrics.RecordManualRecord(catalog.DatasetTypePriceUpdate)

	s.appendDataset(ctx, correction.DatasetRecord())

	logger.Info().
		Str("id", correction.ID).
		Str("sku", correction.SKU).
		Int64("new_price", correction.NewPrice).
		Msg("Price feedback recorded")

	return correction, nil
}

// appendDataset - журнал вторичен, запись в коллекции уже сохранена
func (s *ManualService) appendDataset(ctx context.Context, record catalog.DatasetRecord) {
	if err := s.repo.AppendDataset(ctx, record); err != nil {
		logger.Warn().
			Err(err).
			Str("type", record.Type).
			Str("sku", record.SKU).
			Msg("Failed to append manual dataset")
	}
}
