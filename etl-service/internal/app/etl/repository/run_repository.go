package repository

import (
	"context"
	"errors"
	"fmt"

	"miniecom/etl-service/internal/app/etl/entity"
	"miniecom/pkg/metrics"

	"gorm.io/gorm"
)

const runsTable = "etl_runs"

// runRepository реализует RunRepository через GORM
type runRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(ctx context.Context, run *entity.EtlRun) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, runsTable)
	defer timer.ObserveDuration()

	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create etl run: %w", err)
	}
	return nil
}

// Update записывает итог прогона: статус, счётчики, ошибку и время окончания
func (r *runRepository) Update(ctx context.Context, run *entity.EtlRun) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, runsTable)
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).
		Model(&entity.EtlRun{}).
		Where("id = ?", run.ID).
		Updates(map[string]interface{}{
			"status":        run.Status,
			"files_total":   run.FilesTotal,
			"files_skipped": run.FilesSkipped,
			"rows_accepted": run.RowsAccepted,
			"rows_dropped":  run.RowsDropped,
			"products":      run.Products,
			"error":         run.Error,
			"finished_at":   run.FinishedAt,
		})

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update etl run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.ID)
	}
	return nil
}

func (r *runRepository) GetLatest(ctx context.Context) (*entity.EtlRun, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, runsTable)
	defer timer.ObserveDuration()

	var run entity.EtlRun
	result := r.db.WithContext(ctx).Order("started_at DESC").First(&run)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get latest etl run: %w", result.Error)
	}
	return &run, nil
}
