package service

import (
	"context"

	"miniecom/etl-service/internal/app/etl/entity"
)

// EtlServiceInterface определяет интерфейс запуска ETL
type EtlServiceInterface interface {
	// Run выполняет полный прогон: CSV -> каталог -> хранилища -> события
	Run(ctx context.Context, trigger entity.RunTrigger) (*entity.EtlRun, error)
	// LatestRun возвращает последнюю запись журнала запусков
	LatestRun(ctx context.Context) (*entity.EtlRun, error)
}
