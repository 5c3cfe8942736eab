package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"miniecom/etl-service/internal/app/etl/entity"
	"miniecom/etl-service/internal/app/etl/repository"
	"miniecom/etl-service/internal/app/etl/util"
	"miniecom/pkg/catalog"
	"miniecom/pkg/etl"
	"miniecom/pkg/logger"
	"miniecom/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

var ErrRunInProgress = errors.New("etl run already in progress")

const catalogEventKey = "catalog"

// EtlService выполняет прогоны ETL по одному за раз
type EtlService struct {
	sources   repository.SourceRepository
	local     repository.CatalogRepository
	remote    repository.CatalogRepository
	runs      repository.RunRepository
	publisher util.MessagePublisher
	options   []etl.Option

	mu  sync.Mutex
	now func() time.Time
}

func NewEtlService(
	sources repository.SourceRepository,
	local repository.CatalogRepository,
	remote repository.CatalogRepository,
	runs repository.RunRepository,
	publisher util.MessagePublisher,
	options ...etl.Option,
) *EtlService {
	return &EtlService{
		sources:   sources,
		local:     local,
		remote:    remote,
		runs:      runs,
		publisher: publisher,
		options:   options,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run возвращает ErrRunInProgress, если другой прогон ещё не закончился.
// Запись журнала возвращается и при ошибке прогона.
func (s *EtlService) Run(ctx context.Context, trigger entity.RunTrigger) (*entity.EtlRun, error) {
	if !s.mu.TryLock() {
		metrics.EtlRunsTotal.WithLabelValues("skipped").Inc()
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()

	run := entity.NewEtlRun(trigger, s.now())
	// Журнал пишется и после отмены ctx
	auditCtx := context.WithoutCancel(ctx)

	recorded := true
	if err := s.runs.Create(auditCtx, run); err != nil {
		recorded = false
		logger.Warn().Err(err).Str("run_id", run.ID.String()).Msg("Failed to record etl run start")
	}

	logger.Info().
		Str("run_id", run.ID.String()).
		Str("trigger", string(run.Trigger)).
		Msg("ETL run started")

	report, runErr := s.execute(ctx, run)
	run.Finish(s.now(), runErr)

	if recorded {
		if err := s.runs.Update(auditCtx, run); err != nil {
			logger.Warn().Err(err).Str("run_id", run.ID.String()).Msg("Failed to record etl run result")
		}
	}

	metrics.RecordEtlRun(
		string(run.Status),
		run.Duration(),
		run.FilesTotal-run.FilesSkipped,
		run.FilesSkipped,
		run.RowsAccepted,
		run.RowsDropped,
		run.Products,
	)

	if runErr != nil {
		logger.Error().
			Err(runErr).
			Str("run_id", run.ID.String()).
			Dur("duration", run.Duration()).
			Msg("ETL run failed")
		return run, runErr
	}

	logger.Info().
		Str("run_id", run.ID.String()).
		Int("files", report.FilesTotal).
		Int("files_skipped", report.FilesSkipped).
		Int("rows", report.RowsAccepted).
		Int("rows_dropped", report.RowsDropped).
		Int("products", len(report.Items)).
		Dur("duration", run.Duration()).
		Msg("ETL run completed")

	return run, nil
}

func (s *EtlService) LatestRun(ctx context.Context) (*entity.EtlRun, error) {
	return s.runs.GetLatest(ctx)
}

func (s *EtlService) execute(ctx context.Context, run *entity.EtlRun) (*etl.Report, error) {
	keys, err := s.sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	previous := s.previousPrices(ctx)

	report, err := etl.NewPipeline(s.sources, s.options...).Run(ctx, keys)
	if err != nil {
		return nil, err
	}
	run.FilesTotal = report.FilesTotal
	run.FilesSkipped = report.FilesSkipped
	run.RowsAccepted = report.RowsAccepted
	run.RowsDropped = report.RowsDropped
	run.Products = len(report.Items)

	payload := catalog.NewPayload(report.Items, report.GeneratedAt)
	if err := s.local.Save(ctx, payload); err != nil {
		return report, fmt.Errorf("failed to save catalog file: %w", err)
	}
	if err := s.remote.Save(ctx, payload); err != nil {
		return report, fmt.Errorf("failed to save remote catalog: %w", err)
	}

	s.publish(ctx, run, payload, previous)
	return report, nil
}

// previousPrices - цены уже опубликованного каталога для событий PRICE_CHANGED
func (s *EtlService) previousPrices(ctx context.Context) map[string]int64 {
	payload, err := s.local.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrCatalogNotFound) {
			logger.Warn().Err(err).Msg("Failed to load previous catalog, price changes will not be published")
		}
		return nil
	}

	prices := make(map[string]int64, len(payload.Items))
	for _, p := range payload.Items {
		prices[p.SKU] = p.Price
	}
	return prices
}

// publish отправляет CATALOG_PUBLISHED и PRICE_CHANGED. Ошибки Kafka только логируются
func (s *EtlService) publish(ctx context.Context, run *entity.EtlRun, payload catalog.Payload, previous map[string]int64) {
	fingerprint, err := fingerprintOf(payload)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to fingerprint catalog")
	}

	now := s.now()
	events := []entity.CatalogEvent{{
		EventType:   entity.EventCatalogPublished,
		Products:    len(payload.Items),
		Fingerprint: fingerprint,
		RunID:       run.ID,
		Timestamp:   now,
	}}

	for _, p := range payload.Items {
		old, ok := previous[p.SKU]
		if !ok || old == p.Price {
			continue
		}
		events = append(events, entity.CatalogEvent{
			EventType: entity.EventPriceChanged,
			SKU:       p.SKU,
			Name:      p.Name,
			OldPrice:  old,
			NewPrice:  p.Price,
			RunID:     run.ID,
			Timestamp: now,
		})
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			logger.Warn().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal catalog event")
			continue
		}
		key := event.SKU
		if key == "" {
			key = catalogEventKey
		}
		messages = append(messages, kafka.Message{Key: []byte(key), Value: value, Time: now})
	}

	if err := s.publisher.PublishMessages(ctx, messages); err != nil {
		logger.Warn().
			Err(err).
			Str("run_id", run.ID.String()).
			Int("events", len(messages)).
			Msg("Failed to publish catalog events")
		return
	}

	logger.Debug().
		Str("run_id", run.ID.String()).
		Int("price_changes", len(messages)-1).
		Msg("Catalog events published")
}

func fingerprintOf(payload catalog.Payload) (string, error) {
	data, err := payload.Encode()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}
