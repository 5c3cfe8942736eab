package processor

import (
	"context"
	"errors"
	"sync"

	"miniecom/etl-service/internal/app/etl/entity"
	"miniecom/etl-service/internal/app/etl/service"
	"miniecom/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler запускает ETL по расписанию
type CronScheduler struct {
	cron   *cron.Cron
	etlSvc service.EtlServiceInterface
	wg     sync.WaitGroup
}

func NewCronScheduler(etlSvc service.EtlServiceInterface) *CronScheduler {
	cl := cronLogger{}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	return &CronScheduler{
		cron:   c,
		etlSvc: etlSvc,
	}
}

// Start регистрирует задачу и запускает cron.
// runOnStart добавляет фоновый прогон сразу после старта.
func (s *CronScheduler) Start(ctx context.Context, schedule string, runOnStart bool) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		s.runETL(ctx, entity.TriggerCron)
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	if runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runETL(ctx, entity.TriggerStartup)
		}()
	}

	return nil
}

func (s *CronScheduler) runETL(ctx context.Context, trigger entity.RunTrigger) {
	if ctx.Err() != nil {
		return
	}

	run, err := s.etlSvc.Run(ctx, trigger)
	switch {
	case errors.Is(err, service.ErrRunInProgress):
		logger.Info().Str("trigger", string(trigger)).Msg("ETL run skipped: another run in progress")
	case err != nil:
		logger.Error().Err(err).Str("trigger", string(trigger)).Msg("Scheduled ETL run failed")
	default:
		logger.Info().
			Str("trigger", string(trigger)).
			Str("run_id", run.ID.String()).
			Int("products", run.Products).
			Msg("Scheduled ETL run completed")
	}
}

// Stop ждёт завершения запущенных задач
func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.wg.Wait()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}

// cronLogger направляет сообщения robfig/cron в zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
