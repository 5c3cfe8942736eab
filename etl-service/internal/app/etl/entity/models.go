package entity

import (
	"time"

	"github.com/google/uuid"
)

// EtlRun - запись журнала запусков ETL
type EtlRun struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Trigger      RunTrigger `json:"trigger" gorm:"type:varchar(20);not null"`
	Status       RunStatus  `json:"status" gorm:"type:varchar(20);not null"`
	FilesTotal   int        `json:"files_total" gorm:"not null"`
	FilesSkipped int        `json:"files_skipped" gorm:"not null"`
	RowsAccepted int        `json:"rows_accepted" gorm:"not null"`
	RowsDropped  int        `json:"rows_dropped" gorm:"not null"`
	Products     int        `json:"products" gorm:"not null"`
	Error        string     `json:"error,omitempty" gorm:"type:text"`
	StartedAt    time.Time  `json:"started_at" gorm:"not null;index"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

func (EtlRun) TableName() string {
	return "etl_runs"
}

type RunTrigger string

const (
	TriggerCron    RunTrigger = "cron"
	TriggerManual  RunTrigger = "manual"
	TriggerStartup RunTrigger = "startup"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// NewEtlRun создаёт запись в статусе running
func NewEtlRun(trigger RunTrigger, startedAt time.Time) *EtlRun {
	return &EtlRun{
		ID:        uuid.New(),
		Trigger:   trigger,
		Status:    RunStatusRunning,
		StartedAt: startedAt,
	}
}

// Finish закрывает запись. err == nil означает успешный прогон
func (r *EtlRun) Finish(finishedAt time.Time, err error) {
	r.FinishedAt = &finishedAt
	if err != nil {
		r.Status = RunStatusFailed
		r.Error = err.Error()
		return
	}
	r.Status = RunStatusSucceeded
	r.Error = ""
}

func (r *EtlRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Типы событий в топике catalog_events
const (
	EventCatalogPublished = "CATALOG_PUBLISHED"
	EventPriceChanged     = "PRICE_CHANGED"
)

// CatalogEvent - событие о новом каталоге или изменении цены товара
type CatalogEvent struct {
	EventType   string    `json:"event_type"`
	SKU         string    `json:"sku,omitempty"`
	Name        string    `json:"name,omitempty"`
	OldPrice    int64     `json:"old_price,omitempty"`
	NewPrice    int64     `json:"new_price,omitempty"`
	Products    int       `json:"products,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	RunID       uuid.UUID `json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
}
