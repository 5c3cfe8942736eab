package etl

import (
	"context"
	"fmt"
	"time"

	"miniecom/pkg/catalog"
	"miniecom/pkg/forecast"
	"miniecom/pkg/logger"
)

// Reader отдаёт содержимое исходного файла по ключу (путь или ключ хранилища)
type Reader interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

type HintFunc func(key string) Hint

type Option func(*Pipeline)

// WithHintFunc заменяет разбор подсказок по пути, например на InferHintFromKey
func WithHintFunc(fn HintFunc) Option {
	return func(p *Pipeline) {
		p.hint = fn
	}
}

type Pipeline struct {
	reader Reader
	hint   HintFunc
}

func NewPipeline(reader Reader, opts ...Option) *Pipeline {
	p := &Pipeline{
		reader: reader,
		hint:   InferHint,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Report - результат прогона вместе со счётчиками для журнала запусков
type Report struct {
	Items        []catalog.Product
	FilesTotal   int
	FilesSkipped int
	RowsAccepted int
	RowsDropped  int
	GeneratedAt  time.Time
}

// Run обрабатывает файлы последовательно. Ошибка чтения или разбора одного
// файла не прерывает прогон: файл пропускается и попадает в FilesSkipped.
// Прерывает прогон только отмена контекста.
func (p *Pipeline) Run(ctx context.Context, keys []string) (*Report, error) {
	log := logger.Component("etl")
	acc := NewAccumulator()
	report := &Report{FilesTotal: len(keys)}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("etl run cancelled: %w", err)
		}

		text, err := p.reader.Read(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("file", key).Msg("Skip source file: read failed")
			report.FilesSkipped++
			continue
		}

		rows, dropped, err := parseCSV(text, p.hint(key))
		if err != nil {
			log.Warn().Err(err).Str("file", key).Msg("Skip source file: malformed csv")
			report.FilesSkipped++
			continue
		}

		for _, row := range rows {
			acc.Add(row)
		}
		report.RowsAccepted += len(rows)
		report.RowsDropped += dropped

		log.Debug().
			Str("file", key).
			Int("rows", len(rows)).
			Int("dropped", dropped).
			Msg("Source file processed")
	}

	finalized := acc.Finalize()
	report.Items = make([]catalog.Product, 0, len(finalized))
	for _, fp := range finalized {
		report.Items = append(report.Items, Enrich(fp))
	}
	report.GeneratedAt = time.Now().UTC()

	return report, nil
}

// Enrich превращает итоговый ряд в запись каталога с прогнозом
func Enrich(fp FinalizedProduct) catalog.Product {
	values := make([]float64, len(fp.Series))
	for i, v := range fp.Series {
		values[i] = float64(v)
	}
	result := forecast.Analyze(values)

	history := make([]int64, len(fp.Series))
	copy(history, fp.Series)

	return catalog.Product{
		SKU:           fp.Meta.SKU,
		Name:          fp.Meta.Name,
		Brand:         fp.Meta.Brand,
		Category:      fp.Meta.Category,
		Marketplace:   fp.Meta.Marketplace,
		URL:           fp.Meta.URL,
		Sold:          fp.Meta.Sold,
		Price:         fp.LatestPrice,
		Trend:         result.Trend,
		Forecast7:     result.Forecast7,
		ChangePercent: result.ChangePercent,
		Direction:     result.Direction,
		Accuracy:      result.Accuracy,
		IsOnSale:      result.IsOnSale,
		History:       history,
		Source:        catalog.SourceETL,
	}
}
