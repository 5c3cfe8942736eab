package repository

import (
	"context"
	"fmt"

	"miniecom/pkg/catalog"
	"miniecom/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	submissionsCollection = "user_submissions"
	correctionsCollection = "price_feedback"
	datasetCollection     = "manual_dataset"
)

type manualRepository struct {
	submissions *mongo.Collection
	corrections *mongo.Collection
	dataset     *mongo.Collection
}

// NewManualRepository создает репозиторий ручных записей поверх трёх коллекций:
// user_submissions, price_feedback и общий журнал manual_dataset
func NewManualRepository(db *mongo.Database) ManualRepository {
	return &manualRepository{
		submissions: db.Collection(submissionsCollection),
		corrections: db.Collection(correctionsCollection),
		dataset:     db.Collection(datasetCollection),
	}
}

// EnsureIndexes создает индексы по timestamp и sku.
// Ошибка создания индекса только логируется: индекс может уже существовать
func (r *manualRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection *mongo.Collection
		model      mongo.IndexModel
	}{
		{r.submissions, mongo.IndexModel{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("timestamp_idx"),
		}},
		{r.corrections, mongo.IndexModel{
			Keys:    bson.D{{Key: "sku", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("sku_timestamp_idx"),
		}},
		{r.dataset, mongo.IndexModel{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("type_timestamp_idx"),
		}},
	}

	for _, idx := range indexes {
		if _, err := idx.collection.Indexes().CreateOne(ctx, idx.model); err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("failed to create indexes: %w", ctx.Err())
			}
			logger.Warn().
				Err(err).
				Str("collection", idx.collection.Name()).
				Msg("Failed to create index")
		}
	}
	return nil
}

func (r *manualRepository) CreateSubmission(ctx context.Context, submission *catalog.Submission) error {
	if _, err := r.submissions.InsertOne(ctx, submission); err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *manualRepository) CreatePriceCorrection(ctx context.Context, correction *catalog.PriceCorrection) error {
	if _, err := r.corrections.InsertOne(ctx, correction); err != nil {
		return fmt.Errorf("failed to create price correction: %w", err)
	}
	return nil
}

func (r *manualRepository) AppendDataset(ctx context.Context, record catalog.DatasetRecord) error {
	if _, err := r.dataset.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to append manual dataset: %w", err)
	}
	return nil
}

func (r *manualRepository) ListSubmissions(ctx context.Context) ([]catalog.Submission, error) {
	cursor, err := r.submissions.Find(ctx, bson.M{}, byTimestamp())
	if err != nil {
		return nil, fmt.Errorf("failed to find submissions: %w", err)
	}
	defer cursor.Close(ctx)

	submissions := []catalog.Submission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}
	return submissions, nil
}

func (r *manualRepository) ListPriceCorrections(ctx context.Context) ([]catalog.PriceCorrection, error) {
	cursor, err := r.corrections.Find(ctx, bson.M{}, byTimestamp())
	if err != nil {
		return nil, fmt.Errorf("failed to find price corrections: %w", err)
	}
	defer cursor.Close(ctx)

	corrections := []catalog.PriceCorrection{}
	if err := cursor.All(ctx, &corrections); err != nil {
		return nil, fmt.Errorf("failed to decode price corrections: %w", err)
	}
	return corrections, nil
}

func byTimestamp() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
}
