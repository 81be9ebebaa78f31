package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	fareerrors "roamly/internal/specialfares/errors"
	"roamly/pkg/config"
	"roamly/pkg/model"
)

const CollectionName = "specialfares"

// ListFilter carries only the filters explicitly present in the request;
// nil pointers mean "not filtered".
type ListFilter struct {
	IsActive      *bool
	IsFeatured    *bool
	IsLimitedTime *bool
	Limit         int
}

type SpecialFareRepository interface {
	Create(ctx context.Context, fare *model.SpecialFare) error
	FindByID(ctx context.Context, id string) (*model.SpecialFare, error)
	FindAll(ctx context.Context, filter ListFilter) ([]*model.SpecialFare, error)
	Replace(ctx context.Context, id string, fare *model.SpecialFare) error
	Deactivate(ctx context.Context, id string, at time.Time) error
}

type mongoSpecialFareRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSpecialFareRepository(cfg *config.Config) SpecialFareRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSpecialFareRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoSpecialFareRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoSpecialFareRepository) Create(ctx context.Context, fare *model.SpecialFare) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, fare)
	if err != nil {
		return fmt.Errorf("failed to create special fare: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		fare.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSpecialFareRepository) FindByID(ctx context.Context, id string) (*model.SpecialFare, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", fareerrors.ErrInvalidID, id)
	}

	var fare model.SpecialFare
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&fare)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", fareerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find special fare: %w", err)
	}
	return &fare, nil
}

func (r *mongoSpecialFareRepository) FindAll(ctx context.Context, filter ListFilter) ([]*model.SpecialFare, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := bson.M{}
	if filter.IsActive != nil {
		query["isActive"] = *filter.IsActive
	}
	if filter.IsFeatured != nil {
		query["isFeatured"] = *filter.IsFeatured
	}
	if filter.IsLimitedTime != nil {
		query["isLimitedTime"] = *filter.IsLimitedTime
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query special fares: %w", err)
	}
	defer cursor.Close(ctx)

	var fares []*model.SpecialFare
	if err := cursor.All(ctx, &fares); err != nil {
		return nil, fmt.Errorf("failed to decode special fares: %w", err)
	}
	return fares, nil
}

func (r *mongoSpecialFareRepository) Replace(ctx context.Context, id string, fare *model.SpecialFare) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", fareerrors.ErrInvalidID, id)
	}

	// _id is immutable; the replacement document must not carry one.
	replacement := *fare
	replacement.ID = ""

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, &replacement)
	if err != nil {
		return fmt.Errorf("failed to update special fare: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", fareerrors.ErrNotFound, id)
	}
	return nil
}

// Deactivate soft-deletes a fare. The document stays in the collection so the
// admin dashboard can review and reactivate past promotions.
func (r *mongoSpecialFareRepository) Deactivate(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", fareerrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"isActive":  false,
		"updatedAt": at,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate special fare: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", fareerrors.ErrNotFound, id)
	}
	return nil
}
