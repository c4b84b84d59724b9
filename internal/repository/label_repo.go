package repository

import (
	"context"
	"time"

	"taskboard/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LabelRepository struct {
	coll *mongo.Collection
}

func NewLabelRepository(db *mongo.Database) *LabelRepository {
	return &LabelRepository{coll: db.Collection("labels")}
}

func (r *LabelRepository) Create(ctx context.Context, l *domain.Label) error {
	now := time.Now()
	l.ID = primitive.NewObjectID()
	l.CreatedAt = now
	l.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, l)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateLabel
	}
	return err
}

func (r *LabelRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Label, error) {
	var l domain.Label
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrLabelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LabelRepository) GetByBoard(ctx context.Context, boardID primitive.ObjectID) ([]*domain.Label, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"board": boardID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var labels []*domain.Label
	if err := cursor.All(ctx, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *LabelRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrLabelNotFound
	}
	return nil
}

func (r *LabelRepository) DeleteByBoard(ctx context.Context, boardID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"board": boardID})
	return err
}
