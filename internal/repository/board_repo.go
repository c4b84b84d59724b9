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

type BoardRepository struct {
	coll *mongo.Collection
}

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{coll: db.Collection("boards")}
}

func (r *BoardRepository) Create(ctx context.Context, b *domain.Board) error {
	now := time.Now()
	b.ID = primitive.NewObjectID()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Members == nil {
		b.Members = []primitive.ObjectID{}
	}
	if b.Lists == nil {
		b.Lists = []primitive.ObjectID{}
	}

	_, err := r.coll.InsertOne(ctx, b)
	return err
}

func (r *BoardRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Board, error) {
	var b domain.Board
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindForUser returns all boards the user owns or is a member of, most
// recently updated first.
func (r *BoardRepository) FindForUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Board, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"owner": userID},
		bson.M{"members": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var boards []*domain.Board
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// IDsForUser returns the ids of every board visible to the user.
func (r *BoardRepository) IDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"owner": userID},
		bson.M{"members": userID},
	}}
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// Update applies the given fields and bumps updated_at.
func (r *BoardRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Board, error) {
	fields["updated_at"] = time.Now()

	var b domain.Board
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BoardRepository) SetLists(ctx context.Context, id primitive.ObjectID, lists []primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"lists":      lists,
		"updated_at": time.Now(),
	}})
	return err
}

func (r *BoardRepository) AddMember(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	return err
}

func (r *BoardRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}
