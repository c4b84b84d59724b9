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

type ListRepository struct {
	coll *mongo.Collection
}

func NewListRepository(db *mongo.Database) *ListRepository {
	return &ListRepository{coll: db.Collection("lists")}
}

func (r *ListRepository) Create(ctx context.Context, l *domain.List) error {
	now := time.Now()
	l.ID = primitive.NewObjectID()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Tasks == nil {
		l.Tasks = []primitive.ObjectID{}
	}

	_, err := r.coll.InsertOne(ctx, l)
	return err
}

func (r *ListRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.List, error) {
	var l domain.List
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByBoard returns the board's lists in position order.
func (r *ListRepository) GetByBoard(ctx context.Context, boardID primitive.ObjectID) ([]*domain.List, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"board": boardID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []*domain.List
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// PushTask appends a task id to the end of the list's sequence.
func (r *ListRepository) PushTask(ctx context.Context, listID, taskID primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, listID, bson.M{
		"$push": bson.M{"tasks": taskID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// InsertTaskAt inserts a task id at the given index of the list's sequence.
// A negative index appends.
func (r *ListRepository) InsertTaskAt(ctx context.Context, listID, taskID primitive.ObjectID, index int) error {
	if index < 0 {
		return r.PushTask(ctx, listID, taskID)
	}
	_, err := r.coll.UpdateByID(ctx, listID, bson.M{
		"$push": bson.M{"tasks": bson.M{
			"$each":     bson.A{taskID},
			"$position": index,
		}},
		"$set": bson.M{"updated_at": time.Now()},
	})
	return err
}

// PullTask removes a task id from the list's sequence.
func (r *ListRepository) PullTask(ctx context.Context, listID, taskID primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, listID, bson.M{
		"$pull": bson.M{"tasks": taskID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

func (r *ListRepository) DeleteByBoard(ctx context.Context, boardID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"board": boardID})
	return err
}
