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

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection("tasks")}
}

// TaskFilter narrows task queries. Boards is required: it carries either the
// single requested board or every board visible to the actor.
type TaskFilter struct {
	Boards   []primitive.ObjectID
	List     *primitive.ObjectID
	Status   domain.Status
	Priority domain.Priority
	Search   string
	Page     int64
	Limit    int64
}

func (f TaskFilter) query() bson.M {
	q := bson.M{"board": bson.M{"$in": f.Boards}}
	if f.List != nil {
		q["list"] = *f.List
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	if f.Search != "" {
		q["$text"] = bson.M{"$search": f.Search}
	}
	return q
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	now := time.Now()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if t.Status == "" {
		t.Status = domain.StatusTodo
	}

	_, err := r.coll.InsertOne(ctx, t)
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error) {
	var t domain.Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Find returns the filtered page sorted by position, plus the total count.
func (r *TaskRepository) Find(ctx context.Context, f TaskFilter) ([]*domain.Task, int64, error) {
	q := f.query()

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "position", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// FindByList returns the list's tasks in position order.
func (r *TaskRepository) FindByList(ctx context.Context, listID primitive.ObjectID) ([]*domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"list": listID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) CountInList(ctx context.Context, listID primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"list": listID})
}

// Update applies the given fields and bumps updated_at.
func (r *TaskRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Task, error) {
	fields["updated_at"] = time.Now()

	var t domain.Task
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SetSuggestions stores the advisory bundle on the task.
func (r *TaskRepository) SetSuggestions(ctx context.Context, id primitive.ObjectID, s *domain.AISuggestions) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"ai_suggestions": s,
		"updated_at":     time.Now(),
	}})
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteByBoard(ctx context.Context, boardID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"board": boardID})
	return err
}

// Summaries streams the dashboard projection for every task on the given
// boards. The aggregation itself runs in memory (service/metrics.go), keeping
// it independent of the query language.
func (r *TaskRepository) Summaries(ctx context.Context, boardIDs []primitive.ObjectID) ([]domain.TaskSummary, error) {
	opts := options.Find().SetProjection(bson.M{
		"status":     1,
		"priority":   1,
		"due_date":   1,
		"created_at": 1,
		"updated_at": 1,
	})

	cursor, err := r.coll.Find(ctx, bson.M{"board": bson.M{"$in": boardIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []domain.TaskSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
