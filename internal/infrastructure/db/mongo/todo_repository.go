package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/todo-system/internal/core/domain"
	"github.com/taskhive/todo-system/internal/core/ports"
)

const todosCollection = "todos"

type TodoRepository struct {
	coll *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{coll: db.Collection(todosCollection)}
}

type mongoTodo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Completed   bool               `bson:"completed"`
	Priority    string             `bson:"priority"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	Category    string             `bson:"category,omitempty"`
	OwnerID     primitive.ObjectID `bson:"user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mt mongoTodo) toDomain() *domain.Todo {
	t := &domain.Todo{
		ID:          mt.ID.Hex(),
		Title:       mt.Title,
		Description: mt.Description,
		Completed:   mt.Completed,
		Priority:    domain.Priority(mt.Priority),
		Category:    mt.Category,
		OwnerID:     mt.OwnerID.Hex(),
		CreatedAt:   mt.CreatedAt.UTC(),
	}
	if mt.DueDate != nil {
		due := mt.DueDate.UTC()
		t.DueDate = &due
	}
	return t
}

// ownerFilter builds the owner-scoped filter shared by every query. An
// unparsable id can never match a stored document, so it is reported as
// "not found" rather than a distinct error.
func ownerFilter(ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}
	return bson.M{"user_id": oid}, nil
}

func ownerAndIDFilter(ownerID, id string) (bson.M, error) {
	filter, err := ownerFilter(ownerID)
	if err != nil {
		return nil, err
	}
	tid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}
	filter["_id"] = tid
	return filter, nil
}

// ListByOwner returns all todos owned by ownerID sorted by creation time
// descending.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(ownerID)
	if err != nil {
		return []*domain.Todo{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []*domain.Todo{}
	for cursor.Next(ctx) {
		var mt mongoTodo
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, mt.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Create inserts a new todo document.
func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(todo.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("create todo: invalid owner id: %w", err)
	}

	doc := mongoTodo{
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		Priority:    string(todo.Priority),
		DueDate:     todo.DueDate,
		Category:    todo.Category,
		OwnerID:     oid,
		CreatedAt:   todo.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}

	created := *todo
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// Update applies patch to a single owner-scoped document via
// FindOneAndUpdate and returns the document after the update.
func (r *TodoRepository) Update(ctx context.Context, ownerID, id string, patch ports.TodoPatch) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerAndIDFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.Priority != nil {
		set["priority"] = string(*patch.Priority)
	}
	if patch.DueDate != nil {
		set["due_date"] = *patch.DueDate
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if patch.ClearDueDate {
		update["$unset"] = bson.M{"due_date": ""}
	}
	if len(update) == 0 {
		// Nothing to change: fall back to a plain owner-scoped read so the
		// caller still gets NotFound semantics.
		var mt mongoTodo
		if err := r.coll.FindOne(ctx, filter).Decode(&mt); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrTodoNotFound
			}
			return nil, fmt.Errorf("find todo: %w", err)
		}
		return mt.toDomain(), nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mt mongoTodo
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return mt.toDomain(), nil
}

// Delete removes a single owner-scoped document atomically.
func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerAndIDFilter(ownerID, id)
	if err != nil {
		return err
	}

	var mt mongoTodo
	if err := r.coll.FindOneAndDelete(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrTodoNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// Stats aggregates completion and priority counts for a single owner. An
// owner with no todos produces all-zero counts.
func (r *TodoRepository) Stats(ctx context.Context, ownerID string) (*domain.TodoStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(ownerID)
	if err != nil {
		return &domain.TodoStats{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{"$completed", 1, 0}}},
			"pending":   bson.M{"$sum": bson.M{"$cond": bson.A{"$completed", 0, 1}}},
			"high":      bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$priority", "high"}}, 1, 0}}},
			"medium":    bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$priority", "medium"}}, 1, 0}}},
			"low":       bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$priority", "low"}}, 1, 0}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []domain.TodoStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	if len(results) == 0 {
		return &domain.TodoStats{}, nil
	}
	return &results[0], nil
}

// EnsureIndexes creates the compound index backing owner-scoped listing.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
