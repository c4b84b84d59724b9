package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority value in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Statuses lists every status value in workflow order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// AISuggestions is the advisory bundle attached to a task.
type AISuggestions struct {
	SuggestedPriority   Priority   `bson:"suggested_priority,omitempty" json:"suggested_priority,omitempty"`
	SuggestedDueDate    *time.Time `bson:"suggested_due_date,omitempty" json:"suggested_due_date,omitempty"`
	ImprovedDescription string     `bson:"improved_description,omitempty" json:"improved_description,omitempty"`
	EstimatedComplexity int        `bson:"estimated_complexity,omitempty" json:"estimated_complexity,omitempty"`
}

type Task struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	List        primitive.ObjectID   `bson:"list" json:"list"`
	// Board duplicates List.Board so board-wide queries avoid a join.
	// It must only change together with List (see the move operation).
	Board          primitive.ObjectID   `bson:"board" json:"board"`
	AssignedTo     []primitive.ObjectID `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	Labels         []primitive.ObjectID `bson:"labels,omitempty" json:"labels,omitempty"`
	Priority       Priority             `bson:"priority" json:"priority"`
	Status         Status               `bson:"status" json:"status"`
	DueDate        *time.Time           `bson:"due_date,omitempty" json:"due_date,omitempty"`
	EstimatedHours *float64             `bson:"estimated_hours,omitempty" json:"estimated_hours,omitempty"`
	ActualHours    *float64             `bson:"actual_hours,omitempty" json:"actual_hours,omitempty"`
	Position       int                  `bson:"position" json:"position"`
	AISuggestions  *AISuggestions       `bson:"ai_suggestions,omitempty" json:"ai_suggestions,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

// TaskSummary carries the fields the dashboard aggregation needs, so the
// aggregation can run over plain slices without touching the store.
type TaskSummary struct {
	ID        primitive.ObjectID `bson:"_id"`
	Status    Status             `bson:"status"`
	Priority  Priority           `bson:"priority"`
	DueDate   *time.Time         `bson:"due_date,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}
