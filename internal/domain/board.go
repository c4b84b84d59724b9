package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Board struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Lists       []primitive.ObjectID `bson:"lists" json:"lists"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether the user is the owner or an explicit member.
// The owner always counts as a member for access checks.
func (b *Board) HasMember(userID primitive.ObjectID) bool {
	if b.Owner == userID {
		return true
	}
	for _, m := range b.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// IsOwner reports whether the user owns the board.
func (b *Board) IsOwner(userID primitive.ObjectID) bool {
	return b.Owner == userID
}

type List struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Board     primitive.ObjectID   `bson:"board" json:"board"`
	Tasks     []primitive.ObjectID `bson:"tasks" json:"tasks"`
	Position  int                  `bson:"position" json:"position"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

type Label struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Color     string             `bson:"color" json:"color"`
	Board     primitive.ObjectID `bson:"board" json:"board"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// DefaultListTitles are created for every new board, at positions 0..3.
var DefaultListTitles = []string{"To Do", "In Progress", "Review", "Done"}
