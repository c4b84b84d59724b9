package service

import (
	"errors"
	"testing"

	"taskboard/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthorize(t *testing.T) {
	owner := primitive.NewObjectID()
	member := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	board := &domain.Board{
		ID:      primitive.NewObjectID(),
		Owner:   owner,
		Members: []primitive.ObjectID{owner, member},
	}

	cases := []struct {
		name  string
		actor primitive.ObjectID
		want  error
	}{
		{"owner", owner, nil},
		{"member", member, nil},
		{"stranger", stranger, domain.ErrAccessDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Authorize(board, tc.actor); !errors.Is(err, tc.want) {
				t.Fatalf("Authorize(%s) = %v; want %v", tc.name, err, tc.want)
			}
		})
	}
}

func TestAuthorizeOwnerNotInMembers(t *testing.T) {
	// ownership alone grants access even when the owner is missing from
	// the member list
	owner := primitive.NewObjectID()
	board := &domain.Board{ID: primitive.NewObjectID(), Owner: owner}

	if err := Authorize(board, owner); err != nil {
		t.Fatalf("Authorize(owner) = %v; want nil", err)
	}
}

func TestAuthorizeNilBoard(t *testing.T) {
	if err := Authorize(nil, primitive.NewObjectID()); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("Authorize(nil board) = %v; want ErrBoardNotFound", err)
	}
	if err := AuthorizeOwner(nil, primitive.NewObjectID()); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("AuthorizeOwner(nil board) = %v; want ErrBoardNotFound", err)
	}
}

func TestAuthorizeOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	member := primitive.NewObjectID()

	board := &domain.Board{
		ID:      primitive.NewObjectID(),
		Owner:   owner,
		Members: []primitive.ObjectID{owner, member},
	}

	if err := AuthorizeOwner(board, owner); err != nil {
		t.Fatalf("AuthorizeOwner(owner) = %v; want nil", err)
	}
	if err := AuthorizeOwner(board, member); !errors.Is(err, domain.ErrOwnerOnly) {
		t.Fatalf("AuthorizeOwner(member) = %v; want ErrOwnerOnly", err)
	}
}
