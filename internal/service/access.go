package service

import (
	"taskboard/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Authorize allows the actor when they own the board or appear in its member
// set. Every board- and task-scoped operation goes through here first.
func Authorize(board *domain.Board, actor primitive.ObjectID) error {
	if board == nil {
		return domain.ErrBoardNotFound
	}
	if !board.HasMember(actor) {
		return domain.ErrAccessDenied
	}
	return nil
}

// AuthorizeOwner allows only the board owner. Used for board metadata
// updates, deletion and membership changes.
func AuthorizeOwner(board *domain.Board, actor primitive.ObjectID) error {
	if board == nil {
		return domain.ErrBoardNotFound
	}
	if !board.IsOwner(actor) {
		return domain.ErrOwnerOnly
	}
	return nil
}
