package service

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BoardService owns board lifecycle: creation with default lists, owner-only
// mutations and the cascade delete.
type BoardService struct {
	boards *repository.BoardRepository
	lists  *repository.ListRepository
	tasks  *repository.TaskRepository
	labels *repository.LabelRepository
	users  *repository.UserRepository
}

func NewBoardService(
	boards *repository.BoardRepository,
	lists *repository.ListRepository,
	tasks *repository.TaskRepository,
	labels *repository.LabelRepository,
	users *repository.UserRepository,
) *BoardService {
	return &BoardService{boards: boards, lists: lists, tasks: tasks, labels: labels, users: users}
}

// Create stores the board and its four default lists at positions 0..3.
func (s *BoardService) Create(ctx context.Context, owner primitive.ObjectID, title, description string) (*domain.Board, []*domain.List, error) {
	board := &domain.Board{
		Title:       title,
		Description: description,
		Owner:       owner,
		Members:     []primitive.ObjectID{owner},
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, nil, err
	}

	lists := make([]*domain.List, 0, len(domain.DefaultListTitles))
	listIDs := make([]primitive.ObjectID, 0, len(domain.DefaultListTitles))
	for i, title := range domain.DefaultListTitles {
		l := &domain.List{
			Title:    title,
			Board:    board.ID,
			Position: i,
		}
		if err := s.lists.Create(ctx, l); err != nil {
			return nil, nil, err
		}
		lists = append(lists, l)
		listIDs = append(listIDs, l.ID)
	}

	if err := s.boards.SetLists(ctx, board.ID, listIDs); err != nil {
		return nil, nil, err
	}
	board.Lists = listIDs

	logger.Info("board created", "board", board.ID.Hex(), "owner", owner.Hex())
	return board, lists, nil
}

// Get returns the board after the access check.
func (s *BoardService) Get(ctx context.Context, actor, boardID primitive.ObjectID) (*domain.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(board, actor); err != nil {
		return nil, err
	}
	return board, nil
}

// Update applies metadata changes; owner only.
func (s *BoardService) Update(ctx context.Context, actor, boardID primitive.ObjectID, fields bson.M) (*domain.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(board, actor); err != nil {
		return nil, err
	}
	return s.boards.Update(ctx, boardID, fields)
}

// Delete cascades: tasks, then lists, then labels, then the board itself.
// The deletes are sequential and best-effort; a mid-sequence failure leaves
// a partially deleted board and surfaces as an internal error.
func (s *BoardService) Delete(ctx context.Context, actor, boardID primitive.ObjectID) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if err := AuthorizeOwner(board, actor); err != nil {
		return err
	}

	if err := s.tasks.DeleteByBoard(ctx, boardID); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "cascade delete failed", err)
	}
	if err := s.lists.DeleteByBoard(ctx, boardID); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "cascade delete failed", err)
	}
	if err := s.labels.DeleteByBoard(ctx, boardID); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "cascade delete failed", err)
	}
	if err := s.boards.Delete(ctx, boardID); err != nil {
		return err
	}

	logger.Info("board deleted", "board", boardID.Hex())
	return nil
}

// AddMember adds the user with the given email; owner only.
func (s *BoardService) AddMember(ctx context.Context, actor, boardID primitive.ObjectID, email string) (*domain.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(board, actor); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if board.HasMember(user.ID) {
		return nil, domain.ErrAlreadyMember
	}

	if err := s.boards.AddMember(ctx, boardID, user.ID); err != nil {
		return nil, err
	}
	return s.boards.GetByID(ctx, boardID)
}
