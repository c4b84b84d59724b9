package service

import (
	"context"
	"time"

	"taskboard/internal/ai"
	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Advisor produces AI suggestions. Both methods recover from failures
// internally and never return an error.
type Advisor interface {
	Analyze(ctx context.Context, title, description string) ai.Analysis
	ImproveDescription(ctx context.Context, title, description, targetLength string) string
}

// TaskService is the ordering engine: it assigns positions, keeps the
// task -> list -> board chain consistent on moves, and attaches advisory
// bundles on creation.
type TaskService struct {
	tasks   *repository.TaskRepository
	lists   *repository.ListRepository
	boards  *repository.BoardRepository
	advisor Advisor
}

func NewTaskService(
	tasks *repository.TaskRepository,
	lists *repository.ListRepository,
	boards *repository.BoardRepository,
	advisor Advisor,
) *TaskService {
	return &TaskService{tasks: tasks, lists: lists, boards: boards, advisor: advisor}
}

// CreateTaskInput carries the caller-supplied task fields. Priority and
// DueDate are optional; when absent the advisory suggestion fills them.
type CreateTaskInput struct {
	Title          string
	Description    string
	ListID         primitive.ObjectID
	Priority       domain.Priority
	DueDate        *time.Time
	EstimatedHours *float64
}

// Create appends a task to the target list. The new task's position equals
// the count of tasks already in the list, and its board is copied from the
// list so the chain never diverges at creation.
func (s *TaskService) Create(ctx context.Context, actor primitive.ObjectID, in CreateTaskInput) (*domain.Task, error) {
	list, err := s.lists.GetByID(ctx, in.ListID)
	if err != nil {
		return nil, err
	}

	board, err := s.boards.GetByID(ctx, list.Board)
	if err != nil {
		return nil, err
	}
	if err := Authorize(board, actor); err != nil {
		return nil, err
	}

	count, err := s.tasks.CountInList(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:          in.Title,
		Description:    in.Description,
		List:           list.ID,
		Board:          list.Board,
		Priority:       in.Priority,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		Position:       int(count),
	}

	// Advisory failures are swallowed inside the advisor; the bundle we get
	// back is heuristic at worst. Only caller-omitted fields are overridden.
	if s.advisor != nil {
		analysis := s.advisor.Analyze(ctx, in.Title, in.Description)
		due := analysis.SuggestedDueDate
		task.AISuggestions = &domain.AISuggestions{
			SuggestedPriority:   analysis.SuggestedPriority,
			SuggestedDueDate:    &due,
			EstimatedComplexity: analysis.ComplexityScore,
		}
		if in.Priority == "" {
			task.Priority = analysis.SuggestedPriority
		}
		if in.DueDate == nil {
			task.DueDate = &due
		}
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	if err := s.lists.PushTask(ctx, list.ID, task.ID); err != nil {
		return nil, err
	}

	logger.Info("task created", "task", task.ID.Hex(), "list", list.ID.Hex(), "position", task.Position)
	return task, nil
}

// Get returns the task after checking the actor can access its board.
func (s *TaskService) Get(ctx context.Context, actor, taskID primitive.ObjectID) (*domain.Task, *domain.Board, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	board, err := s.boards.GetByID(ctx, task.Board)
	if err != nil {
		return nil, nil, err
	}
	if err := Authorize(board, actor); err != nil {
		return nil, nil, err
	}
	return task, board, nil
}

// Move relocates a task into newListID. Cross-board moves are rejected and
// leave the task untouched. A nil position appends to the end of the target
// list; otherwise the task is inserted before the task currently at that
// index. The two list writes are separate document updates; correctness is
// only guaranteed in the race-free case.
func (s *TaskService) Move(ctx context.Context, actor, taskID, newListID primitive.ObjectID, position *int) (*domain.Task, error) {
	task, _, err := s.Get(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	newList, err := s.lists.GetByID(ctx, newListID)
	if err != nil {
		return nil, err
	}
	if newList.Board != task.Board {
		return nil, domain.ErrCrossBoardMove
	}

	if err := s.lists.PullTask(ctx, task.List, task.ID); err != nil {
		return nil, err
	}

	// Count of siblings in the target, excluding the task being moved.
	count, err := s.tasks.CountInList(ctx, newListID)
	if err != nil {
		return nil, err
	}
	siblings := int(count)
	if task.List == newListID {
		siblings--
	}

	index := -1 // append
	newPosition := siblings
	if position != nil && *position < siblings {
		index = *position
		if index < 0 {
			index = 0
		}
		newPosition = index
	}

	if err := s.lists.InsertTaskAt(ctx, newListID, task.ID, index); err != nil {
		return nil, err
	}

	updated, err := s.tasks.Update(ctx, task.ID, bson.M{
		"list":     newListID,
		"position": newPosition,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("task moved", "task", taskID.Hex(), "from", task.List.Hex(), "to", newListID.Hex(), "position", newPosition)
	return updated, nil
}

// UpdateFields applies plain field updates after the access check.
func (s *TaskService) UpdateFields(ctx context.Context, actor, taskID primitive.ObjectID, fields bson.M) (*domain.Task, error) {
	if _, _, err := s.Get(ctx, actor, taskID); err != nil {
		return nil, err
	}
	return s.tasks.Update(ctx, taskID, fields)
}

// Delete removes the task id from its list's sequence and then deletes the
// task, so no list is left holding a dangling id.
func (s *TaskService) Delete(ctx context.Context, actor, taskID primitive.ObjectID) error {
	task, _, err := s.Get(ctx, actor, taskID)
	if err != nil {
		return err
	}

	if err := s.lists.PullTask(ctx, task.List, task.ID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	logger.Info("task deleted", "task", taskID.Hex())
	return nil
}

// Find returns the filtered, paginated task set visible to the actor. When
// boardID is given it must pass the access gate; otherwise all boards the
// actor can see are searched.
func (s *TaskService) Find(ctx context.Context, actor primitive.ObjectID, boardID *primitive.ObjectID, f repository.TaskFilter) ([]*domain.Task, int64, error) {
	if boardID != nil {
		board, err := s.boards.GetByID(ctx, *boardID)
		if err != nil {
			return nil, 0, err
		}
		if err := Authorize(board, actor); err != nil {
			return nil, 0, err
		}
		f.Boards = []primitive.ObjectID{*boardID}
	} else {
		ids, err := s.boards.IDsForUser(ctx, actor)
		if err != nil {
			return nil, 0, err
		}
		f.Boards = ids
	}
	return s.tasks.Find(ctx, f)
}

// ImproveDescription asks the advisor for a rewritten description and stores
// it in the task's suggestion bundle. The rewrite never fails: on advisory
// trouble the original text comes back unchanged.
func (s *TaskService) ImproveDescription(ctx context.Context, actor, taskID primitive.ObjectID, targetLength string) (*domain.Task, string, error) {
	task, _, err := s.Get(ctx, actor, taskID)
	if err != nil {
		return nil, "", err
	}

	improved := s.advisor.ImproveDescription(ctx, task.Title, task.Description, targetLength)

	suggestions := task.AISuggestions
	if suggestions == nil {
		suggestions = &domain.AISuggestions{}
	}
	suggestions.ImprovedDescription = improved

	if err := s.tasks.SetSuggestions(ctx, task.ID, suggestions); err != nil {
		return nil, "", err
	}
	task.AISuggestions = suggestions
	return task, improved, nil
}

// RefreshSuggestions reruns the advisory analysis and replaces the task's
// suggestion bundle.
func (s *TaskService) RefreshSuggestions(ctx context.Context, actor, taskID primitive.ObjectID) (*domain.Task, ai.Analysis, error) {
	task, _, err := s.Get(ctx, actor, taskID)
	if err != nil {
		return nil, ai.Analysis{}, err
	}

	analysis := s.advisor.Analyze(ctx, task.Title, task.Description)
	due := analysis.SuggestedDueDate

	suggestions := &domain.AISuggestions{
		SuggestedPriority:   analysis.SuggestedPriority,
		SuggestedDueDate:    &due,
		EstimatedComplexity: analysis.ComplexityScore,
	}
	if task.AISuggestions != nil {
		suggestions.ImprovedDescription = task.AISuggestions.ImprovedDescription
	}

	if err := s.tasks.SetSuggestions(ctx, task.ID, suggestions); err != nil {
		return nil, ai.Analysis{}, err
	}
	task.AISuggestions = suggestions
	return task, analysis, nil
}
