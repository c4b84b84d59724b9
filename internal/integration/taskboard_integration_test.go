package integration

import (
	"context"
	"errors"
	"os"
	"testing"

	"taskboard/internal/ai"
	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
)

// heuristicAdvisor keeps integration tests off the network.
type heuristicAdvisor struct{}

func (heuristicAdvisor) Analyze(_ context.Context, title, description string) ai.Analysis {
	return ai.HeuristicAnalysis(title, description)
}

func (heuristicAdvisor) ImproveDescription(_ context.Context, title, description, _ string) string {
	if description != "" {
		return description
	}
	return title
}

type env struct {
	mdb    *mongo.Database
	users  *repository.UserRepository
	boards *repository.BoardRepository
	lists  *repository.ListRepository
	tasks  *repository.TaskRepository
	labels *repository.LabelRepository

	boardSvc *service.BoardService
	taskSvc  *service.TaskService
}

// setup connects to the Mongo instance from MONGO_URI and starts from an
// empty test database. Skips when MONGO_URI is not set.
func setup(t *testing.T) *env {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping integration test")
	}
	name := os.Getenv("MONGO_TEST_DB")
	if name == "" {
		name = "taskboard_test"
	}

	client, mdb := db.Connect(uri, name)
	t.Cleanup(func() {
		mdb.Drop(context.Background())
		client.Disconnect(context.Background())
	})

	if err := mdb.Drop(context.Background()); err != nil {
		t.Fatalf("drop test db: %v", err)
	}
	db.EnsureIndexes(mdb)

	e := &env{
		mdb:    mdb,
		users:  repository.NewUserRepository(mdb),
		boards: repository.NewBoardRepository(mdb),
		lists:  repository.NewListRepository(mdb),
		tasks:  repository.NewTaskRepository(mdb),
		labels: repository.NewLabelRepository(mdb),
	}
	e.boardSvc = service.NewBoardService(e.boards, e.lists, e.tasks, e.labels, e.users)
	e.taskSvc = service.NewTaskService(e.tasks, e.lists, e.boards, heuristicAdvisor{})
	return e
}

func (e *env) createUser(t *testing.T, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Name: "Test User"}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestBoardCreateDefaultLists(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.createUser(t, "owner@example.com")

	board, lists, err := e.boardSvc.Create(ctx, owner.ID, "Project", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if len(lists) != 4 {
		t.Fatalf("got %d default lists; want 4", len(lists))
	}
	for i, l := range lists {
		if l.Position != i {
			t.Fatalf("list %q position = %d; want %d", l.Title, l.Position, i)
		}
		if l.Title != domain.DefaultListTitles[i] {
			t.Fatalf("list %d title = %q; want %q", i, l.Title, domain.DefaultListTitles[i])
		}
	}

	stored, err := e.boards.GetByID(ctx, board.ID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if len(stored.Lists) != 4 {
		t.Fatalf("board references %d lists; want 4", len(stored.Lists))
	}
	if !stored.HasMember(owner.ID) {
		t.Fatal("owner is not a board member")
	}
}

func TestTaskCreateAppendsToList(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.createUser(t, "owner@example.com")
	_, lists, err := e.boardSvc.Create(ctx, owner.ID, "Project", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	todo := lists[0]

	for i := 0; i < 3; i++ {
		task, err := e.taskSvc.Create(ctx, owner.ID, service.CreateTaskInput{
			Title:  "task",
			ListID: todo.ID,
		})
		if err != nil {
			t.Fatalf("create task %d: %v", i, err)
		}
		if task.Position != i {
			t.Fatalf("task %d position = %d; want %d", i, task.Position, i)
		}
		if task.Board != todo.Board {
			t.Fatal("task board does not match its list's board")
		}
	}

	updated, err := e.lists.GetByID(ctx, todo.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(updated.Tasks) != 3 {
		t.Fatalf("list holds %d task ids; want 3", len(updated.Tasks))
	}
}

func TestTaskCreateFillsSuggestions(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.createUser(t, "owner@example.com")
	_, lists, err := e.boardSvc.Create(ctx, owner.ID, "Project", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	task, err := e.taskSvc.Create(ctx, owner.ID, service.CreateTaskInput{
		Title:  "urgent production fix",
		ListID: lists[0].ID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.AISuggestions == nil {
		t.Fatal("task has no suggestion bundle")
	}
	// caller left priority empty, so the suggestion takes over
	if task.Priority != domain.PriorityUrgent {
		t.Fatalf("priority = %s; want urgent", task.Priority)
	}
	if task.DueDate == nil {
		t.Fatal("suggested due date was not applied")
	}
}

func TestTaskMove(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.createUser(t, "owner@example.com")
	_, lists, err := e.boardSvc.Create(ctx, owner.ID, "Project", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	todo, doing := lists[0], lists[1]

	var created []*domain.Task
	for i := 0; i < 3; i++ {
		task, err := e.taskSvc.Create(ctx, owner.ID, service.CreateTaskInput{Title: "t", ListID: todo.ID})
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
		created = append(created, task)
	}

	// append move to an empty list
	moved, err := e.taskSvc.Move(ctx, owner.ID, created[0].ID, doing.ID, nil)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.List != doing.ID || moved.Position != 0 {
		t.Fatalf("moved task list=%s position=%d; want %s/0", moved.List.Hex(), moved.Position, doing.ID.Hex())
	}

	oldList, err := e.lists.GetByID(ctx, todo.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	for _, id := range oldList.Tasks {
		if id == created[0].ID {
			t.Fatal("moved task id still present in source list")
		}
	}

	// insert before position 0 in the target list
	second, err := e.taskSvc.Move(ctx, owner.ID, created[1].ID, doing.ID, intPtr(0))
	if err != nil {
		t.Fatalf("move with position: %v", err)
	}
	if second.Position != 0 {
		t.Fatalf("position = %d; want 0", second.Position)
	}
	target, err := e.lists.GetByID(ctx, doing.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(target.Tasks) != 2 || target.Tasks[0] != created[1].ID {
		t.Fatalf("target sequence = %v; want moved task first", target.Tasks)
	}

	// out-of-range position appends
	third, err := e.taskSvc.Move(ctx, owner.ID, created[2].ID, doing.ID, intPtr(99))
	if err != nil {
		t.Fatalf("move with large position: %v", err)
	}
	if third.Position != 2 {
		t.Fatalf("position = %d; want 2 (append)", third.Position)
	}
}

func TestTaskMoveCrossBoardRejected(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.createUser(t, "owner@example.com")

	_, listsA, err := e.boardSvc.Create(ctx, owner.ID, "A", "")
	if err != nil {
		t.Fatalf("create board A: %v", err)
	}
	_, listsB, err := e.boardSvc.Create(ctx, owner.ID, "B", "")
	if err != nil {
		t.Fatalf("create board B: %v", err)
	}

	task, err := e.taskSvc.Create(ctx, owner.ID, service.CreateTaskInput{Title: "t", ListID: listsA[0].ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := e.taskSvc.Move(ctx, owner.ID, task.ID, listsB[0].ID, nil); !errors.Is(err, domain.ErrCrossBoardMove) {
		t.Fatalf("cross-board move = %v; want ErrCrossBoardMove", err)
	}

	// task untouched
	stored, err := e.tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if stored.List != listsA[0].ID {
		t.Fatal("rejected move changed the task's list")
	}
	srcList, err := e.lists.GetByID(ctx, listsA[0].ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(srcList.Tasks) != 1 || srcList.Tasks[0] != task.ID {
		t.Fatalf("source sequence = %v; want the task still in place", srcList.Tasks)
	}
}

func TestAccessGate(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.createUser(t, "owner@example.com")
	member := e.createUser(t, "member@example.com")
	stranger := e.createUser(t, "stranger@example.com")

	board, lists, err := e.boardSvc.Create(ctx, owner.ID, "Project", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if _, err := e.boardSvc.AddMember(ctx, owner.ID, board.ID, member.Email); err != nil {
		t.Fatalf("add member: %v", err)
	}

	if _, err := e.boardSvc.Get(ctx, member.ID, board.ID); err != nil {
		t.Fatalf("member read: %v", err)
	}
	if _, err := e.boardSvc.Get(ctx, stranger.ID, board.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("stranger read = %v; want ErrAccessDenied", err)
	}

	// board mutations are owner-only
	if err := e.boardSvc.Delete(ctx, member.ID, board.ID); !errors.Is(err, domain.ErrOwnerOnly) {
		t.Fatalf("member delete = %v; want ErrOwnerOnly", err)
	}

	// members can create tasks
	if _, err := e.taskSvc.Create(ctx, member.ID, service.CreateTaskInput{Title: "t", ListID: lists[0].ID}); err != nil {
		t.Fatalf("member task create: %v", err)
	}
	if _, err := e.taskSvc.Create(ctx, stranger.ID, service.CreateTaskInput{Title: "t", ListID: lists[0].ID}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("stranger task create = %v; want ErrAccessDenied", err)
	}
}

func TestBoardCascadeDelete(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	owner := e.createUser(t, "owner@example.com")

	board, lists, err := e.boardSvc.Create(ctx, owner.ID, "Project", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := e.taskSvc.Create(ctx, owner.ID, service.CreateTaskInput{Title: "t", ListID: lists[0].ID}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}
	if err := e.labels.Create(ctx, &domain.Label{Name: "bug", Color: "#ff0000", Board: board.ID}); err != nil {
		t.Fatalf("create label: %v", err)
	}

	if err := e.boardSvc.Delete(ctx, owner.ID, board.ID); err != nil {
		t.Fatalf("delete board: %v", err)
	}

	if _, err := e.boards.GetByID(ctx, board.ID); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("board lookup after delete = %v; want ErrBoardNotFound", err)
	}
	remaining, err := e.lists.GetByBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("lists after delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("%d lists survived the cascade", len(remaining))
	}
	count, err := e.tasks.CountInList(ctx, lists[0].ID)
	if err != nil {
		t.Fatalf("count tasks: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d tasks survived the cascade", count)
	}
	labels, err := e.labels.GetByBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("labels after delete: %v", err)
	}
	if len(labels) != 0 {
		t.Fatalf("%d labels survived the cascade", len(labels))
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	e.createUser(t, "dup@example.com")

	err := e.users.Create(ctx, &domain.User{Email: "dup@example.com", Name: "Other"})
	if err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
	if domain.CodeOf(err) != domain.ErrCodeConflict {
		t.Fatalf("error code = %s; want CONFLICT", domain.CodeOf(err))
	}
}

func intPtr(v int) *int { return &v }
