package ws

// Event types pushed to board subscribers.
const (
	EventTaskCreated  = "task_created"
	EventTaskUpdated  = "task_updated"
	EventTaskMoved    = "task_moved"
	EventTaskDeleted  = "task_deleted"
	EventBoardUpdated = "board_updated"
)

// Event is one realtime notification about a board.
type Event struct {
	Type    string `json:"type"`
	Board   string `json:"board"`
	Payload any    `json:"payload,omitempty"`
}
