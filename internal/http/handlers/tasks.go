package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createTaskRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	List           string     `json:"list"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
}

// CreateTask appends a task to a list and attaches the advisory bundle.
func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	var details []string
	if len(req.Title) == 0 || len(req.Title) > 200 {
		details = append(details, "Task title must be between 1 and 200 characters")
	}
	if len(req.Description) > 2000 {
		details = append(details, "Task description must not exceed 2000 characters")
	}
	listID, err := primitive.ObjectIDFromHex(req.List)
	if err != nil {
		details = append(details, "Valid list ID is required")
	}
	priority := domain.Priority(req.Priority)
	if req.Priority != "" && !priority.Valid() {
		details = append(details, "Priority must be low, medium, high, or urgent")
	}
	if req.EstimatedHours != nil && *req.EstimatedHours < 0 {
		details = append(details, "Estimated hours must be a positive number")
	}
	if details != nil {
		respondValidation(c, details)
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), userID, service.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		ListID:         listID,
		Priority:       priority,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(ws.Event{Type: ws.EventTaskCreated, Board: task.Board.Hex(), Payload: task})
	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    task,
	})
}

// GetTasks returns the filtered, paginated task set visible to the actor.
func (h *Handler) GetTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var boardID *primitive.ObjectID
	if v := c.Query("board_id"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
			return
		}
		boardID = &id
	}

	filter := repository.TaskFilter{
		Status:   domain.Status(c.Query("status")),
		Priority: domain.Priority(c.Query("priority")),
		Search:   c.Query("search"),
	}
	if v := c.Query("list_id"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list id"})
			return
		}
		filter.List = &id
	}
	if filter.Status != "" && !filter.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority filter"})
		return
	}

	filter.Page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	filter.Limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	tasks, total, err := h.Tasks.Find(c.Request.Context(), userID, boardID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": int64(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

type updateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	List           *string    `json:"list"`
	Position       *int       `json:"position"`
	Priority       *string    `json:"priority"`
	Status         *string    `json:"status"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	AssignedTo     []string   `json:"assigned_to"`
	Labels         []string   `json:"labels"`
}

// UpdateTask applies field updates and, when the list changes or a position
// is given, performs the move through the ordering engine.
func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	taskID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	fields := bson.M{}
	var details []string

	if req.Title != nil {
		if len(*req.Title) == 0 || len(*req.Title) > 200 {
			details = append(details, "Task title must be between 1 and 200 characters")
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		if len(*req.Description) > 2000 {
			details = append(details, "Task description must not exceed 2000 characters")
		}
		fields["description"] = *req.Description
	}
	if req.Priority != nil {
		if !domain.Priority(*req.Priority).Valid() {
			details = append(details, "Priority must be low, medium, high, or urgent")
		}
		fields["priority"] = *req.Priority
	}
	if req.Status != nil {
		if !domain.Status(*req.Status).Valid() {
			details = append(details, "Status must be todo, in-progress, review, or done")
		}
		fields["status"] = *req.Status
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if req.EstimatedHours != nil {
		if *req.EstimatedHours < 0 {
			details = append(details, "Estimated hours must be a positive number")
		}
		fields["estimated_hours"] = *req.EstimatedHours
	}
	if req.ActualHours != nil {
		if *req.ActualHours < 0 {
			details = append(details, "Actual hours must be a positive number")
		}
		fields["actual_hours"] = *req.ActualHours
	}
	if req.AssignedTo != nil {
		ids, err := hexIDs(req.AssignedTo)
		if err != nil {
			details = append(details, "Assignees must be valid user IDs")
		}
		fields["assigned_to"] = ids
	}
	if req.Labels != nil {
		ids, err := hexIDs(req.Labels)
		if err != nil {
			details = append(details, "Labels must be valid label IDs")
		}
		fields["labels"] = ids
	}

	var moveTo *primitive.ObjectID
	if req.List != nil {
		id, err := primitive.ObjectIDFromHex(*req.List)
		if err != nil {
			details = append(details, "Valid list ID is required")
		} else {
			moveTo = &id
		}
	}
	if details != nil {
		respondValidation(c, details)
		return
	}

	ctx := c.Request.Context()
	var task *domain.Task
	var err error
	moved := false

	if moveTo != nil {
		current, _, gerr := h.Tasks.Get(ctx, userID, taskID)
		if gerr != nil {
			respondError(c, gerr)
			return
		}
		if current.List != *moveTo || req.Position != nil {
			task, err = h.Tasks.Move(ctx, userID, taskID, *moveTo, req.Position)
			if err != nil {
				respondError(c, err)
				return
			}
			moved = true
		}
	}

	if len(fields) > 0 {
		task, err = h.Tasks.UpdateFields(ctx, userID, taskID, fields)
		if err != nil {
			respondError(c, err)
			return
		}
	}
	if task == nil {
		task, _, err = h.Tasks.Get(ctx, userID, taskID)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	event := ws.EventTaskUpdated
	if moved {
		event = ws.EventTaskMoved
	}
	h.Hub.Broadcast(ws.Event{Type: event, Board: task.Board.Hex(), Payload: task})

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask removes the task and its id from its list.
func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	taskID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	task, _, err := h.Tasks.Get(ctx, userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.Tasks.Delete(ctx, userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(ws.Event{Type: ws.EventTaskDeleted, Board: task.Board.Hex(), Payload: gin.H{"id": taskID.Hex()}})
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// ImproveDescription rewrites the task description via the advisory client.
func (h *Handler) ImproveDescription(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	taskID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req struct {
		TargetLength string `json:"target_length"`
	}
	_ = c.BindJSON(&req)
	if req.TargetLength == "" {
		req.TargetLength = "concise"
	}

	task, improved, err := h.Tasks.ImproveDescription(c.Request.Context(), userID, taskID, req.TargetLength)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":              "Task description improved",
		"improved_description": improved,
		"task":                 task,
	})
}

// GetAISuggestions reruns the advisory analysis for the task.
func (h *Handler) GetAISuggestions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	taskID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	task, analysis, err := h.Tasks.RefreshSuggestions(c.Request.Context(), userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": task.AISuggestions,
		"analysis":    analysis,
	})
}

func hexIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
