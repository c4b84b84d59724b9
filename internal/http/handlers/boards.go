package handlers

import (
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type boardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func validateBoardRequest(req boardRequest) []string {
	var details []string
	if len(req.Title) == 0 || len(req.Title) > 100 {
		details = append(details, "Board title must be between 1 and 100 characters")
	}
	if len(req.Description) > 500 {
		details = append(details, "Board description must not exceed 500 characters")
	}
	return details
}

// CreateBoard creates a board with its four default lists.
func (h *Handler) CreateBoard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req boardRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if details := validateBoardRequest(req); details != nil {
		respondValidation(c, details)
		return
	}

	board, lists, err := h.Boards.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Board created successfully",
		"board":   board,
		"lists":   lists,
	})
}

// GetBoards lists every board the actor owns or is a member of.
func (h *Handler) GetBoards(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	boards, err := h.BoardRepo.FindForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

type listView struct {
	*domain.List
	TaskItems []*domain.Task `json:"task_items"`
}

// GetBoard returns one board with its lists and their tasks nested.
func (h *Handler) GetBoard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	boardID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	board, err := h.Boards.Get(ctx, userID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	lists, err := h.ListRepo.GetByBoard(ctx, boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]listView, 0, len(lists))
	for _, l := range lists {
		tasks, err := h.TaskRepo.FindByList(ctx, l.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if tasks == nil {
			tasks = []*domain.Task{}
		}
		views = append(views, listView{List: l, TaskItems: tasks})
	}

	c.JSON(http.StatusOK, gin.H{"board": board, "lists": views})
}

// UpdateBoard updates title/description; owner only.
func (h *Handler) UpdateBoard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	boardID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req boardRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if details := validateBoardRequest(req); details != nil {
		respondValidation(c, details)
		return
	}

	board, err := h.Boards.Update(c.Request.Context(), userID, boardID, bson.M{
		"title":       req.Title,
		"description": req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(ws.Event{Type: ws.EventBoardUpdated, Board: boardID.Hex(), Payload: board})
	c.JSON(http.StatusOK, gin.H{
		"message": "Board updated successfully",
		"board":   board,
	})
}

// DeleteBoard cascades tasks, lists and labels; owner only.
func (h *Handler) DeleteBoard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	boardID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.Boards.Delete(c.Request.Context(), userID, boardID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}

// AddMember adds a user to the board by email; owner only.
func (h *Handler) AddMember(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	boardID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := c.BindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	board, err := h.Boards.AddMember(c.Request.Context(), userID, boardID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(ws.Event{Type: ws.EventBoardUpdated, Board: boardID.Hex(), Payload: board})
	c.JSON(http.StatusOK, gin.H{
		"message": "Member added successfully",
		"board":   board,
	})
}
