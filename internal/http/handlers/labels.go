package handlers

import (
	"net/http"
	"regexp"

	"taskboard/internal/domain"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CreateLabel adds a board-scoped label; (name, board) is unique.
func (h *Handler) CreateLabel(c *gin.Context) {
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
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	var details []string
	if len(req.Name) == 0 || len(req.Name) > 50 {
		details = append(details, "Label name must be between 1 and 50 characters")
	}
	if !hexColor.MatchString(req.Color) {
		details = append(details, "Color must be a valid hex color code")
	}
	if details != nil {
		respondValidation(c, details)
		return
	}

	ctx := c.Request.Context()
	board, err := h.BoardRepo.GetByID(ctx, boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := service.Authorize(board, userID); err != nil {
		respondError(c, err)
		return
	}

	label := &domain.Label{Name: req.Name, Color: req.Color, Board: boardID}
	if err := h.LabelRepo.Create(ctx, label); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Label created successfully",
		"label":   label,
	})
}

// GetLabels lists a board's labels.
func (h *Handler) GetLabels(c *gin.Context) {
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
	board, err := h.BoardRepo.GetByID(ctx, boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := service.Authorize(board, userID); err != nil {
		respondError(c, err)
		return
	}

	labels, err := h.LabelRepo.GetByBoard(ctx, boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	if labels == nil {
		labels = []*domain.Label{}
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels})
}

// DeleteLabel removes a label from its board.
func (h *Handler) DeleteLabel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	labelID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	label, err := h.LabelRepo.GetByID(ctx, labelID)
	if err != nil {
		respondError(c, err)
		return
	}
	board, err := h.BoardRepo.GetByID(ctx, label.Board)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := service.Authorize(board, userID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.LabelRepo.Delete(ctx, labelID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Label deleted successfully"})
}
