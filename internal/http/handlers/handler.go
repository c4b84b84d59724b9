package handlers

import (
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Handler struct {
	DB        *mongo.Database
	BoardRepo *repository.BoardRepository
	ListRepo  *repository.ListRepository
	TaskRepo  *repository.TaskRepository
	LabelRepo *repository.LabelRepository
	UserRepo  *repository.UserRepository

	Boards  *service.BoardService
	Tasks   *service.TaskService
	Metrics *service.MetricsService

	Hub *ws.Hub
}

func NewHandler(db *mongo.Database, advisor service.Advisor, hub *ws.Hub) *Handler {
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &Handler{
		DB:        db,
		BoardRepo: boardRepo,
		ListRepo:  listRepo,
		TaskRepo:  taskRepo,
		LabelRepo: labelRepo,
		UserRepo:  userRepo,
		Boards:    service.NewBoardService(boardRepo, listRepo, taskRepo, labelRepo, userRepo),
		Tasks:     service.NewTaskService(taskRepo, listRepo, boardRepo, advisor),
		Metrics:   service.NewMetricsService(boardRepo, taskRepo),
		Hub:       hub,
	}
}

// getUserID extracts the authenticated actor's id set by the JWT middleware.
func getUserID(c *gin.Context) (primitive.ObjectID, bool) {
	val, ok := c.Get("user_id")
	if !ok {
		return primitive.NilObjectID, false
	}
	hex, ok := val.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps domain error codes to HTTP statuses. Internal failures
// are logged and surfaced as a generic message.
func respondError(c *gin.Context, err error) {
	switch domain.CodeOf(err) {
	case domain.ErrCodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.ErrCodeForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case domain.ErrCodeInvalid:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.ErrCodeUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case domain.ErrCodeConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("internal error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondValidation returns the validation failure shape: an error plus a
// detail line per offending field.
func respondValidation(c *gin.Context, details []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Validation failed",
		"details": details,
	})
}

func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
