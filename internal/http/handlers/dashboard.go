package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) dashboardScope(c *gin.Context) (*primitive.ObjectID, int, bool) {
	var boardID *primitive.ObjectID
	if v := c.Query("board_id"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
			return nil, 0, false
		}
		boardID = &id
	}

	windowDays := 30
	if v := c.Query("time_range"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time range"})
			return nil, 0, false
		}
		windowDays = n
	}
	return boardID, windowDays, true
}

// DashboardMetrics returns the aggregate counters for the actor's visible
// tasks, optionally scoped to one board.
func (h *Handler) DashboardMetrics(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	boardID, windowDays, ok := h.dashboardScope(c)
	if !ok {
		return
	}

	metrics, err := h.Metrics.Dashboard(c.Request.Context(), userID, boardID, windowDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}

// TaskAnalytics returns the trend buckets backing the dashboard charts.
func (h *Handler) TaskAnalytics(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	boardID, windowDays, ok := h.dashboardScope(c)
	if !ok {
		return
	}

	analytics, err := h.Metrics.Analytics(c.Request.Context(), userID, boardID, windowDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"completion_trends": analytics.CompletionTrends,
		"priority_trends":   analytics.PriorityTrends,
		"time_analysis":     analytics.TimeAnalysis,
	})
}
