package service

import (
	"context"
	"sort"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MetricsService computes dashboard summaries over a user's visible tasks.
// The aggregation itself is a pure function over task summaries; the service
// only resolves visibility and streams the projection.
type MetricsService struct {
	boards *repository.BoardRepository
	tasks  *repository.TaskRepository
}

func NewMetricsService(boards *repository.BoardRepository, tasks *repository.TaskRepository) *MetricsService {
	return &MetricsService{boards: boards, tasks: tasks}
}

func (s *MetricsService) visibleBoards(ctx context.Context, actor primitive.ObjectID, boardID *primitive.ObjectID) ([]primitive.ObjectID, error) {
	if boardID != nil {
		board, err := s.boards.GetByID(ctx, *boardID)
		if err != nil {
			return nil, err
		}
		if err := Authorize(board, actor); err != nil {
			return nil, err
		}
		return []primitive.ObjectID{*boardID}, nil
	}
	return s.boards.IDsForUser(ctx, actor)
}

// Dashboard returns the point-in-time metrics for the actor, optionally
// scoped to one board, over a trailing window of windowDays.
func (s *MetricsService) Dashboard(ctx context.Context, actor primitive.ObjectID, boardID *primitive.ObjectID, windowDays int) (*domain.DashboardMetrics, error) {
	ids, err := s.visibleBoards(ctx, actor, boardID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.tasks.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := ComputeMetrics(summaries, time.Now(), windowDays)
	return &m, nil
}

// Analytics returns the trend buckets for the same visible-task set.
func (s *MetricsService) Analytics(ctx context.Context, actor primitive.ObjectID, boardID *primitive.ObjectID, windowDays int) (*domain.TaskAnalytics, error) {
	ids, err := s.visibleBoards(ctx, actor, boardID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.tasks.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	a := ComputeAnalytics(summaries, time.Now(), windowDays)
	return &a, nil
}

// ComputeMetrics aggregates the dashboard counters over the given summaries.
// The window, in trailing days from now, bounds only averageCompletionTime;
// the counters cover the whole visible set.
func ComputeMetrics(tasks []domain.TaskSummary, now time.Time, windowDays int) domain.DashboardMetrics {
	if windowDays <= 0 {
		windowDays = 30
	}
	windowStart := now.AddDate(0, 0, -windowDays)

	m := domain.DashboardMetrics{
		TasksByPriority: map[domain.Priority]int{},
		TasksByStatus:   map[domain.Status]int{},
	}
	for _, p := range domain.Priorities {
		m.TasksByPriority[p] = 0
	}
	for _, st := range domain.Statuses {
		m.TasksByStatus[st] = 0
	}

	var completionTotal time.Duration
	var completionCount int

	for _, t := range tasks {
		m.TotalTasks++

		if _, ok := m.TasksByPriority[t.Priority]; ok {
			m.TasksByPriority[t.Priority]++
		}
		if _, ok := m.TasksByStatus[t.Status]; ok {
			m.TasksByStatus[t.Status]++
		}

		switch t.Status {
		case domain.StatusDone:
			m.CompletedTasks++
			if !t.UpdatedAt.Before(windowStart) {
				completionTotal += t.UpdatedAt.Sub(t.CreatedAt)
				completionCount++
			}
		case domain.StatusInProgress:
			m.TasksInProgress++
			m.PendingTasks++
		default:
			m.PendingTasks++
		}

		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != domain.StatusDone {
			m.OverdueTasks++
		}
	}

	if completionCount > 0 {
		m.AverageCompletionTime = completionTotal.Hours() / 24 / float64(completionCount)
	}

	m.ProductivityScore = ProductivityScore(m.TotalTasks, m.CompletedTasks, m.OverdueTasks)
	return m
}

// ProductivityScore is clamp(0, 100, completionRate - 0.5*overdueRate),
// with both rates in percent of totalTasks. Zero tasks scores zero.
func ProductivityScore(total, completed, overdue int) float64 {
	if total == 0 {
		return 0
	}
	completionRate := float64(completed) / float64(total) * 100
	overdueRate := float64(overdue) / float64(total) * 100

	score := completionRate - overdueRate*0.5
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ComputeAnalytics buckets completed tasks by calendar day, created tasks by
// (day, priority) and completed tasks by hour of day, all within the window.
func ComputeAnalytics(tasks []domain.TaskSummary, now time.Time, windowDays int) domain.TaskAnalytics {
	if windowDays <= 0 {
		windowDays = 30
	}
	windowStart := now.AddDate(0, 0, -windowDays)

	completedByDay := map[string]int{}
	createdByDayPriority := map[string]map[domain.Priority]int{}
	completedByHour := map[int]int{}

	for _, t := range tasks {
		if t.Status == domain.StatusDone && !t.UpdatedAt.Before(windowStart) {
			day := t.UpdatedAt.Format("2006-01-02")
			completedByDay[day]++
			completedByHour[t.UpdatedAt.Hour()]++
		}
		if !t.CreatedAt.Before(windowStart) {
			day := t.CreatedAt.Format("2006-01-02")
			if createdByDayPriority[day] == nil {
				createdByDayPriority[day] = map[domain.Priority]int{}
			}
			createdByDayPriority[day][t.Priority]++
		}
	}

	a := domain.TaskAnalytics{
		CompletionTrends: make([]domain.CompletionTrend, 0, len(completedByDay)),
		PriorityTrends:   make([]domain.PriorityTrend, 0, len(createdByDayPriority)),
		TimeAnalysis:     make([]domain.HourBucket, 0, len(completedByHour)),
	}

	for day, count := range completedByDay {
		a.CompletionTrends = append(a.CompletionTrends, domain.CompletionTrend{Date: day, Count: count})
	}
	sort.Slice(a.CompletionTrends, func(i, j int) bool {
		return a.CompletionTrends[i].Date < a.CompletionTrends[j].Date
	})

	for day, byPriority := range createdByDayPriority {
		for _, p := range domain.Priorities {
			if count := byPriority[p]; count > 0 {
				a.PriorityTrends = append(a.PriorityTrends, domain.PriorityTrend{Date: day, Priority: p, Count: count})
			}
		}
	}
	sort.Slice(a.PriorityTrends, func(i, j int) bool {
		if a.PriorityTrends[i].Date != a.PriorityTrends[j].Date {
			return a.PriorityTrends[i].Date < a.PriorityTrends[j].Date
		}
		return a.PriorityTrends[i].Priority < a.PriorityTrends[j].Priority
	})

	for hour, count := range completedByHour {
		a.TimeAnalysis = append(a.TimeAnalysis, domain.HourBucket{Hour: hour, Count: count})
	}
	// most productive hour first
	sort.Slice(a.TimeAnalysis, func(i, j int) bool {
		if a.TimeAnalysis[i].Count != a.TimeAnalysis[j].Count {
			return a.TimeAnalysis[i].Count > a.TimeAnalysis[j].Count
		}
		return a.TimeAnalysis[i].Hour < a.TimeAnalysis[j].Hour
	})

	return a
}
