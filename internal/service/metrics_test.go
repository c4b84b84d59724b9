package service

import (
	"testing"
	"time"

	"taskboard/internal/domain"
)

func summary(status domain.Status, priority domain.Priority, due *time.Time, created, updated time.Time) domain.TaskSummary {
	return domain.TaskSummary{
		Status:    status,
		Priority:  priority,
		DueDate:   due,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func TestProductivityScore(t *testing.T) {
	cases := []struct {
		total, completed, overdue int
		want                      float64
	}{
		{0, 0, 0, 0},
		{10, 6, 2, 50},   // 60 - 0.5*20
		{10, 10, 0, 100},
		{10, 0, 10, 0},   // clamped at 0
		{4, 4, 0, 100},
		{2, 1, 0, 50},
	}

	for _, tc := range cases {
		if got := ProductivityScore(tc.total, tc.completed, tc.overdue); got != tc.want {
			t.Fatalf("ProductivityScore(%d,%d,%d) = %v; want %v", tc.total, tc.completed, tc.overdue, got, tc.want)
		}
	}
}

func TestProductivityScoreBounds(t *testing.T) {
	for total := 0; total <= 20; total++ {
		for completed := 0; completed <= total; completed++ {
			for overdue := 0; overdue <= total; overdue++ {
				got := ProductivityScore(total, completed, overdue)
				if got < 0 || got > 100 {
					t.Fatalf("ProductivityScore(%d,%d,%d) = %v out of [0,100]", total, completed, overdue, got)
				}
			}
		}
	}
}

func TestComputeMetricsCounts(t *testing.T) {
	now := time.Now()
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tasks := []domain.TaskSummary{
		summary(domain.StatusTodo, domain.PriorityLow, &past, now, now),           // overdue
		summary(domain.StatusInProgress, domain.PriorityHigh, &future, now, now),
		summary(domain.StatusReview, domain.PriorityMedium, nil, now, now),
		summary(domain.StatusDone, domain.PriorityUrgent, &past, now.Add(-48*time.Hour), now), // done, not overdue
	}

	m := ComputeMetrics(tasks, now, 30)

	if m.TotalTasks != 4 {
		t.Fatalf("TotalTasks = %d; want 4", m.TotalTasks)
	}
	if m.CompletedTasks != 1 {
		t.Fatalf("CompletedTasks = %d; want 1", m.CompletedTasks)
	}
	if m.PendingTasks != 3 {
		t.Fatalf("PendingTasks = %d; want 3", m.PendingTasks)
	}
	if m.TasksInProgress != 1 {
		t.Fatalf("TasksInProgress = %d; want 1", m.TasksInProgress)
	}
	if m.OverdueTasks != 1 {
		t.Fatalf("OverdueTasks = %d; want 1", m.OverdueTasks)
	}
}

func TestComputeMetricsZeroFilledMaps(t *testing.T) {
	m := ComputeMetrics(nil, time.Now(), 30)

	if len(m.TasksByPriority) != 4 {
		t.Fatalf("TasksByPriority has %d keys; want 4", len(m.TasksByPriority))
	}
	if len(m.TasksByStatus) != 4 {
		t.Fatalf("TasksByStatus has %d keys; want 4", len(m.TasksByStatus))
	}
	for _, p := range domain.Priorities {
		if v, ok := m.TasksByPriority[p]; !ok || v != 0 {
			t.Fatalf("TasksByPriority[%s] = %d,%v; want 0,true", p, v, ok)
		}
	}
	for _, st := range domain.Statuses {
		if v, ok := m.TasksByStatus[st]; !ok || v != 0 {
			t.Fatalf("TasksByStatus[%s] = %d,%v; want 0,true", st, v, ok)
		}
	}
	if m.ProductivityScore != 0 {
		t.Fatalf("ProductivityScore with no tasks = %v; want 0", m.ProductivityScore)
	}
}

func TestComputeMetricsAverageCompletionTime(t *testing.T) {
	now := time.Now()

	tasks := []domain.TaskSummary{
		// completed in 2 days, inside the window
		summary(domain.StatusDone, domain.PriorityMedium, nil, now.AddDate(0, 0, -3), now.AddDate(0, 0, -1)),
		// completed in 4 days, inside the window
		summary(domain.StatusDone, domain.PriorityMedium, nil, now.AddDate(0, 0, -5), now.AddDate(0, 0, -1)),
		// completed long ago, outside the window: excluded
		summary(domain.StatusDone, domain.PriorityMedium, nil, now.AddDate(0, 0, -90), now.AddDate(0, 0, -60)),
	}

	m := ComputeMetrics(tasks, now, 30)

	if got, want := m.AverageCompletionTime, 3.0; got < want-0.01 || got > want+0.01 {
		t.Fatalf("AverageCompletionTime = %v; want ~%v days", got, want)
	}
}

func TestComputeMetricsNoCompletedInWindow(t *testing.T) {
	now := time.Now()
	tasks := []domain.TaskSummary{
		summary(domain.StatusDone, domain.PriorityMedium, nil, now.AddDate(0, 0, -90), now.AddDate(0, 0, -60)),
	}

	m := ComputeMetrics(tasks, now, 30)
	if m.AverageCompletionTime != 0 {
		t.Fatalf("AverageCompletionTime = %v; want 0 when nothing completed in window", m.AverageCompletionTime)
	}
}

func TestComputeAnalyticsBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)

	tasks := []domain.TaskSummary{
		summary(domain.StatusDone, domain.PriorityHigh, nil, day1, day1),
		summary(domain.StatusDone, domain.PriorityLow, nil, day1, day1),
		summary(domain.StatusDone, domain.PriorityLow, nil, day1, day2),
		summary(domain.StatusTodo, domain.PriorityLow, nil, day2, day2),
	}

	a := ComputeAnalytics(tasks, now, 30)

	if len(a.CompletionTrends) != 2 {
		t.Fatalf("CompletionTrends = %v; want 2 days", a.CompletionTrends)
	}
	if a.CompletionTrends[0].Date != "2026-03-10" || a.CompletionTrends[0].Count != 2 {
		t.Fatalf("CompletionTrends[0] = %+v; want 2026-03-10 count=2", a.CompletionTrends[0])
	}
	if a.CompletionTrends[1].Date != "2026-03-11" || a.CompletionTrends[1].Count != 1 {
		t.Fatalf("CompletionTrends[1] = %+v; want 2026-03-11 count=1", a.CompletionTrends[1])
	}

	// created buckets: day1 has high=1 low=2, day2 has low=1
	wantPriority := map[string]int{
		"2026-03-10/low":  2,
		"2026-03-10/high": 1,
		"2026-03-11/low":  1,
	}
	if len(a.PriorityTrends) != len(wantPriority) {
		t.Fatalf("PriorityTrends = %+v; want %d buckets", a.PriorityTrends, len(wantPriority))
	}
	for _, pt := range a.PriorityTrends {
		key := pt.Date + "/" + string(pt.Priority)
		if wantPriority[key] != pt.Count {
			t.Fatalf("PriorityTrends bucket %s = %d; want %d", key, pt.Count, wantPriority[key])
		}
	}

	// hour 9 has two completions, hour 14 one; most productive first
	if len(a.TimeAnalysis) != 2 {
		t.Fatalf("TimeAnalysis = %+v; want 2 buckets", a.TimeAnalysis)
	}
	if a.TimeAnalysis[0].Hour != 9 || a.TimeAnalysis[0].Count != 2 {
		t.Fatalf("TimeAnalysis[0] = %+v; want hour=9 count=2", a.TimeAnalysis[0])
	}
}

func TestComputeAnalyticsWindow(t *testing.T) {
	now := time.Now()
	old := now.AddDate(0, 0, -60)

	tasks := []domain.TaskSummary{
		summary(domain.StatusDone, domain.PriorityMedium, nil, old, old),
	}

	a := ComputeAnalytics(tasks, now, 30)
	if len(a.CompletionTrends) != 0 || len(a.PriorityTrends) != 0 || len(a.TimeAnalysis) != 0 {
		t.Fatalf("analytics outside window should be empty, got %+v", a)
	}
}
