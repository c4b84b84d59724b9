package domain

// DashboardMetrics is the point-in-time summary over a user's visible tasks.
type DashboardMetrics struct {
	TotalTasks            int              `json:"total_tasks"`
	CompletedTasks        int              `json:"completed_tasks"`
	PendingTasks          int              `json:"pending_tasks"`
	OverdueTasks          int              `json:"overdue_tasks"`
	TasksInProgress       int              `json:"tasks_in_progress"`
	AverageCompletionTime float64          `json:"average_completion_time"`
	ProductivityScore     float64          `json:"productivity_score"`
	TasksByPriority       map[Priority]int `json:"tasks_by_priority"`
	TasksByStatus         map[Status]int   `json:"tasks_by_status"`
}

// CompletionTrend is a completed-task count for one calendar day.
type CompletionTrend struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PriorityTrend is a created-task count for one (day, priority) pair.
type PriorityTrend struct {
	Date     string   `json:"date"`
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
}

// HourBucket is a completed-task count for one hour of the day.
type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// TaskAnalytics are the trend views backing the dashboard charts.
type TaskAnalytics struct {
	CompletionTrends []CompletionTrend `json:"completion_trends"`
	PriorityTrends   []PriorityTrend   `json:"priority_trends"`
	TimeAnalysis     []HourBucket      `json:"time_analysis"`
}
