package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/domain"
)

// rawAnalysis mirrors the JSON object the model is instructed to emit.
type rawAnalysis struct {
	SuggestedPriority string   `json:"suggestedPriority"`
	EstimatedHours    *float64 `json:"estimatedHours"`
	ComplexityScore   *int     `json:"complexityScore"`
	DaysToComplete    *int     `json:"daysToComplete"`
	Reasoning         string   `json:"reasoning"`
}

// parseAnalysis extracts the first JSON object embedded in the model's
// free-text reply and fills in defaults for any missing key.
func parseAnalysis(content string, now time.Time) (Analysis, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return Analysis{}, fmt.Errorf("no JSON found in response")
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return Analysis{}, fmt.Errorf("malformed JSON in response: %w", err)
	}

	priority := domain.Priority(raw.SuggestedPriority)
	if !priority.Valid() {
		priority = domain.PriorityMedium
	}

	hours := 2.0
	if raw.EstimatedHours != nil {
		hours = *raw.EstimatedHours
	}

	complexity := 5
	if raw.ComplexityScore != nil {
		complexity = *raw.ComplexityScore
	}

	days := 7
	if raw.DaysToComplete != nil {
		days = *raw.DaysToComplete
	}

	reasoning := raw.Reasoning
	if reasoning == "" {
		reasoning = "AI analysis completed"
	}

	return Analysis{
		SuggestedPriority: priority,
		SuggestedDueDate:  now.AddDate(0, 0, days),
		EstimatedHours:    hours,
		ComplexityScore:   complexity,
		Reasoning:         reasoning,
	}, nil
}
