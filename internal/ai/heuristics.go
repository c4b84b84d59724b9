package ai

import (
	"strings"
	"time"

	"taskboard/internal/domain"
)

var (
	urgentKeywords = []string{"urgent", "asap", "critical", "emergency", "immediate"}
	highKeywords   = []string{"important", "priority", "deadline"}
	lowKeywords    = []string{"minor", "small", "simple", "quick"}
)

// HeuristicAnalysis is the deterministic keyword fallback used whenever the
// model call fails or its reply cannot be parsed. It depends only on the
// title and description, so it is testable without network access.
func HeuristicAnalysis(title, description string) Analysis {
	text := strings.ToLower(title) + " " + strings.ToLower(description)
	now := time.Now()

	switch {
	case containsAny(text, urgentKeywords):
		return Analysis{
			SuggestedPriority: domain.PriorityUrgent,
			SuggestedDueDate:  now.AddDate(0, 0, 2),
			EstimatedHours:    1,
			ComplexityScore:   8,
			Reasoning:         "Default analysis based on keyword detection",
		}
	case containsAny(text, highKeywords):
		return Analysis{
			SuggestedPriority: domain.PriorityHigh,
			SuggestedDueDate:  now.AddDate(0, 0, 5),
			EstimatedHours:    4,
			ComplexityScore:   7,
			Reasoning:         "Default analysis based on keyword detection",
		}
	case containsAny(text, lowKeywords):
		return Analysis{
			SuggestedPriority: domain.PriorityLow,
			SuggestedDueDate:  now.AddDate(0, 0, 14),
			EstimatedHours:    1,
			ComplexityScore:   3,
			Reasoning:         "Default analysis based on keyword detection",
		}
	default:
		return Analysis{
			SuggestedPriority: domain.PriorityMedium,
			SuggestedDueDate:  now.AddDate(0, 0, 7),
			EstimatedHours:    2,
			ComplexityScore:   5,
			Reasoning:         "Default analysis based on keyword detection",
		}
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
