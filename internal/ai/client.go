package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
)

// Client talks to an OpenAI-compatible chat completions endpoint. Every
// public method recovers from transport and parse failures internally, so
// callers always get a usable result.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates an advisory client. An empty apiKey is allowed; requests
// will fail and the keyword fallback takes over.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Analysis is the advisory result for one task.
type Analysis struct {
	SuggestedPriority domain.Priority `json:"suggested_priority"`
	SuggestedDueDate  time.Time       `json:"suggested_due_date"`
	EstimatedHours    float64         `json:"estimated_hours"`
	ComplexityScore   int             `json:"complexity_score"`
	Reasoning         string          `json:"reasoning"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze returns a suggestion bundle for the task. On any failure it falls
// back to the deterministic keyword heuristic; it never returns an error.
func (c *Client) Analyze(ctx context.Context, title, description string) Analysis {
	content, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are an AI assistant specialized in task management and productivity. Analyze tasks and provide helpful suggestions for priority, timeline, and improvements.",
			},
			{
				Role:    "user",
				Content: analysisPrompt(title, description),
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("ai analysis failed, using heuristic", "error", err)
		advisoryFallbacks.Inc()
		return HeuristicAnalysis(title, description)
	}

	analysis, err := parseAnalysis(content, time.Now())
	if err != nil {
		logger.Warn("ai response unparseable, using heuristic", "error", err)
		advisoryFallbacks.Inc()
		return HeuristicAnalysis(title, description)
	}

	advisoryRequests.Inc()
	return analysis
}

// ImproveDescription rewrites the description in the requested register
// ("concise" or "detailed"). On any failure it returns the original
// description, or the title when there is none.
func (c *Client) ImproveDescription(ctx context.Context, title, description, targetLength string) string {
	register := "clear and concise"
	if targetLength == "detailed" {
		register = "detailed and comprehensive"
	}

	prompt := fmt.Sprintf(
		"Task Title: %q\nCurrent Description: %q\n\nPlease rewrite this task description to be %s.\nFocus on:\n- Clear action items\n- Specific deliverables\n- Success criteria\n\nReturn only the improved description, no additional text.",
		title, orDefault(description, "No description provided"), register,
	)

	content, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are an expert at writing clear, actionable task descriptions. Improve the given task description while maintaining its core intent.",
			},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
		MaxTokens:   300,
	})
	if err != nil || content == "" {
		if err != nil {
			logger.Warn("ai description improvement failed", "error", err)
		}
		advisoryFallbacks.Inc()
		if description != "" {
			return description
		}
		return title
	}

	advisoryRequests.Inc()
	return content
}

func (c *Client) complete(ctx context.Context, reqBody chatRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no response from AI service")
	}
	return parsed.Choices[0].Message.Content, nil
}

func analysisPrompt(title, description string) string {
	return fmt.Sprintf(
		"Analyze this task and provide suggestions:\n\nTask Title: %q\nDescription: %q\n\nPlease provide your analysis in this exact JSON format:\n{\n  \"suggestedPriority\": \"low|medium|high|urgent\",\n  \"estimatedHours\": number,\n  \"complexityScore\": number (1-10),\n  \"daysToComplete\": number,\n  \"reasoning\": \"brief explanation of your analysis\"\n}\n\nConsider:\n- Keywords indicating urgency (urgent, ASAP, critical, etc.)\n- Task complexity based on description\n- Typical time requirements for similar tasks\n- Business impact indicators",
		title, orDefault(description, "No description provided"),
	)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
