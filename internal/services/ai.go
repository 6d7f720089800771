package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

type GeneratedChore struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateChoresFromText analyzes free-form household text and extracts
// concrete chores using OpenAI GPT
func (s *AIService) GenerateChoresFromText(ctx context.Context, text string) ([]GeneratedChore, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a household chore extraction assistant. Extract concrete chores from the text below.

Current time: %s

Text:
%s

Return a JSON array of the extracted chores in this format:
[
  {
    "title": "short chore title",
    "description": "details of the chore",
    "due_date": "deadline in ISO8601 format, e.g. 2025-10-28T23:59:59Z, or null if none is stated"
  }
]

Rules:
- Return an empty array [] if the text contains no chores
- Convert relative deadlines ("tomorrow", "next week") into concrete timestamps
- due_date must be an ISO8601 string or null
- Return only the JSON, no surrounding prose`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var chores []GeneratedChore
	if err := json.Unmarshal([]byte(content), &chores); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return chores, nil
}
