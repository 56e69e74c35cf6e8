package utils

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"navigo/internal/models/response_models"
)

// OpenAIComposer is the ItineraryComposer used when COMPOSER_PROVIDER=openai.
type OpenAIComposer struct {
	client *openai.Client
	model  string
}

func NewOpenAIComposer(apiKey, model string) *OpenAIComposer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIComposer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIComposer) ComposeItinerary(ctx context.Context, input ComposeInput) (*response_models.TravelPlan, error) {
	if input.Days < 1 || input.Days > 30 {
		return nil, fmt.Errorf("bad day count: %d", input.Days)
	}
	if len(input.Places) == 0 {
		return nil, fmt.Errorf("no places to schedule")
	}

	prompt := buildItineraryPrompt(input)

	var lastErr error
	for attempt := 1; attempt <= composerMaxAttempts; attempt++ {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: 0.1,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: "You are a travel itinerary scheduler. Return JSON only."},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			lastErr = fmt.Errorf("openai: %w", err)
			log.Printf("OpenAI call failed (attempt %d/%d): %v", attempt, composerMaxAttempts, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("openai: no content generated")
			continue
		}

		plan, err := parseTravelPlan(resp.Choices[0].Message.Content, input.Days)
		if err != nil {
			lastErr = err
			log.Printf("OpenAI response rejected (attempt %d/%d): %v", attempt, composerMaxAttempts, err)
			continue
		}
		return plan, nil
	}

	return nil, lastErr
}
