// Package suggest fetches message-suggestion text from a hosted completion
// service. The service is opaque: the handler relays whatever text comes
// back.
package suggest

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

const suggestionPrompt = "Create a list of three open-ended and engaging questions formatted as a single string. Each question should be separated by '||'. These questions are for an anonymous social messaging platform, like Qooh.me, and should be suitable for a diverse audience. Avoid personal or sensitive topics, focusing instead on universal themes that encourage friendly interaction. For example, your output should be structured like this: 'What's a hobby you've recently started?||If you could have dinner with any historical figure, who would it be?||What's a simple thing that makes you happy?'. Ensure the questions are intriguing, foster curiosity, and contribute to a positive and welcoming conversational environment."

type Suggester interface {
	Suggest(ctx context.Context) (string, error)
}

type OpenAISuggester struct {
	client *openai.Client
	model  string
}

func NewOpenAISuggester(apiKey string) *OpenAISuggester {
	return &OpenAISuggester{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}
}

func (s *OpenAISuggester) Suggest(ctx context.Context) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: suggestionPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
