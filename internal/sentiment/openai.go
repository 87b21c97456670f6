package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const openAISystemPrompt = "Tu es un classifieur de sentiment pour des avis clients. " +
	"Réponds uniquement par un entier : 1 si l'avis est positif, -1 s'il est négatif, 0 s'il est neutre."

// OpenAIClassifier classifies reviews through a chat completion model.
// Used when no local model artifacts are deployed.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string) *OpenAIClassifier {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClassifier{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (Label, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", &ClassificationError{Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ClassificationError{Cause: fmt.Errorf("openai returned no choices")}
	}
	class, err := strconv.Atoi(strings.TrimSpace(resp.Choices[0].Message.Content))
	if err != nil {
		return "", &ClassificationError{Cause: fmt.Errorf("unexpected model answer %q", resp.Choices[0].Message.Content)}
	}
	return LabelFor(class), nil
}
