package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Morwran/yagpt"
)

// YandexClassifier classifies reviews through YandexGPT.
type YandexClassifier struct {
	ya       yagpt.YaGPTFace
	iamToken string
}

func NewYandex(oauthToken, folderID string) (*YandexClassifier, error) {
	iam, err := yagpt.NewYaIam(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init yandex iam: %w", err)
	}
	resp, err := iam.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create iam token: %w", err)
	}
	ya, err := yagpt.NewYagpt(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to init yagpt: %w", err)
	}
	return &YandexClassifier{ya: ya, iamToken: resp.IamToken}, nil
}

func (c *YandexClassifier) Classify(ctx context.Context, text string) (Label, error) {
	messages := []yagpt.Message{
		{Role: "system", Content: openAISystemPrompt},
		{Role: "user", Content: text},
	}
	resp, err := c.ya.CompletionWithCtx(ctx, c.iamToken, messages)
	if err != nil {
		return "", &ClassificationError{Cause: fmt.Errorf("yagpt completion failed: %w", err)}
	}
	if resp == nil || len(resp.Alternatives) == 0 {
		return "", &ClassificationError{Cause: fmt.Errorf("yagpt returned empty response")}
	}
	answer := strings.TrimSpace(resp.Alternatives[0].Message.Content)
	class, err := strconv.Atoi(answer)
	if err != nil {
		return "", &ClassificationError{Cause: fmt.Errorf("unexpected model answer %q", answer)}
	}
	return LabelFor(class), nil
}
