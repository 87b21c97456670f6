package sentiment

import (
	"fmt"
	"strings"

	"avis-insight/internal/config"
)

const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// Factory creates classifiers with consistent logic
type Factory struct {
	ModelPath        string
	VectorizerPath   string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModel      string
	YandexOAuthToken string
	YandexFolderID   string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		ModelPath:        cfg.ModelPath,
		VectorizerPath:   cfg.VectorizerPath,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		OpenAIModel:      cfg.OpenAIModel,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
}

func (f *Factory) CreateClassifier(provider string) (Classifier, error) {
	switch strings.ToLower(provider) {
	case ProviderLocal:
		return NewLocal(f.ModelPath, f.VectorizerPath)
	case ProviderOpenAI:
		return NewOpenAI(f.OpenAIAPIKey, f.OpenAIBaseURL, f.OpenAIModel), nil
	case ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown classifier provider: %s", provider)
	}
}
