package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	// Admin credentials, compared verbatim at login
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"password123"`

	// Review history storage
	HistoryFilePath string `env:"HISTORY_FILE_PATH" envDefault:"historique_avis.csv"`

	// Sentiment classifier settings
	ClassifierProvider string `env:"CLASSIFIER_PROVIDER" envDefault:"local"`
	ModelPath          string `env:"MODEL_PATH" envDefault:"sentiment_model.json"`
	VectorizerPath     string `env:"VECTORIZER_PATH" envDefault:"tfidf_vectorizer.json"`
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL"`
	OpenAIModel        string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	YandexOAuthToken   string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID     string `env:"YANDEX_FOLDER_ID"`

	// Optional Telegram notifications for the admin
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramAdminChatID int64  `env:"TELEGRAM_ADMIN_CHAT_ID"`
	DailyReportCron     string `env:"DAILY_REPORT_CRON" envDefault:"0 21 * * *"`

	// Admin sessions expire after this much inactivity
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
