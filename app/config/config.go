package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const filePath = "config.yaml"

type Config struct {
	Log       Log       `yaml:"log"`
	HTTP      HTTP      `yaml:"http"`
	Knowledge Knowledge `yaml:"knowledge"`
	Matcher   Matcher   `yaml:"matcher"`
	Analytics Analytics `yaml:"analytics"`
	Chat      Chat      `yaml:"chat"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890" validate:"required_with=Token"`
}

type HTTP struct {
	// Address the web UI listens on
	Listen string `yaml:"listen" example:":8080" validate:"required"`
	// Name reported by the HTTP server
	AppName string `yaml:"app_name" example:"FAQ Chatbot"`
}

type Knowledge struct {
	// Optional YAML knowledge base, the built-in one is used when empty
	Path string `yaml:"path" example:"knowledge.yaml"`
}

type Matcher struct {
	// Disable the fuzzy step of the cascade
	DisableFuzzy bool `yaml:"disable_fuzzy" example:"false"`
	// Minimal similarity ratio for a fuzzy match
	FuzzyCutoff float64 `yaml:"fuzzy_cutoff" example:"0.5" validate:"gte=0,lte=1"`
}

type Analytics struct {
	// Disable the interaction log
	Disabled bool `yaml:"disabled" example:"false"`
	// CSV file the interactions are appended to
	Path string `yaml:"path" example:"analytics.csv" validate:"required_if=Disabled false"`
	// Number of records buffered before the writer drops them
	QueueSize int `yaml:"queue_size" example:"64" validate:"gte=1"`
}

type Chat struct {
	// Idle time after which a chat session is forgotten
	SessionTTL time.Duration `yaml:"session_ttl" example:"24h" validate:"gt=0"`
	// Cookie holding the chat session id
	CookieName string `yaml:"cookie_name" example:"faq_session" validate:"required"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTP{
			Listen:  ":8080",
			AppName: "FAQ Chatbot",
		},
		Matcher: Matcher{
			FuzzyCutoff: 0.5,
		},
		Analytics: Analytics{
			Path:      "analytics.csv",
			QueueSize: 64,
		},
		Chat: Chat{
			SessionTTL: 24 * time.Hour,
			CookieName: "faq_session",
		},
	}
}

func Load() (*Config, error) {
	return LoadFile(filePath)
}

func LoadFile(path string) (*Config, error) {
	result := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err == nil {
		if err = yaml.Unmarshal(data, result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if result.HTTP.AppName == "" {
		result.HTTP.AppName = "FAQ Chatbot"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return result, nil
}
