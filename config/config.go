package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type TelegramConfig struct {
	BotToken      string
	AllowedChatID int64
}

// IsConfigured returns true if all required Telegram configuration is present
func (c TelegramConfig) IsConfigured() bool {
	return c.BotToken != "" && c.AllowedChatID != 0
}

type VercelConfig struct {
	APIToken      string
	TargetProject string
	GitHubRemote  string
	GitHubOrg     string
	GitHubProject string
}

// IsConfigured returns true if all required Vercel configuration is present
func (c VercelConfig) IsConfigured() bool {
	return c.APIToken != "" &&
		c.TargetProject != "" &&
		c.GitHubRemote != "" &&
		c.GitHubOrg != "" &&
		c.GitHubProject != ""
}

type PlatformConfig struct {
	ProductionURL   string
	ServiceEmail    string
	ServicePassword string
}

// IsConfigured returns true if all required platform API configuration is present
func (c PlatformConfig) IsConfigured() bool {
	return c.ProductionURL != "" &&
		c.ServiceEmail != "" &&
		c.ServicePassword != ""
}

type AppConfig struct {
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string

	TelegramConfig TelegramConfig
	VercelConfig   VercelConfig
	PlatformConfig PlatformConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	allowedChatID, err := parseChatID(os.Getenv("ALLOWED_CHAT_ID"))
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),

		TelegramConfig: TelegramConfig{
			BotToken:      os.Getenv("TELEGRAM_TOKEN"),
			AllowedChatID: allowedChatID,
		},

		VercelConfig: VercelConfig{
			APIToken:      os.Getenv("VERCEL_API_TOKEN"),
			TargetProject: os.Getenv("VERCEL_TARGET_PROJECT"),
			GitHubRemote:  os.Getenv("GITHUB_REMOTE"),
			GitHubOrg:     os.Getenv("GITHUB_ORG"),
			GitHubProject: os.Getenv("GITHUB_PROJECT"),
		},

		PlatformConfig: PlatformConfig{
			ProductionURL:   os.Getenv("PRODUCTION_URL"),
			ServiceEmail:    os.Getenv("SUPABASE_EMAIL"),
			ServicePassword: os.Getenv("SUPABASE_PASSWORD"),
		},
	}

	if config.TelegramConfig.IsConfigured() {
		log.Printf("✅ Telegram bot configured")
	} else {
		return nil, fmt.Errorf("telegram bot is not fully configured (TELEGRAM_TOKEN, ALLOWED_CHAT_ID)")
	}

	if config.VercelConfig.IsConfigured() {
		log.Printf("✅ Vercel deployment trigger configured")
	} else {
		return nil, fmt.Errorf("vercel integration is not fully configured " +
			"(VERCEL_API_TOKEN, VERCEL_TARGET_PROJECT, GITHUB_REMOTE, GITHUB_ORG, GITHUB_PROJECT)")
	}

	if config.PlatformConfig.IsConfigured() {
		log.Printf("✅ Platform configuration API configured")
	} else {
		return nil, fmt.Errorf("platform API is not fully configured " +
			"(PRODUCTION_URL, SUPABASE_EMAIL, SUPABASE_PASSWORD)")
	}

	return config, nil
}

func parseChatID(value string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("ALLOWED_CHAT_ID is not set")
	}
	chatID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ALLOWED_CHAT_ID must be an integer: %w", err)
	}
	return chatID, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
