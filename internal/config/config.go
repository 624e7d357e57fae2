package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Watson   WatsonConfig
	Datasets DatasetConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	EventTopic         string
}

type WatsonConfig struct {
	URL         string
	AssistantID string
	APIKey      string
}

type DatasetConfig struct {
	Offices   string
	Employees string
	Articles  string
	Skills    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "middleend.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			EventTopic:         getEnv("CHAT_EVENT_TOPIC_NAME", "CHAT_EVENTS"),
		},
		Watson: WatsonConfig{
			URL:         getEnv("WATSON_URL", ""),
			AssistantID: getEnv("WATSON_ASSISTANT_ID", ""),
			APIKey:      getEnv("WATSON_API_KEY", ""),
		},
		Datasets: DatasetConfig{
			Offices:   getEnv("OFFICE_LOCATION_PATH", "./data/offices.json"),
			Employees: getEnv("COMPANY_USERS_PATH", "./data/employees.json"),
			Articles:  getEnv("SCRAPED_ARTICLES_PATH", "./data/articles.json"),
			Skills:    getEnv("PEOPLE_WITH_SKILLS_PATH", "./data/skills.json"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
