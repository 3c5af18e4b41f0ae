package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		AdminEmail   string `yaml:"admin_email"` // receives new-signup notifications
		FrontendURL  string `yaml:"frontend_url"` // base for verification/reset links
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // access token lifetime in minutes
	} `yaml:"jwt"`

	AI struct {
		BaseURL     string  `yaml:"base_url"`
		APIKey      string  `yaml:"api_key"`
		Model       string  `yaml:"model"`
		Temperature float32 `yaml:"temperature"`
		TimeoutSec  int     `yaml:"timeout_seconds"`
		MaxRetries  int     `yaml:"max_retries"`
	} `yaml:"ai"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Analysis struct {
		MinContentChars  int `yaml:"min_content_chars"`
		ThrottleSeconds  int `yaml:"throttle_seconds"`
		CacheTTLMinutes  int `yaml:"cache_ttl_minutes"`
		ReferenceEssays  int `yaml:"reference_essays"`   // RAG context size
		SessionTTLMinute int `yaml:"session_ttl_minutes"`
	} `yaml:"analysis"`

	Autocomplete struct {
		ExportedStaleHours int `yaml:"exported_stale_hours"`
		IdleHours          int `yaml:"idle_hours"`
		IntervalMinutes    int `yaml:"interval_minutes"`
	} `yaml:"autocomplete"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or environment variables when DATABASE_URL
// is set (test/deploy mode), then applies defaults.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
	} else {
		cfg.Database.DSN = dbURL
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.AI.APIKey = os.Getenv("AI_API_KEY")
		cfg.AI.BaseURL = os.Getenv("AI_BASE_URL")
		cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
		cfg.Email.FrontendURL = os.Getenv("FRONTEND_URL")
		cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
		cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")
	}

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyDefaults fills unset tunables. The analysis/autocomplete values are
// configuration, not invariants; the defaults match the original deployment.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Email.FrontendURL == "" {
		cfg.Email.FrontendURL = "http://localhost:3000"
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o"
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.3
	}
	if cfg.AI.TimeoutSec == 0 {
		cfg.AI.TimeoutSec = 120
	}
	if cfg.AI.MaxRetries == 0 {
		cfg.AI.MaxRetries = 3
	}
	if cfg.Analysis.MinContentChars == 0 {
		cfg.Analysis.MinContentChars = 50
	}
	if cfg.Analysis.ThrottleSeconds == 0 {
		cfg.Analysis.ThrottleSeconds = 10
	}
	if cfg.Analysis.CacheTTLMinutes == 0 {
		cfg.Analysis.CacheTTLMinutes = 30
	}
	if cfg.Analysis.ReferenceEssays == 0 {
		cfg.Analysis.ReferenceEssays = 3
	}
	if cfg.Analysis.SessionTTLMinute == 0 {
		cfg.Analysis.SessionTTLMinute = 60
	}
	if cfg.Autocomplete.ExportedStaleHours == 0 {
		cfg.Autocomplete.ExportedStaleHours = 12
	}
	if cfg.Autocomplete.IdleHours == 0 {
		cfg.Autocomplete.IdleHours = 72
	}
	if cfg.Autocomplete.IntervalMinutes == 0 {
		cfg.Autocomplete.IntervalMinutes = 60
	}
}
