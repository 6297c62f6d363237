package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	Auth      AuthConfig      `yaml:"auth"`
	Push      PushConfig      `yaml:"push"`
	Email     EmailConfig     `yaml:"email"`
	Storage   StorageConfig   `yaml:"storage"`
	Trigger   TriggerConfig   `yaml:"trigger"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig selects and configures the directory store backend.
// Driver "firestore" uses the Firebase project; driver "postgres" uses the
// connection settings below.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "firestore" or "postgres"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// FirebaseConfig contains the Firebase project settings shared by auth,
// Firestore, messaging and the storage bucket.
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	StorageBucket   string `yaml:"storage_bucket"`
}

// AuthConfig selects the identity-token verifier. Mode "firebase" verifies
// Firebase ID tokens; mode "local" verifies HS256 JWTs signed with Secret
// (development and integration tests).
type AuthConfig struct {
	Mode   string `yaml:"mode"`
	Secret string `yaml:"jwt_secret"`
}

// PushConfig contains push channel settings
type PushConfig struct {
	Enabled        bool `yaml:"enabled"`
	TimeoutSeconds int  `yaml:"timeout_seconds"`
}

// EmailConfig contains the SendGrid email channel settings. An empty APIKey
// disables email delivery entirely.
type EmailConfig struct {
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

// StorageConfig contains image storage settings
type StorageConfig struct {
	Type          string `yaml:"type"`       // "firebase" or "local"
	UploadDir     string `yaml:"upload_dir"` // for local storage
	BaseURL       string `yaml:"base_url"`   // server base URL for local URLs
	MaxFileSizeMB int64  `yaml:"max_file_size_mb"`
}

// TriggerConfig authenticates the change-trigger webhook.
type TriggerConfig struct {
	Secret string `yaml:"secret"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	PendingOrgDigest      string `yaml:"pending_org_digest"`
	PurgeNotifications    string `yaml:"purge_notifications"`
	NotificationKeepDays  int    `yaml:"notification_keep_days"`
	PendingOrgMinAgeHours int    `yaml:"pending_org_min_age_hours"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Database
	if val := os.Getenv("DB_DRIVER"); val != "" {
		c.Database.Driver = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Firebase
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" && c.Firebase.CredentialsFile == "" {
		c.Firebase.CredentialsFile = val
	}
	if val := os.Getenv("FIREBASE_STORAGE_BUCKET"); val != "" {
		c.Firebase.StorageBucket = val
	}

	// Auth
	if val := os.Getenv("AUTH_MODE"); val != "" {
		c.Auth.Mode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.Secret = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}

	// Trigger
	if val := os.Getenv("TRIGGER_SECRET"); val != "" {
		c.Trigger.Secret = val
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case "", "firestore":
		c.Database.Driver = "firestore"
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("firebase project_id is required for the firestore driver")
		}
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	switch c.Auth.Mode {
	case "", "firebase":
		c.Auth.Mode = "firebase"
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("firebase project_id is required for firebase auth")
		}
	case "local":
		if len(c.Auth.Secret) < 32 {
			return fmt.Errorf("jwt_secret must be at least 32 characters for local auth")
		}
	default:
		return fmt.Errorf("unsupported auth mode: %s", c.Auth.Mode)
	}

	if c.Trigger.Secret == "" {
		return fmt.Errorf("trigger secret is required")
	}

	switch c.Storage.Type {
	case "", "local":
		c.Storage.Type = "local"
		if c.Storage.UploadDir == "" {
			c.Storage.UploadDir = "./uploads"
		}
	case "firebase":
		if c.Firebase.StorageBucket == "" {
			return fmt.Errorf("firebase storage_bucket is required for firebase storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Storage.MaxFileSizeMB == 0 {
		c.Storage.MaxFileSizeMB = 10
	}

	if c.Push.TimeoutSeconds <= 0 {
		c.Push.TimeoutSeconds = 10
	}

	// Scheduler defaults
	if c.Scheduler.PendingOrgDigest == "" {
		c.Scheduler.PendingOrgDigest = "0 0 8 * * *" // 8 AM UTC daily
	}
	if c.Scheduler.PurgeNotifications == "" {
		c.Scheduler.PurgeNotifications = "0 30 2 * * *" // 2:30 AM UTC daily
	}
	if c.Scheduler.NotificationKeepDays == 0 {
		c.Scheduler.NotificationKeepDays = 90
	}
	if c.Scheduler.PendingOrgMinAgeHours == 0 {
		c.Scheduler.PendingOrgMinAgeHours = 24
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
