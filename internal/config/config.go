package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	LDAP     LDAPConfig
	Clock    ClockConfig
	Sync     SyncConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string

	// Local fallback admin; disabled when the username is empty.
	BootstrapAdminUser         string
	BootstrapAdminPasswordHash string
}

type LDAPConfig struct {
	URL          string
	StartTLS     bool
	BindDN       string
	BindPassword string
	BaseDN       string
	UserFilter   string
	UsernameAttr string
	NameAttr     string
	MailAttr     string
}

// ClockConfig holds attendance engine settings.
type ClockConfig struct {
	// ExemptUserID bypasses schedule and window checks for one user.
	// A local-testing escape hatch; empty disables it.
	ExemptUserID string
}

type SyncConfig struct {
	// Interval between directory sync runs; 0 disables the job.
	Interval time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine in containerized deployments; the
	// environment is already populated there.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:                       appPort,
		Env:                        getEnv("APP_ENV", "development"),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		FrontendURL:                getEnv("FRONTEND_URL", "http://localhost:3000"),
		BootstrapAdminUser:         getEnv("BOOTSTRAP_ADMIN_USER", ""),
		BootstrapAdminPasswordHash: getEnv("BOOTSTRAP_ADMIN_PASSWORD_HASH", ""),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.LDAP = LDAPConfig{
		URL:          getEnv("LDAP_URL", ""),
		StartTLS:     getEnv("LDAP_START_TLS", "false") == "true",
		BindDN:       getEnv("LDAP_BIND_DN", ""),
		BindPassword: getEnv("LDAP_BIND_PASSWORD", ""),
		BaseDN:       getEnv("LDAP_BASE_DN", ""),
		UserFilter:   getEnv("LDAP_USER_FILTER", "(objectClass=inetOrgPerson)"),
		UsernameAttr: getEnv("LDAP_USERNAME_ATTR", "uid"),
		NameAttr:     getEnv("LDAP_NAME_ATTR", "cn"),
		MailAttr:     getEnv("LDAP_MAIL_ATTR", "mail"),
	}

	config.Clock = ClockConfig{
		ExemptUserID: getEnv("CLOCK_EXEMPT_USER_ID", ""),
	}

	syncInterval, err := time.ParseDuration(getEnv("DIRECTORY_SYNC_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DIRECTORY_SYNC_INTERVAL: %w", err)
	}
	config.Sync = SyncConfig{Interval: syncInterval}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.LDAP.URL == "" && c.App.BootstrapAdminUser == "" {
		return fmt.Errorf("LDAP_URL is required unless a bootstrap admin is configured")
	}
	if c.LDAP.URL != "" {
		if c.LDAP.BindDN == "" {
			return fmt.Errorf("LDAP_BIND_DN is required")
		}
		if c.LDAP.BaseDN == "" {
			return fmt.Errorf("LDAP_BASE_DN is required")
		}
	}
	if c.App.BootstrapAdminUser != "" && c.App.BootstrapAdminPasswordHash == "" {
		return fmt.Errorf("BOOTSTRAP_ADMIN_PASSWORD_HASH is required when BOOTSTRAP_ADMIN_USER is set")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
