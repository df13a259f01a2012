package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Session token configuration
type SessionConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	CookieName string
	// CookieSecure controls the Secure attribute on the session cookie.
	// Only disable for local development over plain HTTP.
	CookieSecure bool
}

// DNI lookup proxy configuration
type DNIConfig struct {
	APIURL   string
	APIToken string
	Timeout  time.Duration
}

// Bootstrap superadmin configuration
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Reconciler configuration
type ReconcilerConfig struct {
	Enabled     bool
	IntervalSec int
	MaxAttempts int
}

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Mongo      MongoConfig
	Session    SessionConfig
	DNI        DNIConfig
	Bootstrap  BootstrapConfig
	Reconciler ReconcilerConfig
}

// Default configuration values
const (
	DefaultServerPort   = "8080"
	DefaultServerHost   = ""
	DefaultMongoURI     = "mongodb://localhost:27017/cloverpass"
	DefaultMongoDB      = "cloverpass"
	DefaultCookieName   = "idToken"
	DefaultTokenTTLMin  = 60
	DefaultCookieSecure = true
	DefaultDNITimeout   = 10 * time.Second
	DefaultAdminEmail   = "admin@cloverpass.local"
	DefaultAdminName    = "Platform Admin"
	// Reconciler defaults
	DefaultReconcilerEnabled     = true
	DefaultReconcilerIntervalSec = 60
	DefaultReconcilerMaxAttempts = 5
	// Pagination defaults
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Input limits enforced by the gateway
const (
	MinPasswordLength = 6
	MinNameLength     = 2
	MaxNameLength     = 100
	MaxEmailLength    = 254
	DNILength         = 8
)

// New returns a new Config with values from the environment
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Session: SessionConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     time.Duration(getEnvInt("TOKEN_TTL_MINUTES", DefaultTokenTTLMin)) * time.Minute,
			CookieName:   getEnv("SESSION_COOKIE_NAME", DefaultCookieName),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", DefaultCookieSecure),
		},
		DNI: DNIConfig{
			APIURL:   getEnv("DNI_API_URL", ""),
			APIToken: getEnv("DNI_API_TOKEN", ""),
			Timeout:  time.Duration(getEnvInt("DNI_TIMEOUT_SECONDS", int(DefaultDNITimeout/time.Second))) * time.Second,
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", DefaultAdminEmail),
			AdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
			AdminName:     getEnv("BOOTSTRAP_ADMIN_NAME", DefaultAdminName),
		},
		Reconciler: ReconcilerConfig{
			Enabled:     getEnvBool("RECONCILER_ENABLED", DefaultReconcilerEnabled),
			IntervalSec: getEnvInt("RECONCILER_INTERVAL_SEC", DefaultReconcilerIntervalSec),
			MaxAttempts: getEnvInt("RECONCILER_MAX_ATTEMPTS", DefaultReconcilerMaxAttempts),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
