package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. FITTRACK_EXTERNALCLIENTS_KROGER_CLIENTID.
const EnvPrefix = "FITTRACK"

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Logging         LoggingConfig        `mapstructure:"logging"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Sync            SyncConfig           `mapstructure:"sync"`
	RateLimit       RateLimitConfig      `mapstructure:"rateLimit"`
	Telemetry       TelemetryConfig      `mapstructure:"telemetry"`
	Secrets         SecretsConfig        `mapstructure:"secrets"`
}

type ServiceType string

const (
	API     ServiceType = "API"
	WORKER  ServiceType = "WORKER"
	MIGRATE ServiceType = "MIGRATE"
)

type ServiceConfig struct {
	Type            ServiceType   `mapstructure:"type"`
	Port            string        `mapstructure:"port"`
	RequestTimeout  time.Duration `mapstructure:"requestTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	AllowedOrigins  []string      `mapstructure:"allowedOrigins"`
	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP. Only
	// enable it behind a proxy that overwrites those headers.
	TrustProxy bool `mapstructure:"trustProxy"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	FilePath string `mapstructure:"filePath"`
	Text     bool   `mapstructure:"text"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Local LocalConfig `mapstructure:"local"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	MaxConns         int32  `mapstructure:"maxConns"`
}

// Configured reports whether a remote database was configured at all.
func (c SQLConfig) Configured() bool {
	return c.ConnectionString != "" || c.Host != ""
}

// LocalConfig points at the on-device SQLite store.
type LocalConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`
}

func (c RedisConfig) Configured() bool {
	return c.Host != ""
}

type ExternalClientConfig struct {
	Kroger KrogerConfig `mapstructure:"kroger"`
	Edamam EdamamConfig `mapstructure:"edamam"`
	AIML   AIMLConfig   `mapstructure:"aiml"`
}

type KrogerConfig struct {
	BaseURL      string `mapstructure:"baseUrl"`
	TokenURL     string `mapstructure:"tokenUrl"`
	ClientID     string `mapstructure:"clientId"`
	ClientSecret string `mapstructure:"clientSecret"`
	Scope        string `mapstructure:"scope"`
}

func (c KrogerConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type EdamamConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	AppID   string `mapstructure:"appId"`
	AppKey  string `mapstructure:"appKey"`
}

func (c EdamamConfig) Configured() bool {
	return c.AppID != "" && c.AppKey != ""
}

type AIMLConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
	Model   string `mapstructure:"model"`
}

func (c AIMLConfig) Configured() bool {
	return c.APIKey != ""
}

// SyncConfig drives the local sync service in WORKER mode and guards the
// push endpoint in API mode.
type SyncConfig struct {
	// ClientID pins the device id. Empty uses the id persisted with the local store.
	ClientID  string        `mapstructure:"clientId"`
	RemoteURL string        `mapstructure:"remoteUrl"`
	APIKey    string        `mapstructure:"apiKey"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batchSize"`
	AutoStart bool          `mapstructure:"autoStart"`
	// Retention is how long acknowledged outbox entries are kept. Zero keeps them forever.
	Retention time.Duration `mapstructure:"retention"`
}

type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"serviceName"`
}

type SecretsConfig struct {
	AWSRegion  string `mapstructure:"awsRegion"`
	SecretName string `mapstructure:"secretName"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.requestTimeout", 30*time.Second)
	v.SetDefault("service.shutdownTimeout", 10*time.Second)
	v.SetDefault("service.allowedOrigins", []string{"*"})
	v.SetDefault("service.trustProxy", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.filePath", "")
	v.SetDefault("logging.text", false)

	v.SetDefault("databases.sql.host", "")
	v.SetDefault("databases.sql.port", "5432")
	v.SetDefault("databases.sql.username", "")
	v.SetDefault("databases.sql.password", "")
	v.SetDefault("databases.sql.database", "")
	v.SetDefault("databases.sql.connection_string", "")
	v.SetDefault("databases.sql.maxConns", 5)
	v.SetDefault("databases.local.path", "./data/fittrack.db")
	v.SetDefault("databases.redis.host", "")
	v.SetDefault("databases.redis.port", "6379")
	v.SetDefault("databases.redis.username", "")
	v.SetDefault("databases.redis.password", "")
	v.SetDefault("databases.redis.database", 0)
	v.SetDefault("databases.redis.tls", false)

	v.SetDefault("externalClients.kroger.baseUrl", "https://api.kroger.com/v1")
	v.SetDefault("externalClients.kroger.tokenUrl", "https://api.kroger.com/v1/connect/oauth2/token")
	v.SetDefault("externalClients.kroger.clientId", "")
	v.SetDefault("externalClients.kroger.clientSecret", "")
	v.SetDefault("externalClients.kroger.scope", "product.compact")
	v.SetDefault("externalClients.edamam.baseUrl", "https://api.edamam.com")
	v.SetDefault("externalClients.edamam.appId", "")
	v.SetDefault("externalClients.edamam.appKey", "")
	v.SetDefault("externalClients.aiml.baseUrl", "https://api.aimlapi.com/v1")
	v.SetDefault("externalClients.aiml.apiKey", "")
	v.SetDefault("externalClients.aiml.model", "gpt-4o")

	v.SetDefault("sync.clientId", "")
	v.SetDefault("sync.remoteUrl", "")
	v.SetDefault("sync.apiKey", "")
	v.SetDefault("sync.interval", 5*time.Minute)
	v.SetDefault("sync.batchSize", 50)
	v.SetDefault("sync.autoStart", true)
	v.SetDefault("sync.retention", 30*24*time.Hour)

	v.SetDefault("rateLimit.limit", 100)
	v.SetDefault("rateLimit.window", 15*time.Minute)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.serviceName", "fittrack")

	v.SetDefault("secrets.awsRegion", "")
	v.SetDefault("secrets.secretName", "")
}

// LoadConfig reads appsettings.yaml from path, overlays appsettings.<env>.yaml
// when env is set, then applies FITTRACK_* environment overrides. A missing
// base file is not an error; defaults and the environment still apply.
func LoadConfig(path string, env string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Service.Type = ServiceType(strings.ToUpper(string(cfg.Service.Type)))
	return &cfg, nil
}
