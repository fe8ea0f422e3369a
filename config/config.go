package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "10MB"
	defaultPort               = 8080
	defaultSessionCookie      = "session"
	defaultSessionMaxAge      = 7 * 24 * time.Hour
	defaultTaxRate            = "0.18"
	defaultInvoiceDueDays     = 30
	defaultCurrency           = "INR"
	defaultUploadDir          = "./uploads"
	defaultLoginRatePerMinute = 10
	defaultSMTPPort           = 587
	defaultSlowQueryThreshold = 200 * time.Millisecond

	// EnvProduction disables development conveniences such as the admin login fallback.
	EnvProduction = "production"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		// PublicURL is the externally visible base URL (NEXT_PUBLIC_API_URL).
		PublicURL string `json:"publicUrl" yaml:"publicUrl"`
		Timeouts  struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Postgres is optional; without it an in-memory database is used.
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Database DatabaseConfig `json:"database" yaml:"database"`

	Session SessionConfig `json:"session" yaml:"session"`

	Admin AdminConfig `json:"admin" yaml:"admin"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Pricing PricingConfig `json:"pricing" yaml:"pricing"`

	SMTP *SMTPConfig `json:"smtp" yaml:"smtp"`

	Twilio *TwilioConfig `json:"twilio" yaml:"twilio"`

	AWS *AWSConfig `json:"aws" yaml:"aws"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	// QRCode configuration for invoice QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	RateLimit RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env.Env, EnvProduction)
}

// DatabaseConfig controls schema management.
type DatabaseConfig struct {
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
	// MemoryDSN overrides the in-memory SQLite DSN used when postgres is absent.
	MemoryDSN string `json:"memoryDsn" yaml:"memoryDsn"`
	// SlowQueryThreshold logs statements slower than this at WARN; negative disables it.
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
	// LogQueries logs every statement at DEBUG.
	LogQueries bool `json:"logQueries" yaml:"logQueries"`
}

// SessionConfig defines the session cookie and its signing key.
type SessionConfig struct {
	Secret     string        `json:"secret" yaml:"secret"`
	CookieName string        `json:"cookieName" yaml:"cookieName"`
	MaxAge     time.Duration `json:"maxAge" yaml:"maxAge"`
	Secure     bool          `json:"secure" yaml:"secure"`
}

// AdminConfig is the seeded administrator account.
type AdminConfig struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
	Name     string `json:"name" yaml:"name"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost        int `json:"bcryptCost" yaml:"bcryptCost"`
	MinPasswordLength int `json:"minPasswordLength" yaml:"minPasswordLength"`
}

// PricingConfig defines tax and invoice terms.
type PricingConfig struct {
	TaxRate        string `json:"taxRate" yaml:"taxRate"`
	InvoiceDueDays int    `json:"invoiceDueDays" yaml:"invoiceDueDays"`
	Currency       string `json:"currency" yaml:"currency"`
	QuoteValidDays int    `json:"quoteValidDays" yaml:"quoteValidDays"`
}

// SMTPConfig defines the outgoing mail server.
type SMTPConfig struct {
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port"`
	User      string `json:"user" yaml:"user"`
	Pass      string `json:"pass" yaml:"pass"`
	FromEmail string `json:"fromEmail" yaml:"fromEmail"`
	FromName  string `json:"fromName" yaml:"fromName"`
}

// TwilioConfig defines the SMS account.
type TwilioConfig struct {
	AccountSID  string `json:"accountSid" yaml:"accountSid"`
	AuthToken   string `json:"authToken" yaml:"authToken"`
	PhoneNumber string `json:"phoneNumber" yaml:"phoneNumber"`
}

// AWSConfig selects S3 for object storage when a bucket is set.
// Credentials are read by the AWS SDK from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.
type AWSConfig struct {
	AccessKeyID     string `json:"accessKeyId" yaml:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey" yaml:"secretAccessKey"`
	Region          string `json:"region" yaml:"region"`
	S3Bucket        string `json:"s3Bucket" yaml:"s3Bucket"`
}

// StorageConfig defines local object storage.
type StorageConfig struct {
	// BucketURL is any gocloud blob URL; it wins over aws and localDir.
	BucketURL     string `json:"bucketUrl" yaml:"bucketUrl"`
	LocalDir      string `json:"localDir" yaml:"localDir"`
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// File enables a rotating log file next to stdout.
	File       string `json:"file" yaml:"file"`
	MaxSizeMB  int    `json:"maxSizeMb" yaml:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// RateLimitConfig throttles login attempts per client IP.
type RateLimitConfig struct {
	LoginPerMinute int `json:"loginPerMinute" yaml:"loginPerMinute"`
	LoginBurst     int `json:"loginBurst" yaml:"loginBurst"`
}

// envAliases maps the storefront's conventional variable names to config keys.
//
//nolint:gochecknoglobals
var envAliases = map[string]string{
	"ADMIN_EMAIL":           "admin.email",
	"ADMIN_PASSWORD":        "admin.password",
	"ADMIN_NAME":            "admin.name",
	"NEXT_PUBLIC_API_URL":   "http.publicUrl",
	"SESSION_SECRET":        "session.secret",
	"SMTP_HOST":             "smtp.host",
	"SMTP_PORT":             "smtp.port",
	"SMTP_USER":             "smtp.user",
	"SMTP_PASS":             "smtp.pass",
	"SMTP_FROM_EMAIL":       "smtp.fromEmail",
	"SMTP_FROM_NAME":        "smtp.fromName",
	"AWS_ACCESS_KEY_ID":     "aws.accessKeyId",
	"AWS_SECRET_ACCESS_KEY": "aws.secretAccessKey",
	"AWS_REGION":            "aws.region",
	"AWS_S3_BUCKET":         "aws.s3Bucket",
	"TWILIO_ACCOUNT_SID":    "twilio.accountSid",
	"TWILIO_AUTH_TOKEN":     "twilio.authToken",
	"TWILIO_PHONE_NUMBER":   "twilio.phoneNumber",
	"PORT":                  "http.port",
	"NODE_ENV":              "env.env",
}

// LoadWithEnv loads .yaml files through koanf. A missing file is not an
// error: the configuration then comes from environment variables alone.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile != "" {
		if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", currEnv)
		}
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			if alias, ok := envAliases[k]; ok {
				return alias, v
			}
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	// .env is optional; variables already in the environment win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env failed")
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
		if replicas := buildReplicasFromEnv(); len(replicas) > 0 {
			cfg.Postgres.Replicas = replicas
		}
	}

	if cfg.Session.Secret == "" && cfg.IsProduction() {
		return nil, errors.New("session.secret (SESSION_SECRET) is required in production")
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Env.ServiceName == "" {
		c.Env.ServiceName = "solar"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = defaultPort
	}
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = defaultSessionCookie
	}
	if c.Session.MaxAge <= 0 {
		c.Session.MaxAge = defaultSessionMaxAge
	}
	if c.Session.Secret == "" {
		c.Session.Secret = "dev-only-session-secret"
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.MinPasswordLength <= 0 {
		c.Auth.MinPasswordLength = 8
	}
	if c.Admin.Name == "" {
		c.Admin.Name = "Administrator"
	}
	if c.Pricing.TaxRate == "" {
		c.Pricing.TaxRate = defaultTaxRate
	}
	if c.Pricing.InvoiceDueDays <= 0 {
		c.Pricing.InvoiceDueDays = defaultInvoiceDueDays
	}
	if c.Pricing.QuoteValidDays <= 0 {
		c.Pricing.QuoteValidDays = 30
	}
	if c.Pricing.Currency == "" {
		c.Pricing.Currency = defaultCurrency
	}
	if c.SMTP != nil && c.SMTP.Port == 0 {
		c.SMTP.Port = defaultSMTPPort
	}
	if c.Database.SlowQueryThreshold == 0 {
		c.Database.SlowQueryThreshold = defaultSlowQueryThreshold
	}
	if c.Storage.LocalDir == "" {
		c.Storage.LocalDir = defaultUploadDir
	}
	if c.RateLimit.LoginPerMinute <= 0 {
		c.RateLimit.LoginPerMinute = defaultLoginRatePerMinute
	}
	if c.RateLimit.LoginBurst <= 0 {
		c.RateLimit.LoginBurst = c.RateLimit.LoginPerMinute
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
