package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

var ErrMissingSecret = errors.New("JWT_SECRET or JWT_SECRET_SSM_PARAM must be set")

// Config is built once at startup and handed to every component by value.
type Config struct {
	Environment     string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	AcceptedOrigins []string
	Database        Database
	Auth            Auth
	Mail            Mail
}

type Database struct {
	Type       string // postgres, supa or sqlite
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	SQLitePath string
	ReplicaDSN string
	Debug      bool
}

type Auth struct {
	JWTSecret []byte
}

type Mail struct {
	APIKey string
	From   string
	AppURL string
}

// IsDevelopment reports whether the process runs with APP_ENV=development.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DSN builds the postgres connection string from the discrete settings.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// SecretFetcher resolves a named secret from an external store.
type SecretFetcher func(ctx context.Context, name string) (string, error)

// Load reads the environment snapshot and resolves the signing secret.
func Load(ctx context.Context) (Config, error) {
	return FromMap(ctx, New(), FetchSSMParameter)
}

// FromMap builds a Config from an environment map. fetch is only used when
// JWT_SECRET is empty and JWT_SECRET_SSM_PARAM names a parameter.
func FromMap(ctx context.Context, c map[string]string, fetch SecretFetcher) (Config, error) {
	dbType := strings.ToLower(GetString(c, "DB_TYPE", "sqlite"))

	cfg := Config{
		Environment:     GetString(c, "APP_ENV", "production"),
		Port:            GetString(c, "PORT", "5000"),
		ReadTimeout:     time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second,
		WriteTimeout:    time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		IdleTimeout:     time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second,
		AcceptedOrigins: GetStrings(c, "ACCEPTED_ORIGINS", []string{"*"}),
		Database: Database{
			Type:       dbType,
			SQLitePath: GetString(c, "DB_PATH", "blog.db"),
			ReplicaDSN: GetString(c, "DB_REPLICA_DSN", ""),
			Debug:      GetBool(c, "DB_DEBUG", false),
		},
		Mail: Mail{
			APIKey: GetString(c, "RESEND_API_KEY", ""),
			From:   GetString(c, "RESEND_FROM_EMAIL", ""),
			AppURL: GetString(c, "APP_URL", "http://localhost:3000"),
		},
	}

	switch dbType {
	case "supa":
		cfg.Database.Host = GetString(c, "SUPABASE_DB_HOST", "")
		cfg.Database.User = GetString(c, "SUPABASE_DB_USER", "")
		cfg.Database.Password = GetString(c, "SUPABASE_DB_PASSWORD", "")
		cfg.Database.Name = GetString(c, "SUPABASE_DB_NAME", "")
		cfg.Database.Port = GetString(c, "SUPABASE_DB_PORT", "5432")
		cfg.Database.SSLMode = "require"
	case "postgres":
		cfg.Database.Host = GetString(c, "DB_HOST", "localhost")
		cfg.Database.User = GetString(c, "DB_USER", "postgres")
		cfg.Database.Password = GetString(c, "DB_PASSWORD", "")
		cfg.Database.Name = GetString(c, "DB_NAME", "blog")
		cfg.Database.Port = GetString(c, "DB_PORT", "5432")
		cfg.Database.SSLMode = GetString(c, "DB_SSLMODE", "disable")
	case "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	secret := GetString(c, "JWT_SECRET", "")
	if secret == "" {
		param := GetString(c, "JWT_SECRET_SSM_PARAM", "")
		if param == "" || fetch == nil {
			return Config{}, ErrMissingSecret
		}
		value, err := fetch(ctx, param)
		if err != nil {
			return Config{}, fmt.Errorf("fetch jwt secret from %s: %w", param, err)
		}
		secret = value
	}
	if secret == "" {
		return Config{}, ErrMissingSecret
	}
	cfg.Auth.JWTSecret = []byte(secret)

	return cfg, nil
}

// FetchSSMParameter reads a SecureString parameter using the default AWS credential chain.
func FetchSSMParameter(ctx context.Context, name string) (string, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	out, err := ssm.NewFromConfig(awsCfg).GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s has no value", name)
	}
	return *out.Parameter.Value, nil
}

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}
	return asBool
}

// GetStrings splits a comma separated value, dropping blank entries.
func GetStrings(config map[string]string, key string, defaultValue []string) []string {
	s := GetString(config, key, "")
	if s == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
