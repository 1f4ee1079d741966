package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultJWTSecret     = "change-me-in-production"
	defaultAdminPassword = "admin123456"
)

// Config is the whole runtime configuration of the server and rentctl.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	Export    ExportConfig    `mapstructure:"export"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig selects sqlite (Path) or postgres (Host..SSLMode).
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int           `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int           `mapstructure:"conn_max_idle_time"` // minutes
	LogLevel        string        `mapstructure:"log_level"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

// RedisConfig holds Redis connection settings. When disabled, revoked
// tokens are tracked in process memory.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret                string        `mapstructure:"secret"`
	AccessTokenExpiration time.Duration `mapstructure:"access_token_expiration"`
	Issuer                string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

type HTTPConfig struct {
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes   int           `mapstructure:"max_header_bytes"`
	MaxBodySize      int64         `mapstructure:"max_body_size"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies   []string      `mapstructure:"trusted_proxies"`
}

// BootstrapConfig is the administrator account ensured at startup.
type BootstrapConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
}

type ExportConfig struct {
	ChromePath    string        `mapstructure:"chrome_path"` // empty uses the chromedp default lookup
	RenderTimeout time.Duration `mapstructure:"render_timeout"`
	NoSandbox     bool          `mapstructure:"no_sandbox"` // needed when running as root in containers
}

// TelemetryConfig controls OTLP export of traces, metrics and logs, and
// Pyroscope profiling. Nothing is exported unless Enabled is set.
type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	ServiceName       string        `mapstructure:"service_name"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint"` // OTLP gRPC host:port
	Insecure          bool          `mapstructure:"insecure"`
	SamplingRatio     float64       `mapstructure:"sampling_ratio"`
	MetricsInterval   time.Duration `mapstructure:"metrics_interval"`
	LogsEnabled       bool          `mapstructure:"logs_enabled"`
	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool          `mapstructure:"db_log_full_sql"` // records bound values in spans
	ProfilingEnabled  bool          `mapstructure:"profiling_enabled"`
	ProfilingServer   string        `mapstructure:"profiling_server"`
}

// defaults registers every key, so AutomaticEnv can override any of them.
var defaults = map[string]any{
	"app.name": "rentdesk",
	"app.env":  "development",
	"app.port": "8080",

	"database.driver":             DriverSQLite,
	"database.path":               "rentdesk.db",
	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "rentdesk",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,
	"database.log_level":          "warn",
	"database.slow_threshold":     200 * time.Millisecond,

	"redis.enabled":  false,
	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":                  defaultJWTSecret,
	"jwt.access_token_expiration": 120 * time.Minute,
	"jwt.issuer":                  "rentdesk",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":       15 * time.Second,
	"http.write_timeout":      60 * time.Second,
	"http.idle_timeout":       60 * time.Second,
	"http.max_header_bytes":   1 << 20,
	"http.max_body_size":      1 << 20,
	"http.cors_allow_origins": []string{"http://localhost:5173", "http://127.0.0.1:5173"},
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":    []string{},

	"bootstrap.admin_username": "admin",
	"bootstrap.admin_password": defaultAdminPassword,

	"export.chrome_path":    "",
	"export.render_timeout": 30 * time.Second,
	"export.no_sandbox":     false,

	"telemetry.enabled":            false,
	"telemetry.service_name":       "rentdesk",
	"telemetry.collector_endpoint": "localhost:4317",
	"telemetry.insecure":           true,
	"telemetry.sampling_ratio":     1.0,
	"telemetry.metrics_interval":   60 * time.Second,
	"telemetry.logs_enabled":       false,
	"telemetry.db_trace_enabled":   true,
	"telemetry.db_log_full_sql":    false,
	"telemetry.profiling_enabled":  false,
	"telemetry.profiling_server":   "http://localhost:4040",
}

// legacyEnv maps keys to variable names used by earlier deployments.
var legacyEnv = map[string]string{
	"jwt.secret":               "APP_SECRET",
	"bootstrap.admin_username": "INIT_ADMIN_USERNAME",
	"bootstrap.admin_password": "INIT_ADMIN_PASSWORD",
	"http.cors_allow_origins":  "CORS_ORIGINS",
}

// Load reads config.toml from ., ./config or /app and overlays RENT_*
// environment variables (RENT_DATABASE_PASSWORD sets database.password).
// A missing file is not an error.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, dir := range []string{".", "./config", "/app"} {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("RENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		envKey := "RENT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Sprintf("config defaults do not decode: %v", err))
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	h := &cfg.HTTP
	for _, list := range []*[]string{&h.CORSAllowOrigins, &h.CORSAllowMethods, &h.CORSAllowHeaders, &h.TrustedProxies} {
		*list = splitList(*list)
	}
	return &cfg, nil
}

// splitList accepts both TOML arrays and comma separated env values
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) validate() error {
	db := c.Database
	switch {
	case db.Driver != DriverSQLite && db.Driver != DriverPostgres:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, db.Driver)
	case db.MaxOpenConns <= 0:
		return errors.New("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0 || db.MaxIdleConns > db.MaxOpenConns:
		return fmt.Errorf("database.max_idle_conns must be between 0 and max_open_conns (%d), got %d",
			db.MaxOpenConns, db.MaxIdleConns)
	case c.JWT.AccessTokenExpiration <= 0:
		return errors.New("jwt.access_token_expiration must be positive")
	case c.Export.RenderTimeout <= 0:
		return errors.New("export.render_timeout must be positive")
	}
	if err := c.Telemetry.validate(); err != nil {
		return err
	}

	if !c.IsProduction() {
		return nil
	}
	if c.JWT.Secret == defaultJWTSecret || len(c.JWT.Secret) < 32 {
		return errors.New("jwt.secret must be set to at least 32 characters in production")
	}
	if c.Bootstrap.AdminPassword == defaultAdminPassword {
		return errors.New("bootstrap.admin_password must be changed in production")
	}
	for _, origin := range c.HTTP.CORSAllowOrigins {
		if origin == "*" {
			return errors.New("http.cors_allow_origins cannot contain '*' in production")
		}
	}
	if c.Telemetry.DBLogFullSQL {
		return errors.New("telemetry.db_log_full_sql cannot be enabled in production")
	}
	return nil
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}
	switch {
	case t.ServiceName == "":
		return errors.New("telemetry.service_name is required when telemetry is enabled")
	case t.CollectorEndpoint == "":
		return errors.New("telemetry.collector_endpoint is required when telemetry is enabled")
	case t.SamplingRatio < 0 || t.SamplingRatio > 1:
		return fmt.Errorf("telemetry.sampling_ratio must be between 0 and 1, got %v", t.SamplingRatio)
	case t.MetricsInterval <= 0:
		return errors.New("telemetry.metrics_interval must be positive")
	case t.ProfilingEnabled && t.ProfilingServer == "":
		return errors.New("telemetry.profiling_server is required when profiling is enabled")
	}
	return nil
}

// IsProduction reports whether app.env is production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the sqlite file path or a postgres URL with escaped credentials.
func (d *DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + strconv.Itoa(d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// Addr returns host:port for the redis client
func (r *RedisConfig) Addr() string {
	return r.Host + ":" + strconv.Itoa(r.Port)
}
