package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full startup configuration. It is built once in main and
// passed into component constructors; pipeline code never reads the
// environment on its own.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Weather   WeatherConfig   `yaml:"weather"`
	Reasoning ReasoningConfig `yaml:"reasoning"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
	Log       LogConfig       `yaml:"log"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME"`
	Version string `yaml:"version" envconfig:"APP_VERSION"`
	Env     string `yaml:"env" envconfig:"APP_ENV"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"SERVER_IDLE_TIMEOUT"`
}

type WeatherConfig struct {
	APIs []WeatherAPIConfig `yaml:"apis"`
}

// WeatherAPIConfig configures one conditions provider. The first configured
// entry acts as the primary; Timeout is in seconds.
type WeatherAPIConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	Timeout int    `yaml:"timeout"`
}

// ReasoningConfig configures the escalation LLM. An empty APIKey disables
// escalation entirely; the rule table then answers every request.
type ReasoningConfig struct {
	BaseURL     string  `yaml:"base_url" envconfig:"REASONING_BASE_URL"`
	APIKey      string  `yaml:"api_key" envconfig:"REASONING_API_KEY"`
	Model       string  `yaml:"model" envconfig:"REASONING_MODEL"`
	Timeout     int     `yaml:"timeout" envconfig:"REASONING_TIMEOUT"`
	MaxTokens   int     `yaml:"max_tokens" envconfig:"REASONING_MAX_TOKENS"`
	Temperature float64 `yaml:"temperature" envconfig:"REASONING_TEMPERATURE"`
}

type AdvisorConfig struct {
	FetchTimeout   int `yaml:"fetch_timeout" envconfig:"ADVISOR_FETCH_TIMEOUT"`
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"ADVISOR_MAX_CONCURRENCY"`
	MaxBatchSize   int `yaml:"max_batch_size" envconfig:"ADVISOR_MAX_BATCH_SIZE"`
}

type LogConfig struct {
	Level     string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format    string `yaml:"format" envconfig:"LOG_FORMAT"`
	SentryDSN string `yaml:"sentry_dsn" envconfig:"SENTRY_DSN"`
}

// defaultConfig is the baseline every load starts from; the YAML file and
// then the environment overlay it. Defaults live here rather than in struct
// tags so envconfig cannot re-apply them over file values.
func defaultConfig() Config {
	return Config{
		App: AppConfig{
			Name:    "clothing-advisor",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Reasoning: ReasoningConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Timeout:     20,
			MaxTokens:   800,
			Temperature: 0.4,
		},
		Advisor: AdvisorConfig{
			FetchTimeout:   10,
			MaxConcurrency: 4,
			MaxBatchSize:   20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// FetchTimeoutDuration converts the configured seconds into a Duration.
func (a AdvisorConfig) FetchTimeoutDuration() time.Duration {
	return time.Duration(a.FetchTimeout) * time.Second
}

// TimeoutDuration converts the configured seconds into a Duration.
func (r ReasoningConfig) TimeoutDuration() time.Duration {
	return time.Duration(r.Timeout) * time.Second
}

// ConfigProvider loads and validates a Config from some source.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(cfg *Config) error
}

// FileConfigProvider builds a Config in three layers: code defaults, then
// the YAML file, then environment variables. A missing file is not an
// error - env and defaults still apply.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cfg := defaultConfig()

	if data, err := os.ReadFile(p.path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse yaml config %s", p.path)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment config")
	}

	return &cfg, nil
}

func (p *FileConfigProvider) Validate(cfg *Config) error {
	if cfg.App.Name == "" {
		return errors.New("app name is required")
	}
	if cfg.Server.Port == "" {
		return errors.New("server port is required")
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	for _, api := range cfg.Weather.APIs {
		if api.Name == "" {
			return errors.New("weather api name is required")
		}
		if api.Timeout <= 0 {
			return errors.Errorf("weather api %s: timeout must be positive", api.Name)
		}
	}
	if cfg.Advisor.MaxConcurrency <= 0 {
		return errors.New("advisor max concurrency must be positive")
	}
	if cfg.Advisor.FetchTimeout <= 0 {
		return errors.New("advisor fetch timeout must be positive")
	}
	return nil
}

// NewConfigWithProvider loads and validates via the given provider.
func NewConfigWithProvider(p ConfigProvider) (*Config, error) {
	cfg, err := p.Load()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewConfig loads from the default config file location.
func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider("config/config.yaml"))
}
