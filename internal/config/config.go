// Package config loads application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every knob of a single run.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Output  OutputConfig  `mapstructure:"output"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type GitHubConfig struct {
	Token        string        `mapstructure:"token"`
	Author       string        `mapstructure:"author"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	MaxRateWait  time.Duration `mapstructure:"max_rate_wait"`
}

type LLMConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Token        string        `mapstructure:"token"`
	Model        string        `mapstructure:"model"`
	Temperature  float32       `mapstructure:"temperature"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	PromptBudget int           `mapstructure:"prompt_budget"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// New loads configuration from the environment using viper with typed
// defaults and validation. An optional .env file seeds missing variables
// without overriding ones already set.
func New(envFile string) (*Config, error) {
	if envFile != "" {
		if envMap, err := godotenv.Read(envFile); err == nil {
			for k, val := range envMap {
				if _, exists := os.LookupEnv(k); !exists {
					_ = os.Setenv(k, val)
				}
			}
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")

	v.SetDefault("github.timeout", 30*time.Second)
	v.SetDefault("github.max_retries", 3)
	v.SetDefault("github.retry_backoff", time.Second)
	v.SetDefault("github.max_rate_wait", 2*time.Minute)

	v.SetDefault("llm.model", "granite-8b-code-instruct-128k")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 200)
	v.SetDefault("llm.prompt_budget", 3000)
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.retry_backoff", time.Second)

	v.SetDefault("output.path", "dashboard.md")
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"github.token",
		"github.author",
		"github.timeout",
		"github.max_retries",
		"github.retry_backoff",
		"github.max_rate_wait",
		"llm.endpoint",
		"llm.token",
		"llm.model",
		"llm.temperature",
		"llm.max_tokens",
		"llm.prompt_budget",
		"llm.timeout",
		"llm.max_retries",
		"llm.retry_backoff",
		"output.path",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

// Validate checks the credentials the run cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.GitHub.Token == "" {
		errs = append(errs, errors.New("GITHUB_TOKEN is not set"))
	}
	if c.LLM.Endpoint == "" {
		errs = append(errs, errors.New("LLM_ENDPOINT is not set"))
	}
	if c.LLM.Token == "" {
		errs = append(errs, errors.New("LLM_TOKEN is not set"))
	}
	if c.Output.Path == "" {
		errs = append(errs, errors.New("output path is empty"))
	}
	return errors.Join(errs...)
}
