// Package config resolves run settings from defaults, a YAML file,
// .env / environment variables and, last, CLI flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	llmclient "codescribe/internal/llm/client"
	"codescribe/internal/output"
	"codescribe/internal/scan"
	"codescribe/internal/segment"
)

const (
	// DefaultFile is read when no --config is given and it exists.
	DefaultFile = ".codescribe.yaml"
	EnvPrefix   = "CODESCRIBE_"

	DefaultSystem      = "You are a dedicated software architect and the most amazing assistant imaginable!"
	DefaultInstruction = "write django unit tests using testcase"
	DefaultOutDir      = "new"
	DefaultCacheSize   = 256
)

type Config struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`

	System      string `yaml:"system"`
	Instruction string `yaml:"instruction"`

	Inputs          []string `yaml:"inputs"`
	Include         []string `yaml:"include"`
	Exclude         []string `yaml:"exclude"`
	SkipUnsupported bool     `yaml:"skip_unsupported"`
	GitIgnore       bool     `yaml:"gitignore"`
	Boundary        string   `yaml:"boundary"`

	Output    OutputConfig    `yaml:"output"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CacheSize int             `yaml:"cache_size"`
	Verbose   bool            `yaml:"verbose"`
}

type OutputConfig struct {
	Dir string   `yaml:"dir"`
	S3  S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    *bool  `yaml:"use_ssl"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Provider:    "openai",
		System:      DefaultSystem,
		Instruction: DefaultInstruction,
		Boundary:    segment.BoundaryNode.String(),
		Output:      OutputConfig{Dir: DefaultOutDir},
		CacheSize:   DefaultCacheSize,
	}
}

// Load builds a Config from defaults, the YAML file at path (or DefaultFile
// when path is empty and the file exists), then environment overrides.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Provider, env("PROVIDER"))
	setString(&c.Model, env("MODEL"))
	setString(&c.BaseURL, env("BASE_URL"))
	setString(&c.System, env("SYSTEM"))
	setString(&c.Instruction, env("INSTRUCTION"))
	setString(&c.Boundary, env("BOUNDARY"))
	setString(&c.Output.Dir, env("OUT"))

	setString(&c.APIKey, env("API_KEY"))
	if c.APIKey == "" {
		c.APIKey = providerKey(c.Provider)
	}

	s3 := &c.Output.S3
	setString(&s3.Endpoint, env("S3_ENDPOINT"))
	setString(&s3.Region, env("S3_REGION"))
	setString(&s3.Bucket, env("S3_BUCKET"))
	setString(&s3.Prefix, env("S3_PREFIX"))
	setString(&s3.AccessKey, firstNonEmpty(env("S3_ACCESS_KEY"), os.Getenv("MINIO_ROOT_USER")))
	setString(&s3.SecretKey, firstNonEmpty(env("S3_SECRET_KEY"), os.Getenv("MINIO_ROOT_PASSWORD")))
	if raw := env("S3_USE_SSL"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%sS3_USE_SSL: %w", EnvPrefix, err)
		}
		s3.UseSSL = &v
	}

	if raw := firstNonEmpty(env("RPS"), os.Getenv("LLM_RPS")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("RPS: %w", err)
		}
		c.RateLimit.RPS = v
	}
	if raw := firstNonEmpty(env("BURST"), os.Getenv("LLM_BURST")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("BURST: %w", err)
		}
		c.RateLimit.Burst = v
	}
	if raw := env("CACHE_SIZE"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%sCACHE_SIZE: %w", EnvPrefix, err)
		}
		c.CacheSize = v
	}
	return nil
}

// providerKey reads the conventional API key variable for provider.
func providerKey(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "openai":
		return firstNonEmpty(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_KEY"))
	case "gemini":
		return firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
	case "groq":
		return os.Getenv("GROQ_API_KEY")
	}
	return ""
}

// Validate checks values that would otherwise fail midway through a run.
func (c *Config) Validate() error {
	if _, err := segment.ParseBoundary(c.Boundary); err != nil {
		return err
	}
	if strings.TrimSpace(c.Instruction) == "" {
		return fmt.Errorf("instruction must not be empty")
	}
	if strings.TrimSpace(c.Output.Dir) == "" && strings.TrimSpace(c.Output.S3.Bucket) == "" {
		return fmt.Errorf("an output directory or s3 bucket is required")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	return c.ListOptions().Validate()
}

func (c *Config) LLM() llmclient.Config {
	return llmclient.Config{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
	}
}

func (c *Config) OutputSink() output.Config {
	s3 := c.Output.S3
	useSSL := true
	if s3.UseSSL != nil {
		useSSL = *s3.UseSSL
	}
	return output.Config{
		Dir: c.Output.Dir,
		S3: output.S3Config{
			Endpoint:  s3.Endpoint,
			Region:    firstNonEmpty(s3.Region, "us-east-1"),
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Bucket:    s3.Bucket,
			Prefix:    s3.Prefix,
			UseSSL:    useSSL,
		},
	}
}

func (c *Config) ListOptions() scan.ListOptions {
	opts := scan.ListOptions{Include: c.Include, Exclude: c.Exclude, GitIgnore: c.GitIgnore}
	if c.SkipUnsupported {
		opts.Accept = segment.Supported
	}
	return opts
}

func (c *Config) SegmentBoundary() segment.Boundary {
	b, _ := segment.ParseBoundary(c.Boundary)
	return b
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
