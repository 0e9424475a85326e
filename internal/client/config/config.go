package config

import (
	"time"
)

// Config holds runtime settings for the Prompt Master CLI.
type Config struct {
	APIURL         string
	DataDir        string
	RequestTimeout time.Duration
	LogLevel       string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:8000"
	c.DataDir = ".promptmaster"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// S3Enabled reports whether history export to a bucket is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
