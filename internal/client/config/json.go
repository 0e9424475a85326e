package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/promptmaster/internal/flagx"
	"github.com/dmitrijs2005/promptmaster/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	APIURL         string         `json:"api_url"`
	DataDir        string         `json:"data_dir"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
	S3             JsonS3Config   `json:"s3"`
}

type JsonS3Config struct {
	Bucket       string `json:"bucket"`
	Region       string `json:"region"`
	BaseEndpoint string `json:"base_endpoint"`
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config. Only non-empty fields override. Panics on read or unmarshal
// errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.APIURL, jc.APIURL)
	setIfNotEmpty(&cfg.DataDir, jc.DataDir)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}

	setIfNotEmpty(&cfg.S3Bucket, jc.S3.Bucket)
	setIfNotEmpty(&cfg.S3Region, jc.S3.Region)
	setIfNotEmpty(&cfg.S3BaseEndpoint, jc.S3.BaseEndpoint)
	setIfNotEmpty(&cfg.S3AccessKey, jc.S3.AccessKey)
	setIfNotEmpty(&cfg.S3SecretKey, jc.S3.SecretKey)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
