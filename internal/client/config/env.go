package config

import "os"

const (
	EnvAPIURL      = "PROMPTMASTER_API_URL"
	EnvDataDir     = "PROMPTMASTER_DATA_DIR"
	EnvLogLevel    = "PROMPTMASTER_LOG_LEVEL"
	EnvS3Bucket    = "PROMPTMASTER_S3_BUCKET"
	EnvS3Region    = "PROMPTMASTER_S3_REGION"
	EnvS3Endpoint  = "PROMPTMASTER_S3_ENDPOINT"
	EnvS3AccessKey = "PROMPTMASTER_S3_ACCESS_KEY"
	EnvS3SecretKey = "PROMPTMASTER_S3_SECRET_KEY"
)

// parseEnv overlays Config with non-empty PROMPTMASTER_* variables.
func parseEnv(cfg *Config) {
	for name, dst := range map[string]*string{
		EnvAPIURL:      &cfg.APIURL,
		EnvDataDir:     &cfg.DataDir,
		EnvLogLevel:    &cfg.LogLevel,
		EnvS3Bucket:    &cfg.S3Bucket,
		EnvS3Region:    &cfg.S3Region,
		EnvS3Endpoint:  &cfg.S3BaseEndpoint,
		EnvS3AccessKey: &cfg.S3AccessKey,
		EnvS3SecretKey: &cfg.S3SecretKey,
	} {
		setIfNotEmpty(dst, os.Getenv(name))
	}
}
