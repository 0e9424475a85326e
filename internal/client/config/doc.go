// Package config loads runtime configuration for the Prompt Master CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables (PROMPTMASTER_*).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the Prompt Master API
//	-d string   local data directory
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds:
//
//	{
//	  "api_url": "https://prompts.example.com",
//	  "data_dir": "/home/me/.promptmaster",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "s3": {
//	    "bucket": "exports",
//	    "region": "us-east-1",
//	    "base_endpoint": "http://127.0.0.1:9000",
//	    "access_key": "minio",
//	    "secret_key": "minio123"
//	  }
//	}
package config
