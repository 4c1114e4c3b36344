// Package config loads runtime configuration for the blog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables with the BLOG_ prefix (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// The result is checked by (*Config).Validate.
//
// Supported flags
//
//	-a string   API base URL
//	-s string   session database file
//	-p int      posts per page
//	-d int      search debounce (milliseconds)
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # Environment
//
//	BLOG_API_URI, BLOG_STORAGE_PATH, BLOG_PER_PAGE, BLOG_SEARCH_DEBOUNCE,
//	BLOG_REQUEST_TIMEOUT, BLOG_LOG_BACKEND, BLOG_LOG_LEVEL, BLOG_LOG_FORMAT,
//	BLOG_WRAP_CONTENT
//
// Durations in the environment use time.ParseDuration syntax ("500ms").
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "500ms" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000/api",
//	  "storage_path": "/home/me/.config/gophblog/session.db",
//	  "per_page": 10,
//	  "search_debounce": "500ms",
//	  "request_timeout": "10s",
//	  "log_backend": "zap",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "wrap_content": false
//	}
package config
