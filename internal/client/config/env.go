package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. BLOG_LOG_LEVEL.
const EnvPrefix = "BLOG"

// parseEnv overlays Config with BLOG_* environment variables. The API root
// is read from BLOG_API_URI.
func parseEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	keys := []string{
		"api_uri", "storage_path", "per_page", "search_debounce",
		"request_timeout", "log_backend", "log_level", "log_format", "wrap_content",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if v.IsSet("api_uri") {
		cfg.APIBaseURL = v.GetString("api_uri")
	}
	if v.IsSet("storage_path") {
		cfg.StoragePath = v.GetString("storage_path")
	}
	if v.IsSet("per_page") {
		cfg.PerPage = v.GetInt("per_page")
	}
	if v.IsSet("search_debounce") {
		cfg.SearchDebounce = v.GetDuration("search_debounce")
	}
	if v.IsSet("request_timeout") {
		cfg.RequestTimeout = v.GetDuration("request_timeout")
	}
	if v.IsSet("log_backend") {
		cfg.LogBackend = v.GetString("log_backend")
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("log_format") {
		cfg.LogFormat = v.GetString("log_format")
	}
	if v.IsSet("wrap_content") {
		cfg.WrapContent = v.GetBool("wrap_content")
	}
}
